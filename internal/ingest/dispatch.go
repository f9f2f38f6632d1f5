package ingest

import (
	"context"
	"sync"
	"sync/atomic"

	"talent-intake/internal/storage"
)

// Outcome is the per-file result of a batch run. Exactly one of Candidate and
// Err is set.
type Outcome struct {
	FileName  string
	Candidate *storage.Candidate
	Err       error
}

// Handler runs the pipeline for one file.
type Handler func(ctx context.Context, f File) (*storage.Candidate, error)

// ProcessAll runs handle over every file with at most limit files in flight
// at once. limit is clamped to [1, len(files)]; the clamped value actually
// used is returned alongside the outcomes.
//
// Work assignment is a shared cursor: each worker repeatedly claims the next
// unclaimed index until none remain, and writes its outcome into the slot for
// that index. Output order therefore always matches input order, whatever
// order the workers finish in. One file's failure never cancels its siblings.
func ProcessAll(ctx context.Context, files []File, limit int, handle Handler) ([]Outcome, int) {
	if len(files) == 0 {
		return []Outcome{}, 0
	}
	if limit < 1 {
		limit = 1
	}
	if limit > len(files) {
		limit = len(files)
	}

	outcomes := make([]Outcome, len(files))
	var cursor atomic.Int64
	var wg sync.WaitGroup

	for w := 0; w < limit; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				idx := int(cursor.Add(1)) - 1
				if idx >= len(files) {
					return
				}
				f := files[idx]
				candidate, err := handle(ctx, f)
				outcomes[idx] = Outcome{FileName: f.Name, Candidate: candidate, Err: err}
			}
		}()
	}
	wg.Wait()

	return outcomes, limit
}
