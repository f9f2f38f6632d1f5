package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talent-intake/internal/storage"
)

func batchFiles(n int) []File {
	files := make([]File, n)
	for i := range files {
		files[i] = File{Name: fmt.Sprintf("resume-%d.pdf", i), Data: []byte{byte(i)}}
	}
	return files
}

func TestProcessAll_ShapePreserved(t *testing.T) {
	files := batchFiles(17)

	for _, limit := range []int{1, 2, 8, 17, 100} {
		t.Run(fmt.Sprintf("limit=%d", limit), func(t *testing.T) {
			outcomes, used := ProcessAll(context.Background(), files, limit, func(_ context.Context, f File) (*storage.Candidate, error) {
				return &storage.Candidate{Name: f.Name}, nil
			})

			require.Len(t, outcomes, len(files))
			assert.LessOrEqual(t, used, len(files))
			assert.GreaterOrEqual(t, used, 1)
			for i, o := range outcomes {
				// Positional mapping: slot i always holds file i's outcome.
				assert.Equal(t, files[i].Name, o.FileName)
				require.NotNil(t, o.Candidate)
				assert.Equal(t, files[i].Name, o.Candidate.Name)
			}
		})
	}
}

func TestProcessAll_LimitClamped(t *testing.T) {
	files := batchFiles(3)

	_, used := ProcessAll(context.Background(), files, 0, func(_ context.Context, _ File) (*storage.Candidate, error) {
		return nil, nil
	})
	assert.Equal(t, 1, used)

	_, used = ProcessAll(context.Background(), files, 50, func(_ context.Context, _ File) (*storage.Candidate, error) {
		return nil, nil
	})
	assert.Equal(t, 3, used)
}

func TestProcessAll_Empty(t *testing.T) {
	outcomes, used := ProcessAll(context.Background(), nil, 4, func(_ context.Context, _ File) (*storage.Candidate, error) {
		t.Fatal("handler must not run for an empty batch")
		return nil, nil
	})
	assert.Empty(t, outcomes)
	assert.Equal(t, 0, used)
}

func TestProcessAll_FailuresDoNotAbortSiblings(t *testing.T) {
	files := batchFiles(5)
	failOn := map[int]bool{1: true, 3: true}

	outcomes, _ := ProcessAll(context.Background(), files, 2, func(_ context.Context, f File) (*storage.Candidate, error) {
		if failOn[int(f.Data[0])] {
			return nil, errors.New("boom")
		}
		return &storage.Candidate{Name: f.Name}, nil
	})

	require.Len(t, outcomes, 5)
	uploaded, failed := 0, 0
	for i, o := range outcomes {
		if failOn[i] {
			assert.Error(t, o.Err)
			assert.Nil(t, o.Candidate)
			failed++
		} else {
			assert.NoError(t, o.Err)
			assert.NotNil(t, o.Candidate)
			uploaded++
		}
	}
	assert.Equal(t, 3, uploaded)
	assert.Equal(t, 2, failed)
}

func TestProcessAll_BoundsConcurrency(t *testing.T) {
	files := batchFiles(32)
	const limit = 4

	var active, peak atomic.Int64
	var mu sync.Mutex

	ProcessAll(context.Background(), files, limit, func(_ context.Context, _ File) (*storage.Candidate, error) {
		n := active.Add(1)
		mu.Lock()
		if n > peak.Load() {
			peak.Store(n)
		}
		mu.Unlock()
		defer active.Add(-1)
		return nil, nil
	})

	assert.LessOrEqual(t, peak.Load(), int64(limit))
}

func TestProcessAll_EveryFileHandledExactlyOnce(t *testing.T) {
	files := batchFiles(64)
	var calls [64]atomic.Int64

	ProcessAll(context.Background(), files, 8, func(_ context.Context, f File) (*storage.Candidate, error) {
		calls[int(f.Data[0])].Add(1)
		return nil, nil
	})

	for i := range calls {
		assert.Equal(t, int64(1), calls[i].Load(), "file %d", i)
	}
}
