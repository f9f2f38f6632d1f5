package ingest

import "sync"

// Lock serializes ingestion attempts that share a dedup key. It is a
// process-local fast-fail layer: the database unique constraints remain the
// durable authority, the lock just stops two in-flight attempts for the same
// identity from both reaching the write. Running more than one server
// instance reintroduces the race across instances; that gap is accepted and
// closed by the constraints.
type Lock struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLock() *Lock {
	return &Lock{held: make(map[string]struct{})}
}

// Acquire atomically marks every key as held and returns a release func.
// If any key is already held by another attempt it marks nothing and returns
// a DuplicateInFlightError naming the colliding key. It never blocks.
//
// The release func is idempotent and must be called on every exit path,
// success or failure, or the keys are stranded for the process lifetime.
func (l *Lock) Acquire(keys []string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, k := range keys {
		if _, ok := l.held[k]; ok {
			return nil, &DuplicateInFlightError{Key: k}
		}
	}
	for _, k := range keys {
		l.held[k] = struct{}{}
	}

	var once sync.Once
	return func() {
		once.Do(func() { l.release(keys) })
	}, nil
}

func (l *Lock) release(keys []string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, k := range keys {
		delete(l.held, k)
	}
}
