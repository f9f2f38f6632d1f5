package ingest

import (
	"errors"
	"fmt"

	"talent-intake/internal/identity"
)

// DuplicateInFlightError means another concurrent attempt currently holds one
// of this attempt's dedup keys. The second submission of the same person is a
// duplicate to reject, not work to queue, so the lock fails fast instead of
// waiting.
type DuplicateInFlightError struct {
	Key string // the colliding dedup key, e.g. "email:jane@example.com"
}

func (e *DuplicateInFlightError) Error() string {
	return fmt.Sprintf("a resume with the same %s is already being processed", identity.KeyDimension(e.Key))
}

// Field reports the identity dimension that collided: email, phone or hash.
func (e *DuplicateInFlightError) Field() string {
	return identity.KeyDimension(e.Key)
}

// DuplicateCandidateError means a persisted candidate already matches one of
// this attempt's identity facts. ID is the existing record's identifier and
// Field the dimension that matched (email, phone or resume).
type DuplicateCandidateError struct {
	ID    string
	Field string
}

func (e *DuplicateCandidateError) Error() string {
	return fmt.Sprintf("candidate already exists with the same %s (id %s)", e.Field, e.ID)
}

// ValidationError rejects a file before it enters the pipeline.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// IsDuplicate reports whether err belongs to the duplicate-candidate family:
// either a record already persisted or the same identity in flight right now.
func IsDuplicate(err error) bool {
	var inFlight *DuplicateInFlightError
	var dup *DuplicateCandidateError
	return errors.As(err, &inFlight) || errors.As(err, &dup)
}
