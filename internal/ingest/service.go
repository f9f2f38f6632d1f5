// Package ingest implements the candidate ingestion pipeline: extract and
// normalize identity facts from a resume, hold an in-process exclusion lock
// over them, and persist the candidate with its content-addressed resume,
// rejecting duplicates whether they are already stored or merely in flight.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"talent-intake/internal/extract"
	"talent-intake/internal/identity"
	"talent-intake/internal/storage"
)

// MaxFileSize is the largest resume accepted into the pipeline (10MB).
const MaxFileSize = 10 << 20

// File is one uploaded resume.
type File struct {
	Name string
	Data []byte
}

// Store is the persistence surface the pipeline needs. Finders return
// (nil, nil) when no record matches.
type Store interface {
	InsertCandidate(ctx context.Context, c *storage.Candidate) error
	FindCandidateByEmail(ctx context.Context, email string) (*storage.Candidate, error)
	FindCandidateByPhone(ctx context.Context, phone string) (*storage.Candidate, error)
	FindCandidateByResumeURL(ctx context.Context, resumeURL string) (*storage.Candidate, error)
}

// BlobStore holds resume bytes under their content address. Put must treat an
// already-occupied address as success: by content addressing the existing
// object is byte-identical to what would have been written.
type BlobStore interface {
	Put(ctx context.Context, address string, data []byte) error
	PublicURL(address string) string
}

// Extractor produces a best-effort contact guess from resume bytes.
type Extractor interface {
	Extract(data []byte) (extract.Contact, error)
}

type Service struct {
	store     Store
	blobs     BlobStore
	extractor Extractor
	lock      *Lock
	log       zerolog.Logger
}

func NewService(store Store, blobs BlobStore, extractor Extractor, log zerolog.Logger) *Service {
	return &Service{
		store:     store,
		blobs:     blobs,
		extractor: extractor,
		lock:      NewLock(),
		log:       log,
	}
}

// ValidateFile rejects a file before it enters the pipeline: PDF only,
// non-empty, capped at MaxFileSize.
func ValidateFile(f File) error {
	if ext := strings.ToLower(filepath.Ext(f.Name)); ext != ".pdf" {
		return &ValidationError{Reason: fmt.Sprintf("invalid file type %q (supported: PDF)", ext)}
	}
	if len(f.Data) == 0 {
		return &ValidationError{Reason: "empty file"}
	}
	if len(f.Data) > MaxFileSize {
		return &ValidationError{Reason: "file too large (max 10MB)"}
	}
	return nil
}

// IngestOne runs the full pipeline for a single resume and returns the
// created candidate. Failures are one of: ValidationError,
// DuplicateInFlightError, DuplicateCandidateError, or a wrapped backend
// error. Nothing is retried here; one call is one attempt.
func (s *Service) IngestOne(ctx context.Context, f File) (*storage.Candidate, error) {
	if err := ValidateFile(f); err != nil {
		return nil, err
	}

	contact, err := s.extractor.Extract(f.Data)
	if err != nil {
		return nil, fmt.Errorf("extract resume %q: %w", f.Name, err)
	}

	email := identity.NormalizeEmail(contact.Email)
	phone := identity.NormalizePhone(contact.Phone)
	name := identity.NormalizeName(contact.Name)
	skills := identity.NormalizeSkills(contact.Skills)

	digest := HashBytes(f.Data)
	resumeURL := s.blobs.PublicURL(digest)

	// The hash key is always present, so even a resume with no readable
	// email or phone still has one uniqueness dimension.
	keys := identity.DedupKeys(email, phone, digest)

	release, err := s.lock.Acquire(keys)
	if err != nil {
		s.log.Info().Str("file", f.Name).Err(err).Msg("duplicate in flight")
		return nil, err
	}
	defer release()

	// Speculative check: cheap short-circuit before any write. The insert
	// below re-checks authoritatively via the unique constraints.
	if existing, field, err := s.findExisting(ctx, email, phone, resumeURL); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, &DuplicateCandidateError{ID: existing.ID, Field: field}
	}

	if err := s.blobs.Put(ctx, digest, f.Data); err != nil {
		return nil, fmt.Errorf("store resume %q: %w", f.Name, err)
	}

	candidate := &storage.Candidate{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Skills:    skills,
		ResumeURL: resumeURL,
		Status:    storage.StatusNew,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.InsertCandidate(ctx, candidate); err != nil {
		if errors.Is(err, storage.ErrUniqueViolation) {
			// Lost the race to a writer that committed between our
			// speculative check and the insert; report the winner.
			if winner, field, ferr := s.findExisting(ctx, email, phone, resumeURL); ferr == nil && winner != nil {
				return nil, &DuplicateCandidateError{ID: winner.ID, Field: field}
			}
		}
		return nil, err
	}

	s.log.Info().
		Str("candidate_id", candidate.ID).
		Str("file", f.Name).
		Str("hash", digest).
		Msg("candidate created")
	return candidate, nil
}

// findExisting checks email first, then phone, then resume URL, and returns
// the first match with the dimension it matched on. All three missing is not
// an error; it means ingestion can proceed.
func (s *Service) findExisting(ctx context.Context, email, phone, resumeURL string) (*storage.Candidate, string, error) {
	if email != "" {
		c, err := s.store.FindCandidateByEmail(ctx, email)
		if err != nil {
			return nil, "", err
		}
		if c != nil {
			return c, "email", nil
		}
	}
	if phone != "" {
		c, err := s.store.FindCandidateByPhone(ctx, phone)
		if err != nil {
			return nil, "", err
		}
		if c != nil {
			return c, "phone", nil
		}
	}
	if resumeURL != "" {
		c, err := s.store.FindCandidateByResumeURL(ctx, resumeURL)
		if err != nil {
			return nil, "", err
		}
		if c != nil {
			return c, "resume", nil
		}
	}
	return nil, "", nil
}
