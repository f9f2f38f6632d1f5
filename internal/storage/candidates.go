package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// ErrUniqueViolation is returned by InsertCandidate when the record lost a
// race to a concurrent writer: the database rejected it on one of the
// unique-or-null constraints (email, phone, resume_url). Callers detect it
// with errors.Is and re-query for the winner.
var ErrUniqueViolation = errors.New("candidate violates a uniqueness constraint")

// InsertCandidate persists a new candidate record. The record is written
// exactly as given; all normalization happens before this call.
func (db *DB) InsertCandidate(ctx context.Context, c *Candidate) error {
	query := `INSERT INTO candidates (id, name, email, phone, skills, resume_url, status, bookmarked, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := db.connection.ExecContext(ctx, query,
		c.ID,
		nullString(c.Name),
		nullString(c.Email),
		nullString(c.Phone),
		strings.Join(c.Skills, ","),
		nullString(c.ResumeURL),
		c.Status,
		c.Bookmarked,
		c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert candidate: %w", ErrUniqueViolation)
		}
		return fmt.Errorf("insert candidate: %w", err)
	}
	return nil
}

// FindCandidateByEmail returns the candidate with the given normalized email,
// or nil when none exists.
func (db *DB) FindCandidateByEmail(ctx context.Context, email string) (*Candidate, error) {
	return db.findCandidate(ctx, "email", email)
}

// FindCandidateByPhone returns the candidate with the given normalized phone,
// or nil when none exists.
func (db *DB) FindCandidateByPhone(ctx context.Context, phone string) (*Candidate, error) {
	return db.findCandidate(ctx, "phone", phone)
}

// FindCandidateByResumeURL returns the candidate whose resume lives at the
// given content address, or nil when none exists.
func (db *DB) FindCandidateByResumeURL(ctx context.Context, resumeURL string) (*Candidate, error) {
	return db.findCandidate(ctx, "resume_url", resumeURL)
}

func (db *DB) findCandidate(ctx context.Context, column, value string) (*Candidate, error) {
	query := fmt.Sprintf(`SELECT id, name, email, phone, skills, resume_url, status, bookmarked, created_at
	                      FROM candidates WHERE %s = $1`, column)
	row := db.connection.QueryRowContext(ctx, query, value)
	c, err := scanCandidate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find candidate by %s: %w", column, err)
	}
	return c, nil
}

// ListCandidates returns the most recently created candidates.
func (db *DB) ListCandidates(ctx context.Context, limit int) ([]*Candidate, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, name, email, phone, skills, resume_url, status, bookmarked, created_at
	          FROM candidates ORDER BY created_at DESC LIMIT $1`
	rows, err := db.connection.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	var res []*Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("list candidates: %w", err)
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCandidate(row rowScanner) (*Candidate, error) {
	c := &Candidate{}
	var name, email, phone, resumeURL sql.NullString
	var skills string
	if err := row.Scan(&c.ID, &name, &email, &phone, &skills, &resumeURL, &c.Status, &c.Bookmarked, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Name = name.String
	c.Email = email.String
	c.Phone = phone.String
	c.ResumeURL = resumeURL.String
	if skills != "" {
		c.Skills = splitAndTrim(skills)
	}
	return c, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// Empty strings persist as NULL so the unique-or-null indexes ignore them.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// helper to split the comma-separated skills column
func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
