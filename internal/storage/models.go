package storage

import "time"

// Candidate is the persisted record for one ingested person.
// Email, phone and resume URL are nullable and each carries a unique-or-null
// constraint in the database; at most one candidate may exist per non-empty
// value of any of them.
type Candidate struct {
	ID         string    `json:"id"`
	Name       string    `json:"name,omitempty"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Skills     []string  `json:"skills"`
	ResumeURL  string    `json:"resume_url,omitempty"`
	Status     string    `json:"status"`
	Bookmarked bool      `json:"bookmarked"`
	CreatedAt  time.Time `json:"created_at"`
}

// Candidate lifecycle statuses. Ingestion only ever writes StatusNew; the
// rest belong to the review flow.
const (
	StatusNew         = "new"
	StatusShortlisted = "shortlisted"
	StatusRejected    = "rejected"
)
