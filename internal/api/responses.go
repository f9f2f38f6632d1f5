package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"talent-intake/internal/ingest"
	"talent-intake/internal/storage"
)

// FileResult is one slot of a bulk upload response, in input order.
type FileResult struct {
	Filename  string             `json:"filename"`
	Success   bool               `json:"success"`
	Candidate *storage.Candidate `json:"candidate,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// BulkUploadResponse reports every file of a batch plus the aggregate tally.
type BulkUploadResponse struct {
	Status        string       `json:"status"` // fully | partial | none
	UploadedCount int          `json:"uploaded_count"`
	FailedCount   int          `json:"failed_count"`
	Concurrency   int          `json:"concurrency"`
	Results       []FileResult `json:"results"`
}

// DuplicateResponse names the identity dimension that collided and, when the
// winner is already persisted, its id.
type DuplicateResponse struct {
	Error      string `json:"error"`
	Field      string `json:"field"`
	ExistingID string `json:"existing_id,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeIngestError maps a pipeline error onto the HTTP surface: duplicates
// are conflicts, validation failures are bad requests, the rest are opaque
// server errors.
func writeIngestError(w http.ResponseWriter, err error) {
	var dup *ingest.DuplicateCandidateError
	if errors.As(err, &dup) {
		writeJSON(w, http.StatusConflict, DuplicateResponse{
			Error:      dup.Error(),
			Field:      dup.Field,
			ExistingID: dup.ID,
		})
		return
	}
	var inFlight *ingest.DuplicateInFlightError
	if errors.As(err, &inFlight) {
		writeJSON(w, http.StatusConflict, DuplicateResponse{
			Error: inFlight.Error(),
			Field: inFlight.Field(),
		})
		return
	}
	var vErr *ingest.ValidationError
	if errors.As(err, &vErr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: vErr.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to process resume"})
}

// batchStatus derives the aggregate batch verdict from the per-file tally.
func batchStatus(uploaded, failed int) string {
	switch {
	case failed == 0:
		return "fully"
	case uploaded == 0:
		return "none"
	default:
		return "partial"
	}
}
