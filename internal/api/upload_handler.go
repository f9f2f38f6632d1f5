package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"talent-intake/internal/ingest"
	"talent-intake/internal/storage"
)

// maxRequestSize bounds the whole multipart request (a batch of resumes).
const maxRequestSize = 128 << 20

// UploadHandler ingests a single resume
// @Summary Upload one resume
// @Description Upload a candidate resume (PDF). Duplicate submissions of the same person or the same file are rejected with the existing candidate's id.
// @Tags candidates
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Resume (PDF)"
// @Success 201 {object} storage.Candidate
// @Failure 400 {object} errorResponse
// @Failure 409 {object} DuplicateResponse
// @Failure 500 {object} errorResponse
// @Router /candidates/upload [post]
func (a *API) UploadHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(maxRequestSize); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart request"})
		return
	}

	_, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "no file uploaded"})
		return
	}

	file, err := readUpload(header)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	candidate, err := a.svc.IngestOne(r.Context(), file)
	if err != nil {
		writeIngestError(w, err)
		return
	}

	a.notifyCreated(candidate)
	writeJSON(w, http.StatusCreated, candidate)
}

// BulkUploadHandler ingests many resumes in one request
// @Summary Upload a batch of resumes
// @Description Upload multiple resumes at once. Files are processed concurrently up to a cap; the response reports every file in input order and never aborts on a single failure.
// @Tags candidates
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Resumes (PDF), repeatable"
// @Param concurrency formData int false "Max files processed at once"
// @Success 200 {object} BulkUploadResponse
// @Failure 400 {object} errorResponse
// @Router /candidates/bulk-upload [post]
func (a *API) BulkUploadHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(maxRequestSize); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart request"})
		return
	}
	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "no files uploaded"})
		return
	}

	limit := a.maxConcurrency
	if raw := r.FormValue("concurrency"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n < limit {
			limit = n
		}
	}

	// Read everything up front so a slow disk read never holds a dedup key.
	files := make([]ingest.File, len(headers))
	for i, h := range headers {
		f, err := readUpload(h)
		if err != nil {
			// Keep the positional slot; the pipeline will reject it.
			files[i] = ingest.File{Name: h.Filename}
			continue
		}
		files[i] = f
	}

	outcomes, used := ingest.ProcessAll(r.Context(), files, limit, a.svc.IngestOne)

	results := make([]FileResult, len(outcomes))
	uploaded, failed := 0, 0
	for i, o := range outcomes {
		if o.Err != nil {
			failed++
			results[i] = FileResult{Filename: o.FileName, Success: false, Error: o.Err.Error()}
			continue
		}
		uploaded++
		results[i] = FileResult{Filename: o.FileName, Success: true, Candidate: o.Candidate}
		a.notifyCreated(o.Candidate)
	}

	a.log.Info().
		Int("files", len(outcomes)).
		Int("uploaded", uploaded).
		Int("failed", failed).
		Int("concurrency", used).
		Msg("bulk upload finished")

	writeJSON(w, http.StatusOK, BulkUploadResponse{
		Status:        batchStatus(uploaded, failed),
		UploadedCount: uploaded,
		FailedCount:   failed,
		Concurrency:   used,
		Results:       results,
	})
}

func readUpload(h *multipart.FileHeader) (ingest.File, error) {
	f, err := h.Open()
	if err != nil {
		return ingest.File{}, fmt.Errorf("open upload %q: %w", h.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return ingest.File{}, fmt.Errorf("read upload %q: %w", h.Filename, err)
	}
	return ingest.File{Name: h.Filename, Data: data}, nil
}

// notifyCreated fires the candidate email without blocking the response.
func (a *API) notifyCreated(c *storage.Candidate) {
	go func() {
		if err := a.notifier.CandidateCreated(context.Background(), c); err != nil {
			a.log.Warn().Err(err).Str("candidate_id", c.ID).Msg("candidate notification failed")
		}
	}()
}
