package api

import (
	"net/http"
	"strconv"

	"talent-intake/internal/storage"
)

// ListCandidatesHandler lists recently created candidates
// @Summary List candidates
// @Description Most recently ingested candidates, newest first
// @Tags candidates
// @Produce json
// @Param limit query int false "Max results" default(50)
// @Success 200 {array} storage.Candidate
// @Failure 500 {object} errorResponse
// @Router /candidates [get]
func (a *API) ListCandidatesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	candidates, err := a.db.ListCandidates(r.Context(), limit)
	if err != nil {
		a.log.Error().Err(err).Msg("list candidates failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "database error"})
		return
	}
	if candidates == nil {
		candidates = []*storage.Candidate{}
	}
	writeJSON(w, http.StatusOK, candidates)
}
