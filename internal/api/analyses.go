package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/Lohith2005/AICodeAnalyzer/internal/analysis"
	"github.com/Lohith2005/AICodeAnalyzer/internal/llm"
)

const maxListLimit = 50

// AnalyzeRequest is the request body for POST /api/analyze
type AnalyzeRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

// TestConnectionResponse is the response body for POST /api/test-connection
type TestConnectionResponse struct {
	Message   string `json:"message"`
	Connected bool   `json:"connected"`
}

// analyze handles POST /api/analyze
func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.svc.Analyze(r.Context(), req.Code, req.Language)
	if err != nil {
		s.respondAnalyzeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// respondAnalyzeError maps pipeline errors onto status codes. Clients
// should key on the status, not the message text.
func (s *Server) respondAnalyzeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, analysis.ErrCooldown):
		respondError(w, http.StatusTooManyRequests, "please wait a few seconds between analyses")
	case errors.Is(err, analysis.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, analysis.ErrNoCredential):
		respondError(w, http.StatusBadRequest, "no API key configured for the analysis provider")
	case errors.Is(err, llm.ErrQuotaExceeded):
		respondError(w, http.StatusTooManyRequests, "provider quota exceeded, try again later")
	case errors.Is(err, llm.ErrUnauthorized):
		respondError(w, http.StatusBadRequest, "provider rejected the configured API key")
	default:
		log.Error().Err(err).Msg("analysis failed")
		respondError(w, http.StatusInternalServerError, "analysis failed")
	}
}

// listAnalyses handles GET /api/analyses
func (s *Server) listAnalyses(w http.ResponseWriter, r *http.Request) {
	limit := analysis.DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	records, err := s.svc.ListRecent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list analyses")
		respondError(w, http.StatusInternalServerError, "failed to list analyses")
		return
	}

	if records == nil {
		records = []*analysis.Record{}
	}
	respondJSON(w, http.StatusOK, records)
}

// testConnection handles POST /api/test-connection
func (s *Server) testConnection(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Ping(r.Context()); err != nil {
		log.Warn().Err(err).Msg("provider connection test failed")
		respondJSON(w, http.StatusBadRequest, TestConnectionResponse{
			Message:   "could not reach the analysis provider",
			Connected: false,
		})
		return
	}

	respondJSON(w, http.StatusOK, TestConnectionResponse{
		Message:   "provider connection ok",
		Connected: true,
	})
}
