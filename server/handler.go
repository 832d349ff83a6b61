package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/strager/tinyc"
	"github.com/strager/tinyc/history"
	"github.com/strager/tinyc/report"
)

// AnalyzeRequest is the body of POST /api/analyze.
type AnalyzeRequest struct {
	Source string `json:"source"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

var errSourceTooLarge = errors.New("source too large")

// analyze runs the analyzer and records the run when history is enabled.
func (s *Server) analyze(ctx context.Context, source string) (*report.Report, error) {
	if int64(len(source)) > s.config.MaxSourceBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", errSourceTooLarge, len(source), s.config.MaxSourceBytes)
	}

	res := tinyc.AnalyzeWithOptions(source, tinyc.Options{Logger: s.logger})
	if s.store != nil {
		if err := s.store.Record(ctx, history.NewRun(source, res)); err != nil {
			// Recording is best effort; the caller still gets the report.
			s.logger.Warn("failed to record run", "error", err, "request_id", RequestID(ctx))
		}
	}
	return report.FromResult(res), nil
}

// handleAnalyze serves POST /api/analyze
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	// Leave room for JSON quoting and escapes around the source text.
	r.Body = http.MaxBytesReader(w, r.Body, 2*s.config.MaxSourceBytes+1024)

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, errSourceTooLarge.Error())
			return
		}
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	rep, err := s.analyze(r.Context(), req.Source)
	if err != nil {
		s.writeError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, rep)
}

// handleHistory serves GET /api/history?limit=N
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.store == nil {
		s.writeError(w, http.StatusNotFound, "history is disabled")
		return
	}

	limit := history.DefaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	runs, err := s.store.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Error("failed to list runs", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}
	s.writeJSON(w, http.StatusOK, runs)
}

// handleHistoryRun serves GET /api/history/{id}
func (s *Server) handleHistoryRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusNotFound, "history is disabled")
		return
	}

	run, err := s.store.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, history.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		s.logger.Error("failed to get run", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to get run")
		return
	}
	s.writeJSON(w, http.StatusOK, run)
}

// handleHealth serves GET /api/health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"history": s.store != nil,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err, "status", status)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, ErrorResponse{Error: message})
}
