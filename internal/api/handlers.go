// Package api exposes the analyzer over HTTP. The service is stateless:
// every request carries the full document, and nothing survives between
// calls.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/kunnath/pdf-financial-analyzer/internal/domain/analyzer"
	"github.com/kunnath/pdf-financial-analyzer/internal/domain/currency"
	"github.com/kunnath/pdf-financial-analyzer/internal/domain/document"
)

// AnalyzeRequest is the body of POST /api/v1/analyze.
type AnalyzeRequest struct {
	Document        document.Document `json:"document"`
	SourceCurrency  string            `json:"source_currency"`
	DisplayCurrency string            `json:"display_currency"`
}

// QueryRequest is the body of POST /api/v1/query. The document rides along
// because no analysis is stored server-side.
type QueryRequest struct {
	AnalyzeRequest
	Query string `json:"query"`
}

// QueryResponse pairs the answer with the analysis it was computed from.
type QueryResponse struct {
	Answer   string             `json:"answer"`
	Analysis *analyzer.Analysis `json:"analysis"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler serves the analyzer endpoints.
type Handler struct {
	service *analyzer.Service
	logger  *slog.Logger
}

// NewHandler creates the HTTP handler around an analyzer service.
func NewHandler(service *analyzer.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Analyze runs the full pipeline over the posted document and returns the
// analysis as JSON.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	analysis, err := h.service.Analyze(req.Document, req.SourceCurrency, req.DisplayCurrency)
	if err != nil {
		h.writeError(w, statusFor(err), err)
		return
	}

	h.writeJSON(w, http.StatusOK, analysis)
}

// Query analyzes the posted document and answers the question against it.
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	analysis, err := h.service.Analyze(req.Document, req.SourceCurrency, req.DisplayCurrency)
	if err != nil {
		h.writeError(w, statusFor(err), err)
		return
	}

	answer, err := h.service.Answer(req.Query, analysis)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}

	h.writeJSON(w, http.StatusOK, QueryResponse{Answer: answer, Analysis: analysis})
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func statusFor(err error) int {
	if errors.Is(err, currency.ErrUnknownCurrency) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}
