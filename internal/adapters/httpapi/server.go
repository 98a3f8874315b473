// Package httpapi exposes the ingestion pipeline over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pinionworks/pinion"
	"github.com/pinionworks/pinion/internal/filings"
)

// RunFunc drives one ingestion run for a raw CIK. Implementations wrap the
// ingestion machine; the server stays ignorant of its wiring.
type RunFunc func(ctx context.Context, rawCIK string) (filings.Ingestion, error)

// Server routes HTTP requests into the pipeline.
type Server struct {
	run    RunFunc
	store  filings.FactStore
	logger *slog.Logger
}

// NewHandler builds the HTTP routing for the pipeline. The registry backs
// the /metrics endpoint; pass the registry whose collectors the machine's
// hooks feed.
func NewHandler(run RunFunc, store filings.FactStore, reg *prometheus.Registry, logger *slog.Logger) http.Handler {
	s := &Server{run: run, store: store, logger: logger}

	r := chi.NewRouter()
	r.Post("/v1/filings/{cik}", s.handleIngest)
	r.Get("/v1/filings/{cik}", s.handleGet)
	r.Get("/v1/filings", s.handleList)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return r
}

type ingestResponse struct {
	RecordID string            `json:"record_id"`
	CIK      string            `json:"cik"`
	Facts    map[string]string `json:"facts"`
}

type errorResponse struct {
	Error string `json:"error"`
	State string `json:"state,omitempty"`
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	rawCIK := chi.URLParam(r, "cik")

	ing, err := s.run(r.Context(), rawCIK)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "ingestion failed", "cik", rawCIK, "err", err)
		s.writeRunError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, ingestResponse{
		RecordID: ing.RecordID,
		CIK:      ing.CIK,
		Facts:    ing.Facts,
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	cik, err := filings.NormalizeCIK(chi.URLParam(r, "cik"))
	if err != nil {
		s.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}

	rec, err := s.store.Load(r.Context(), cik)
	if err != nil {
		if errors.Is(err, filings.ErrRecordNotFound) {
			s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "no record for cik " + cik})
			return
		}
		s.logger.ErrorContext(r.Context(), "load failed", "cik", cik, "err", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "storage failure"})
		return
	}

	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ciks, err := s.store.List(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "list failed", "err", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "storage failure"})
		return
	}

	s.writeJSON(w, http.StatusOK, map[string][]string{"ciks": ciks})
}

// writeRunError maps the framework's error taxonomy onto status codes: a
// validation failure is the caller's fault, everything else is an upstream
// or pipeline fault.
func (s *Server) writeRunError(w http.ResponseWriter, err error) {
	// Cancellation wins over the taxonomy match: a run cut short mid-step
	// still wraps ctx's error in a StateError (or NestingError within one).
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		s.writeJSON(w, http.StatusGatewayTimeout, errorResponse{Error: err.Error()})
		return
	}

	var stateErr *pinion.StateError
	if errors.As(err, &stateErr) {
		status := http.StatusBadGateway
		if stateErr.State == filings.StateValidateCIK {
			status = http.StatusUnprocessableEntity
		}
		s.writeJSON(w, status, errorResponse{Error: err.Error(), State: stateErr.State})
		return
	}

	s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "err", err)
	}
}
