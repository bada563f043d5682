// Package server exposes the division engine over HTTP.
//
//	POST /api/divide       run a division; body is an input document
//	GET  /api/algorithms   list the catalogue and what this server can run
//	GET  /healthz          liveness
//	GET  /metrics          Prometheus metrics
//
// Errors are answered as {"code": ..., "message": ...}.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/katalvlaran/fairdiv/divide"
	"github.com/katalvlaran/fairdiv/envyfree"
	"github.com/katalvlaran/fairdiv/internal/input"
	"github.com/katalvlaran/fairdiv/oracle"
	"github.com/katalvlaran/fairdiv/trace"
	"github.com/katalvlaran/fairdiv/valuation"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// Server serves the HTTP API.
type Server struct {
	addr     string
	runner   *divide.Runner
	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *metrics
	handler  http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRegistry sets the registry metrics are registered on and served from.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// New builds a server listening on addr once started.
func New(addr string, runner *divide.Runner, opts ...Option) *Server {
	s := &Server{
		addr:     addr,
		runner:   runner,
		logger:   zap.NewNop(),
		registry: prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.metrics = newMetrics(s.registry)

	mux := http.NewServeMux()
	mux.Handle("POST /api/divide", s.metrics.instrument("divide", http.HandlerFunc(s.handleDivide)))
	mux.Handle("GET /api/algorithms", s.metrics.instrument("algorithms", http.HandlerFunc(s.handleAlgorithms)))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	s.handler = mux
	return s
}

// Handler returns the routed handler, for embedding and tests.
func (s *Server) Handler() http.Handler { return s.handler }

// Start serves until ctx is canceled or the listener fails. On cancellation
// in-flight requests get a short grace period and ctx.Err() is returned.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	s.logger.Info("serving", zap.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		<-errCh
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// divideResponse is an Outcome plus its narration.
type divideResponse struct {
	divide.Outcome
	Narration []string `json:"narration"`
}

func (s *Server) handleDivide(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, err)
		return
	}
	doc, err := input.Decode(bytes.NewReader(body))
	if err != nil {
		s.writeError(w, err)
		return
	}
	algo := doc.Algorithm
	if algo == "" {
		if algo, err = divide.Default(len(doc.Preferences)); err != nil {
			s.writeError(w, err)
			return
		}
	}

	out, err := s.runner.Run(r.Context(), algo, doc.Preferences, doc.CakeSize)
	if err != nil {
		s.metrics.divisions.WithLabelValues(string(algo), "error").Inc()
		s.writeError(w, err)
		return
	}
	s.metrics.divisions.WithLabelValues(string(algo), "ok").Inc()
	writeJSON(w, http.StatusOK, divideResponse{
		Outcome:   out,
		Narration: trace.NarrateAll(out.Steps, out.CakeSize),
	})
}

type algorithmView struct {
	divide.Info
	Available bool `json:"available"`
}

func (s *Server) handleAlgorithms(w http.ResponseWriter, _ *http.Request) {
	catalog := divide.Catalog()
	views := make([]algorithmView, len(catalog))
	for i, info := range catalog {
		views[i] = algorithmView{Info: info, Available: s.runner.Available(info)}
	}
	writeJSON(w, http.StatusOK, views)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps err onto a status code and a stable error code.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, code := http.StatusInternalServerError, "internal"
	var apiErr *oracle.APIError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		status, code = http.StatusRequestEntityTooLarge, "too_large"
	case errors.Is(err, divide.ErrUnknownAlgorithm):
		status, code = http.StatusBadRequest, "unknown_algorithm"
	case errors.Is(err, envyfree.ErrInvalidAgentCount):
		status, code = http.StatusBadRequest, "invalid_agent_count"
	case errors.Is(err, valuation.ErrMalformedProfile):
		status, code = http.StatusBadRequest, "malformed_profile"
	case errors.Is(err, input.ErrEmpty):
		status, code = http.StatusBadRequest, "empty"
	case errors.Is(err, input.ErrDecode):
		status, code = http.StatusBadRequest, "bad_request"
	case errors.Is(err, divide.ErrNoSolver):
		status, code = http.StatusNotImplemented, "no_solver"
	case errors.As(err, &apiErr), errors.Is(err, oracle.ErrBadResponse):
		status, code = http.StatusBadGateway, "solver"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status, code = http.StatusServiceUnavailable, "canceled"
	}
	if status >= 500 {
		s.logger.Error("request failed", zap.Int("status", status), zap.Error(err))
	} else {
		s.logger.Debug("request rejected", zap.Int("status", status), zap.Error(err))
	}
	writeJSON(w, status, errorBody{Code: code, Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
