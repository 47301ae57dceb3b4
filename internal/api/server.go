package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"zenith/internal/config"
	apperrors "zenith/internal/errors"
	"zenith/internal/logging"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

const shutdownTimeout = 10 * time.Second

// Server serves the planning API over HTTP.
type Server struct {
	api    API
	cfg    config.ServerConfig
	logger *slog.Logger
	mux    *http.ServeMux

	newID func() string
}

// NewServer wires the routes. A nil logger discards logs.
func NewServer(api API, cfg config.ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Server{
		api:    api,
		cfg:    cfg,
		logger: logger.With("component", "http"),
		mux:    http.NewServeMux(),
		newID:  uuid.NewString,
	}

	s.mux.HandleFunc("POST /tasks/generate_durations", s.handleGenerateDurations)
	s.mux.HandleFunc("GET /runs", s.handleListRuns)
	s.mux.HandleFunc("GET /runs/{id}", s.handleGetRun)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	return s
}

// Handler returns the routes wrapped in request id and logging middleware.
func (s *Server) Handler() http.Handler {
	return s.withRequestContext(s.mux)
}

// ListenAndServe serves on cfg.Addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	server := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", listener.Addr().String())
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return <-errCh
}

func (s *Server) handleGenerateDurations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout)
	defer cancel()

	records, err := s.decodeTasks(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	logging.FromContext(ctx, s.logger).Debug("received tasks", "count", len(records))

	resp, err := s.api.GenerateDurations(ctx, records)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeError(w, r, apperrors.NewInvalidInputError("limit", raw, "must be a non-negative integer"))
			return
		}
		limit = n
	}

	runs, err := s.api.ListRuns(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, map[string]interface{}{"runs": runs})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.api.GetRun(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, run)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeTasks reads a JSON array of task records. A JSON null yields a nil
// slice, which planning rejects as a missing task list.
func (s *Server) decodeTasks(w http.ResponseWriter, r *http.Request) ([]TaskRecord, error) {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	dec := json.NewDecoder(body)

	var records []TaskRecord
	if err := dec.Decode(&records); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return nil, apperrors.NewInvalidInputError("body", tooLarge.Limit,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		case errors.Is(err, io.EOF):
			return nil, apperrors.NewInvalidInputError("body", nil, "request body is empty")
		default:
			return nil, apperrors.NewInvalidInputError("body", nil, "malformed JSON: "+err.Error())
		}
	}
	if dec.More() {
		return nil, apperrors.NewInvalidInputError("body", nil, "unexpected data after the task list")
	}
	return records, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context(), s.logger).Warn("failed to write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.FromContext(r.Context(), s.logger)
	if apperrors.ShouldLogError(err) {
		logger.Error("request failed", "error", err)
	} else {
		logger.Debug("request rejected", "error", err)
	}

	s.writeJSON(w, r, apperrors.HTTPStatus(err), ErrorResponse{
		Error: apperrors.GetUserMessage(err),
		Code:  apperrors.GetErrorCode(err),
	})
}

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

// withRequestContext tags every request with an id, echoes it in the
// response, and logs the outcome.
func (s *Server) withRequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = s.newID()
		}
		w.Header().Set(RequestIDHeader, id)

		logger := s.logger.With("request_id", id)
		r = r.WithContext(logging.NewContext(r.Context(), logger))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		started := time.Now()
		next.ServeHTTP(rec, r)

		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(started))
	})
}
