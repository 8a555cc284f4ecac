// Package server exposes the JIL parser over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/specialistvlad/jilgen/internal/ctxlog"
	"github.com/specialistvlad/jilgen/internal/jil"
)

// MaxBodyBytes caps the size of a JIL document accepted by POST /parse.
const MaxBodyBytes = 1 << 20

const shutdownTimeout = 5 * time.Second

var contentTypes = map[jil.Format]string{
	jil.FormatJSON: "application/json",
	jil.FormatYAML: "application/yaml",
}

// Server serves the parse API.
type Server struct {
	logger *slog.Logger
	router chi.Router
}

// New builds a Server and its routes.
func New(logger *slog.Logger) *Server {
	s := &Server{logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.handleHealth)
	r.Post("/parse", s.handleParse)

	s.router = r
	return s
}

// Handler returns the server's root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctxlog.WithLogger(context.Background(), s.logger) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Parse server starting.", "address", ln.Addr().String())
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("parse server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down parse server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("parse server shutdown failed: %w", err)
	}
	s.logger.Debug("Parse server shut down gracefully.")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	format := jil.FormatJSON
	if raw := r.URL.Query().Get("format"); raw != "" {
		f, err := jil.ParseFormat(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		format = f
	}

	res, err := jil.ParseReader(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "cannot read body", http.StatusBadRequest)
		return
	}

	body, err := jil.EncodeString(res, format)
	if err != nil {
		s.logger.Error("Failed to encode parse result.", "error", err)
		http.Error(w, "failed to encode result", http.StatusInternalServerError)
		return
	}

	s.logger.Debug("Parsed JIL document.", "jobs", len(res.Jobs), "format", format)
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

// logRequests logs one line per request with its request ID.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("Request handled.",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}
