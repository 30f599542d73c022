// Package server exposes the forge pipeline over a JSON HTTP API.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"
)

// Server routes generation requests to the forge service.
type Server struct {
	forge Forge
	mux   *http.ServeMux
}

// New builds the HTTP server around the forge service.
func New(forge Forge) *Server {
	s := &Server{forge: forge}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate_skeleton", s.handleGenerateSkeleton)
	mux.HandleFunc("/api/generate_sample_skeleton", s.handleSampleSkeleton)
	mux.HandleFunc("/api/generate_remaining", s.handleGenerateRemaining)
	mux.HandleFunc("/api/hints", s.handleHints)
	mux.HandleFunc("/healthz", s.handleHealthz)
	s.mux = mux
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves until the context is canceled, then shuts the
// server down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
