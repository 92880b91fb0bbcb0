// Package server implements the svgraster HTTP API.
//
// The API exposes the rendering pipeline over HTTP so that multiple clients
// can share one renderer and artifact cache. Requests use the same JSON
// options accepted by the pipeline, and responses carry the encoded PNG
// artifact (or the tensor representation when one is requested).
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fromsvg/svgraster/pkg/buildinfo"
	"github.com/fromsvg/svgraster/pkg/errors"
	"github.com/fromsvg/svgraster/pkg/pipeline"
)

// maxRequestBytes caps the request body size. SVG sources are text and
// rarely exceed a few hundred kilobytes.
const maxRequestBytes = 10 << 20

// Server serves the rendering API.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server around the given runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Post("/render", s.handleRender)
	s.router = r

	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("server listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// tensorResponse is the JSON body returned when a tensor output is requested.
type tensorResponse struct {
	RequestID  string    `json:"request_id"`
	SourceHash string    `json:"source_hash"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Shape      [4]int    `json:"shape"`
	Data       []float32 `json:"data"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	body := http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(body).Decode(&opts); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid request body: %v", err))
		return
	}
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.logger.Warn("render failed", "code", errors.GetCode(err), "error", err)
		writeError(w, err)
		return
	}

	w.Header().Set("X-Request-ID", result.RequestID)
	w.Header().Set("X-Source-Hash", result.SourceHash)
	if result.CacheInfo.ArtifactHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}

	if opts.Tensor && result.Tensor != nil {
		writeJSON(w, http.StatusOK, tensorResponse{
			RequestID:  result.RequestID,
			SourceHash: result.SourceHash,
			Width:      result.Stats.Width,
			Height:     result.Stats.Height,
			Shape:      result.Tensor.Shape,
			Data:       result.Tensor.Data,
		})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.PNG)
}

// =============================================================================
// Response Helpers
// =============================================================================

// errorBody is the JSON envelope for error responses.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// statusForCode maps pipeline error codes to HTTP status codes.
func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeEmptyInput,
		errors.ErrCodeInvalidSizing,
		errors.ErrCodeInvalidColorFormat,
		errors.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case errors.ErrCodeRenderFailure:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	var body errorBody
	body.Error.Code = string(errors.GetCode(err))
	body.Error.Message = errors.UserMessage(err)
	writeJSON(w, statusForCode(errors.GetCode(err)), body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
