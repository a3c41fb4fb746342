// Package server provides the HTTP REST API for ArchiNews Creator.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/archinews-creator/internal/content"
	"github.com/jonathan/archinews-creator/internal/framing"
	"github.com/jonathan/archinews-creator/internal/instagram"
	"github.com/jonathan/archinews-creator/internal/llm"
	"github.com/jonathan/archinews-creator/internal/server/ratelimit"
	"github.com/jonathan/archinews-creator/internal/session"
	"github.com/jonathan/archinews-creator/internal/store"
)

// maxUploadBytes bounds uploaded images.
const maxUploadBytes = 20 << 20

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	logger      *slog.Logger
	projects    *store.ProjectStore
	styles      *store.StyleStore
	typography  *store.TypographyStore
	sessions    *session.Manager
	generator   *content.Generator
	captions    *instagram.CaptionGenerator
	hashtags    *instagram.HashtagGenerator
	rateLimiter *ratelimit.Limiter
	client      llm.Client
	sessionIdle time.Duration
}

// Config holds server configuration
type Config struct {
	Port          int
	DataDir       string
	Client        llm.Client // nil disables generation; those endpoints answer 502
	Parallel      bool
	FrameCacheTTL time.Duration
	SessionIdle   time.Duration     // sessions idle this long are dropped; 0 keeps them forever
	RateLimit     *ratelimit.Config // nil loads RATE_LIMIT_* from the environment
	Logger        *slog.Logger
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	rateConfig := cfg.RateLimit
	if rateConfig == nil {
		rateConfig = ratelimit.LoadConfig()
	}

	generator := content.NewGenerator(cfg.Client, logger)
	generator.Parallel = cfg.Parallel

	s := &Server{
		logger:      logger,
		projects:    store.NewProjectStore(cfg.DataDir, logger),
		styles:      store.NewStyleStore(cfg.DataDir, logger),
		typography:  store.NewTypographyStore(cfg.DataDir, logger),
		sessions:    session.NewManager(framing.NewCache(cfg.FrameCacheTTL), logger),
		generator:   generator,
		captions:    instagram.NewCaptionGenerator(cfg.Client, logger),
		hashtags:    instagram.NewHashtagGenerator(cfg.Client, logger),
		rateLimiter: ratelimit.NewLimiter(rateConfig),
		client:      cfg.Client,
		sessionIdle: cfg.SessionIdle,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Three model calls can take a while
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Library: projects, USPs and styles
	mux.HandleFunc("GET /projects", s.handleListProjects)
	mux.HandleFunc("POST /projects", s.handleSaveProject)
	mux.HandleFunc("GET /projects/{name}", s.handleGetProject)
	mux.HandleFunc("PUT /projects/{name}/usps", s.handleSaveProjectUSPs)
	mux.HandleFunc("GET /drafts/project", s.handleProjectDraft)
	mux.HandleFunc("GET /drafts/style", s.handleStyleDraft)
	mux.HandleFunc("GET /usps/presets", s.handleUSPPresets)
	mux.HandleFunc("GET /usps/saved", s.handleSavedUSPs)
	mux.HandleFunc("GET /styles", s.handleListStyles)
	mux.HandleFunc("POST /styles", s.handleSaveStyle)
	mux.HandleFunc("GET /typography", s.handleListTypography)
	mux.HandleFunc("POST /typography", s.handleSaveTypography)

	// Sessions
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("GET /sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("PUT /sessions/{id}/project", s.handleSetSessionProject)
	mux.HandleFunc("POST /sessions/{id}/voices", s.handleAddVoice)

	// Images
	mux.HandleFunc("POST /sessions/{id}/image", s.handleUploadImage)
	mux.HandleFunc("DELETE /sessions/{id}/image", s.handleClearImage)
	mux.HandleFunc("PUT /sessions/{id}/frames/{target}", s.handleUpdateFrame)
	mux.HandleFunc("GET /sessions/{id}/frames/{target}", s.handleDownloadFrame)

	// Website copy
	mux.HandleFunc("POST /sessions/{id}/website", s.handleGenerateWebsite)
	mux.HandleFunc("POST /sessions/{id}/website/stream", s.handleGenerateWebsiteStream)
	mux.HandleFunc("GET /sessions/{id}/website/{length}", s.handleWebsiteHTML)

	// Instagram
	mux.HandleFunc("POST /sessions/{id}/caption", s.handleGenerateCaption)
	mux.HandleFunc("GET /sessions/{id}/caption.txt", s.handleDownloadCaption)
	mux.HandleFunc("POST /sessions/{id}/hashtags", s.handleGenerateHashtags)
	mux.HandleFunc("PUT /sessions/{id}/hashtags", s.handleUpdateHashtags)
	mux.HandleFunc("GET /sessions/{id}/hashtags.txt", s.handleDownloadHashtags)

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start begins listening for requests and blocks until ctx is cancelled or
// the process receives SIGINT or SIGTERM.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer s.Close()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	if s.sessionIdle > 0 {
		go s.expireSessions(ctx)
	}

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// Close releases the rate limiter and the model client.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.client != nil {
		if err := s.client.Close(); err != nil {
			s.logger.Warn("closing model client", "error", err)
		}
	}
}

func (s *Server) expireSessions(ctx context.Context) {
	ticker := time.NewTicker(s.sessionIdle / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.sessions.Expire(s.sessionIdle)
		case <-ctx.Done():
			return
		}
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for request logs.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps streaming responses working through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// withLogging tags each request with an ID and logs its outcome.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		level := slog.LevelInfo
		if rec.status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		s.logger.Log(r.Context(), level, "request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"status", rec.status,
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Len(),
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// fail writes err with the status HTTPStatus assigns to it.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "status", status, "error", err)
	}
	s.errorResponse(w, status, err.Error())
}

// decodeJSON reads a JSON request body into v. An empty body leaves v unchanged.
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
}

// sendFile writes a downloadable attachment.
func sendFile(w http.ResponseWriter, contentType, fileName string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// extractClientID extracts the client identifier from the request.
// X-Forwarded-For is ignored; only the peer address counts.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	s.logger.Warn("rate limit exceeded", "limit", info.Limit, "reset_at", info.ResetTime.Format(time.RFC3339))
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
