// Package web provides the HTTP server and handlers for the studiodesk web view.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/evcraddock/studiodesk/internal/apitime"
	"github.com/evcraddock/studiodesk/internal/client"
	"github.com/evcraddock/studiodesk/internal/logging"
	"github.com/evcraddock/studiodesk/internal/project"
	"github.com/evcraddock/studiodesk/internal/thread"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// API is the part of the studio API the web view reads from directly.
// *client.Client satisfies it.
type API interface {
	GetProject(ctx context.Context, id string) (*project.Project, error)
	ListGalleries(ctx context.Context, projectID string) (*project.GalleryList, error)
	CurrentUser(ctx context.Context) (*client.CurrentUser, error)
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and handler logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithLocation sets the zone project dates are displayed in.
func WithLocation(loc *time.Location) Option {
	return func(s *Server) { s.loc = loc }
}

// Server is the web view HTTP server.
type Server struct {
	api       API
	threads   *thread.Controller
	logger    *slog.Logger
	loc       *time.Location
	templates *template.Template
	mux       *http.ServeMux
	handler   http.Handler
}

// NewServer creates a web server that reads projects from api and comment
// threads through threads.
func NewServer(api API, threads *thread.Controller, opts ...Option) (*Server, error) {
	s := &Server{
		api:     api,
		threads: threads,
		logger:  slog.Default(),
		loc:     time.Local,
		mux:     http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}

	funcMap := template.FuncMap{
		"statusLabel":  project.StatusLabel,
		"progressBand": project.ProgressBand,
		"formatStr":    tmplFormatStr,
		"formatDate":   s.tmplFormatDate,
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	s.templates = tmpl

	staticContent, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("creating static sub-fs: %w", err)
	}

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticContent))))
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /projects/{id}", s.handleProject)
	s.mux.HandleFunc("POST /projects/{id}/comments", s.handleCommentPost)
	s.mux.HandleFunc("POST /projects/{id}/comments/{commentID}/delete", s.handleCommentDelete)

	s.mux.HandleFunc("GET /api/projects/{id}/thread", s.apiThread)
	s.mux.HandleFunc("POST /api/projects/{id}/comments", s.apiAddComment)
	s.mux.HandleFunc("DELETE /api/comments/{commentID}", s.apiDeleteComment)

	s.handler = logging.RequestLogger(s.logger, s.mux)

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe serves on port until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Printf("Starting web view on http://localhost%s\n", addr)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Template helper functions

func tmplFormatStr(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "—"
	}
	return *s
}

func (s *Server) tmplFormatDate(ts apitime.Timestamp) string {
	return ts.FormatDate(s.loc)
}
