package web

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/oauth2"

	"github.com/bvadavimath72-star/YT-Playlist-Maker/internal/db"
	"github.com/bvadavimath72-star/YT-Playlist-Maker/internal/playlist"
	"github.com/bvadavimath72-star/YT-Playlist-Maker/internal/youtube"
)

// DefaultAddr is the default server address.
const DefaultAddr = "127.0.0.1:8080"

// DefaultRedirectURL must match the OAuth client configuration.
const DefaultRedirectURL = "http://127.0.0.1:8080/callback"

// ServerConfig holds server configuration.
type ServerConfig struct {
	Addr              string
	SessionSecret     string
	AdminEmail        string
	ClientSecretsPath string
	RedirectURL       string
	TemplatesFS       fs.FS
	StaticFS          fs.FS
	Database          *db.DB
	Recognizer        Recognizer
	Logger            *log.Logger
}

// Server is the HTTP server for the web application.
type Server struct {
	router    chi.Router
	server    *http.Server
	templates *Templates
	sessions  *SessionStore
	handlers  *Handlers
	logger    *log.Logger
}

// NewServer creates a new web server.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.RedirectURL == "" {
		cfg.RedirectURL = DefaultRedirectURL
	}

	auth, err := NewAuthenticator(cfg.ClientSecretsPath, cfg.RedirectURL)
	if err != nil {
		return nil, fmt.Errorf("creating authenticator: %w", err)
	}

	templates, err := NewTemplates(cfg.TemplatesFS)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	sessions := NewSessionStore(cfg.SessionSecret)

	// Each signed-in request gets a playlist builder bound to its own
	// credential.
	newBuilder := func(ctx context.Context, token *oauth2.Token) (Builder, error) {
		httpClient, err := auth.HTTPClient(ctx, token)
		if err != nil {
			return nil, err
		}
		api, err := youtube.New(ctx, httpClient)
		if err != nil {
			return nil, err
		}
		return playlist.New(api, playlist.NewStore(cfg.Database)), nil
	}

	handlers := NewHandlers(auth, sessions, templates, cfg.Database,
		cfg.Recognizer, newBuilder, cfg.AdminEmail, cfg.Logger)

	router := chi.NewRouter()

	s := &Server{
		router:    router,
		templates: templates,
		sessions:  sessions,
		handlers:  handlers,
		logger:    cfg.Logger,
	}

	s.setupMiddleware()
	s.setupRoutes(cfg.StaticFS)

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupMiddleware configures middleware for the router.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

// setupRoutes configures routes for the application.
func (s *Server) setupRoutes(staticFS fs.FS) {
	// Static files
	fileServer := http.FileServer(http.FS(staticFS))
	s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	// Public pages
	s.router.Get("/", s.handlers.Home)
	s.router.Get("/terms", s.handlers.Terms)
	s.router.Get("/privacy", s.handlers.Privacy)

	// Auth routes
	s.router.Get("/login", s.handlers.Login)
	s.router.Get("/callback", s.handlers.Callback)
	s.router.Post("/logout", s.handlers.Logout)

	// Protected routes
	s.router.Group(func(r chi.Router) {
		r.Use(s.handlers.requireLogin)

		r.Get("/dashboard", s.handlers.Dashboard)
		r.Get("/create", s.handlers.CreateForm)
		r.Post("/create", s.handlers.Create)
		r.Get("/recognize", s.handlers.RecognizeForm)
		r.Post("/recognize", s.handlers.Recognize)
		r.Get("/recognize/result", s.handlers.RecognizeResult)
		r.Post("/recognize/result", s.handlers.RecognizeResultSubmit)
		r.Get("/analytics", s.handlers.Analytics)
		r.Get("/admin", s.handlers.Admin)
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", "http://"+s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Run starts the server and handles graceful shutdown on interrupt signals.
func (s *Server) Run() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
		s.logger.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}
