package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/hongminglow/hospcare-be/internal/config"
	"github.com/hongminglow/hospcare-be/internal/http/handlers"
	"github.com/hongminglow/hospcare-be/internal/http/respond"
	"github.com/hongminglow/hospcare-be/internal/middleware"
	"github.com/hongminglow/hospcare-be/internal/service"
)

// Deps are the workflows the HTTP surface exposes.
type Deps struct {
	Registrar     *service.Registrar
	Authenticator *service.Authenticator
	Sessions      *service.SessionValidator
	Directory     *service.Directory
	Logger        *slog.Logger
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, deps Deps) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           NewRouter(cfg, deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.RequestTimeout,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return &Server{inner: httpServer}
}

// NewRouter builds the chi router with the full middleware chain.
func NewRouter(cfg config.Config, deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(chimw.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.RequestTimeout))
	}
	r.Use(middleware.SecureHeaders(cfg.IsProduction(), logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respond.Error(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	handlers.NewHealthHandler(time.Now()).MountRoutes(r)

	authHandler := handlers.NewAuthHandler(deps.Registrar, deps.Authenticator, deps.Sessions, cfg.UploadMaxBytes, logger)
	doctorsHandler := handlers.NewDoctorsHandler(deps.Directory, logger)
	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", authHandler.MountRoutes)
		doctorsHandler.MountRoutes(api)
	})

	return r
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
