package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relboard/pkg/domain/interfaces"
	"github.com/m-mizutani/relboard/pkg/usecase"
)

// config holds internal HTTP server configuration
type config struct {
	addr          string
	jwtSecret     string
	activityLimit int
	storeName     string
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithJWTSecret enables HS256 bearer token authentication on /api/v1
func WithJWTSecret(secret string) Option {
	return func(c *config) {
		c.jwtSecret = secret
	}
}

// WithActivityLimit sets the feed size used when the request has no limit
func WithActivityLimit(limit int) Option {
	return func(c *config) {
		if limit > 0 {
			c.activityLimit = limit
		}
	}
}

// WithStoreName sets the repository backend name reported by /health
func WithStoreName(name string) Option {
	return func(c *config) {
		c.storeName = name
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	dashboardUC interfaces.DashboardUseCase,
	releaseUC interfaces.ReleaseUseCase,
	incidentUC interfaces.IncidentUseCase,
	chatUC interfaces.ChatUseCase,
	opts ...Option,
) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr:          "localhost:8080",
		activityLimit: usecase.DefaultActivityLimit,
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	spec, err := loadOpenAPI(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load OpenAPI document")
	}

	dashboard := &dashboardHandler{uc: dashboardUC, activityLimit: cfg.activityLimit}
	releases := &releaseHandler{uc: releaseUC}
	incidents := &incidentHandler{uc: incidentUC}
	chat := &chatHandler{uc: chatUC}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	// Health check
	router.Get("/health", handleHealth(cfg.storeName))
	router.Get("/api/openapi.yaml", spec.serve)

	router.Route("/api/v1", func(r chi.Router) {
		if cfg.jwtSecret != "" {
			r.Use(AuthMiddleware([]byte(cfg.jwtSecret)))
		}

		r.Get("/dashboard", dashboard.getDashboard)
		r.Get("/filters", dashboard.getFilters)
		r.Get("/activity", dashboard.getActivity)

		r.Get("/releases", releases.list)
		r.Post("/releases", releases.create)
		r.Get("/releases/{id}", releases.get)
		r.Put("/releases/{id}", releases.update)

		r.Get("/incidents", incidents.list)
		r.Post("/incidents", incidents.create)
		r.Get("/incidents/{id}", incidents.get)
		r.Put("/incidents/{id}/link", incidents.relink)
		r.Post("/incidents/{id}/delete-requests", incidents.requestDelete)
		r.Post("/deletions/{token}/confirm", incidents.confirmDelete)
		r.Delete("/deletions/{token}", incidents.cancelDelete)

		r.Post("/chat/sessions", chat.createSession)
		r.Get("/chat/sessions/{id}", chat.getSession)
		r.Delete("/chat/sessions/{id}", chat.closeSession)
		r.Post("/chat/sessions/{id}/messages", chat.submit)
	})

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
