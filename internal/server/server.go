package server

import (
	"context"
	"net/http"
	"time"

	"github.com/hongminglow/research-tracker/internal/auth"
	"github.com/hongminglow/research-tracker/internal/config"
	"github.com/hongminglow/research-tracker/internal/http/handlers"
	"github.com/hongminglow/research-tracker/internal/logging"
	"github.com/hongminglow/research-tracker/internal/middleware"
	"github.com/hongminglow/research-tracker/internal/models"
	"github.com/hongminglow/research-tracker/internal/storage"
)

// apiPrefix is the mount point the web frontend uses. Every route is also served unprefixed.
const apiPrefix = "/api"

// Stores bundles the storage backends the routes depend on.
type Stores struct {
	Users        storage.UserStore
	Patents      storage.RecordStore[*models.Patent]
	Publications storage.RecordStore[*models.Publication]
	Events       storage.RecordStore[*models.Event]
	Conferences  storage.RecordStore[*models.Conference]
	Stats        storage.StatsStore
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, logger logging.Logger, stores Stores, search handlers.PatentSearcher) *Server {
	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	mux := routes(tokenManager, logger, stores, search)

	root := http.NewServeMux()
	root.Handle("/", mux)
	root.Handle(apiPrefix+"/", http.StripPrefix(apiPrefix, mux))

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(logger, root))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.PatentSearchTimeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

func routes(tokens *auth.TokenManager, logger logging.Logger, stores Stores, search handlers.PatentSearcher) *http.ServeMux {
	mux := http.NewServeMux()
	authenticate := handlers.Guard(middleware.Authenticate(tokens))
	adminOnly := handlers.Guard(middleware.RequireRole(models.RoleAdmin))

	handlers.NewHealthHandler(time.Now()).Register(mux)
	handlers.NewAuthHandler(stores.Users, tokens, logger).Register(mux)
	handlers.NewPatentSearchHandler(search, logger).Register(mux)

	patents := handlers.NewPatentHandler(stores.Patents, logger)
	publications := handlers.NewPublicationHandler(stores.Publications, logger)
	events := handlers.NewEventHandler(stores.Events, logger)
	conferences := handlers.NewConferenceHandler(stores.Conferences, logger)
	patents.Register(mux, authenticate)
	publications.Register(mux, authenticate)
	events.Register(mux, authenticate)
	conferences.Register(mux, authenticate)

	handlers.NewAdminHandler(stores.Stats, logger, patents, publications, events, conferences).
		Register(mux, authenticate, adminOnly)
	handlers.NewUserHandler(stores.Stats, logger).Register(mux, authenticate)

	return mux
}

// Handler exposes the fully wrapped handler, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.inner.Handler
}

// Addr reports the configured listen address.
func (s *Server) Addr() string {
	return s.inner.Addr
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
