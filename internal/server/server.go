package server

import (
	"context"
	"net/http"
	"time"

	"github.com/arnobm97/Trial-Project-backend/internal/auth"
	"github.com/arnobm97/Trial-Project-backend/internal/config"
	"github.com/arnobm97/Trial-Project-backend/internal/http/handlers"
	"github.com/arnobm97/Trial-Project-backend/internal/middleware"
	"github.com/arnobm97/Trial-Project-backend/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store) *Server {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	gate := auth.NewGate(store)

	mux := http.NewServeMux()
	handlers.NewRootHandler().Register(mux)
	handlers.NewTokenHandler(tokens).Register(mux)
	handlers.NewUsersHandler(store, gate, tokens).Register(mux)
	handlers.NewCatalogHandler(store).Register(mux)
	handlers.NewCartsHandler(store).Register(mux)

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(mux))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
