// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the composition root: New opens the store and wires
//
//	sqldb.DB → txn.Executor → services → handlers → chi routes
//
// Nothing below this package knows which concrete store or router is in use.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/habitrack/internal/auth"
	"github.com/sakif/habitrack/internal/config"
	"github.com/sakif/habitrack/internal/handler"
	"github.com/sakif/habitrack/internal/metrics"
	"github.com/sakif/habitrack/internal/middleware"
	"github.com/sakif/habitrack/internal/repository/sqldb"
	"github.com/sakif/habitrack/internal/service"
	"github.com/sakif/habitrack/internal/txn"
)

// Server owns the router and the database pool. The pool is closed when Start
// returns.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqldb.DB
}

// New opens the configured database and builds the server.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqldb.Open(ctx, sqldb.Dialect(cfg.DBDriver), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s, err := NewWithDB(cfg, db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB builds the server on an already open database. The server takes
// ownership of db.
func NewWithDB(cfg *config.Config, db *sqldb.DB, logger *slog.Logger) (*Server, error) {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}
	if err := s.setupRoutes(); err != nil {
		return nil, fmt.Errorf("setting up routes: %w", err)
	}
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures middleware and routes.
//
// ROUTES (each also mounted under /api):
//
//	GET    /health
//	POST   /users                GET /users
//	GET    /users/{id}           PUT /users/{id}      DELETE /users/{id}
//	GET    /users/{id}/results
//	POST   /results
//	GET    /results/{id}         PUT /results/{id}    DELETE /results/{id}
//	GET    /results/{id}/habits
//	POST   /habits
//	GET    /habits/{id}          PUT /habits/{id}     DELETE /habits/{id}
//	GET    /habits/{id}/actions
//	POST   /actions
//	GET    /actions/{id}         PUT /actions/{id}    DELETE /actions/{id}
//	POST   /auth/login           GET /auth/me          (only with JWT_SECRET)
//
// plus GET /metrics at the root.
//
// MIDDLEWARE ORDER MATTERS: RequestID first so the logger can read it,
// Recoverer last so a panic still gets logged with a 500.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)

	exec := txn.New(s.db, s.config.TxTimeout, s.logger)
	passwords := auth.NewPasswordServiceWithCost(s.config.BcryptCost)

	users := handler.NewUserHandler(service.NewUserService(s.db, exec, passwords, s.logger), s.logger)
	results := handler.NewResultHandler(service.NewResultService(s.db, exec, s.logger), s.logger)
	habits := handler.NewHabitHandler(service.NewHabitService(s.db, exec, s.logger), s.logger)
	actions := handler.NewActionHandler(service.NewActionService(s.db, exec, s.logger), s.logger)

	var (
		authHandler *handler.AuthHandler
		tokens      *auth.TokenService
	)
	if s.config.AuthEnabled() {
		var err error
		tokens, err = auth.NewTokenService(s.config.JWTSecret, s.config.TokenTTL)
		if err != nil {
			return fmt.Errorf("creating token service: %w", err)
		}
		authHandler = handler.NewAuthHandler(
			service.NewAuthService(s.db.Users(), tokens, passwords, s.logger),
			s.logger,
		)
	} else {
		s.logger.Warn("JWT_SECRET not set, /auth routes are disabled")
	}

	api := func(r chi.Router) {
		r.Get("/health", handler.HandleHealth)

		r.Route("/users", func(r chi.Router) {
			r.Post("/", users.HandleCreate)
			r.Get("/", users.HandleList)
			r.Get("/{id}", users.HandleGet)
			r.Put("/{id}", users.HandleUpdate)
			r.Delete("/{id}", users.HandleDelete)
			r.Get("/{id}/results", results.HandleListByUser)
		})

		r.Route("/results", func(r chi.Router) {
			r.Post("/", results.HandleCreate)
			r.Get("/{id}", results.HandleGet)
			r.Put("/{id}", results.HandleUpdate)
			r.Delete("/{id}", results.HandleDelete)
			r.Get("/{id}/habits", habits.HandleListByResult)
		})

		r.Route("/habits", func(r chi.Router) {
			r.Post("/", habits.HandleCreate)
			r.Get("/{id}", habits.HandleGet)
			r.Put("/{id}", habits.HandleUpdate)
			r.Delete("/{id}", habits.HandleDelete)
			r.Get("/{id}/actions", actions.HandleListByHabit)
		})

		r.Route("/actions", func(r chi.Router) {
			r.Post("/", actions.HandleCreate)
			r.Get("/{id}", actions.HandleGet)
			r.Put("/{id}", actions.HandleUpdate)
			r.Delete("/{id}", actions.HandleDelete)
		})

		if authHandler != nil {
			r.Route("/auth", func(r chi.Router) {
				r.Post("/login", authHandler.HandleLogin)
				r.With(auth.RequireAuth(tokens)).Get("/me", authHandler.HandleMe)
			})
		}
	}

	s.router.Handle("/metrics", metrics.Handler())
	s.router.Group(api)
	s.router.Route("/api", api)

	return nil
}

// Start serves until SIGINT/SIGTERM, then drains in-flight requests for
// SHUTDOWN_TIMEOUT and closes the database.
func (s *Server) Start() error {
	defer func() {
		if err := s.db.Close(); err != nil {
			s.logger.Warn("closing database failed", slog.String("error", err.Error()))
		}
	}()

	srv := &http.Server{
		Addr:              s.config.HTTPAddr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.String("addr", s.config.HTTPAddr),
			slog.String("env", s.config.AppEnv),
			slog.String("driver", string(s.db.Dialect())),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
