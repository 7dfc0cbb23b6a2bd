// Package server wires the collections, services, handlers and routes, and
// runs the HTTP listener.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ukydev/carkit/internal/config"
	"github.com/ukydev/carkit/internal/db"
	"github.com/ukydev/carkit/internal/handlers"
	"github.com/ukydev/carkit/internal/identity"
	"github.com/ukydev/carkit/internal/middleware"
	"github.com/ukydev/carkit/internal/models"
	"github.com/ukydev/carkit/internal/service"
	"github.com/ukydev/carkit/internal/token"
)

// Server owns the router and the Mongo client it was built around.
type Server struct {
	router *chi.Mux
	cfg    *config.Config
	log    *logrus.Logger
	client *mongo.Client
}

// New assembles the full dependency graph: store collections into services,
// services into handlers, handlers onto routes behind the auth gate.
func New(ctx context.Context, cfg *config.Config, client *mongo.Client, log *logrus.Logger) (*Server, error) {
	store := db.NewStore(client, cfg.MongoDatabase)
	if err := store.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("ensuring indexes: %w", err)
	}

	tokens, err := token.NewService(cfg.JWTSecret, cfg.JWTRefreshSecret)
	if err != nil {
		return nil, err
	}

	apple, err := identity.NewAppleVerifier(ctx, cfg.AppleJWKSURL)
	if err != nil {
		return nil, fmt.Errorf("creating apple verifier: %w", err)
	}
	verifiers := map[models.Provider]identity.Verifier{
		models.ProviderApple:  apple,
		models.ProviderGoogle: identity.NewGoogleVerifier(cfg.GoogleClientID),
	}

	authService := service.NewAuthService(tokens, store.Users, verifiers, log)
	userService := service.NewUserService(store.Users, log)
	vehicleService := service.NewVehicleService(store.Vehicles)
	mileageService := service.NewMileageService(store.Vehicles, store.Mileages, store.Tx)
	spendingService := service.NewSpendingService(store.Vehicles, store.Spendings, store.Tx)

	gate := middleware.NewAuthGate(tokens, store.Users, log)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	vehicleHandler := handlers.NewVehicleHandler(vehicleService)
	mileageHandler := handlers.NewMileageHandler(mileageService)
	spendingHandler := handlers.NewSpendingHandler(spendingService)

	router := chi.NewRouter()
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)

	router.Post("/auth/apple", authHandler.AppleAuth)
	router.Post("/auth/google", authHandler.GoogleAuth)
	router.Get("/auth/refresh-token/{refreshToken}", authHandler.Refresh)

	router.Group(func(r chi.Router) {
		r.Use(gate.Authenticate)

		r.Delete("/users/me", userHandler.DeleteMe)

		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/", vehicleHandler.List)
			r.Post("/", vehicleHandler.Create)
			r.Get("/{id}", vehicleHandler.Get)
			r.Put("/{id}", vehicleHandler.Update)
			r.Delete("/{id}", vehicleHandler.Delete)

			r.Route("/{vehicleId}/mileages", func(r chi.Router) {
				r.Get("/", mileageHandler.List)
				r.Post("/", mileageHandler.Create)
				r.Get("/{id}", mileageHandler.Get)
				r.Put("/{id}", mileageHandler.Update)
				r.Delete("/{id}", mileageHandler.Delete)
			})

			r.Route("/{vehicleId}/spendings", func(r chi.Router) {
				r.Get("/", spendingHandler.List)
				r.Post("/", spendingHandler.Create)
				r.Get("/{id}", spendingHandler.Get)
				r.Put("/{id}", spendingHandler.Update)
				r.Delete("/{id}", spendingHandler.Delete)
			})
		})
	})

	return &Server{router: router, cfg: cfg, log: log, client: client}, nil
}

// Router exposes the handler tree, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the listener until SIGINT/SIGTERM, then drains in-flight
// requests and disconnects from Mongo.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.log.WithField("port", s.cfg.Port).Info("server listening")
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-quit:
		s.log.WithField("signal", sig.String()).Info("shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		if err := s.client.Disconnect(ctx); err != nil {
			return fmt.Errorf("mongo disconnect failed: %w", err)
		}
	}
	return nil
}
