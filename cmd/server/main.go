package main

import (
	"context"

	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dipalrana/restaurant-backend/internal/app"
	"github.com/dipalrana/restaurant-backend/internal/app/handlers"
	"github.com/dipalrana/restaurant-backend/internal/config"
	"github.com/dipalrana/restaurant-backend/internal/jwt/jwtmiddleware"
	"github.com/dipalrana/restaurant-backend/internal/lib/logger"
	"github.com/dipalrana/restaurant-backend/internal/lib/logger/handlers/urllog"
	"github.com/dipalrana/restaurant-backend/internal/service"
	"github.com/dipalrana/restaurant-backend/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
)

func main() {
	cfg := config.MustLoad()

	log := logger.SetupLogger(cfg.Env)
	log.Info("starting app", slog.String("env", cfg.Env))

	application, err := app.NewApp(log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer application.DB.Close()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	userRepo := storage.NewUserRepository(application.DB)
	orderRepo := storage.NewOrderRepository(application.DB)
	contactRepo := storage.NewContactRepository(application.DB)

	tokenTTL := time.Duration(cfg.JWT.TokenTTL) * time.Minute
	authService := service.NewAuthService(application.Logger, userRepo, orderRepo, cfg.JWT.Secret, tokenTTL)
	orderService := service.NewOrderService(application.Logger, application.DB, userRepo, orderRepo)
	contactService := service.NewContactService(application.Logger, contactRepo)

	// public endpoints
	router.Post("/signup", handlers.SignupHandler(application.Logger, authService))
	router.Post("/login", handlers.LoginHandler(application.Logger, authService))
	router.Post("/contact", handlers.ContactHandler(application.Logger, contactService))

	// order endpoints require a valid bearer token
	router.Group(func(r chi.Router) {
		jwtMW := jwtmiddleware.NewJWTMiddleware(cfg.JWT.Secret)
		r.Use(jwtMW)
		r.Post("/orders", handlers.OrdersHandler(application.Logger, orderService))
		r.Post("/place-order", handlers.PlaceOrderHandler(application.Logger, orderService))
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	log.Info("server gracefully stopped")
}
