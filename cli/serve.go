package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homechef-api/config"
	"homechef-api/events"
	"homechef-api/handlers"
	"homechef-api/logger"
	"homechef-api/middleware"
	"homechef-api/payment"
	"homechef-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log)
	log.Info("Starting homechef-api", "version", handlers.Version, "driver", cfg.Store.Driver)

	st, err := openStore(cfg.Store, log)
	if err != nil {
		log.Error("Failed to open store", "error", err)
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(ctx); err != nil {
			log.Warn("Failed to close store", "error", err)
		}
	}()

	publisher := initEvents(cfg.NATS, log)
	defer publisher.Close()

	if cfg.Stripe.SecretKey == "" {
		log.Warn("STRIPE_SECRET_KEY not set, checkout calls will fail")
	}
	payments := payment.NewStripeProvider(cfg.Stripe.SecretKey, cfg.Stripe.ClientDomain, cfg.Stripe.Currency)

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), log.GinMiddleware(), middleware.CORS())

	h := handlers.New(st, payments, publisher, log)
	verifier := middleware.NewJWTVerifier(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.Audience)
	routes.Setup(r, h, verifier, st.Users())

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return runWithGracefulShutdown(srv, log)
}

// initEvents falls back to a no-op publisher so a missing broker never blocks startup
func initEvents(cfg config.NATSConfig, log *logger.Logger) events.Publisher {
	if cfg.URL == "" {
		log.Info("NATS URL not set, event publishing disabled")
		return events.Noop{}
	}
	publisher, err := events.NewNatsPublisher(cfg.URL, log)
	if err != nil {
		log.Warn("Failed to connect to NATS, continuing without event publishing", "error", err, "url", cfg.URL)
		return events.Noop{}
	}
	return publisher
}

func runWithGracefulShutdown(srv *http.Server, log *logger.Logger) error {
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server listening", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Info("Received shutdown signal, starting graceful shutdown", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Warn("Graceful shutdown timeout, forcing close", "error", err)
			return srv.Close()
		}
		log.Info("Graceful shutdown completed")
		return nil
	}
}
