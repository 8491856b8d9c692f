package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gpublishing/website/internal/config"
	"github.com/gpublishing/website/internal/email"
	"github.com/gpublishing/website/internal/handler"
	"github.com/gpublishing/website/internal/logger"
	"github.com/gpublishing/website/internal/middleware"
	"github.com/gpublishing/website/internal/router"
	"github.com/gpublishing/website/internal/service"
	"github.com/gpublishing/website/web"
)

const verifyTimeout = 15 * time.Second

var envFile string

var rootCmd = &cobra.Command{
	Use:           "server",
	Short:         "GPublishing website and form intake server",
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the configured mail transport and exit",
	RunE:  runVerify,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.AddCommand(verifyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Str("provider", cfg.Email.Provider).Msg("starting GPublishing server")

	// Build the shared mail transport
	sender, err := email.New(context.Background(), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize mail transport")
	}
	if cfg.Email.NotifyAddress == "" {
		log.Warn().Msg("no operator mailbox configured, notifications will fail")
	}

	// Verification is advisory: a failure is logged and requests fail individually
	go verifyTransport(sender, log)

	// Initialize services
	composer := service.NewComposer(cfg.Email.SenderName, cfg.Email.NotifyAddress)
	dispatcher := service.NewDispatcher(sender, log)
	intakeSvc := service.NewIntakeService(composer, dispatcher, log)

	// Initialize handlers
	h := handler.New(log, intakeSvc, web.FS(cfg.Server.WebRoot))

	// Initialize middleware
	mw := middleware.New(log, cfg)

	// Set up router
	r := router.New(h, mw, cfg)

	// Create HTTP server
	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown lets in-flight sends finish
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
	return nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	sender, err := email.New(cmd.Context(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize mail transport: %w", err)
	}

	if !verifyTransport(sender, log) {
		return errors.New("mail transport verification failed")
	}
	return nil
}

// verifyTransport runs the provider's verification when it has one and reports whether it passed.
func verifyTransport(sender email.Sender, log *logger.Logger) bool {
	v, ok := sender.(email.Verifier)
	if !ok {
		log.Info().Msg("mail transport has no verification, skipping")
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()

	if err := v.Verify(ctx); err != nil {
		log.Warn().Err(err).Msg("mail transport verification failed")
		return false
	}
	log.Info().Msg("mail transport verified")
	return true
}
