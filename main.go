package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dhirendraxd/voicelink/cliparse"
	"github.com/dhirendraxd/voicelink/db"
	"github.com/dhirendraxd/voicelink/handlers"
	"github.com/dhirendraxd/voicelink/metrics"
	"github.com/dhirendraxd/voicelink/middleware"
	"github.com/dhirendraxd/voicelink/ratelimit"
	"github.com/dhirendraxd/voicelink/router"
	"github.com/dhirendraxd/voicelink/twiml"
)

// clientTTL is how long an idle client's rate limit bucket is kept
const clientTTL = 10 * time.Minute

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Cancelled on Ctrl-C, which also aborts a pending database connect
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err = run(ctx, cfg)
	stop()
	if err != nil {
		slog.Error("Server closed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server closed")
}

// run serves until ctx is cancelled or the server fails. Its resources are
// released before it returns, so the caller may exit straight away.
func run(ctx context.Context, cfg cliparse.Config) error {
	// Connect to the database, waiting for it to come up
	dbConn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("database connection failed (%s): %w", cfg.DatabaseType, err)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	prompts, err := twiml.LoadPrompts(cfg.PromptsFile)
	if err != nil {
		return fmt.Errorf("failed to load IVR prompts: %w", err)
	}

	limiter := ratelimit.New(cfg.RateLimitPerMinute, cfg.RateLimitBurst, clientTTL)
	defer limiter.Close()

	if cfg.TwilioAuthToken == "" {
		slog.Warn("TWILIO_AUTH_TOKEN not set, voice webhook signatures are not verified")
	}
	if len(cfg.TrustedProxies) == 0 {
		slog.Info("No trusted proxies, clients are identified by their connection address")
	}

	// The menu outlives prompt reloads; calls in flight keep their snapshot
	menu := handlers.NewVoiceMenu(dbConn, prompts)

	// Create router
	mux := router.NewRouter(dbConn, cfg, router.Deps{
		Limiter: limiter,
		Metrics: metrics.New("voicelink"),
		Menu:    menu,
	})

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		// Wait for Ctrl-C signal or a failed sibling
		<-gctx.Done()

		// Let in-flight requests finish
		shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
		defer done()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			server.Close()
		}
		return nil
	})

	if cfg.PromptsFile != "" {
		g.Go(func() error {
			if err := twiml.WatchPrompts(gctx, cfg.PromptsFile, menu.SetPrompts); err != nil {
				slog.Warn("IVR prompts will not hot reload", "error", err)
			}
			return nil
		})
	}

	return g.Wait()
}
