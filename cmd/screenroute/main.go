package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/screenroute-ai/screenroute/internal/catalog"
	"github.com/screenroute-ai/screenroute/internal/config"
	"github.com/screenroute-ai/screenroute/internal/consensus"
	"github.com/screenroute-ai/screenroute/internal/localstore"
	"github.com/screenroute-ai/screenroute/internal/ratelimit"
	"github.com/screenroute-ai/screenroute/internal/server"
	"github.com/screenroute-ai/screenroute/internal/service/compare"
	"github.com/screenroute-ai/screenroute/internal/service/festival"
	"github.com/screenroute-ai/screenroute/internal/service/market"
	"github.com/screenroute-ai/screenroute/internal/service/music"
	"github.com/screenroute-ai/screenroute/internal/service/pathway"
	"github.com/screenroute-ai/screenroute/internal/service/predict"
	"github.com/screenroute-ai/screenroute/internal/service/quality"
	"github.com/screenroute-ai/screenroute/internal/service/script"
	"github.com/screenroute-ai/screenroute/internal/storage"
	"github.com/screenroute-ai/screenroute/internal/telemetry"
	"github.com/screenroute-ai/screenroute/migrations"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run0())
}

func run0() int {
	level := slog.LevelInfo
	if os.Getenv("SCREENROUTE_LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, logger); err != nil {
		slog.Error("fatal error", "error", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, logger *slog.Logger) error {
	// Load .env file if present (non-fatal; production won't have one).
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.Info("screenroute starting", "version", version, "port", cfg.Port)

	// Initialize OpenTelemetry.
	otelShutdown, err := telemetry.Init(ctx, telemetry.Config{
		Endpoint:    cfg.OTELEndpoint,
		Insecure:    cfg.OTELInsecure,
		ServiceName: cfg.ServiceName,
		Version:     version,
		SampleRatio: cfg.OTELSampleRatio,
	})
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() { _ = otelShutdown(context.Background()) }()

	// The static catalogs are embedded; a parse or validation failure is
	// a build defect and fails startup.
	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	// Select the store: Postgres when DATABASE_URL is set, SQLite otherwise.
	var (
		store     server.Store
		storeKind string
	)
	if cfg.DatabaseURL != "" {
		db, err := storage.New(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return fmt.Errorf("storage: %w", err)
		}
		defer db.Close(ctx)

		if err := db.RunMigrations(ctx, migrations.FS); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		store, storeKind = db, "postgres"
	} else {
		ls, err := localstore.Open(cfg.SQLitePath)
		if err != nil {
			return fmt.Errorf("localstore: %w", err)
		}
		defer ls.Close()
		store, storeKind = ls, "sqlite"
	}
	slog.Info("store ready", "kind", storeKind)

	// Jitter sources for the scoring services. A configured seed makes
	// runs reproducible.
	var predictRNG, compareRNG, musicRNG, scriptRNG *rand.Rand
	if cfg.PredictSeed != 0 {
		predictRNG = rand.New(rand.NewPCG(cfg.PredictSeed, 0))
		compareRNG = rand.New(rand.NewPCG(cfg.PredictSeed, 1))
		musicRNG = rand.New(rand.NewPCG(cfg.PredictSeed, 2))
		scriptRNG = rand.New(rand.NewPCG(cfg.PredictSeed, 3))
	}

	coordinator := consensus.New(
		quality.New(cat),
		market.New(cat),
		festival.New(cat),
		pathway.New(cat),
		predict.New(cat, predictRNG),
		compare.New(compareRNG),
		logger,
	)

	var limiter ratelimit.Limiter = ratelimit.NoopLimiter{}
	if cfg.RateLimitRPS > 0 {
		mem := ratelimit.NewMemoryLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		defer mem.Close()
		limiter = mem
	}

	srv := server.New(server.Config{
		Store:               store,
		StoreKind:           storeKind,
		Coordinator:         coordinator,
		Music:               music.New(cat, musicRNG),
		Script:              script.New(cat, scriptRNG),
		Logger:              logger,
		Limiter:             limiter,
		Port:                cfg.Port,
		ReadTimeout:         cfg.ReadTimeout,
		WriteTimeout:        cfg.WriteTimeout,
		Version:             version,
		MaxRequestBodyBytes: cfg.MaxRequestBodyBytes,
	})

	// Start HTTP server in background.
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or server error.
	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	slog.Info("screenroute shutting down")

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer httpCancel()
	if err := srv.Shutdown(httpCtx); err != nil {
		slog.Error("http shutdown error", "error", err)
	}

	slog.Info("screenroute stopped")
	return nil
}
