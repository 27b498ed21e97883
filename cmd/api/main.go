package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalogo_backend/internal/auth"
	"catalogo_backend/internal/catalog"
	"catalogo_backend/internal/colors"
	"catalogo_backend/internal/events"
	"catalogo_backend/internal/export"
	apphttp "catalogo_backend/internal/http"
	"catalogo_backend/internal/http/router"
	"catalogo_backend/internal/notification"
	"catalogo_backend/internal/selection"
	"catalogo_backend/internal/selection/session"
	"catalogo_backend/internal/stats"
	"catalogo_backend/migrations"
	"catalogo_backend/platform/config"
	"catalogo_backend/platform/db"
	"catalogo_backend/platform/logger"
	"catalogo_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS, ".")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// Catalog accent colors: Redis when configured, in-process otherwise
	colorStore := initColorStore(ctx, cfg, log)

	// Visitor selection sessions live in memory with a TTL
	sessionStore := session.NewStore(cfg.GetSessionTTL(), log)
	defer sessionStore.Close()

	// Optional export archive (MinIO)
	archiver := initArchiver(ctx, cfg, log)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	notificationModule := notification.NewModule(log)
	notificationModule.RegisterHandlers(eventBus)

	authModule := auth.NewModule(pool, cfg, val, log)
	seedAdmin(ctx, log, authModule)

	catalogModule := catalog.NewModule(pool, eventBus, val, log)
	selectionModule := selection.NewModule(catalogModule.Service(), sessionStore, val, log)
	exportModule := export.NewModule(sessionStore, eventBus, archiver, val, log)
	colorsModule := colors.NewModule(colorStore, val)
	statsModule := stats.NewModule(pool, sessionStore)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			catalogModule,
			selectionModule,
			exportModule,
			colorsModule,
			notificationModule,
			statsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initColorStore picks the Redis-backed color store when REDIS_URL is
// set, falling back to the in-process store otherwise.
func initColorStore(ctx context.Context, cfg *config.Config, log *logger.Logger) colors.Store {
	if !cfg.IsRedisEnabled() {
		log.Warn("REDIS_URL not configured; catalog colors reset on restart")
		return colors.NewMemoryStore()
	}

	opts, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		log.Error("invalid REDIS_URL", "error", err)
		panic("invalid REDIS_URL: " + err.Error())
	}

	client := redis.NewClient(opts)
	if err := withRetry(ctx, log, "redis connection", 5, 2*time.Second, func() error {
		return client.Ping(ctx).Err()
	}); err != nil {
		log.Error("failed to connect to redis", "error", err)
		panic("failed to connect to redis: " + err.Error())
	}
	log.Info("redis connection established")

	return colors.NewRedisStore(client)
}

// initArchiver builds the MinIO export archiver when object storage is
// configured; exports still work without it, they just are not retained.
func initArchiver(ctx context.Context, cfg *config.Config, log *logger.Logger) *export.Archiver {
	if !cfg.IsExportArchiveEnabled() {
		log.Warn("MINIO_ENDPOINT not configured; exported PDFs are not archived")
		return nil
	}

	archiver, err := export.NewArchiver(cfg)
	if err != nil {
		log.Error("failed to initialize export archive", "error", err)
		panic("failed to initialize export archive: " + err.Error())
	}

	if err := withRetry(ctx, log, "ensure export bucket", 5, 2*time.Second, func() error {
		return archiver.EnsureBucket(ctx)
	}); err != nil {
		log.Error("failed to ensure export bucket exists", "error", err)
		panic("failed to ensure export bucket exists: " + err.Error())
	}
	log.Info("export archive initialized", "bucket", cfg.GetMinioBucketQuoteExports())

	return archiver
}

// seedAdmin creates the initial admin account when seed credentials are
// provided. A taken email is left untouched.
func seedAdmin(ctx context.Context, log *logger.Logger, authModule *auth.Module) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	if err := authModule.Service().SeedAdmin(ctx, email, password); err != nil {
		log.Error("failed to seed admin account", "error", err)
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
