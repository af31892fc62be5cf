package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"luxestandard/internal/config"
	"luxestandard/internal/infrastructure/cache"
	"luxestandard/internal/infrastructure/llm"
	"luxestandard/internal/infrastructure/scheduler"
	"luxestandard/internal/infrastructure/storage"
	"luxestandard/internal/logging"
	"luxestandard/internal/server"
	"luxestandard/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	log       *slog.Logger
	db        *sql.DB
	redis     *cache.Redis
	server    *server.Server
	scheduler *scheduler.IntervalScheduler
	generator *usecase.Generator
}

// New opens the external connections and assembles the object graph.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	redis := cache.NewRedis(cfg.Redis)
	if err := redis.Ping(pingCtx); err != nil {
		baseLogger.Warn("redis unreachable at startup, reads fall back to the database", "error", err)
	}

	links := storage.NewLinkRepository(db)
	articles := storage.NewArticleRepository(db)
	categories := storage.NewCategoryRepository(db)

	chatClient := llm.NewClient(cfg.LLM)

	generator := usecase.NewGenerator(usecase.GeneratorDeps{
		Links:    links,
		Articles: articles,
		Chat:     chatClient,
		Cache:    redis,
		SiteName: cfg.Site.Name,
		SiteURL:  cfg.Site.URL,
		Logger:   baseLogger.With("component", "generator"),
	})

	reader := usecase.NewReader(usecase.ReaderDeps{
		Articles:   articles,
		Categories: categories,
		Links:      links,
		Cache:      redis,
		Logger:     baseLogger.With("component", "reader"),
	})

	catalog := usecase.NewCatalog(usecase.CatalogDeps{
		Links:    links,
		Articles: articles,
		Cache:    redis,
		Logger:   baseLogger.With("component", "catalog"),
	})

	srv := server.New(cfg, reader, catalog, generator, baseLogger.With("component", "server"))

	return &Application{
		cfg:       cfg,
		log:       baseLogger,
		db:        db,
		redis:     redis,
		server:    srv,
		scheduler: scheduler.NewInterval(cfg.Scheduler.Interval),
		generator: generator,
	}, nil
}

// Run serves HTTP and the recurring generation job until ctx is canceled,
// then shuts both down gracefully.
func (a *Application) Run(ctx context.Context) error {
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()

	if err := a.scheduler.Start(jobCtx, func(now time.Time) {
		a.log.Info("scheduled generation run", "at", now)
		a.generator.GenerateMissing(jobCtx, a.cfg.Scheduler.BatchSize)
	}); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := a.scheduler.Stop(shutdownCtx); err != nil {
		a.log.Warn("scheduler stop failed", "error", err)
	}
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.log.Warn("server shutdown failed", "error", err)
	}
	if err := a.redis.Close(); err != nil {
		a.log.Warn("redis close failed", "error", err)
	}
	if err := a.db.Close(); err != nil {
		a.log.Warn("database close failed", "error", err)
	}

	return nil
}
