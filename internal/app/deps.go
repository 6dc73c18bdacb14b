package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"doc-summarizer/internal/cache"
	"doc-summarizer/internal/chunker"
	"doc-summarizer/internal/config"
	"doc-summarizer/internal/extractor"
	"doc-summarizer/internal/llm"
	"doc-summarizer/internal/logger"
	"doc-summarizer/internal/queue"
	"doc-summarizer/internal/service"
	"doc-summarizer/internal/summary"
)

// Deps bundles common runtime dependencies for every surface.
type Deps struct {
	Config    config.Config
	Log       *slog.Logger
	Documents service.Documents
	Cache     cache.Cache
}

// WorkerDeps adds the queue the worker consumes from.
type WorkerDeps struct {
	Deps
	Queue queue.Queue
	close func()
}

// Close releases the queue connection and the cache.
func (d WorkerDeps) Close() {
	if d.close != nil {
		d.close()
	}
	d.Deps.Close()
}

// Close releases the cache connection.
func (d Deps) Close() {
	if d.Cache == nil {
		return
	}
	if err := d.Cache.Close(); err != nil {
		d.Log.Warn("failed to close cache", "err", err)
	}
}

// Build loads env, config, and shared components, logging to stdout.
func Build() (Deps, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return Deps{}, err
	}
	return BuildWith(cfg, logger.New(cfg.LogLevel, cfg.LogFormat))
}

// LoadConfig seeds the environment from .env and loads the config. A missing
// .env file is not an error; the process environment is used as-is.
func LoadConfig() (config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config.Config{}, fmt.Errorf("failed to load environment variables: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// BuildWith wires components from an already loaded config.
func BuildWith(cfg config.Config, log *slog.Logger) (Deps, error) {
	client, err := llm.New(cfg.Provider(), log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize model client: %w", err)
	}
	splitter, err := chunker.New(chunker.Options{ChunkSize: cfg.ChunkSize, Overlap: cfg.ChunkOverlap})
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize chunker: %w", err)
	}
	c := buildCache(cfg, log)

	summarizer := summary.New(splitter, client, log, summary.Options{
		Cache:    c,
		CacheTTL: cfg.CacheTTL,
		Model:    cfg.Provider().ModelName,
	})
	docs := service.New(extractor.New(log), summarizer, log)

	return Deps{
		Config:    cfg,
		Log:       log,
		Documents: docs,
		Cache:     c,
	}, nil
}

// BuildWorker is Build plus a NATS connection.
func BuildWorker() (WorkerDeps, error) {
	deps, err := Build()
	if err != nil {
		return WorkerDeps{}, err
	}
	q, nc, err := buildQueue(deps.Config, deps.Log)
	if err != nil {
		deps.Close()
		return WorkerDeps{}, fmt.Errorf("failed to initialize queue: %w", err)
	}
	return WorkerDeps{Deps: deps, Queue: q, close: func() { nc.Drain() }}, nil
}

// buildCache falls back to the no-op cache when Redis is unreachable; the
// cache only saves model calls.
func buildCache(cfg config.Config, log *slog.Logger) cache.Cache {
	switch cfg.CacheProvider {
	case "redis":
		c, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword.Reveal())
		if err != nil {
			log.Warn("redis unavailable, caching disabled", "addr", cfg.RedisAddr, "err", err)
			return cache.NewNoOpCache()
		}
		log.Info("using Redis summary cache", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
		return c
	default:
		return cache.NewNoOpCache()
	}
}

func buildQueue(cfg config.Config, log *slog.Logger) (queue.Queue, *nats.Conn, error) {
	if cfg.QueueURL == "" {
		return nil, nil, errors.New("QUEUE_URL is required for the worker")
	}
	nc, err := nats.Connect(cfg.QueueURL, nats.Name("doc-summarizer-worker"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	log.Info("using NATS queue", "url", cfg.QueueURL)
	return queue.NewNATS(log, nc), nc, nil
}
