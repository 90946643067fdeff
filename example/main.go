package main

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/lgzarturo/bootzen"
	"github.com/lgzarturo/bootzen/example/handlers"
	"github.com/lgzarturo/bootzen/middlewares"
	"github.com/lgzarturo/bootzen/pkg/cache"
	"github.com/lgzarturo/bootzen/pkg/config"
	"github.com/lgzarturo/bootzen/pkg/logger"
	"github.com/lgzarturo/bootzen/pkg/redis"
)

type appConfig struct {
	Address  string              `yaml:"address"`
	RedisURL string              `yaml:"redis_url"`
	NoteTTL  time.Duration       `yaml:"note_ttl"`
	Sentry   logger.SentryConfig `yaml:"sentry"`
}

func main() {
	ctx := context.Background()

	cfg := config.MustLoad[appConfig]("config.yaml")
	log := logger.NewWithSentry(cfg.Sentry, middlewares.RequestIDExtractor())

	// Redis connection shared by the cache and the readiness probe.
	client := redis.MustOpen(ctx, cfg.RedisURL)
	noteCache := cache.NewRedis[handlers.Note](client, nil,
		cache.WithPrefix("example"),
		cache.WithRedisDefaultTTL(cfg.NoteTTL),
	)

	app := bootzen.New(
		bootzen.WithCustomLogger(log),

		bootzen.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Logger(middlewares.WithLoggerSkipPaths("/health/live", "/health/ready")),
			middlewares.Timeout(10*time.Second),
			middlewares.Recover(),
		),

		// CORS under the well-known binding so automatic OPTIONS responses
		// carry the same headers.
		bootzen.WithServices(func(c *bootzen.Container) {
			c.Instance(bootzen.CORSBinding, middlewares.CORS())

			c.Singleton("stats", func(c *bootzen.Container) (any, error) {
				return &statsController{started: time.Now()}, nil
			})
		}),

		bootzen.WithHandlers(
			handlers.NewNotesHandler(noteCache, cfg.NoteTTL),
		),

		bootzen.WithRoutes(func(r *bootzen.Router) {
			r.GET("/stats", "stats@Show")
		}),

		bootzen.WithHealthChecks(
			bootzen.WithReadinessCheck("redis", redis.Healthcheck(client)),
		),
	)

	if err := app.Run(cfg.Address,
		bootzen.Logger(log),
		bootzen.ShutdownTimeout(30*time.Second),
		bootzen.ShutdownHook(func(context.Context) error { return noteCache.Close() }),
		bootzen.ShutdownHook(redis.Shutdown(client)),
	); err != nil {
		log.Error("application error", "error", err)
		os.Exit(1)
	}
}

// statsController is resolved from the container by the "stats@Show" route.
type statsController struct {
	started time.Time
}

func (s *statsController) Show(c bootzen.Context) (any, error) {
	return map[string]any{
		"uptime":     time.Since(s.started).String(),
		"goroutines": runtime.NumGoroutine(),
	}, nil
}
