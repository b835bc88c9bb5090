package container

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"superadmin/navigation/internal/api"
	"superadmin/navigation/internal/breadcrumb"
	"superadmin/navigation/internal/cache"
	"superadmin/navigation/internal/client"
	"superadmin/navigation/internal/config"
	"superadmin/navigation/internal/domain"
	"superadmin/navigation/internal/fallback"
	"superadmin/navigation/internal/i18n"
	"superadmin/navigation/internal/queue"
	"superadmin/navigation/internal/repository"
	"superadmin/navigation/internal/service"
	"superadmin/navigation/internal/state"
	"superadmin/navigation/internal/upstream"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// Container holds all initialized components
type Container struct {
	Config     *config.Config
	Client     client.MenuClient
	Snapshots  repository.SnapshotRepository
	Queue      queue.Queue
	MenuStore  state.MenuStore
	Menus      *cache.MenuCache
	Service    *service.Service
	HTTPServer *http.Server

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized.
// Postgres and Redis are optional; without them the cache stays in-process
// and invalidations are applied directly.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	configureLogging(cfg.Logging)

	container := &Container{
		Config: cfg,
	}

	upstreams, err := upstream.NewSupplier(ctx, cfg.MenuAPI.BaseURLs, cfg.MenuAPI.HealthPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize upstream supplier: %w", err)
	}

	tokens := client.NewContextTokenProvider(client.NewStaticTokenProvider(cfg.MenuAPI.Token))
	menuClient := client.NewMenuClient(cfg.MenuAPI, upstreams, tokens)
	container.Client = menuClient

	policy := fallback.Policy{
		UseFallback: cfg.App.UseFallback,
		Development: cfg.App.IsDevelopment(),
	}
	cacheOpts := cache.Options{
		StaleTime: cfg.Cache.StaleDuration(),
		GCTime:    cfg.Cache.GCDuration(),
	}

	if cfg.Database.Enabled {
		db, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
		}
		container.db = db

		snapshots := repository.NewSnapshotRepository(db)
		if err := snapshots.EnsureSchema(ctx); err != nil {
			container.Close()
			return nil, fmt.Errorf("failed to prepare snapshot schema: %w", err)
		}
		log.Info("✅ Connected to Postgres successfully")

		container.Snapshots = snapshots
		policy.Snapshots = snapshots
		cacheOpts.Snapshots = snapshots
	}

	var taskQueue queue.Queue
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})
		container.redis = rdb

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			container.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("✅ Connected to Redis successfully")

		redisQueue, err := queue.NewRedisQueue(ctx, rdb, cfg.Redis)
		if err != nil {
			container.Close()
			return nil, err
		}
		taskQueue = redisQueue
		container.Queue = redisQueue

		store := state.NewRedisMenuStore(rdb)
		container.MenuStore = store
		cacheOpts.Store = store
	}

	cacheOpts.Policy = policy
	container.Menus = cache.NewMenuCache(client.NewNavigationFetcher(menuClient), cacheOpts)

	resolver := breadcrumb.NewResolver(breadcrumb.Options{
		Locales:         cfg.Navigation.Languages,
		DefaultLanguage: cfg.Navigation.DefaultLanguage,
		DefaultSection:  cfg.Navigation.DefaultSection,
	}, i18n.NewTranslator(cfg.Navigation.DefaultLanguage, nil))

	container.Service = service.NewService(container.Menus, taskQueue, resolver, service.Options{
		MenuTypes:       domain.ParseMenuTypes(cfg.Navigation.MenuTypes),
		Languages:       cfg.Navigation.Languages,
		DefaultLanguage: cfg.Navigation.DefaultLanguage,
		IncludeInactive: cfg.Navigation.IncludeInactive,
		MaxRefreshRetry: cfg.Navigation.MaxRefreshRetry,
		GroupName:       cfg.Redis.ConsumerGroup,
		MinIdleTime:     time.Duration(cfg.Redis.MinIdleTime) * time.Second,
	})

	container.HTTPServer = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.New(container.Service, cfg.Server.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return container, nil
}

// Run warms the menu cache, starts the workers and serves HTTP until ctx is done
func (c *Container) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	// Prefetch every menu type and language so the first request hits the cache
	g.Go(func() error {
		return c.Service.Warm(ctx)
	})

	g.Go(func() error {
		return c.Service.RunWorkers(ctx, c.Config.Navigation.Workers)
	})

	g.Go(func() error {
		log.Infof("🚀 Navigation API listening on %s", c.HTTPServer.Addr)
		if err := c.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return c.HTTPServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Warnf("⚠️ Failed to close Redis client: %v", err)
		}
	}

	log.Info("Container shut down successfully")
	return nil
}

func configureLogging(cfg config.LoggingConfig) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		log.Warnf("⚠️ Unknown log level %q, using info", cfg.Level)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if strings.EqualFold(cfg.Format, "json") {
		log.SetFormatter(&log.JSONFormatter{})
		return
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}
