// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	gormLogger "gorm.io/gorm/logger"

	"github.com/cookbook/catalog/internal/application/catalog"
	"github.com/cookbook/catalog/internal/application/favorites"
	"github.com/cookbook/catalog/internal/domain/recipe"
	"github.com/cookbook/catalog/internal/domain/shared"
	"github.com/cookbook/catalog/internal/infrastructure/config"
	"github.com/cookbook/catalog/internal/infrastructure/http/apiserver"
	"github.com/cookbook/catalog/internal/infrastructure/http/handlers"
	"github.com/cookbook/catalog/internal/infrastructure/messaging"
	"github.com/cookbook/catalog/internal/infrastructure/monitoring"
	"github.com/cookbook/catalog/internal/infrastructure/persistence/memory"
	redisStore "github.com/cookbook/catalog/internal/infrastructure/persistence/redis"
	"github.com/cookbook/catalog/internal/infrastructure/persistence/seed"
	"github.com/cookbook/catalog/internal/infrastructure/persistence/sqlite"
	"github.com/cookbook/catalog/internal/infrastructure/security"
	"github.com/cookbook/catalog/internal/ports/inbound"
	"github.com/cookbook/catalog/internal/ports/outbound"
	"github.com/cookbook/catalog/pkg/logger"
)

// ConfigPath is the configuration file to load. Empty searches the
// default locations.
type ConfigPath string

// New returns the application options for the given configuration file
func New(path string) fx.Option {
	return fx.Options(
		fx.Supply(ConfigPath(path)),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		Module,
	)
}

// Module provides all dependency injection modules
var Module = fx.Options(
	// Infrastructure modules
	ConfigModule,
	LoggerModule,
	MonitoringModule,
	StorageModule,

	// Repository modules
	RepositoryModule,

	// Service modules
	ServiceModule,

	// HTTP modules
	HTTPModule,

	// Event modules
	EventModule,

	// Lifecycle hooks
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func(path ConfigPath) (*config.Config, error) {
		return config.Load(string(path))
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, zap.AtomicLevel, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// MonitoringModule provides metrics and tracing
var MonitoringModule = fx.Provide(
	monitoring.NewMetricsCollector,
	func(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*monitoring.TracingProvider, error) {
		tp, err := monitoring.NewTracingProvider(monitoring.TracingConfig{
			ServiceName:    "cookbook",
			ServiceVersion: cfg.App.Version,
			Environment:    cfg.App.Environment,
			OTLPEndpoint:   cfg.Monitoring.OTLPEndpoint,
			SamplingRate:   cfg.Monitoring.SamplingRate,
			Enabled:        cfg.Monitoring.EnableTracing,
		}, log)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{OnStop: tp.Shutdown})
		return tp, nil
	},
)

// favoritesStore is implemented by every favorites backend
type favoritesStore interface {
	outbound.KeyValueStore
	outbound.HealthChecker
}

// StorageModule provides the favorites key-value store selected by
// storage.driver
var StorageModule = fx.Provide(
	func(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (outbound.KeyValueStore, outbound.HealthChecker, error) {
		store, err := newFavoritesStore(lc, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	},
)

func newFavoritesStore(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (favoritesStore, error) {
	switch cfg.Storage.Driver {
	case config.StorageSQLite:
		logLevel := gormLogger.Silent
		if cfg.App.Debug {
			logLevel = gormLogger.Info
		}

		db, err := sqlite.SetupDatabase(cfg.Storage.SQLitePath, logLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
		}

		store := sqlite.NewKeyValueStore(db, log)
		lc.Append(fx.Hook{OnStop: func(context.Context) error { return store.Close() }})

		log.Info("Favorites stored in SQLite", zap.String("path", cfg.Storage.SQLitePath))
		return store, nil

	case config.StorageRedis:
		store := redisStore.NewKeyValueStore(redisStore.NewClient(cfg.Redis), "cookbook", log)
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := store.Ping(ctx); err != nil {
					return fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Redis.Addr(), err)
				}
				return nil
			},
			OnStop: func(context.Context) error { return store.Close() },
		})

		log.Info("Favorites stored in Redis", zap.String("addr", cfg.Redis.Addr()))
		return store, nil

	default:
		log.Info("Favorites stored in memory")
		return memory.NewKeyValueStore(), nil
	}
}

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (outbound.RecipeRepository, error) {
		var initial []recipe.Recipe
		if cfg.Catalog.Seed {
			recipes, err := seed.Recipes()
			if err != nil {
				return nil, fmt.Errorf("failed to load seed recipes: %w", err)
			}
			initial = recipes
		}

		log.Info("Recipe catalog loaded", zap.Int("recipes", len(initial)))
		return memory.NewRecipeRepository(initial), nil
	},
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	fx.Annotate(
		security.NewValidationService,
		fx.As(new(outbound.Validator)),
	),

	// Catalog service
	func(
		recipes outbound.RecipeRepository,
		validator outbound.Validator,
		events outbound.EventPublisher,
		metrics *monitoring.MetricsCollector,
		log *zap.Logger,
	) inbound.CatalogService {
		return catalog.NewService(recipes, validator, events, log, catalog.WithRecorder(metrics))
	},

	// Favorites service
	func(
		store outbound.KeyValueStore,
		cfg *config.Config,
		metrics *monitoring.MetricsCollector,
		log *zap.Logger,
	) (inbound.FavoritesService, error) {
		return favorites.New(context.Background(), store, cfg.Storage.FavoritesKey, metrics, log)
	},
)

// HTTPModule provides HTTP server and handlers
var HTTPModule = fx.Provide(
	handlers.NewCatalogHandlers,
	func(cfg *config.Config, store outbound.HealthChecker, log *zap.Logger) *handlers.HealthHandler {
		return handlers.NewHealthHandler(cfg.App.Version, map[string]outbound.HealthChecker{
			"favorites_store": store,
		}, log)
	},
	apiserver.NewServer,
)

// EventModule provides event handling
var EventModule = fx.Options(
	fx.Provide(
		func(metrics *monitoring.MetricsCollector, log *zap.Logger) *messaging.Dispatcher {
			return messaging.NewDispatcher(metrics, log)
		},
		func(d *messaging.Dispatcher) outbound.EventPublisher { return d },
	),
	fx.Invoke(RegisterEventHandlers),
)

// RegisterEventHandlers logs catalog changes as they happen
func RegisterEventHandlers(d *messaging.Dispatcher, log *zap.Logger) {
	log = log.Named("catalog-events")

	d.Register("recipe.added", func(e shared.DomainEvent) error {
		added := e.(recipe.RecipeAddedEvent)
		log.Info("Recipe added event received",
			zap.String("recipe_id", added.RecipeID),
			zap.String("name", added.Name),
		)
		return nil
	})
	d.Register("recipe.updated", func(e shared.DomainEvent) error {
		log.Info("Recipe updated event received",
			zap.String("recipe_id", e.(recipe.RecipeUpdatedEvent).RecipeID),
		)
		return nil
	})
	d.Register("recipe.comment.added", func(e shared.DomainEvent) error {
		added := e.(recipe.CommentAddedEvent)
		log.Info("Comment added event received",
			zap.String("recipe_id", added.RecipeID),
			zap.String("comment_id", added.CommentID),
		)
		return nil
	})
}

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
	RegisterConfigWatch,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	server *apiserver.Server,
	tracing *monitoring.TracingProvider,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting Cookbook catalog",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
				zap.String("storage", cfg.Storage.Driver),
				zap.Bool("tracing", tracing.Enabled()),
			)
			return server.Start()
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Cookbook catalog")

			if err := server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			// Flush logs
			_ = log.Sync()

			return nil
		},
	})
}

// RegisterConfigWatch re-applies the log level whenever the config file changes
func RegisterConfigWatch(lc fx.Lifecycle, path ConfigPath, level zap.AtomicLevel, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			_, err := config.Watch(string(path),
				func(cfg *config.Config, e fsnotify.Event) {
					next := logger.ParseLevel(cfg.App.LogLevel)
					if next == level.Level() {
						return
					}
					level.SetLevel(next)
					log.Info("Log level changed",
						zap.String("level", next.String()),
						zap.String("file", e.Name),
					)
				},
				func(err error) {
					log.Warn("Ignoring invalid configuration change", zap.Error(err))
				},
			)
			return err
		},
	})
}
