// API server entry point for BrandGuard-Intelligence.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/turtacn/BrandGuard-Intelligence/internal/application/scoring"
	"github.com/turtacn/BrandGuard-Intelligence/internal/config"
	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/brand"
	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/listing"
	neo4jdriver "github.com/turtacn/BrandGuard-Intelligence/internal/infrastructure/database/neo4j"
	neo4jrepo "github.com/turtacn/BrandGuard-Intelligence/internal/infrastructure/database/neo4j/repositories"
	"github.com/turtacn/BrandGuard-Intelligence/internal/infrastructure/database/postgres"
	pgrepo "github.com/turtacn/BrandGuard-Intelligence/internal/infrastructure/database/postgres/repositories"
	redisclient "github.com/turtacn/BrandGuard-Intelligence/internal/infrastructure/database/redis"
	"github.com/turtacn/BrandGuard-Intelligence/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/BrandGuard-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/BrandGuard-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/BrandGuard-Intelligence/internal/intelligence/brandmatch"
	httpserver "github.com/turtacn/BrandGuard-Intelligence/internal/interfaces/http"
	"github.com/turtacn/BrandGuard-Intelligence/internal/interfaces/http/handlers"
	"github.com/turtacn/BrandGuard-Intelligence/internal/interfaces/http/middleware"
)

// Version is injected via ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to configuration file (default: environment variables)")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		OutputPaths: outputPaths(cfg.Log.Output),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting BrandGuard API server",
		logging.String("version", Version),
		logging.Int("port", cfg.Server.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Metrics.
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            "brandguard",
		Subsystem:            "apiserver",
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, logger)
	if err != nil {
		logger.Fatal("failed to initialize metrics collector", logging.Err(err))
	}
	appMetrics := prometheus.NewAppMetrics(collector)
	recorder := prometheus.NewRecorder(appMetrics)

	// Brand knowledge graph.
	graphDriver, err := neo4jdriver.NewDriver(cfg.Neo4j, logger)
	if err != nil {
		logger.Fatal("failed to connect to Neo4j", logging.Err(err))
	}
	defer graphDriver.Close()

	var store brand.GraphStore = neo4jrepo.NewNeo4jBrandRepo(graphDriver, logger)

	checkers := []handlers.HealthChecker{
		handlers.CheckerFunc{ComponentName: "neo4j", Fn: graphDriver.HealthCheck},
	}

	// Redis: shared graph cache and the cross-replica rebuild lock. The
	// server runs degraded without it.
	var locker scoring.Locker
	redisCli, err := redisclient.NewClient(cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis unavailable, running without shared cache and rebuild lock", logging.Err(err))
	} else {
		defer redisCli.Close()
		cache := redisclient.NewRedisCache(redisCli, logger)
		store = redisclient.NewCachedGraphStore(store, cache, cfg.Cache.VariationTTL, cfg.Cache.AttributeTTL, logger)
		locker = redisclient.NewRebuildLocker(redisCli, logger)
		checkers = append(checkers, handlers.CheckerFunc{ComponentName: "redis", Fn: redisCli.HealthCheck})
	}

	// Postgres: score history. Optional.
	var history listing.HistoryStore
	if cfg.Database.Host != "" {
		if err := postgres.RunMigrations(databaseURL(cfg.Database), "file://"+cfg.Database.MigrationPath); err != nil {
			logger.Error("failed to run database migrations", logging.Err(err))
		}
		pgConn, err := postgres.NewConnection(ctx, cfg.Database, logger)
		if err != nil {
			logger.Warn("Postgres unavailable, score history endpoints disabled", logging.Err(err))
		} else {
			defer pgConn.Close()
			history = pgrepo.NewScoreHistoryRepository(pgConn.Pool(), logger)
			checkers = append(checkers, handlers.CheckerFunc{ComponentName: "postgres", Fn: pgConn.HealthCheck})
		}
	}

	// Kafka: event publishing and async submission. Optional.
	var publisher scoring.EventPublisher
	var submitter handlers.Submitter
	var notifier handlers.GraphNotifier
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := kafka.NewProducer(cfg.Kafka, logger)
		if err != nil {
			logger.Warn("Kafka unavailable, events disabled", logging.Err(err))
		} else {
			defer producer.Close()
			events := kafka.NewEventPublisher(producer, "apiserver", logger)
			publisher = events
			submitter = events
			notifier = events
		}
	}

	// Scoring core.
	index := brandmatch.NewIndex(cfg.Matching.SimilarityFloor, logger)
	svc := scoring.NewService(cfg, index, store, publisher, recorder, nil, logger)
	batch := scoring.NewBatchCoordinator(svc, cfg.Batch, logger)
	rebuilder := scoring.NewRebuilder(index, store, locker,
		cfg.Matching.SeedBrands, cfg.Matching.RebuildInterval, nil, logger)

	go rebuilder.Run(ctx)

	// HTTP interface.
	rlCfg := middleware.DefaultRateLimitConfig()
	router := httpserver.NewRouter(httpserver.RouterConfig{
		Mode:           cfg.Server.Mode,
		Listings:       handlers.NewListingHandler(svc, batch, submitter, history, logger),
		Brands:         handlers.NewBrandHandler(store, notifier, logger),
		Admin:          handlers.NewAdminHandler(rebuilder, index, logger),
		Health:         handlers.NewHealthHandler(Version, checkers...),
		Logger:         logger,
		Metrics:        appMetrics,
		MetricsHandler: collector.Handler(),
		RateLimiter:     middleware.NewTokenBucketLimiter(rlCfg.RequestsPerSecond, rlCfg.BurstSize, rlCfg.CleanupInterval),
		RateLimitConfig: rlCfg,
	})

	srv := httpserver.NewServer(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.Error("HTTP server error", logging.Err(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", logging.Err(err))
	}

	logger.Info("BrandGuard API server stopped")
}

// loadConfig reads the given file, or falls back to BRANDGUARD_* environment
// variables plus defaults when no path is provided.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadFromEnv()
}

func outputPaths(output string) []string {
	if output == "" {
		return nil
	}
	return []string{output}
}

// databaseURL renders the connection string used by the migration runner.
func databaseURL(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.SSLMode)
}

//Personal.AI order the ending
