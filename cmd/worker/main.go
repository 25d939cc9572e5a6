// Ingestion worker entry point for BrandGuard-Intelligence: consumes the
// listing event streams, scores submitted listings, persists completed
// results, and keeps cached brand contexts coherent across replicas.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

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
	"github.com/turtacn/BrandGuard-Intelligence/pkg/errors"
)

// Version is injected via ldflags.
var Version = "dev"

const (
	defaultHealthPort = 8081
	maxRetries        = 3
	retryBackoff      = 1 * time.Second
	maxRetryBackoff   = 30 * time.Second
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (default: environment variables)")
	healthPort := flag.Int("health-port", defaultHealthPort, "health/metrics endpoint port")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting BrandGuard worker", logging.String("version", Version))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Metrics.
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            "brandguard",
		Subsystem:            "worker",
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

	// Redis: shared graph cache and rebuild lock.
	var locker scoring.Locker
	var cachedStore *redisclient.CachedGraphStore
	redisCli, err := redisclient.NewClient(cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis unavailable, running without shared cache and rebuild lock", logging.Err(err))
	} else {
		defer redisCli.Close()
		cache := redisclient.NewRedisCache(redisCli, logger)
		cachedStore = redisclient.NewCachedGraphStore(store, cache, cfg.Cache.VariationTTL, cfg.Cache.AttributeTTL, logger)
		store = cachedStore
		locker = redisclient.NewRebuildLocker(redisCli, logger)
	}

	// Postgres: score history persistence.
	var history listing.HistoryStore
	if cfg.Database.Host != "" {
		pgConn, err := postgres.NewConnection(ctx, cfg.Database, logger)
		if err != nil {
			logger.Warn("Postgres unavailable, scored events will not be persisted", logging.Err(err))
		} else {
			defer pgConn.Close()
			history = pgrepo.NewScoreHistoryRepository(pgConn.Pool(), logger)
		}
	}

	// Kafka producer: the scoring service emits listing.scored events which
	// this same worker group persists.
	producer, err := kafka.NewProducer(cfg.Kafka, logger)
	if err != nil {
		logger.Fatal("failed to create Kafka producer", logging.Err(err))
	}
	defer producer.Close()
	publisher := kafka.NewEventPublisher(producer, "worker", logger)

	// Scoring core.
	index := brandmatch.NewIndex(cfg.Matching.SimilarityFloor, logger)
	svc := scoring.NewService(cfg, index, store, publisher, recorder, nil, logger)
	rebuilder := scoring.NewRebuilder(index, store, locker,
		cfg.Matching.SeedBrands, cfg.Matching.RebuildInterval, nil, logger)

	go rebuilder.Run(ctx)

	// Consumer with retry and dead-lettering.
	topics := []string{kafka.TopicListingSubmitted, kafka.TopicGraphUpdated}
	if history != nil {
		topics = append(topics, kafka.TopicListingScored)
	}
	consumer, err := kafka.NewConsumer(cfg.Kafka, topics, kafka.RetryConfig{
		MaxRetries:      maxRetries,
		RetryBackoff:    retryBackoff,
		MaxRetryBackoff: maxRetryBackoff,
		DeadLetterTopic: kafka.TopicDeadLetterScoring,
	}, logger)
	if err != nil {
		logger.Fatal("failed to create Kafka consumer", logging.Err(err))
	}
	defer consumer.Close()

	consumer.Subscribe(kafka.TopicListingSubmitted, instrumented(appMetrics, kafka.TopicListingSubmitted,
		handleSubmitted(svc, logger)))
	consumer.Subscribe(kafka.TopicGraphUpdated, instrumented(appMetrics, kafka.TopicGraphUpdated,
		handleGraphUpdated(svc, cachedStore, logger)))
	if history != nil {
		consumer.Subscribe(kafka.TopicListingScored, instrumented(appMetrics, kafka.TopicListingScored,
			handleScored(history, logger)))
	}

	if err := consumer.Start(ctx); err != nil {
		logger.Fatal("failed to start Kafka consumer", logging.Err(err))
	}

	healthSrv := startHealthServer(*healthPort, collector, logger)

	<-ctx.Done()
	logger.Info("shutdown signal received")

	if err := consumer.Close(); err != nil {
		logger.Error("consumer shutdown error", logging.Err(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := healthSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("health server shutdown error", logging.Err(err))
	}

	logger.Info("BrandGuard worker stopped")
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadFromEnv()
}

// decodeEnvelope parses the raw message into the standard event envelope.
func decodeEnvelope(msg *kafka.Message) (*kafka.EventEnvelope, error) {
	var env kafka.EventEnvelope
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "malformed event envelope")
	}
	return &env, nil
}

// handleSubmitted scores a queued listing. The scoring service publishes
// the listing.scored event itself; rejections are terminal and must not be
// redelivered.
func handleSubmitted(svc *scoring.Service, logger logging.Logger) kafka.MessageHandler {
	log := logger.Named("submitted_handler")
	return func(ctx context.Context, msg *kafka.Message) error {
		env, err := decodeEnvelope(msg)
		if err != nil {
			return err
		}
		var payload kafka.ListingSubmittedPayload
		if err := env.DecodePayload(&payload); err != nil {
			return err
		}

		result, err := svc.Analyze(ctx, &payload.Listing)
		if err != nil {
			if result != nil {
				// Rejected or incomplete: retrying cannot change the verdict.
				log.Warn("listing not scored",
					logging.String("listing_id", payload.Listing.ID),
					logging.String("outcome", string(result.Outcome)),
					logging.Err(err),
				)
				return nil
			}
			return err
		}

		log.Info("listing scored",
			logging.String("listing_id", result.ListingID),
			logging.Int("score", result.Score),
			logging.String("risk_level", string(result.RiskLevel)),
		)
		return nil
	}
}

// handleScored persists a completed analysis to the score history.
func handleScored(history listing.HistoryStore, logger logging.Logger) kafka.MessageHandler {
	log := logger.Named("scored_handler")
	return func(ctx context.Context, msg *kafka.Message) error {
		env, err := decodeEnvelope(msg)
		if err != nil {
			return err
		}
		var payload kafka.ListingScoredPayload
		if err := env.DecodePayload(&payload); err != nil {
			return err
		}

		if err := history.Save(ctx, &payload.Result); err != nil {
			return err
		}
		log.Debug("score persisted", logging.String("listing_id", payload.ListingID))
		return nil
	}
}

// handleGraphUpdated drops every cached context for the brand so the next
// analysis reloads fresh graph data.
func handleGraphUpdated(svc *scoring.Service, cachedStore *redisclient.CachedGraphStore, logger logging.Logger) kafka.MessageHandler {
	log := logger.Named("graph_handler")
	return func(ctx context.Context, msg *kafka.Message) error {
		env, err := decodeEnvelope(msg)
		if err != nil {
			return err
		}
		var payload kafka.GraphUpdatedPayload
		if err := env.DecodePayload(&payload); err != nil {
			return err
		}

		svc.Cache().Invalidate(payload.Brand)
		if cachedStore != nil {
			cachedStore.InvalidateBrand(ctx, payload.Brand)
		}
		log.Info("brand context invalidated", logging.String("brand", payload.Brand))
		return nil
	}
}

// instrumented wraps a handler with per-topic consumption metrics.
func instrumented(metrics *prometheus.AppMetrics, topic string, handler kafka.MessageHandler) kafka.MessageHandler {
	return func(ctx context.Context, msg *kafka.Message) error {
		start := time.Now()
		err := handler(ctx, msg)
		prometheus.RecordEventConsumed(metrics, topic, time.Since(start), err)
		return err
	}
}

// startHealthServer exposes liveness and metrics for the worker process.
func startHealthServer(port int, collector prometheus.MetricsCollector, logger logging.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	go func() {
		logger.Info("health server listening", logging.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("health server error", logging.Err(err))
		}
	}()

	return srv
}

//Personal.AI order the ending
