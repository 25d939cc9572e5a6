// Package config defines all configuration structures for the
// BrandGuard-Intelligence scoring engine.  No I/O or parsing logic lives
// here — only plain data types and validation.
package config

import (
	"fmt"
	"time"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Neo4jConfig holds brand-knowledge-graph connection parameters.
type Neo4jConfig struct {
	URI                   string        `mapstructure:"uri"`
	User                  string        `mapstructure:"user"`
	Password              string        `mapstructure:"password"`
	Database              string        `mapstructure:"database"`
	MaxConnectionPoolSize int           `mapstructure:"max_connection_pool_size"`
	ConnectionTimeout     time.Duration `mapstructure:"connection_timeout"`
}

// RedisConfig holds Redis connection parameters for the shared context cache
// and the rebuild lock.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// DatabaseConfig holds PostgreSQL parameters for the score-history store.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"db_name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxConns        int           `mapstructure:"max_conns"`
	MinConns        int           `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationPath   string        `mapstructure:"migration_path"`
}

// KafkaConfig holds listing-ingestion event stream parameters.
type KafkaConfig struct {
	Brokers         []string      `mapstructure:"brokers"`
	GroupID         string        `mapstructure:"group_id"`
	AutoOffsetReset string        `mapstructure:"auto_offset_reset"` // "earliest" | "latest"
	ProducerRetries int           `mapstructure:"producer_retries"`
	BatchTimeout    time.Duration `mapstructure:"batch_timeout"`
}

// MatchingConfig holds brand-extraction and variation-index tunables.
// Similarity floors and rebuild cadence are deployment-tunable, not fixed.
type MatchingConfig struct {
	// SimilarityFloor is the minimum fuzzy-match score accepted as a brand
	// candidate, in [0,1].
	SimilarityFloor float64 `mapstructure:"similarity_floor"`

	// WriteBackFloor is the minimum confidence at which a fuzzy-matched
	// token is offered to the graph as a candidate variation.
	WriteBackFloor float64 `mapstructure:"write_back_floor"`

	// MaxWindowTokens bounds the n-gram window length during extraction.
	MaxWindowTokens int `mapstructure:"max_window_tokens"`

	// RebuildInterval is the cadence of time-based index rebuilds.
	RebuildInterval time.Duration `mapstructure:"rebuild_interval"`

	// SeedBrands is the statically bundled exact-match fallback used before
	// the first index build completes.
	SeedBrands []string `mapstructure:"seed_brands"`
}

// ScoringConfig holds indicator weights and decision thresholds.
type ScoringConfig struct {
	PricingWeight    float64 `mapstructure:"pricing_weight"`
	AttributeWeight  float64 `mapstructure:"attribute_weight"`
	SellerWeight     float64 `mapstructure:"seller_weight"`
	LanguageWeight   float64 `mapstructure:"language_weight"`
	GeographyWeight  float64 `mapstructure:"geography_weight"`

	// PriceFraction: pricing anomaly triggers when price < fraction×baseline.
	PriceFraction float64 `mapstructure:"price_fraction"`

	// LikelyCounterfeitThreshold is the 0–100 score at or above which a
	// listing is flagged as likely counterfeit.
	LikelyCounterfeitThreshold int `mapstructure:"likely_counterfeit_threshold"`
}

// CacheConfig holds brand-context cache tunables.
type CacheConfig struct {
	// VariationTTL bounds how long cached variation data may be served.
	VariationTTL time.Duration `mapstructure:"variation_ttl"`

	// AttributeTTL bounds attribute/pattern data, which changes more often.
	AttributeTTL time.Duration `mapstructure:"attribute_ttl"`

	// Capacity is the maximum number of per-brand entries before LRU eviction.
	Capacity int `mapstructure:"capacity"`
}

// BatchConfig holds batch-coordinator tunables.
type BatchConfig struct {
	// ChunkSize splits very large inputs into sequential chunks.
	ChunkSize int `mapstructure:"chunk_size"`

	// Concurrency bounds the number of listings scored in parallel.
	Concurrency int `mapstructure:"concurrency"`

	// Timeout is the per-batch deadline; listings unscored at the deadline
	// are returned with an incomplete outcome.
	Timeout time.Duration `mapstructure:"timeout"`

	// ChunkPause is the delay between chunks of a large dataset.
	ChunkPause time.Duration `mapstructure:"chunk_pause"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format string `mapstructure:"format"` // "json" | "console"
	Output string `mapstructure:"output"`
}

// Config is the root configuration structure for the scoring engine.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Neo4j    Neo4jConfig    `mapstructure:"neo4j"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Database DatabaseConfig `mapstructure:"database"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Matching MatchingConfig `mapstructure:"matching"`
	Scoring  ScoringConfig  `mapstructure:"scoring"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Batch    BatchConfig    `mapstructure:"batch"`
	Log      LogConfig      `mapstructure:"log"`
}

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the application.
func (c *Config) Validate() error {
	// Server
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	// Neo4j
	if c.Neo4j.URI == "" {
		return fmt.Errorf("config: neo4j.uri is required")
	}

	// Redis
	if c.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required")
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("config: redis.db must be >= 0, got %d", c.Redis.DB)
	}

	// Database
	if c.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("config: database.port %d is out of range [1, 65535]", c.Database.Port)
	}

	// Kafka
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("config: kafka.brokers must contain at least one broker address")
	}
	if c.Kafka.GroupID == "" {
		return fmt.Errorf("config: kafka.group_id is required")
	}

	// Matching
	if c.Matching.SimilarityFloor < 0 || c.Matching.SimilarityFloor > 1 {
		return fmt.Errorf("config: matching.similarity_floor %.2f is out of range [0,1]", c.Matching.SimilarityFloor)
	}
	if c.Matching.MaxWindowTokens < 1 {
		return fmt.Errorf("config: matching.max_window_tokens must be >= 1, got %d", c.Matching.MaxWindowTokens)
	}

	// Scoring: indicator weights must form a convex combination so the
	// accumulator stays within [0,1] before brand multipliers.
	sum := c.Scoring.PricingWeight + c.Scoring.AttributeWeight + c.Scoring.SellerWeight +
		c.Scoring.LanguageWeight + c.Scoring.GeographyWeight
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("config: scoring indicator weights sum to %.3f, expected 1.0", sum)
	}
	if c.Scoring.PriceFraction <= 0 || c.Scoring.PriceFraction >= 1 {
		return fmt.Errorf("config: scoring.price_fraction %.2f is out of range (0,1)", c.Scoring.PriceFraction)
	}
	if c.Scoring.LikelyCounterfeitThreshold < 0 || c.Scoring.LikelyCounterfeitThreshold > 100 {
		return fmt.Errorf("config: scoring.likely_counterfeit_threshold %d is out of range [0,100]", c.Scoring.LikelyCounterfeitThreshold)
	}

	// Cache
	if c.Cache.Capacity < 1 {
		return fmt.Errorf("config: cache.capacity must be >= 1, got %d", c.Cache.Capacity)
	}
	if c.Cache.AttributeTTL > c.Cache.VariationTTL {
		return fmt.Errorf("config: cache.attribute_ttl must not exceed cache.variation_ttl")
	}

	// Batch
	if c.Batch.Concurrency < 1 {
		return fmt.Errorf("config: batch.concurrency must be >= 1, got %d", c.Batch.Concurrency)
	}

	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}

//Personal.AI order the ending
