// Package config provides configuration loading, defaults, and validation for
// the BrandGuard-Intelligence scoring engine.
package config

import "time"

const (
	DefaultServerPort = 8080
	DefaultServerMode = "debug"

	DefaultNeo4jURI      = "bolt://localhost:7687"
	DefaultNeo4jDatabase = "neo4j"

	DefaultRedisAddr = "localhost:6379"

	DefaultDBHost     = "localhost"
	DefaultDBPort     = 5432
	DefaultDBName     = "brandguard"
	DefaultDBMaxConns = 25

	DefaultKafkaBroker  = "localhost:9092"
	DefaultKafkaGroupID = "brandguard-scoring"

	// DefaultSimilarityFloor is the minimum fuzzy-match similarity accepted
	// as a brand candidate.  Tunable against labeled data.
	DefaultSimilarityFloor = 0.75
	DefaultWriteBackFloor  = 0.85
	DefaultMaxWindowTokens = 3
	DefaultRebuildInterval = time.Hour

	// Indicator weights sum to 1.0.  Re-tune against labeled data before
	// changing; Validate rejects any set that does not sum to 1.0.
	DefaultPricingWeight   = 0.30
	DefaultAttributeWeight = 0.20
	DefaultSellerWeight    = 0.15
	DefaultLanguageWeight  = 0.15
	DefaultGeographyWeight = 0.20

	DefaultPriceFraction              = 0.4
	DefaultLikelyCounterfeitThreshold = 60

	DefaultVariationTTL  = time.Hour
	DefaultAttributeTTL  = 5 * time.Minute
	DefaultCacheCapacity = 1024

	DefaultBatchChunkSize   = 50
	DefaultBatchConcurrency = 10
	DefaultBatchTimeout     = 2 * time.Minute
	DefaultBatchChunkPause  = time.Second

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// DefaultSeedBrands is the bundled exact-match fallback used before the
// variation index finishes its first build.
var DefaultSeedBrands = []string{
	"Nike", "Adidas", "Gucci", "Louis Vuitton", "Rolex",
	"Apple", "Samsung", "Chanel", "Prada", "Hermes",
}

// ApplyDefaults fills every zero-value field in cfg with the platform
// default.  Fields already set by the caller are left unchanged so that
// explicit configuration always wins.  It must be called after unmarshalling
// and before Validate().
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// Server
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 15 * time.Second
	}

	// Neo4j
	if cfg.Neo4j.URI == "" {
		cfg.Neo4j.URI = DefaultNeo4jURI
	}
	if cfg.Neo4j.Database == "" {
		cfg.Neo4j.Database = DefaultNeo4jDatabase
	}
	if cfg.Neo4j.MaxConnectionPoolSize == 0 {
		cfg.Neo4j.MaxConnectionPoolSize = 50
	}

	// Redis
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = "brandguard:"
	}

	// Database
	if cfg.Database.Host == "" {
		cfg.Database.Host = DefaultDBHost
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = DefaultDBPort
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = DefaultDBName
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = DefaultDBMaxConns
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}

	// Kafka
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = DefaultKafkaGroupID
	}
	if cfg.Kafka.AutoOffsetReset == "" {
		cfg.Kafka.AutoOffsetReset = "earliest"
	}

	// Matching
	if cfg.Matching.SimilarityFloor == 0 {
		cfg.Matching.SimilarityFloor = DefaultSimilarityFloor
	}
	if cfg.Matching.WriteBackFloor == 0 {
		cfg.Matching.WriteBackFloor = DefaultWriteBackFloor
	}
	if cfg.Matching.MaxWindowTokens == 0 {
		cfg.Matching.MaxWindowTokens = DefaultMaxWindowTokens
	}
	if cfg.Matching.RebuildInterval == 0 {
		cfg.Matching.RebuildInterval = DefaultRebuildInterval
	}
	if len(cfg.Matching.SeedBrands) == 0 {
		cfg.Matching.SeedBrands = append([]string(nil), DefaultSeedBrands...)
	}

	// Scoring: weights default as a set — overriding one requires
	// overriding all so they still sum to 1.0.
	if cfg.Scoring.PricingWeight == 0 && cfg.Scoring.AttributeWeight == 0 &&
		cfg.Scoring.SellerWeight == 0 && cfg.Scoring.LanguageWeight == 0 &&
		cfg.Scoring.GeographyWeight == 0 {
		cfg.Scoring.PricingWeight = DefaultPricingWeight
		cfg.Scoring.AttributeWeight = DefaultAttributeWeight
		cfg.Scoring.SellerWeight = DefaultSellerWeight
		cfg.Scoring.LanguageWeight = DefaultLanguageWeight
		cfg.Scoring.GeographyWeight = DefaultGeographyWeight
	}
	if cfg.Scoring.PriceFraction == 0 {
		cfg.Scoring.PriceFraction = DefaultPriceFraction
	}
	if cfg.Scoring.LikelyCounterfeitThreshold == 0 {
		cfg.Scoring.LikelyCounterfeitThreshold = DefaultLikelyCounterfeitThreshold
	}

	// Cache
	if cfg.Cache.VariationTTL == 0 {
		cfg.Cache.VariationTTL = DefaultVariationTTL
	}
	if cfg.Cache.AttributeTTL == 0 {
		cfg.Cache.AttributeTTL = DefaultAttributeTTL
	}
	if cfg.Cache.Capacity == 0 {
		cfg.Cache.Capacity = DefaultCacheCapacity
	}

	// Batch
	if cfg.Batch.ChunkSize == 0 {
		cfg.Batch.ChunkSize = DefaultBatchChunkSize
	}
	if cfg.Batch.Concurrency == 0 {
		cfg.Batch.Concurrency = DefaultBatchConcurrency
	}
	if cfg.Batch.Timeout == 0 {
		cfg.Batch.Timeout = DefaultBatchTimeout
	}
	if cfg.Batch.ChunkPause == 0 {
		cfg.Batch.ChunkPause = DefaultBatchChunkPause
	}

	// Log
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}

//Personal.AI order the ending
