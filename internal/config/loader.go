// Package config provides configuration loading, defaults, and validation for
// the BrandGuard-Intelligence scoring engine.
package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all platform settings.
const envPrefix = "BRANDGUARD"

// newViper builds a pre-configured Viper instance with the platform's
// standard settings: YAML file type, BRANDGUARD_ env prefix, automatic env
// binding, and a key replacer that maps "." → "_" so that nested keys like
// "neo4j.uri" resolve to "BRANDGUARD_NEO4J_URI".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	registerKeys(v)
	return v
}

// registerKeys seeds viper with every known configuration key so that
// AutomaticEnv overrides survive Unmarshal even when no config file sets the
// key.  Values here are zero values; real defaults come from ApplyDefaults.
func registerKeys(v *viper.Viper) {
	for _, key := range []string{
		"server.port", "server.mode", "server.read_timeout", "server.write_timeout", "server.shutdown_timeout",
		"neo4j.uri", "neo4j.user", "neo4j.password", "neo4j.database",
		"neo4j.max_connection_pool_size", "neo4j.connection_timeout",
		"redis.addr", "redis.password", "redis.db", "redis.pool_size", "redis.min_idle_conns",
		"redis.dial_timeout", "redis.read_timeout", "redis.write_timeout", "redis.key_prefix",
		"database.host", "database.port", "database.user", "database.password", "database.db_name",
		"database.ssl_mode", "database.max_conns", "database.min_conns",
		"database.conn_max_lifetime", "database.migration_path",
		"kafka.brokers", "kafka.group_id", "kafka.auto_offset_reset",
		"kafka.producer_retries", "kafka.batch_timeout",
		"matching.similarity_floor", "matching.write_back_floor", "matching.max_window_tokens",
		"matching.rebuild_interval", "matching.seed_brands",
		"scoring.pricing_weight", "scoring.attribute_weight", "scoring.seller_weight",
		"scoring.language_weight", "scoring.geography_weight",
		"scoring.price_fraction", "scoring.likely_counterfeit_threshold",
		"cache.variation_ttl", "cache.attribute_ttl", "cache.capacity",
		"batch.chunk_size", "batch.concurrency", "batch.timeout", "batch.chunk_pause",
		"log.level", "log.format", "log.output",
	} {
		v.SetDefault(key, nil)
	}
}

// Load reads the YAML file at configPath, merges any BRANDGUARD_* environment
// variable overrides, applies platform defaults for unset fields, and
// validates the result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from BRANDGUARD_* environment
// variables, with no config file required.  Preferred for containerised
// (12-factor) deployments.
//
// Naming convention: BRANDGUARD_<SECTION>_<FIELD>, e.g. BRANDGUARD_REDIS_ADDR.
func LoadFromEnv() (*Config, error) {
	v := newViper()
	return unmarshalAndFinalize(v)
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// Watch monitors configPath for changes and invokes onChange with the newly
// parsed Config whenever the file is modified on disk.  Intended for
// hot-reloading non-critical settings such as log level and scoring
// thresholds; callers are responsible for applying only the safe subset of
// changes at runtime.
//
// Watch is non-blocking; it starts a background goroutine managed by viper.
// If the changed file fails to parse or validate, onChange is NOT called.
func Watch(configPath string, onChange func(*Config)) {
	v := newViper()
	v.SetConfigFile(configPath)

	// Initial read — errors are ignored here; callers should call Load first.
	_ = v.ReadInConfig()

	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			// Invalid config on disk; skip the callback so the application
			// never enters a broken state.
			return
		}
		onChange(cfg)
	})
}

// MustLoad is a convenience wrapper around Load that panics on any error.
// Intended for main() where a config-load failure is always fatal.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}

//Personal.AI order the ending
