package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Snapshot sources
	SnapshotDir     string        `mapstructure:"SNAPSHOT_DIR"`
	SnapshotBaseURL string        `mapstructure:"SNAPSHOT_BASE_URL"`
	SnapshotTimeout time.Duration `mapstructure:"SNAPSHOT_TIMEOUT"`

	// Redis
	RedisURL string `mapstructure:"REDIS_URL"`

	// CORS
	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Refresh
	RefreshInterval  string `mapstructure:"REFRESH_INTERVAL"`
	WatchSnapshotDir bool   `mapstructure:"WATCH_SNAPSHOT_DIR"`

	// Identity resolution
	FallbackIDSource string `mapstructure:"FALLBACK_ID_SOURCE"` // "espn", "sleeper", "gsis"

	// League shape
	LeagueSeasons []int `mapstructure:"LEAGUE_SEASONS"`

	// API limits
	RequestsPerSecond float64 `mapstructure:"REQUESTS_PER_SECOND"`
	RequestBurst      int     `mapstructure:"REQUEST_BURST"`

	// Snapshot HTTP source resilience
	CircuitBreakerThreshold int `mapstructure:"CIRCUIT_BREAKER_THRESHOLD"`
	SnapshotFetchRetries    int `mapstructure:"SNAPSHOT_FETCH_RETRIES"`

	// Cache
	AggregateCacheTTL time.Duration `mapstructure:"AGGREGATE_CACHE_TTL"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("SNAPSHOT_DIR", "./data")
	viper.SetDefault("SNAPSHOT_BASE_URL", "")
	viper.SetDefault("SNAPSHOT_TIMEOUT", "10s")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("REFRESH_INTERVAL", "2h")
	viper.SetDefault("WATCH_SNAPSHOT_DIR", true)
	viper.SetDefault("FALLBACK_ID_SOURCE", "espn") // matches the historical viewer behavior
	viper.SetDefault("LEAGUE_SEASONS", "")
	viper.SetDefault("REQUESTS_PER_SECOND", 25.0)
	viper.SetDefault("REQUEST_BURST", 50)
	viper.SetDefault("CIRCUIT_BREAKER_THRESHOLD", 5)
	viper.SetDefault("SNAPSHOT_FETCH_RETRIES", 3)
	viper.SetDefault("AGGREGATE_CACHE_TTL", "5m")

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Parse CORS origins from comma-separated string
	if corsStr := viper.GetString("CORS_ORIGINS"); corsStr != "" {
		config.CorsOrigins = strings.Split(corsStr, ",")
	}

	// Parse seasons from comma-separated string; empty means seasons are
	// discovered from whatever snapshot files are present
	config.LeagueSeasons = nil
	if seasonsStr := viper.GetString("LEAGUE_SEASONS"); seasonsStr != "" {
		for _, part := range strings.Split(seasonsStr, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			var season int
			if _, err := fmt.Sscanf(part, "%d", &season); err != nil {
				return nil, fmt.Errorf("invalid season %q in LEAGUE_SEASONS", part)
			}
			config.LeagueSeasons = append(config.LeagueSeasons, season)
		}
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
