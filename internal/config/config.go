// Package config loads the nearby API configuration from per-environment
// YAML files with ${VAR} substitution.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the nearby API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Search   SearchConfig   `yaml:"search"`
	Curate   CurateConfig   `yaml:"curate"`
	Cache    CacheConfig    `yaml:"cache"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds Redis connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// SearchConfig holds upstream search index settings.
type SearchConfig struct {
	IndexName       string  `yaml:"index_name"`
	KeyPrefix       string  `yaml:"key_prefix"`
	OverfetchFactor int     `yaml:"overfetch_factor"` // raw candidates = factor * target count
	PageSize        int     `yaml:"page_size"`
	DefaultRadiusM  float64 `yaml:"default_radius_m"`
	MaxRadiusM      float64 `yaml:"max_radius_m"`
}

// CurateConfig holds deduplication and distribution defaults.
type CurateConfig struct {
	GroupingPolicy      string  `yaml:"grouping_policy"` // coordinate, photo
	FeaturedFirst       bool    `yaml:"featured_first"`
	MaxPerGroup         int     `yaml:"max_per_group"`
	TargetCount         int     `yaml:"target_count"`
	CollapseTitles      bool    `yaml:"collapse_titles"`
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	MinTokenLen         int     `yaml:"min_token_len"`
}

// CacheConfig holds result cache settings.
type CacheConfig struct {
	TTLHours int `yaml:"ttl_hours"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Search.IndexName == "" {
		c.Search.IndexName = "nearby:products:idx"
	}
	if c.Search.KeyPrefix == "" {
		c.Search.KeyPrefix = "nearby:products:"
	}
	if c.Search.OverfetchFactor <= 0 {
		c.Search.OverfetchFactor = 4
	}
	if c.Search.PageSize <= 0 {
		c.Search.PageSize = 50
	}
	if c.Search.DefaultRadiusM <= 0 {
		c.Search.DefaultRadiusM = 25_000
	}
	if c.Search.MaxRadiusM <= 0 {
		c.Search.MaxRadiusM = 100_000
	}
	if c.Curate.GroupingPolicy == "" {
		c.Curate.GroupingPolicy = "coordinate"
	}
	if c.Curate.MaxPerGroup <= 0 {
		c.Curate.MaxPerGroup = 2
	}
	if c.Curate.TargetCount <= 0 {
		c.Curate.TargetCount = 24
	}
	if c.Curate.SimilarityThreshold <= 0 {
		c.Curate.SimilarityThreshold = 0.8
	}
	if c.Curate.MinTokenLen <= 0 {
		c.Curate.MinTokenLen = 2
	}
	if c.Cache.TTLHours <= 0 {
		c.Cache.TTLHours = 24
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	switch c.Curate.GroupingPolicy {
	case "coordinate", "photo":
		// ok
	default:
		return fmt.Errorf(
			"curate.grouping_policy must be \"coordinate\" or \"photo\", got %q",
			c.Curate.GroupingPolicy,
		)
	}
	if c.Curate.SimilarityThreshold > 1 {
		return fmt.Errorf(
			"curate.similarity_threshold must be between 0 and 1, got %v",
			c.Curate.SimilarityThreshold,
		)
	}
	if c.Search.MaxRadiusM < c.Search.DefaultRadiusM {
		return fmt.Errorf("search.max_radius_m must be >= search.default_radius_m")
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
