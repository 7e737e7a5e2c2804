// Package config loads the scorecard configuration file.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the contents of the YAML configuration file.
type Config struct {
	// LookaheadDays bounds the upcoming milestone window.
	LookaheadDays int `yaml:"lookahead_days"`
	// TimelineLimit truncates the cross-table timeline; 0 keeps every event.
	TimelineLimit *int `yaml:"timeline_limit"`
	// TopRisks is the number of highest-severity risks reported.
	TopRisks int `yaml:"top_risks"`
	// Synonyms adds header spellings per sheet and canonical column.
	Synonyms map[string]map[string][]string `yaml:"synonyms"`
	// Filter holds default portfolio filters.
	Filter FilterConfig `yaml:"filter"`

	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
}

// FilterConfig mirrors the CLI filter flags.
type FilterConfig struct {
	Workstreams     []string `yaml:"workstreams"`
	Owners          []string `yaml:"owners"`
	Health          []string `yaml:"health"`
	IncludeComplete bool     `yaml:"include_complete"`
}

// ServerConfig configures `scorecard serve`.
type ServerConfig struct {
	Addr string `yaml:"addr"`
	// MaxUploadMB caps multipart uploads.
	MaxUploadMB int64 `yaml:"max_upload_mb"`
}

// DBConfig configures the Postgres run store. An empty URL disables it.
type DBConfig struct {
	URL    string `yaml:"url"`
	Schema string `yaml:"schema"`
	Tag    string `yaml:"tag"`
}

// Defaults.
const (
	DefaultLookaheadDays = 45
	DefaultTimelineLimit = 20
	DefaultTopRisks      = 5
	DefaultAddr          = ":8080"
	DefaultMaxUploadMB   = 20
	DefaultSchema        = "scorecard"
)

// Default returns the configuration used when no file is given.
func Default() Config {
	var cfg Config
	cfg.applyDefaults()
	cfg.overrideFromEnv()
	return cfg
}

// Load reads path, applies defaults and then environment overrides.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()
	cfg.overrideFromEnv()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LookaheadDays <= 0 {
		c.LookaheadDays = DefaultLookaheadDays
	}
	if c.TimelineLimit == nil {
		n := DefaultTimelineLimit
		c.TimelineLimit = &n
	}
	if c.TopRisks <= 0 {
		c.TopRisks = DefaultTopRisks
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.MaxUploadMB <= 0 {
		c.Server.MaxUploadMB = DefaultMaxUploadMB
	}
	if c.DB.Schema == "" {
		c.DB.Schema = DefaultSchema
	}
}

// overrideFromEnv lets the environment replace the server address and db url.
func (c *Config) overrideFromEnv() {
	if addr := strings.TrimSpace(os.Getenv("SCORECARD_ADDR")); addr != "" {
		c.Server.Addr = addr
	}
	if url := DBURLFromEnv(); url != "" {
		c.DB.URL = url
	}
}

// DBURLFromEnv returns SCORECARD_DB_URL, falling back to DATABASE_URL.
func DBURLFromEnv() string {
	if value := strings.TrimSpace(os.Getenv("SCORECARD_DB_URL")); value != "" {
		return value
	}
	return strings.TrimSpace(os.Getenv("DATABASE_URL"))
}
