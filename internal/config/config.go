package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv    = "PAPER_INDEXER_CONFIG"
	tableNameEnv     = "DDB_TABLE"
	regionEnv        = "AWS_REGION"
	endpointEnv      = "DDB_ENDPOINT"
	serverPortEnv    = "PAPER_API_PORT"
	defaultTimezone  = "UTC"
	defaultBatchSize = 25
)

// Config holds high-level settings required across the application.
type Config struct {
	Dynamo    DynamoConfig    `yaml:"dynamo"`
	Server    ServerConfig    `yaml:"server"`
	Loader    LoaderConfig    `yaml:"loader"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Logging   LoggingConfig   `yaml:"logging"`
	Sites     []SiteConfig    `yaml:"sites"`
}

// DynamoConfig describes the target table and client settings. Endpoint is
// only set when pointing at DynamoDB Local.
type DynamoConfig struct {
	Table    string `yaml:"table"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
}

// ServerConfig defines the read-API listener.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoaderConfig tunes ingestion behavior. BatchSize must not exceed the
// DynamoDB per-request limit of 25.
type LoaderConfig struct {
	BatchSize      int      `yaml:"batchSize"`
	KeywordLimit   int      `yaml:"keywordLimit"`
	ExtraStopWords []string `yaml:"extraStopWords"`
}

// SchedulerConfig defines the optional recurring refresh.
type SchedulerConfig struct {
	Interval string         `yaml:"interval"`
	Timezone string         `yaml:"timezone"`
	location *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// IntervalDuration parses the refresh interval, defaulting to daily.
func (s SchedulerConfig) IntervalDuration() time.Duration {
	if d, err := time.ParseDuration(s.Interval); err == nil && d > 0 {
		return d
	}
	return 24 * time.Hour
}

// LoggingConfig selects handler level and format (text or json).
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SiteConfig describes a single scraping site with its scanner strategy.
type SiteConfig struct {
	Name       string            `yaml:"name"`
	Scanner    string            `yaml:"scanner"`
	Categories []CategoryConfig  `yaml:"categories"`
	Options    map[string]string `yaml:"options"`
}

// CategoryConfig holds the concrete listing endpoints to crawl.
type CategoryConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides. A local .env file is honored when it exists.
func Load() Config {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()
	cfg.clampBatchSize()

	if len(cfg.Sites) == 0 {
		cfg.Sites = defaultConfig().Sites
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(tableNameEnv); v != "" {
		c.Dynamo.Table = v
	}

	if v := os.Getenv(regionEnv); v != "" {
		c.Dynamo.Region = v
	}

	if v := os.Getenv(endpointEnv); v != "" {
		c.Dynamo.Endpoint = v
	}

	if v := os.Getenv(serverPortEnv); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			c.Server.Port = port
		}
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func (c *Config) clampBatchSize() {
	if c.Loader.BatchSize <= 0 || c.Loader.BatchSize > defaultBatchSize {
		c.Loader.BatchSize = defaultBatchSize
	}
}

func mergeConfig(base, override Config) Config {
	if override.Dynamo.Table != "" {
		base.Dynamo.Table = override.Dynamo.Table
	}
	if override.Dynamo.Region != "" {
		base.Dynamo.Region = override.Dynamo.Region
	}
	if override.Dynamo.Endpoint != "" {
		base.Dynamo.Endpoint = override.Dynamo.Endpoint
	}

	if override.Server.Port != 0 {
		base.Server.Port = override.Server.Port
	}

	if override.Loader.BatchSize != 0 {
		base.Loader.BatchSize = override.Loader.BatchSize
	}
	if override.Loader.KeywordLimit != 0 {
		base.Loader.KeywordLimit = override.Loader.KeywordLimit
	}
	if len(override.Loader.ExtraStopWords) > 0 {
		base.Loader.ExtraStopWords = override.Loader.ExtraStopWords
	}

	if override.Scheduler.Interval != "" {
		base.Scheduler.Interval = override.Scheduler.Interval
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if len(override.Sites) > 0 {
		base.Sites = override.Sites
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Dynamo: DynamoConfig{Table: "research-papers"},
		Server: ServerConfig{Port: 8080},
		Loader: LoaderConfig{
			BatchSize:    defaultBatchSize,
			KeywordLimit: 10,
		},
		Scheduler: SchedulerConfig{Interval: "24h", Timezone: defaultTimezone, location: tz},
		Logging:   LoggingConfig{Level: "info", Format: "text"},
		Sites: []SiteConfig{
			{
				Name:    "arxiv",
				Scanner: "arxiv",
				Categories: []CategoryConfig{
					{Name: "cs.AI", URL: "https://export.arxiv.org/list/cs.AI/pastweek"},
				},
			},
		},
	}
}
