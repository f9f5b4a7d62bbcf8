package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"riftreplay/internal/timeline"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration. Precedence: defaults, then the YAML
// file, then environment variables.
type Config struct {
	Server   ServerConfig    `yaml:"server"`
	Analysis AnalysisConfig  `yaml:"analysis"`
	Riot     RiotConfig      `yaml:"riot"`
	DDragon  DDragonConfig   `yaml:"ddragon"`
	Cache    CacheConfig     `yaml:"cache"`
	Watcher  WatcherConfig   `yaml:"watcher"`
	Policy   timeline.Policy `yaml:"policy"`
}

type ServerConfig struct {
	Port            string        `yaml:"port" env:"PORT"`
	EngineCacheSize int           `yaml:"engine_cache_size" env:"ENGINE_CACHE_SIZE"`
	EngineCacheTTL  time.Duration `yaml:"engine_cache_ttl" env:"ENGINE_CACHE_TTL"`
	PlaybackTick    time.Duration `yaml:"playback_tick" env:"PLAYBACK_TICK"`
}

// AnalysisConfig selects where analysis documents are read from
type AnalysisConfig struct {
	Source        string        `yaml:"source" env:"ANALYSIS_SOURCE"` // http, mongo, postgres, file
	BackendURL    string        `yaml:"backend_url" env:"BACKEND_URL"`
	Timeout       time.Duration `yaml:"timeout" env:"BACKEND_TIMEOUT"`
	MongoURI      string        `yaml:"mongo_uri" env:"MONGODB_URI"`
	MongoDatabase string        `yaml:"mongo_database" env:"MONGODB_DATABASE"`
	DatabaseURL   string        `yaml:"database_url" env:"DATABASE_URL"`
	Dir           string        `yaml:"dir" env:"ANALYSIS_DIR"`
}

type RiotConfig struct {
	APIKey string `yaml:"-" env:"RIOT_API_KEY"`
	Region string `yaml:"region" env:"RIOT_REGION"`
}

type DDragonConfig struct {
	Version   string `yaml:"version" env:"DDRAGON_VERSION"`
	BaseURL   string `yaml:"base_url" env:"DDRAGON_URL"`
	MerakiURL string `yaml:"meraki_url" env:"MERAKI_URL"`
	Language  string `yaml:"language" env:"DDRAGON_LANGUAGE"`
}

// CacheConfig points at the reference snapshot cache. A Turso URL wins over
// the local SQLite path.
type CacheConfig struct {
	Path       string `yaml:"path" env:"REFCACHE_PATH"`
	TursoURL   string `yaml:"turso_url" env:"TURSO_DATABASE_URL"`
	TursoToken string `yaml:"-" env:"TURSO_AUTH_TOKEN"`
}

type WatcherConfig struct {
	Enabled    bool          `yaml:"enabled" env:"WATCHER_ENABLED"`
	Interval   time.Duration `yaml:"interval" env:"WATCHER_INTERVAL"`
	WebhookURL string        `yaml:"-" env:"DISCORD_WEBHOOK"`
}

// Default returns a configuration that works against a local backend
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            "8080",
			EngineCacheSize: 32,
			EngineCacheTTL:  30 * time.Minute,
			PlaybackTick:    250 * time.Millisecond,
		},
		Analysis: AnalysisConfig{
			Source:        "http",
			BackendURL:    "http://localhost:8000",
			Timeout:       30 * time.Second,
			MongoDatabase: "league_analyzer",
			Dir:           "analyses",
		},
		Riot: RiotConfig{Region: "americas"},
		DDragon: DDragonConfig{
			BaseURL:   "https://ddragon.leagueoflegends.com",
			MerakiURL: "https://cdn.merakianalytics.com/riot/lol/resources/latest/en-US/items.json",
			Language:  "en_US",
		},
		Cache:   CacheConfig{Path: "refcache.db"},
		Watcher: WatcherConfig{Interval: time.Minute},
		Policy:  timeline.DefaultPolicy(),
	}
}

// envPaths are tried in order; the first .env found is loaded
var envPaths = []string{".env", "../.env", "../../.env"}

// LoadEnvFile loads the first .env file found. Existing variables win.
func LoadEnvFile() (string, bool) {
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// Load builds the configuration. path may be empty, in which case
// RIFTREPLAY_CONFIG is consulted; a missing file is not an error then.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv("RIFTREPLAY_CONFIG")
		explicit = path != ""
	}
	if path == "" {
		path = "riftreplay.yaml"
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse env: %w", err)
	}

	if err := cfg.Policy.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
