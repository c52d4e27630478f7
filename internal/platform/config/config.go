// Package config loads host settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all host configuration loaded from environment variables.
type Config struct {
	Server ServerConfig
	Save   SaveConfig
	Redis  RedisConfig
	Sim    SimConfig
	Hub    HubConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	TickRate        time.Duration `envconfig:"SERVER_TICK_RATE" default:"100ms"`
	AllowedOrigins  []string      `envconfig:"SERVER_ALLOWED_ORIGINS" default:"*"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
}

// Storage backends for the save image.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// SaveConfig selects where the save image lives and how often it is written.
type SaveConfig struct {
	Backend     string        `envconfig:"SAVE_BACKEND" default:"sqlite"`
	Path        string        `envconfig:"SAVE_PATH" default:"./data/sdop.db"`
	Interval    time.Duration `envconfig:"SAVE_INTERVAL" default:"30s"`
	JournalPath string        `envconfig:"SAVE_JOURNAL_PATH" default:"./data/journal.db"`
}

// RedisConfig holds the redis device settings.
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	Key      string `envconfig:"REDIS_KEY" default:"sdop:device"`
}

// SimConfig tunes the simulation for a host.
type SimConfig struct {
	TimeScale float32 `envconfig:"SIM_TIME_SCALE" default:"1"`
	MaxGames  int     `envconfig:"SIM_MAX_GAMES" default:"64"`
}

// HubConfig sizes the websocket channels.
type HubConfig struct {
	BroadcastBuffer  int `envconfig:"HUB_BROADCAST_BUFFER" default:"256"`
	ClientSendBuffer int `envconfig:"HUB_CLIENT_SEND_BUFFER" default:"64"`
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Address returns the Redis address in host:port format.
func (r *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Validate rejects settings the hosts cannot run with.
func (c *Config) Validate() error {
	switch c.Save.Backend {
	case BackendFile, BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unknown save backend %q", c.Save.Backend)
	}
	if c.Server.TickRate <= 0 {
		return fmt.Errorf("tick rate must be positive, got %s", c.Server.TickRate)
	}
	if c.Sim.TimeScale < 0 {
		return fmt.Errorf("time scale must not be negative, got %v", c.Sim.TimeScale)
	}
	return nil
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
