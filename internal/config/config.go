// Package config loads settings from the environment, reading an optional
// .env file first.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Database is the configuration shared by every tool that opens Postgres.
type Database struct {
	DBSource string `envconfig:"DB_SOURCE" required:"true"`
}

// Server configures the API process.
type Server struct {
	Database
	Port            int           `envconfig:"PORT" default:"8080"`
	AllowedOrigins  []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"text"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Client configures programs that talk to the API over HTTP.
type Client struct {
	APIURL string `envconfig:"GAMESTORE_API_URL" default:"http://localhost:8080"`
}

// Addr is the listen address for the HTTP server.
func (s Server) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// LoadServer reads the API server configuration.
func LoadServer() (Server, error) {
	var cfg Server
	if err := load(&cfg); err != nil {
		return Server{}, err
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// LoadDatabase reads only the database settings.
func LoadDatabase() (Database, error) {
	var cfg Database
	return cfg, load(&cfg)
}

// LoadClient reads the API client settings.
func LoadClient() (Client, error) {
	var cfg Client
	return cfg, load(&cfg)
}

func load(dst any) error {
	// A missing .env file is the normal case outside local development.
	_ = godotenv.Load()

	if err := envconfig.Process("", dst); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return nil
}

// NewLogger builds the process logger for the configured level and format.
func (s Server) NewLogger() *slog.Logger {
	level, _ := parseLevel(s.LogLevel)
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(s.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}
