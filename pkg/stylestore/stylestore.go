// Package stylestore runs the style store service: a chosen storage backend,
// an optional operation event log and the HTTP API in front of them.
package stylestore

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"

	"github.com/garunski/stylestore/pkg/stylestore/server"
	"github.com/garunski/stylestore/pkg/stylestore/style"
)

// Config holds all service configuration
type Config struct {
	AppVersion string

	// Style storage
	Backend   string
	DataPath  string
	Extension string
	Codec     string

	// Default styles stored at startup when absent
	SeedFS   fs.FS
	SeedRoot string

	// Server configuration
	Port           string
	RequestTimeout time.Duration

	// Event log configuration
	EventDataPath        string
	EventRetentionDays   int
	EventCleanupInterval time.Duration

	// S3 backend
	S3 server.S3Config

	// ConfigMap backend
	ConfigMapNamespace string
	ConfigMapPrefix    string

	// Logging configuration: "json" for production encoding
	LogFormat string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() Config {
	return Config{
		AppVersion:           getEnvOrDefault("VERSION", "dev"),
		Backend:              getEnvOrDefault("STYLE_BACKEND", server.BackendFile),
		DataPath:             getEnvOrDefault("STYLE_DATA_PATH", "/data/styles"),
		Extension:            os.Getenv("STYLE_EXTENSION"),
		Codec:                getEnvOrDefault("STYLE_CODEC", "sld"),
		SeedRoot:             "styles",
		Port:                 getEnvOrDefault("PORT", "8081"),
		RequestTimeout:       parseDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		EventDataPath:        os.Getenv("EVENT_DATA_PATH"),
		EventRetentionDays:   parseIntOrDefault("EVENT_RETENTION_DAYS", 7),
		EventCleanupInterval: parseDurationOrDefault("EVENT_CLEANUP_INTERVAL", 1*time.Hour),
		S3: server.S3Config{
			Bucket:          os.Getenv("S3_BUCKET"),
			Prefix:          os.Getenv("S3_PREFIX"),
			Region:          getEnvOrDefault("S3_REGION", "us-east-1"),
			Endpoint:        os.Getenv("S3_ENDPOINT"),
			AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		},
		ConfigMapNamespace: getEnvOrDefault("CONFIGMAP_NAMESPACE", "default"),
		ConfigMapPrefix:    getEnvOrDefault("CONFIGMAP_PREFIX", "style"),
		LogFormat:          os.Getenv("LOG_FORMAT"),
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if !slices.Contains(server.Backends, c.Backend) {
		return fmt.Errorf("Backend must be one of %s, got %q", strings.Join(server.Backends, ", "), c.Backend)
	}
	if _, err := style.CodecByName(c.Codec); err != nil {
		return fmt.Errorf("Codec: %w", err)
	}
	switch c.Backend {
	case server.BackendFile, server.BackendBadger, server.BackendSQLite:
		if c.DataPath == "" {
			return fmt.Errorf("DataPath cannot be empty for the %s backend", c.Backend)
		}
	case server.BackendS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket cannot be empty for the s3 backend")
		}
	case server.BackendConfigMap:
		if c.ConfigMapNamespace == "" {
			return fmt.Errorf("ConfigMapNamespace cannot be empty for the configmap backend")
		}
	}
	if c.Port == "" {
		return fmt.Errorf("Port cannot be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("RequestTimeout must be positive")
	}
	if c.EventRetentionDays < 0 {
		return fmt.Errorf("EventRetentionDays cannot be negative")
	}
	if c.EventCleanupInterval <= 0 {
		return fmt.Errorf("EventCleanupInterval must be positive")
	}
	return nil
}

// NewLogger builds the zap-backed logger selected by format.
func NewLogger(format string) (logr.Logger, error) {
	var (
		zapLog *zap.Logger
		err    error
	)
	if format == "json" {
		zapLog, err = zap.NewProduction()
	} else {
		zapLog, err = zap.NewDevelopment()
	}
	if err != nil {
		return logr.Discard(), fmt.Errorf("failed to create logger: %w", err)
	}
	return zapr.NewLogger(zapLog), nil
}

// Run starts the service with the given configuration
// It handles the complete lifecycle: initialization, startup, and shutdown
func Run(ctx context.Context, cfg Config) error {
	logger, err := NewLogger(cfg.LogFormat)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Info("Starting stylestore", "version", cfg.AppVersion, "backend", cfg.Backend)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv, err := server.NewServer(cfg.serverConfig(), logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	defer func() {
		if err := srv.Close(); err != nil {
			logger.Error(err, "failed to close server")
		}
	}()

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	if err := srv.WaitForShutdown(ctx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	return nil
}

func (c Config) serverConfig() *server.Config {
	return &server.Config{
		AppVersion:           c.AppVersion,
		Backend:              c.Backend,
		DataPath:             c.DataPath,
		Extension:            c.Extension,
		Codec:                c.Codec,
		Port:                 c.Port,
		EventDataPath:        c.EventDataPath,
		EventRetentionDays:   c.EventRetentionDays,
		EventCleanupInterval: c.EventCleanupInterval,
		RequestTimeout:       c.RequestTimeout,
		S3:                   c.S3,
		ConfigMapNamespace:   c.ConfigMapNamespace,
		ConfigMapPrefix:      c.ConfigMapPrefix,
		SeedFS:               c.SeedFS,
		SeedRoot:             c.SeedRoot,
	}
}

// Helper functions for environment variable parsing

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// parseIntOrDefault accepts "7" as well as "7d".
func parseIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(strings.TrimSuffix(value, "d")); err == nil {
			return i
		}
	}
	return defaultValue
}
