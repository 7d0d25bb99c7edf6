package app

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config contains runtime settings for a server process.
type Config struct {
	InstanceID string `env:"KM_INSTANCE_ID" envDefault:"keys-manager-1"`
	LogLevel   string `env:"KM_LOG_LEVEL" envDefault:"info"`

	GRPCAddr    string `env:"KM_GRPC_ADDR" envDefault:":8080"`
	MetricsAddr string `env:"KM_METRICS_ADDR"`
	PprofAddr   string `env:"KM_PPROF_ADDR"`

	// DryRun decodes invocations without handing them to an executor.
	DryRun bool `env:"KM_DRY_RUN" envDefault:"true"`

	TracingEnabled     bool    `env:"KM_TRACING_ENABLED" envDefault:"false"`
	TracingEndpoint    string  `env:"KM_TRACING_ENDPOINT" envDefault:"localhost:4317"`
	TracingServiceName string  `env:"KM_TRACING_SERVICE_NAME" envDefault:"keys-manager"`
	TracingSampleRatio float64 `env:"KM_TRACING_SAMPLE_RATIO" envDefault:"1"`
}

// DefaultConfig returns a local-development configuration.
func DefaultConfig() Config {
	return Config{
		InstanceID:         "keys-manager-1",
		LogLevel:           "info",
		GRPCAddr:           ":8080",
		DryRun:             true,
		TracingEndpoint:    "localhost:4317",
		TracingServiceName: "keys-manager",
		TracingSampleRatio: 1,
	}
}

// LoadConfigFromEnv loads config from KM_* environment variables:
// KM_INSTANCE_ID, KM_LOG_LEVEL (debug|info|warn|error), KM_GRPC_ADDR,
// KM_METRICS_ADDR and KM_PPROF_ADDR (empty disables), KM_DRY_RUN,
// KM_TRACING_ENABLED, KM_TRACING_ENDPOINT, KM_TRACING_SERVICE_NAME,
// KM_TRACING_SAMPLE_RATIO (0..1).
func LoadConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("app: parse env: %w", err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that required settings are present and supported.
func (c Config) Validate() error {
	if strings.TrimSpace(c.InstanceID) == "" {
		return fmt.Errorf("app: instance id is required")
	}
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("app: unsupported log level %q", c.LogLevel)
	}
	if strings.TrimSpace(c.GRPCAddr) == "" {
		return fmt.Errorf("app: grpc addr is required")
	}
	if c.TracingEnabled {
		if strings.TrimSpace(c.TracingEndpoint) == "" {
			return fmt.Errorf("app: tracing endpoint is required when tracing is enabled")
		}
		if strings.TrimSpace(c.TracingServiceName) == "" {
			return fmt.Errorf("app: tracing service name is required when tracing is enabled")
		}
		if c.TracingSampleRatio < 0 || c.TracingSampleRatio > 1 {
			return fmt.Errorf("app: tracing sample ratio %v out of range [0, 1]", c.TracingSampleRatio)
		}
	}
	return nil
}
