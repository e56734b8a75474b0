package config

import (
	"os"
	"strconv"

	"lifelens/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Data      DataConfig
	Metrics   MetricsConfig
	Synthetic SyntheticConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig holds the dataset source settings
type DataConfig struct {
	// DatasetFile is a CSV or XLSX path. When empty the synthetic
	// population generator is used instead.
	DatasetFile string
}

// MetricsConfig holds Prometheus exposition settings
type MetricsConfig struct {
	Enabled bool
}

// SyntheticConfig controls the fallback population generator
type SyntheticConfig struct {
	Seed int64
	Size int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Data: DataConfig{
			DatasetFile: getEnvOrDefault("DATASET_FILE", ""),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBoolOrDefault("METRICS_ENABLED", true),
		},
		Synthetic: SyntheticConfig{
			Seed: int64(getEnvIntOrDefault("SYNTHETIC_SEED", 42)),
			Size: getEnvIntOrDefault("SYNTHETIC_SIZE", 3000),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Synthetic.Size <= 0 {
		return errors.ConfigInvalid("synthetic population size must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
