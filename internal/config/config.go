// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shirou/gopsutil/v3/cpu"
)

// Config holds application configuration
type Config struct {
	LogLevel string
	Port     int
	DevMode  bool

	// Simulation settings
	SimulationWorkers  int // path workers per projection run (defaults to logical CPU count)
	DefaultSimulations int // used when a request omits the simulation count
	MaxSimulations     int

	// Metrics cache
	MetricsCacheSize int64
	MetricsCacheTTL  time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnvAsInt("HORIZON_PORT", 8001),
		DevMode:            getEnvAsBool("DEV_MODE", false),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		SimulationWorkers:  getEnvAsInt("SIMULATION_WORKERS", defaultWorkers()),
		DefaultSimulations: getEnvAsInt("DEFAULT_SIMULATIONS", 1000),
		MaxSimulations:     getEnvAsInt("MAX_SIMULATIONS", 10000),
		MetricsCacheSize:   int64(getEnvAsInt("METRICS_CACHE_SIZE", 1000)),
		MetricsCacheTTL:    time.Duration(getEnvAsInt("METRICS_CACHE_TTL_SECONDS", 3600)) * time.Second,
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("HORIZON_PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.SimulationWorkers < 1 {
		return fmt.Errorf("SIMULATION_WORKERS must be positive, got %d", c.SimulationWorkers)
	}
	if c.MaxSimulations < 1 {
		return fmt.Errorf("MAX_SIMULATIONS must be positive, got %d", c.MaxSimulations)
	}
	if c.DefaultSimulations < 1 || c.DefaultSimulations > c.MaxSimulations {
		return fmt.Errorf("DEFAULT_SIMULATIONS must be between 1 and MAX_SIMULATIONS (%d), got %d",
			c.MaxSimulations, c.DefaultSimulations)
	}
	if c.MetricsCacheSize < 1 {
		return fmt.Errorf("METRICS_CACHE_SIZE must be positive, got %d", c.MetricsCacheSize)
	}
	if c.MetricsCacheTTL <= 0 {
		return fmt.Errorf("METRICS_CACHE_TTL_SECONDS must be positive, got %s", c.MetricsCacheTTL)
	}
	return nil
}

// defaultWorkers falls back to 1 when the CPU count cannot be read
func defaultWorkers() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
