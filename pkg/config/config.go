package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config carries the settings shared by the demo programs
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Pool    PoolConfig    `yaml:"pool"`
	Storage StorageConfig `yaml:"storage"`
	PubSub  PubSubConfig  `yaml:"pubsub"`
	Demo    DemoConfig    `yaml:"demo"`
}

// LoggingConfig represents logging settings
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// PoolConfig represents resource pool settings
type PoolConfig struct {
	Size           int `yaml:"size"`
	AcquireTimeout int `yaml:"acquire_timeout_seconds"`
}

// StorageConfig represents storage settings
type StorageConfig struct {
	Kind string `yaml:"kind"` // memory | sqlite | mysql
	DSN  string `yaml:"dsn"`
}

// PubSubConfig represents pub/sub settings
type PubSubConfig struct {
	Backend    string `yaml:"backend"` // chan | redis
	RedisAddr  string `yaml:"redis_addr"`
	BufferSize int    `yaml:"buffer_size"`
}

// DemoConfig represents demo workload settings
type DemoConfig struct {
	Workers    int `yaml:"workers"`
	Iterations int `yaml:"iterations"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Pool: PoolConfig{
			Size:           4,
			AcquireTimeout: 5,
		},
		Storage: StorageConfig{
			Kind: "memory",
			DSN:  ":memory:",
		},
		PubSub: PubSubConfig{
			Backend:    "chan",
			RedisAddr:  "localhost:6379",
			BufferSize: 16,
		},
		Demo: DemoConfig{
			Workers:    4,
			Iterations: 25,
		},
	}
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	// Load from file if provided
	if configPath != "" {
		if err := loadFromFile(configPath, config); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// Override with environment variables
	applyEnvOverrides(config)

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return err
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides
func applyEnvOverrides(config *Config) {
	if logLevel := os.Getenv("GOPATTERNS_LOG_LEVEL"); logLevel != "" {
		config.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("GOPATTERNS_LOG_FORMAT"); logFormat != "" {
		config.Logging.Format = logFormat
	}

	if size := os.Getenv("GOPATTERNS_POOL_SIZE"); size != "" {
		if val, err := strconv.Atoi(size); err == nil {
			config.Pool.Size = val
		}
	}

	if timeout := os.Getenv("GOPATTERNS_ACQUIRE_TIMEOUT"); timeout != "" {
		if val, err := strconv.Atoi(timeout); err == nil {
			config.Pool.AcquireTimeout = val
		}
	}

	if kind := os.Getenv("GOPATTERNS_STORAGE_KIND"); kind != "" {
		config.Storage.Kind = kind
	}

	if dsn := os.Getenv("GOPATTERNS_STORAGE_DSN"); dsn != "" {
		config.Storage.DSN = dsn
	}

	if backend := os.Getenv("GOPATTERNS_PUBSUB_BACKEND"); backend != "" {
		config.PubSub.Backend = backend
	}

	if addr := os.Getenv("GOPATTERNS_REDIS_ADDR"); addr != "" {
		config.PubSub.RedisAddr = addr
		config.PubSub.Backend = "redis"
	}

	if workers := os.Getenv("GOPATTERNS_WORKERS"); workers != "" {
		if val, err := strconv.Atoi(workers); err == nil {
			config.Demo.Workers = val
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if !isValidLogLevel(c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Pool.Size < 1 {
		return fmt.Errorf("pool size must be at least 1")
	}

	if c.Pool.AcquireTimeout < 1 {
		return fmt.Errorf("acquire timeout must be at least 1 second")
	}

	switch c.Storage.Kind {
	case "memory", "sqlite", "mysql":
	default:
		return fmt.Errorf("unknown storage kind: %s", c.Storage.Kind)
	}

	switch c.PubSub.Backend {
	case "chan", "redis":
	default:
		return fmt.Errorf("unknown pubsub backend: %s", c.PubSub.Backend)
	}

	if c.Demo.Workers < 1 {
		return fmt.Errorf("demo workers must be at least 1")
	}

	if c.Demo.Iterations < 1 {
		return fmt.Errorf("demo iterations must be at least 1")
	}

	return nil
}

// isValidLogLevel checks if the log level is valid
func isValidLogLevel(level string) bool {
	valid := []string{"debug", "info", "warn", "error"}
	level = strings.ToLower(level)
	for _, v := range valid {
		if level == v {
			return true
		}
	}
	return false
}

// String returns a string representation of the configuration (for logging)
func (c *Config) String() string {
	return fmt.Sprintf("Config{LogLevel: %s, PoolSize: %d, Storage: %s, PubSub: %s}",
		c.Logging.Level, c.Pool.Size, c.Storage.Kind, c.PubSub.Backend)
}
