package conf

import (
	"fmt"

	"github.com/cdnstack/content-service/internal/pkg/database"
	"github.com/cdnstack/content-service/internal/pkg/logger"
	"github.com/cdnstack/content-service/internal/pkg/minio"
	"github.com/cdnstack/content-service/internal/pkg/redis"
	"github.com/spf13/viper"
)

// Config is the full service configuration
type Config struct {
	Server   ServerConfig    `mapstructure:"server"`
	Database database.Config `mapstructure:"database"`
	Redis    redis.Config    `mapstructure:"redis"`
	MinIO    minio.Config    `mapstructure:"minio"`
	Cache    CacheConfig     `mapstructure:"cache"`
	Log      logger.Config   `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// CacheConfig selects the lookup cache backend
type CacheConfig struct {
	// Backend is "redis" or "memory"
	Backend string `mapstructure:"backend"`
	// Capacity bounds the memory backend's entry count
	Capacity int `mapstructure:"capacity"`
}

const (
	CacheBackendRedis  = "redis"
	CacheBackendMemory = "memory"
)

// LoadConfig reads the config file, layering it over built-in defaults
func LoadConfig(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := defaultConfig()
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Database: *database.DefaultConfig(),
		Redis:    *redis.DefaultConfig(),
		Cache: CacheConfig{
			Backend:  CacheBackendRedis,
			Capacity: 10000,
		},
		Log: *logger.DefaultConfig(),
	}
}

// Validate checks the sections that are always required. The MinIO section
// is optional: an empty endpoint disables object storage. The Redis section
// is only required when it backs the cache.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Cache.Backend != CacheBackendRedis && c.Cache.Backend != CacheBackendMemory {
		return fmt.Errorf("invalid cache backend: %q", c.Cache.Backend)
	}

	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("database config: %w", err)
	}

	if c.Cache.Backend == CacheBackendRedis {
		if err := c.Redis.Validate(); err != nil {
			return fmt.Errorf("redis config: %w", err)
		}
	}

	if c.MinIO.Endpoint != "" {
		if err := c.MinIO.Validate(); err != nil {
			return fmt.Errorf("minio config: %w", err)
		}
	}

	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log config: %w", err)
	}

	return nil
}

// ObjectStorageEnabled reports whether a MinIO endpoint is configured
func (c *Config) ObjectStorageEnabled() bool {
	return c.MinIO.Endpoint != ""
}
