package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing host", func(c *Config) { c.Host = "" }},
		{"bad port", func(c *Config) { c.Port = 70000 }},
		{"missing user", func(c *Config) { c.User = "" }},
		{"missing dbname", func(c *Config) { c.DBName = "" }},
		{"bad ssl mode", func(c *Config) { c.SSLMode = "maybe" }},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }},
		{"idle exceeds open", func(c *Config) { c.MaxIdleConns = 200; c.MaxOpenConns = 100 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfigDSN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "db.internal"
	cfg.DBName = "catalog"

	dsn := cfg.DSN()
	for _, fragment := range []string{"host=db.internal", "port=5432", "dbname=catalog", "sslmode=disable"} {
		assert.True(t, strings.Contains(dsn, fragment), "DSN missing %q: %s", fragment, dsn)
	}
}
