package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithDefaults(t *testing.T) {
	log, err := New(nil)
	require.NoError(t, err)
	require.NotNil(t, log)
	defer log.Sync()

	log.Info("logger initialized")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"bad level", func(c *Config) { c.Level = "loud" }, true},
		{"bad format", func(c *Config) { c.Format = "xml" }, true},
		{"bad output", func(c *Config) { c.Output = "syslog" }, true},
		{"file output without filename", func(c *Config) { c.Output = "file"; c.File.Filename = "" }, true},
		{"console format accepted", func(c *Config) { c.Format = "console" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWithRequestID(t *testing.T) {
	log := NewNop()

	ctx := WithRequestID(t.Context(), "req-123")
	assert.Equal(t, "req-123", GetRequestID(ctx))

	// A logger derived from the context should not panic
	log.WithContext(ctx).Info("request scoped")
}
