package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Environment.IsDevelopment())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Address())
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:3001"}, cfg.CORSOrigins)
	assert.Equal(t, "https://api.razorpay.com", cfg.Razorpay.BaseApiURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("AUTH_SESSION_SECRET", "s3cret")
	t.Setenv("AUTH_TOKEN_TTL", "1h")
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_1")
	t.Setenv("RAZORPAY_KEY_SECRET", "rzp_secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://labs.example.com")
	t.Setenv("DB_DRIVER", "mysql")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Environment.IsDevelopment())
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "rzp_test_1", cfg.Razorpay.KeyID)
	assert.Equal(t, []string{"https://labs.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, "mysql", cfg.Database.Driver)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"DB_DRIVER": "mongo"}},
		{"production without session secret", map[string]string{"ENVIRONMENT": "production", "AUTH_SESSION_SECRET": ""}},
		{"production without razorpay secret", map[string]string{
			"ENVIRONMENT": "production", "AUTH_SESSION_SECRET": "s3cret", "RAZORPAY_KEY_ID": "rzp_live_1", "RAZORPAY_KEY_SECRET": "",
		}},
		{"production without razorpay key id", map[string]string{
			"ENVIRONMENT": "production", "AUTH_SESSION_SECRET": "s3cret", "RAZORPAY_KEY_ID": "", "RAZORPAY_KEY_SECRET": "rzp_secret",
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
