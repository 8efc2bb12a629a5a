package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_USER", "testuser")
		t.Setenv("DB_PASSWORD", "testpass")
		t.Setenv("DB_NAME", "testdb")
		t.Setenv("DB_PORT", "5432")
		t.Setenv("APP_PORT", "8080")
		t.Setenv("APP_ENV", "test")
		t.Setenv("JWT_SECRET", "supersecret")
		t.Setenv("PAYPAL_API_URL", "https://api-m.sandbox.paypal.com")
		t.Setenv("PAYPAL_CLIENT_ID", "client-id")
		t.Setenv("PAYPAL_CLIENT_SECRET", "client-secret")

		cfg := LoadConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "testuser", cfg.DBUser)
		assert.Equal(t, "testpass", cfg.DBPassword)
		assert.Equal(t, "testdb", cfg.DBName)
		assert.Equal(t, "5432", cfg.DBPort)
		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, "supersecret", cfg.JWTSecret)
		assert.Equal(t, "client-id", cfg.PayPalClientID)
		assert.Equal(t, "client-secret", cfg.PayPalClientSecret)
	})

	t.Run("Defaults applied", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("APP_PORT", "")
		t.Setenv("PAYPAL_API_URL", "")

		cfg := LoadConfig()

		assert.Equal(t, "5000", cfg.AppPort)
		assert.Equal(t, "https://api-m.sandbox.paypal.com", cfg.PayPalBaseURL)
	})
}
