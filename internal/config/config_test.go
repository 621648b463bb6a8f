package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "GO_ENV", "DB_DRIVER", "DB_CONNECTION_STRING", "LLM_PROVIDER", "LLM_MODEL", "LLM_TIMEOUT", "LLM_CACHE_TTL", "GEMINI_BASE_URL", "HUGGINGFACE_BASE_URL", "OTEL_ENABLED", "NATS_URL", "AUTH_JWT_SECRET"} {
		// Setenv registers the restore, Unsetenv exercises the fallback
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()

	assert.Equal(t, "4000", cfg.App.Port)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "chat.db", cfg.Database.Connection)
	assert.Empty(t, cfg.Auth.JWTSecret)
	assert.Empty(t, cfg.App.NatsURL)
	assert.Equal(t, "gemini", cfg.Ai.LLMProvider)
	assert.Equal(t, "gemini-2.5-pro", cfg.Ai.LLMModel)
	assert.Equal(t, 60*time.Second, cfg.Ai.Timeout)
	assert.Zero(t, cfg.Ai.CacheTTL)
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta", cfg.Ai.GeminiBaseURL)
	assert.Equal(t, "https://router.huggingface.co/v1", cfg.Ai.HuggingFaceBaseURL)
	assert.False(t, cfg.Otel.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("GO_ENV", "production")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_CONNECTION_STRING", "host=db user=app dbname=advisor")
	t.Setenv("AUTH_JWT_SECRET", "secret")
	t.Setenv("LLM_PROVIDER", "ollama")
	t.Setenv("LLM_MODEL", "llama3")
	t.Setenv("LLM_TIMEOUT", "45s")
	t.Setenv("LLM_CACHE_TTL", "10m")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("NATS_URL", "nats://localhost:4222")

	cfg := Load()

	assert.Equal(t, "8080", cfg.App.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "host=db user=app dbname=advisor", cfg.Database.Connection)
	assert.Equal(t, "secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "ollama", cfg.Ai.LLMProvider)
	assert.Equal(t, "llama3", cfg.Ai.LLMModel)
	assert.Equal(t, 45*time.Second, cfg.Ai.Timeout)
	assert.Equal(t, 10*time.Minute, cfg.Ai.CacheTTL)
	assert.True(t, cfg.Otel.Enabled)
	assert.Equal(t, "nats://localhost:4222", cfg.App.NatsURL)
}

func TestGetEnvAsDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{name: "duration string", value: "2m", want: 2 * time.Minute},
		{name: "bare seconds", value: "30", want: 30 * time.Second},
		{name: "garbage falls back", value: "soon", want: time.Minute},
		{name: "empty falls back", value: "", want: time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			assert.Equal(t, tt.want, getEnvAsDuration("TEST_DURATION", time.Minute))
		})
	}
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "yes")
	assert.False(t, getEnvAsBool("TEST_BOOL", false))

	t.Setenv("TEST_BOOL", "1")
	assert.True(t, getEnvAsBool("TEST_BOOL", false))
}
