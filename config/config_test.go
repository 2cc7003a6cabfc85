package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GO_ENV", "")
	t.Setenv("ASSISTANT_SESSION_TTL", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 250*time.Millisecond, cfg.AssistantReplyDelay)
	assert.Equal(t, 24*time.Hour, cfg.AssistantSessionTTL)
	assert.Equal(t, 10, cfg.IssueLimitPerDay)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("ISSUE_LIMIT_PER_DAY", "3")
	t.Setenv("ASSISTANT_REPLY_DELAY", "0s")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")

	cfg := Load()
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 3, cfg.IssueLimitPerDay)
	assert.Equal(t, time.Duration(0), cfg.AssistantReplyDelay)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("ISSUE_LIMIT_PER_DAY", "many")
	t.Setenv("CLASSIFIER_TIMEOUT", "soon")

	cfg := Load()
	assert.Equal(t, 10, cfg.IssueLimitPerDay)
	assert.Equal(t, 20*time.Second, cfg.ClassifierTimeout)
}
