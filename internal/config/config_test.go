package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "CHAT_TYPING_DELAY_MS", "CHAT_MAX_TURNS", "REDIS_ADDR", "LOGIN_RPS", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 1500*time.Millisecond, cfg.Chat.TypingDelay)
	assert.Equal(t, 200, cfg.Chat.MaxTurns)
	assert.False(t, cfg.Store.RedisEnabled())
	assert.Equal(t, 1.0, cfg.Login.RPS)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "127.0.0.1:9090")
	t.Setenv("CHAT_TYPING_DELAY_MS", "0")
	t.Setenv("CHAT_MAX_TURNS", "-3")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_TTL_MINUTES", "30")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
	assert.Zero(t, cfg.Chat.TypingDelay)
	assert.Zero(t, cfg.Chat.MaxTurns)
	assert.True(t, cfg.Store.RedisEnabled())
	assert.Equal(t, 30*time.Minute, cfg.Store.TTL)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("CHAT_TYPING_DELAY_MS", "soon")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("CHAT_TYPING_DELAY_MS", "-1")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("CHAT_TYPING_DELAY_MS", "")
	t.Setenv("PORT", "80 80")
	_, err = Load()
	require.Error(t, err)
}

func TestLoadMatchMode(t *testing.T) {
	t.Setenv("CHAT_MATCH_MODE", "Word")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "word", cfg.Chat.MatchMode)

	t.Setenv("CHAT_MATCH_MODE", "words")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHAT_MATCH_MODE")
}
