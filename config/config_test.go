package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 100, cfg.Limit)
	assert.Equal(t, 3, cfg.Retries)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("YTPL_LIMIT", "250")
	t.Setenv("YTPL_RETRIES", "1")
	t.Setenv("YTPL_GL", "DE")
	t.Setenv("YTPL_HL", "de")
	t.Setenv("YTPL_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.Limit)
	assert.Equal(t, 1, cfg.Retries)
	assert.Equal(t, "DE", cfg.GL)
	assert.Equal(t, "de", cfg.HL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoadRejectsGarbage(t *testing.T) {
	t.Setenv("YTPL_LIMIT", "many")
	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Retries = -1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Timeout = 0
	assert.Error(t, cfg.Validate())
}
