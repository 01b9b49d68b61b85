package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tankarena/game"
)

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"mode": "classic",
		"seed": 1234,
		"logLevel": "debug",
		"highscore": { "path": "/tmp/scores.db" },
		"rules": { "lives": 5, "damageBase": 12.5 }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(cfg), 0644))

	require.NoError(t, Load(dir))

	assert.Equal(t, "classic", GetString("mode"))
	assert.Equal(t, "debug", GetString("logLevel"))
	assert.Equal(t, "/tmp/scores.db", GetString("highscore.path"))
	assert.Equal(t, 5, GetInt("rules.lives"))

	s, err := Current()
	require.NoError(t, err)
	assert.Equal(t, uint64(1234), s.Seed)
	assert.Equal(t, 12.5, s.Rules.DamageBase)
	// untouched keys keep their defaults
	assert.Equal(t, 1.0, s.Rules.DamagePerWave)
	assert.Equal(t, 1280, s.Window.Width)

	mode, err := s.GameMode()
	require.NoError(t, err)
	assert.Equal(t, game.ModeClassic, mode)
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{}`), 0644))

	require.NoError(t, Load(dir))

	assert.Equal(t, "arena", GetString("mode"))
	assert.Equal(t, "info", GetString("logLevel"))
	assert.Equal(t, "./logs", GetString("logsDir"))
	assert.Equal(t, "tankarena.db", GetString("highscore.path"))
	assert.Equal(t, 1280, GetInt("window.width"))
	assert.Equal(t, 720, GetInt("window.height"))
	assert.Equal(t, false, GetBool("metrics.enabled"))
	assert.Equal(t, 3, GetInt("rules.lives"))
	assert.Equal(t, 15, GetInt("rules.obstacleCount"))
	assert.Equal(t, 3, GetInt("rules.pickupCount"))

	s, err := Current()
	require.NoError(t, err)
	assert.Equal(t, game.DefaultConfig(), s.GameConfig())
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load("/nonexistent/path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")

	// defaults are still usable
	assert.Equal(t, "arena", GetString("mode"))
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("TANKARENA_RULES_LIVES", "7")
	t.Setenv("TANKARENA_MODE", "sandbox")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{}`), 0644))
	require.NoError(t, Load(dir))

	assert.Equal(t, 7, GetInt("rules.lives"))

	s, err := Current()
	require.NoError(t, err)
	assert.Equal(t, 7, s.GameConfig().Lives)
	mode, err := s.GameMode()
	require.NoError(t, err)
	assert.Equal(t, game.ModeClassic, mode)
}

func TestGameConfig_InvalidOverridesFallBack(t *testing.T) {
	s := Settings{Rules: RulesConfig{Lives: 0, ObstacleCount: -3, DamageBase: 10}}
	cfg := s.GameConfig()

	assert.Equal(t, game.DefaultConfig().Lives, cfg.Lives)
	assert.Zero(t, cfg.ObstacleCount)
	assert.Equal(t, 10.0, cfg.DamageBase)
}

func TestGameMode_Unknown(t *testing.T) {
	_, err := Settings{Mode: "battle-royale"}.GameMode()
	assert.Error(t, err)
}

func TestGetString(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testKey", "testValue")
	assert.Equal(t, "testValue", GetString("testKey"))
}
