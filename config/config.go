package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"tankarena/game"
)

// FileName is the config file looked up in the config directory
const FileName = "tankarena.cfg.json"

// Settings is the typed view of the loaded configuration
type Settings struct {
	Mode     string `json:"mode" mapstructure:"mode"`
	Seed     uint64 `json:"seed" mapstructure:"seed"`
	LogLevel string `json:"logLevel" mapstructure:"logLevel"`
	LogsDir  string `json:"logsDir" mapstructure:"logsDir"`

	HighScore HighScoreConfig `json:"highscore" mapstructure:"highscore"`
	Window    WindowConfig    `json:"window" mapstructure:"window"`
	Metrics   MetricsConfig   `json:"metrics" mapstructure:"metrics"`
	Rules     RulesConfig     `json:"rules" mapstructure:"rules"`
}

// HighScoreConfig holds high-score storage settings
type HighScoreConfig struct {
	// Path of the SQLite file; empty keeps scores in memory
	Path string `json:"path" mapstructure:"path"`
}

// WindowConfig holds desktop window settings
type WindowConfig struct {
	Width  int `json:"width" mapstructure:"width"`
	Height int `json:"height" mapstructure:"height"`
}

// MetricsConfig toggles gameplay metrics
type MetricsConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
}

// RulesConfig overrides gameplay tuning
type RulesConfig struct {
	Lives         int     `json:"lives" mapstructure:"lives"`
	DamageBase    float64 `json:"damageBase" mapstructure:"damageBase"`
	DamagePerWave float64 `json:"damagePerWave" mapstructure:"damagePerWave"`
	ObstacleCount int     `json:"obstacleCount" mapstructure:"obstacleCount"`
	PickupCount   int     `json:"pickupCount" mapstructure:"pickupCount"`
}

// SetDefaults registers the default value of every key
func SetDefaults() {
	d := game.DefaultConfig()

	viper.SetDefault("mode", "arena")
	viper.SetDefault("seed", 0)
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./logs")

	viper.SetDefault("highscore.path", "tankarena.db")

	viper.SetDefault("window.width", 1280)
	viper.SetDefault("window.height", 720)

	viper.SetDefault("metrics.enabled", false)

	viper.SetDefault("rules.lives", d.Lives)
	viper.SetDefault("rules.damageBase", d.DamageBase)
	viper.SetDefault("rules.damagePerWave", d.DamagePerWave)
	viper.SetDefault("rules.obstacleCount", d.ObstacleCount)
	viper.SetDefault("rules.pickupCount", d.PickupCount)

	viper.SetEnvPrefix("TANKARENA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file. Defaults stay in
// effect when the file cannot be read.
func Load(configDir string) error {
	SetDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// Current returns the loaded settings
func Current() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	return s, nil
}

// GameMode parses the configured mode
func (s Settings) GameMode() (game.Mode, error) {
	return game.ParseMode(s.Mode)
}

// GameConfig applies the rule overrides on top of the default tuning
func (s Settings) GameConfig() game.Config {
	cfg := game.DefaultConfig()
	cfg.Lives = s.Rules.Lives
	cfg.DamageBase = s.Rules.DamageBase
	cfg.DamagePerWave = s.Rules.DamagePerWave
	cfg.ObstacleCount = s.Rules.ObstacleCount
	cfg.PickupCount = s.Rules.PickupCount
	return cfg.Validate()
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
