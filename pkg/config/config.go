/*
Package config manages the TOML config for ri18n.

The config file plays the role of the editor's global settings store. Values a
plugin sends with a view (see SettingValidScopes) override it per view.
*/
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/bastiangx/ri18n/internal/utils"
	"github.com/bastiangx/ri18n/pkg/host"
	"github.com/charmbracelet/log"
)

// SettingValidScopes is the per-view setting that overrides Scopes.Valid.
const SettingValidScopes = "ri18n_valid_scopes"

// Flattener modes.
const (
	ModeYAML    = "yaml"
	ModeProcess = "process"
)

// Config holds the entire config structure
type Config struct {
	Scopes     ScopesConfig     `toml:"scopes"`
	Words      WordsConfig      `toml:"words"`
	Keys       KeysConfig       `toml:"keys"`
	Completion CompletionConfig `toml:"completion"`
}

// ScopesConfig lists the scope substrings that enable key completion.
type ScopesConfig struct {
	Valid []string `toml:"valid"`
}

// WordsConfig bounds buffer word extraction.
type WordsConfig struct {
	MinSize      int `toml:"min_size"`
	MaxSize      int `toml:"max_size"`
	MaxViews     int `toml:"max_views"`
	MaxPerView   int `toml:"max_per_view"`
	MaxFixTimeMS int `toml:"max_fix_time_ms"`
}

// KeysConfig selects how translation keys are flattened.
type KeysConfig struct {
	Mode         string `toml:"mode"`
	LocaleSubdir string `toml:"locale_subdir"`
	Interpreter  string `toml:"interpreter"`
	Helper       string `toml:"helper"`
	TimeoutMS    int    `toml:"timeout_ms"`
	MaxDepth     int    `toml:"max_depth"`
}

// CompletionConfig tunes the composed result.
type CompletionConfig struct {
	FallbackToWords bool `toml:"fallback_to_words"`
	EscapeDollar    bool `toml:"escape_dollar"`
}

// MaxFixTime returns the truncation repair budget per view.
func (w WordsConfig) MaxFixTime() time.Duration {
	return time.Duration(w.MaxFixTimeMS) * time.Millisecond
}

// Timeout returns the helper process timeout.
func (k KeysConfig) Timeout() time.Duration {
	return time.Duration(k.TimeoutMS) * time.Millisecond
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Scopes: ScopesConfig{
			Valid: []string{"string.quoted.double.ruby", "string.quoted.single.ruby"},
		},
		Words: WordsConfig{
			MinSize:      3,
			MaxSize:      50,
			MaxViews:     20,
			MaxPerView:   100,
			MaxFixTimeMS: 10,
		},
		Keys: KeysConfig{
			Mode:         ModeYAML,
			LocaleSubdir: "config/locales",
			Interpreter:  "ruby",
			TimeoutMS:    5000,
			MaxDepth:     3,
		},
		Completion: CompletionConfig{
			FallbackToWords: true,
			EscapeDollar:    true,
		},
	}
}

// Validate checks values that cannot be defaulted silently.
func (c *Config) Validate() error {
	switch c.Keys.Mode {
	case ModeYAML:
	case ModeProcess:
		if c.Keys.Helper == "" {
			return fmt.Errorf("keys.helper is required in %q mode", ModeProcess)
		}
	default:
		return fmt.Errorf("unknown keys.mode %q", c.Keys.Mode)
	}
	if c.Words.MinSize > c.Words.MaxSize {
		return fmt.Errorf("words.min_size (%d) exceeds words.max_size (%d)", c.Words.MinSize, c.Words.MaxSize)
	}
	return nil
}

// ValidScopes returns the view's ri18n_valid_scopes setting when present,
// otherwise the configured list.
func (c *Config) ValidScopes(settings host.Settings) []string {
	if settings != nil {
		if v, ok := settings.Get(SettingValidScopes); ok {
			if scopes, ok := utils.StringSlice(v); ok && len(scopes) > 0 {
				return scopes
			}
		}
	}
	return c.Scopes.Valid
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse recovers whatever sections decode cleanly
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "scopes"); ok {
		if val, ok := utils.ExtractStringSlice(section, "valid"); ok {
			config.Scopes.Valid = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "words"); ok {
		extractWordsConfig(section, &config.Words)
	}
	if section, ok := utils.ExtractSection(tempConfig, "keys"); ok {
		extractKeysConfig(section, &config.Keys)
	}
	if section, ok := utils.ExtractSection(tempConfig, "completion"); ok {
		if val, ok := utils.ExtractBool(section, "fallback_to_words"); ok {
			config.Completion.FallbackToWords = val
		}
		if val, ok := utils.ExtractBool(section, "escape_dollar"); ok {
			config.Completion.EscapeDollar = val
		}
	}
	return config, nil
}

func extractWordsConfig(data map[string]any, words *WordsConfig) {
	if val, ok := utils.ExtractInt64(data, "min_size"); ok {
		words.MinSize = val
	}
	if val, ok := utils.ExtractInt64(data, "max_size"); ok {
		words.MaxSize = val
	}
	if val, ok := utils.ExtractInt64(data, "max_views"); ok {
		words.MaxViews = val
	}
	if val, ok := utils.ExtractInt64(data, "max_per_view"); ok {
		words.MaxPerView = val
	}
	if val, ok := utils.ExtractInt64(data, "max_fix_time_ms"); ok {
		words.MaxFixTimeMS = val
	}
}

func extractKeysConfig(data map[string]any, keys *KeysConfig) {
	if val, ok := utils.ExtractString(data, "mode"); ok {
		keys.Mode = val
	}
	if val, ok := utils.ExtractString(data, "locale_subdir"); ok {
		keys.LocaleSubdir = val
	}
	if val, ok := utils.ExtractString(data, "interpreter"); ok {
		keys.Interpreter = val
	}
	if val, ok := utils.ExtractString(data, "helper"); ok {
		keys.Helper = val
	}
	if val, ok := utils.ExtractInt64(data, "timeout_ms"); ok {
		keys.TimeoutMS = val
	}
	if val, ok := utils.ExtractInt64(data, "max_depth"); ok {
		keys.MaxDepth = val
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
