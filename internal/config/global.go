package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/neurocp/config.yml.
type GlobalConfig struct {
	Model     string `yaml:"model,omitempty"`       // Completion model for ask
	BaseURL   string `yaml:"base_url,omitempty"`    // OpenAI-compatible API base URL
	APIKeyEnv string `yaml:"api_key_env,omitempty"` // Env var holding the API key
	LogLevel  string `yaml:"log_level,omitempty"`   // debug, info, warn, error
	LogFile   string `yaml:"log_file,omitempty"`    // Diagnostic log path
}

// Keys lists the settable configuration keys in display order.
var Keys = []string{"model", "base-url", "api-key-env", "log-level", "log-file"}

// ErrUnknownKey is returned for configuration keys not in Keys.
var ErrUnknownKey = errors.New("unknown configuration key")

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := Path()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	if cfg.LogFile != "" {
		cfg.LogFile = ExpandPath(cfg.LogFile)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// Save writes the config to the global config path, creating its directory.
func (c *GlobalConfig) Save() error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	globalConfigCache = c
	return nil
}

// ResolvedModel returns the completion model: env, then config, then default.
func (c *GlobalConfig) ResolvedModel() string {
	return orDefault(GetConfigValue(EnvModel, c.Model), DefaultModel)
}

// ResolvedBaseURL returns the API base URL, empty for the provider default.
func (c *GlobalConfig) ResolvedBaseURL() string {
	return GetConfigValue(EnvBaseURL, c.BaseURL)
}

// ResolvedAPIKeyEnv returns the name of the env var holding the API key.
func (c *GlobalConfig) ResolvedAPIKeyEnv() string {
	return orDefault(c.APIKeyEnv, DefaultAPIKeyEnv)
}

// ResolvedLogLevel returns the log level: env, then config, then default.
func (c *GlobalConfig) ResolvedLogLevel() string {
	return orDefault(GetConfigValue(EnvLogLevel, c.LogLevel), DefaultLogLevel)
}

// ResolvedLogFile returns the diagnostic log path.
func (c *GlobalConfig) ResolvedLogFile() string {
	return orDefault(c.LogFile, DefaultLogPath())
}

// Get returns the effective value of a configuration key.
func (c *GlobalConfig) Get(key string) (string, error) {
	switch key {
	case "model":
		return c.ResolvedModel(), nil
	case "base-url":
		return c.ResolvedBaseURL(), nil
	case "api-key-env":
		return c.ResolvedAPIKeyEnv(), nil
	case "log-level":
		return c.ResolvedLogLevel(), nil
	case "log-file":
		return c.ResolvedLogFile(), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// Set validates and stores a configuration key. It does not save.
func (c *GlobalConfig) Set(key, value string) error {
	switch key {
	case "model":
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("model must not be empty")
		}
		c.Model = value
	case "base-url":
		if err := ValidateBaseURL(value); err != nil {
			return err
		}
		c.BaseURL = strings.TrimRight(value, "/")
	case "api-key-env":
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("api-key-env must not be empty")
		}
		c.APIKeyEnv = value
	case "log-level":
		if err := ValidateLogLevel(value); err != nil {
			return err
		}
		c.LogLevel = value
	case "log-file":
		c.LogFile = ExpandPath(value)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// ValidateLogLevel checks that level is one of ValidLogLevels.
func ValidateLogLevel(level string) error {
	if slices.Contains(ValidLogLevels, level) {
		return nil
	}
	return fmt.Errorf("invalid log_level: %s (valid: %v)", level, ValidLogLevels)
}

// ValidateBaseURL checks that raw is an absolute http(s) URL. Empty is
// allowed and means the provider default.
func ValidateBaseURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base_url: %s (must be an http or https URL)", raw)
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
