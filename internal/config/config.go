// Package config handles user-level configuration and the paths neurocp
// writes outside the working directory.
package config

import (
	"os"
	"path/filepath"
)

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "neurocp"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
	// LogFile is the default diagnostic log file name.
	LogFile = "neurocp.log"
)

// Defaults applied when a key is not configured.
const (
	DefaultModel     = "gpt-4o"
	DefaultAPIKeyEnv = "OPENAI_API_KEY"
	DefaultLogLevel  = "info"
)

// Environment variables that take priority over the config file.
const (
	EnvModel    = "NEUROCP_MODEL"
	EnvBaseURL  = "NEUROCP_BASE_URL"
	EnvLogLevel = "NEUROCP_LOG_LEVEL"
)

// ValidLogLevels lists the accepted log_level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Dir returns the neurocp config directory.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/neurocp.
func Dir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir)
}

// Path returns the path to config.yml, or "" when no home directory exists.
func Path() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, ConfigFile)
}

// DefaultLogPath returns the default diagnostic log location.
func DefaultLogPath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, LogFile)
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}

// GetConfigValue returns the environment value for envKey when set,
// otherwise configValue.
func GetConfigValue(envKey, configValue string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return configValue
}
