package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got, want := Path(), "/custom/config/neurocp/config.yml"; got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
	if got, want := DefaultLogPath(), "/custom/config/neurocp/neurocp.log"; got != want {
		t.Errorf("DefaultLogPath() = %q, want %q", got, want)
	}

	// Empty XDG_CONFIG_HOME falls back to ~/.config
	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	if got, want := Path(), filepath.Join(home, ".config", "neurocp", "config.yml"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestLoadGlobalConfig_NotFound(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadGlobalConfig() returned nil")
	}
	if cfg.Model != "" {
		t.Errorf("Model = %q, want empty", cfg.Model)
	}
	if got := cfg.ResolvedModel(); got != DefaultModel {
		t.Errorf("ResolvedModel() = %q, want %q", got, DefaultModel)
	}
	if got := cfg.ResolvedAPIKeyEnv(); got != DefaultAPIKeyEnv {
		t.Errorf("ResolvedAPIKeyEnv() = %q, want %q", got, DefaultAPIKeyEnv)
	}
}

func TestLoadGlobalConfig_Valid(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv(EnvModel, "")
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvLogLevel, "")

	configDir := filepath.Join(tmpDir, ConfigDir)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	yml := `model: gpt-4o-mini
base_url: http://localhost:11434/v1
api_key_env: LOCAL_KEY
log_level: debug
`
	if err := os.WriteFile(filepath.Join(configDir, ConfigFile), []byte(yml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}

	checks := map[string]string{
		"model":       "gpt-4o-mini",
		"base-url":    "http://localhost:11434/v1",
		"api-key-env": "LOCAL_KEY",
		"log-level":   "debug",
		"log-file":    filepath.Join(configDir, LogFile),
	}
	for key, want := range checks {
		got, err := cfg.Get(key)
		if err != nil {
			t.Errorf("Get(%q) error = %v", key, err)
			continue
		}
		if got != want {
			t.Errorf("Get(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestLoadGlobalConfig_InvalidYAML(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	configDir := filepath.Join(tmpDir, ConfigDir)
	os.MkdirAll(configDir, 0755)
	os.WriteFile(filepath.Join(configDir, ConfigFile), []byte("model: [unclosed"), 0644)

	if _, err := LoadGlobalConfig(); err == nil {
		t.Error("LoadGlobalConfig() should fail for invalid YAML")
	}
}

func TestGlobalConfig_SaveAndReload(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvModel, "")

	cfg := &GlobalConfig{}
	if err := cfg.Set("model", "gpt-4.1"); err != nil {
		t.Fatalf("Set(model) error = %v", err)
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	ResetGlobalConfigCache()
	loaded, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if loaded.Model != "gpt-4.1" {
		t.Errorf("Model = %q, want gpt-4.1", loaded.Model)
	}
}

func TestGlobalConfigCache(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	configDir := filepath.Join(tmpDir, ConfigDir)
	os.MkdirAll(configDir, 0755)
	configFile := filepath.Join(configDir, ConfigFile)
	os.WriteFile(configFile, []byte("model: cached\n"), 0644)

	cfg1, _ := LoadGlobalConfig()
	if cfg1.Model != "cached" {
		t.Errorf("First load: Model = %q, want cached", cfg1.Model)
	}

	os.WriteFile(configFile, []byte("model: modified\n"), 0644)

	cfg2, _ := LoadGlobalConfig()
	if cfg2.Model != "cached" {
		t.Errorf("Second load: Model = %q, want cached (cached)", cfg2.Model)
	}

	ResetGlobalConfigCache()

	cfg3, _ := LoadGlobalConfig()
	if cfg3.Model != "modified" {
		t.Errorf("Third load: Model = %q, want modified", cfg3.Model)
	}
}

func TestEnvOverridesConfig(t *testing.T) {
	cfg := &GlobalConfig{Model: "from-config", LogLevel: "warn"}

	t.Setenv(EnvModel, "from-env")
	t.Setenv(EnvLogLevel, "")
	if got := cfg.ResolvedModel(); got != "from-env" {
		t.Errorf("ResolvedModel() = %q, want from-env", got)
	}
	if got := cfg.ResolvedLogLevel(); got != "warn" {
		t.Errorf("ResolvedLogLevel() = %q, want warn", got)
	}
}

func TestGetConfigValue(t *testing.T) {
	t.Setenv("TEST_CONFIG_KEY", "from-env")
	if got := GetConfigValue("TEST_CONFIG_KEY", "from-config"); got != "from-env" {
		t.Errorf("GetConfigValue() = %q, want from-env", got)
	}

	t.Setenv("TEST_CONFIG_KEY", "")
	if got := GetConfigValue("TEST_CONFIG_KEY", "from-config"); got != "from-config" {
		t.Errorf("GetConfigValue() = %q, want from-config", got)
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr bool
	}{
		{"model", "gpt-4o", false},
		{"model", "  ", true},
		{"base-url", "https://api.example.com/v1/", false},
		{"base-url", "", false},
		{"base-url", "ftp://example.com", true},
		{"base-url", "not a url", true},
		{"api-key-env", "MY_KEY", false},
		{"api-key-env", "", true},
		{"log-level", "debug", false},
		{"log-level", "verbose", true},
		{"log-file", "/tmp/neurocp.log", false},
		{"colour", "blue", true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := &GlobalConfig{}
			err := cfg.Set(tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("Set(%q, %q) error = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestSet_TrimsBaseURL(t *testing.T) {
	cfg := &GlobalConfig{}
	if err := cfg.Set("base-url", "https://api.example.com/v1/"); err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != "https://api.example.com/v1" {
		t.Errorf("BaseURL = %q, want trailing slash trimmed", cfg.BaseURL)
	}
}

func TestUnknownKey(t *testing.T) {
	cfg := &GlobalConfig{}
	if _, err := cfg.Get("nope"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Get(nope) error = %v, want ErrUnknownKey", err)
	}
	if err := cfg.Set("nope", "x"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Set(nope) error = %v, want ErrUnknownKey", err)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	if got, want := ExpandPath("~/logs/x.log"), filepath.Join(home, "logs/x.log"); got != want {
		t.Errorf("ExpandPath() = %q, want %q", got, want)
	}
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandPath() = %q, want unchanged", got)
	}
}
