package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/neurocp/neurocp/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set values in ~/.config/neurocp/config.yml.

Usage:
  neurocp config                              # Show all config
  neurocp config model                        # Get specific value
  neurocp config model gpt-4o-mini            # Set value
  neurocp config base-url http://localhost:11434/v1

Keys:
  model        Chat model used by ask (env NEUROCP_MODEL overrides)
  base-url     OpenAI-compatible API base URL (env NEUROCP_BASE_URL overrides)
  api-key-env  Environment variable holding the API key (default OPENAI_API_KEY)
  log-level    Diagnostic log level: debug, info, warn, error
  log-file     Diagnostic log path`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// No args: show all config
	if len(args) == 0 {
		if jsonOutput {
			return outputJSON(cmd, ConfigResponse{
				Model:     cfg.ResolvedModel(),
				BaseURL:   cfg.ResolvedBaseURL(),
				APIKeyEnv: cfg.ResolvedAPIKeyEnv(),
				LogLevel:  cfg.ResolvedLogLevel(),
				LogFile:   cfg.ResolvedLogFile(),
			})
		}
		for _, key := range config.Keys {
			value, _ := cfg.Get(key)
			outputHuman(cmd, "%-12s %s\n", key+":", value)
		}
		return nil
	}

	key := normalizeKey(args[0])

	// One arg: get specific value
	if len(args) == 1 {
		value, err := cfg.Get(key)
		if err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(cmd, map[string]string{strings.ReplaceAll(key, "-", "_"): value})
		}
		outputHuman(cmd, "%s\n", value)
		return nil
	}

	// Two args: set value
	value := args[1]
	if err := cfg.Set(key, value); err != nil {
		if errors.Is(err, config.ErrUnknownKey) {
			return err
		}
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	if jsonOutput {
		return outputJSON(cmd, UpdateResponse{Status: "updated", Key: key, Value: value})
	}
	outputHuman(cmd, "Updated %s to %s\n", key, value)
	return nil
}

// normalizeKey converts key formats (base_url, BASE-URL) to the dashed form.
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "-")
	return key
}
