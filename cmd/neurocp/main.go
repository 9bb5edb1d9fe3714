// Package main provides the neurocp CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/neurocp/neurocp/internal/config"
	"github.com/neurocp/neurocp/internal/logging"
	"github.com/neurocp/neurocp/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time via ldflags
var Version = "dev"

// DataEnvVar overrides the state file location.
const DataEnvVar = "NEUROCP_DATA"

var (
	// dataPath is the --data flag value
	dataPath string

	// jsonOutput switches read commands to JSON responses
	jsonOutput bool

	// logger is the diagnostic logger, replaced in PersistentPreRun
	logger = zap.NewNop()
)

func main() {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "neurocp",
	Short: "Manage agents and their file contexts, and ask questions about them",
	Long: `neurocp manages named agents, each with a set of named contexts that
point at local files, and sends questions to an OpenAI-compatible chat model,
optionally grounded in the active agent's current context.

State is kept in neurocp_data.json in the current directory.`,
	Example: `  neurocp agent create my_agent
  neurocp context add notes --file ./notes.txt
  neurocp ask "What are the open action items?"`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRun:  setupLogging,
	PersistentPostRun: func(cmd *cobra.Command, args []string) { _ = logger.Sync() },
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Path to the state file (default $NEUROCP_DATA or ./"+store.DefaultFile+")")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.Version = Version
}

// setupLogging opens the diagnostic log configured in the global config.
// A broken config only costs the log, never the command.
func setupLogging(cmd *cobra.Command, args []string) {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		outputWarning(cmd, "%v (using defaults)", err)
		cfg = &config.GlobalConfig{}
	}
	logger = logging.NewOrNop(cfg.ResolvedLogFile(), cfg.ResolvedLogLevel())
	logger.Debug("command started", zap.String("command", cmd.CommandPath()), zap.Strings("args", args))
}

// resolveDataPath returns the state file path: --data, then NEUROCP_DATA,
// then the default file in the working directory.
func resolveDataPath() string {
	if dataPath != "" {
		return dataPath
	}
	if p := os.Getenv(DataEnvVar); p != "" {
		return p
	}
	return store.DefaultFile
}
