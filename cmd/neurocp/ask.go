package main

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/neurocp/neurocp/internal/clipboard"
	"github.com/neurocp/neurocp/internal/config"
	"github.com/neurocp/neurocp/internal/contextfile"
	"github.com/neurocp/neurocp/internal/llm"
	"github.com/neurocp/neurocp/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	askModel string
	askCopy  bool
)

// newCompleter builds the chat-completion client. Tests replace it.
var newCompleter = func(cfg *config.GlobalConfig) (llm.Completer, error) {
	c, err := llm.NewOpenAIClientFromEnv(cfg.ResolvedAPIKeyEnv(), cfg.ResolvedBaseURL(), logger)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func init() {
	// Load .env file if present (for OPENAI_API_KEY)
	_ = godotenv.Load()

	askCmd.Flags().StringVarP(&askModel, "model", "m", "", "Chat model to query (default from config, then "+config.DefaultModel+")")
	askCmd.Flags().BoolVar(&askCopy, "copy", false, "Copy the answer to the system clipboard")
	rootCmd.AddCommand(askCmd)
}

var askCmd = &cobra.Command{
	Use:   "ask <query>",
	Short: "Ask the active agent a question",
	Long: `Send a question to the chat model on behalf of the active agent.

If the agent has a current context, up to the first 10000 characters of its
file are sent along and the model is told to answer only from them.

Environment Variables:
  OPENAI_API_KEY  API key for the chat endpoint (required; the variable name
                  can be changed with 'neurocp config api-key-env')`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	_, doc := loadDocument(cmd)

	agentName, agent, err := requireActiveAgent(doc)
	if err != nil {
		return err
	}

	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		outputWarning(cmd, "%v (using defaults)", err)
		cfg = &config.GlobalConfig{}
	}
	model := askModel
	if model == "" {
		model = cfg.ResolvedModel()
	}

	contextText, contextLabel := readAskContext(cmd, agent)
	prompt := llm.BuildPrompt(query, contextText)

	if !jsonOutput {
		outputHuman(cmd, "\nQuerying OpenAI (%s)...\n", model)
	}

	var answer string
	completer, err := newCompleter(cfg)
	if err != nil {
		answer = llm.ErrorAnswer(err)
	} else {
		answer = llm.Ask(cmd.Context(), completer, model, prompt)
	}
	logger.Info("query answered",
		zap.String("agent", agentName),
		zap.String("model", model),
		zap.String("context", contextLabel),
		zap.Int("context_chars", len([]rune(contextText))))

	copied := false
	if askCopy {
		if err := clipboard.Copy(answer); err != nil {
			outputWarning(cmd, "Could not copy answer: %v", err)
		} else {
			copied = true
		}
	}

	if jsonOutput {
		resp := AskResponse{Agent: agentName, Model: model, Query: query, Answer: answer}
		if contextText != "" {
			resp.Context = agent.CurrentContext
		}
		return outputJSON(cmd, resp)
	}

	outputHuman(cmd, "Agent '%s' (using %s via OpenAI):\n  Query: \"%s\"\n", agentName, contextLabel, query)
	outputHuman(cmd, "  Answer: %s\n", renderAnswer(cmd.OutOrStdout(), answer))
	if copied {
		outputHuman(cmd, "(Answer copied to clipboard)\n")
	}
	return nil
}

// readAskContext returns the current context's text for a query and a label
// describing it. Missing or unreadable files are warned about and skipped.
func readAskContext(cmd *cobra.Command, agent *store.Agent) (text, label string) {
	const noContext = "no active context"

	name, path, ok := agent.Current()
	if !ok || path == "" {
		return "", noContext
	}
	if !contextfile.Exists(path) {
		outputWarning(cmd, "File '%s' not found. Skipping context.", path)
		return "", noContext
	}

	text, truncated, err := contextfile.ReadHead(path, contextfile.MaxContextChars)
	if err != nil {
		outputWarning(cmd, "Could not read context file '%s': %v", path, err)
		return "", noContext
	}
	if truncated {
		outputWarning(cmd, "Context too large, truncated to first %d characters.", contextfile.MaxContextChars)
	}
	return text, fmt.Sprintf("context '%s'", name)
}
