package main

import (
	"errors"
	"strings"

	"github.com/neurocp/neurocp/internal/contextfile"
	"github.com/neurocp/neurocp/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	contextAddFile string
	contextShowAll bool
)

func init() {
	rootCmd.AddCommand(contextCmd)

	contextAddCmd.Flags().StringVarP(&contextAddFile, "file", "f", "", "Path to the context file (required)")
	contextAddCmd.MarkFlagRequired("file")
	contextCmd.AddCommand(contextAddCmd)

	contextCmd.AddCommand(contextUseCmd)

	contextShowCmd.Flags().BoolVarP(&contextShowAll, "all", "a", false, "List every context of the active agent")
	contextCmd.AddCommand(contextShowCmd)

	contextCmd.AddCommand(contextRemoveCmd)
}

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Manage the active agent's contexts",
	Long: `Commands for managing the contexts of the active agent.

A context is a named reference to a local file. Its content is read when
it is shown or used by ask, never copied into the state file.`,
}

var contextAddCmd = &cobra.Command{
	Use:   "add <context_name> --file <path>",
	Short: "Add a context and make it current",
	Long: `Add a context to the active agent and make it the current context.

An existing context with the same name is replaced. PDF files are read as
their extracted text.`,
	Args: cobra.ExactArgs(1),
	RunE: runContextAdd,
}

func runContextAdd(cmd *cobra.Command, args []string) error {
	name := args[0]
	s, doc := loadDocument(cmd)

	agentName, agent, err := requireActiveAgent(doc)
	if err != nil {
		return err
	}

	absPath, err := contextfile.Resolve(contextAddFile)
	switch {
	case errors.Is(err, contextfile.ErrFileNotFound):
		outputError(cmd, "File '%s' does not exist.", contextAddFile)
		return nil
	case errors.Is(err, contextfile.ErrNotRegularFile):
		outputError(cmd, "'%s' is not a valid file.", contextAddFile)
		return nil
	case err != nil:
		outputError(cmd, "%v", err)
		return nil
	}

	agent.AddContext(name, absPath)
	if !saveDocument(cmd, s, doc) {
		return nil
	}
	logger.Info("context added",
		zap.String("agent", agentName),
		zap.String("context", name),
		zap.String("path", absPath))

	outputHuman(cmd, "Context '%s' from '%s' added and activated for agent '%s'.\n", name, absPath, agentName)
	return nil
}

// completeContextNames offers the active agent's context names for shell
// completion.
func completeContextNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	doc, _ := store.New(resolveDataPath(), logger).Load()
	_, agent, err := doc.ActiveAgent()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return agent.ContextNames(), cobra.ShellCompDirectiveNoFileComp
}

var contextUseCmd = &cobra.Command{
	Use:               "use <context_name>",
	Short:             "Set the current context",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeContextNames,
	RunE:              runContextUse,
}

func runContextUse(cmd *cobra.Command, args []string) error {
	name := args[0]
	s, doc := loadDocument(cmd)

	agentName, agent, err := requireActiveAgent(doc)
	if err != nil {
		return err
	}

	if err := agent.UseContext(name); err != nil {
		if available := agent.ContextNames(); len(available) > 0 {
			outputError(cmd, "Context '%s' not found for agent '%s'. Available contexts: %s",
				name, agentName, strings.Join(available, ", "))
		} else {
			outputError(cmd, "Context '%s' not found for agent '%s'. This agent has no contexts yet. Use 'neurocp context add ...'.",
				name, agentName)
		}
		return nil
	}

	if !saveDocument(cmd, s, doc) {
		return nil
	}
	logger.Info("context activated", zap.String("agent", agentName), zap.String("context", name))
	outputHuman(cmd, "Context '%s' is now active for agent '%s'.\n", name, agentName)
	return nil
}

var contextShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current context",
	Long: `Show the current context of the active agent with a short preview of
its file. With --all, list every context instead (files are not read).`,
	Args: cobra.NoArgs,
	RunE: runContextShow,
}

func runContextShow(cmd *cobra.Command, args []string) error {
	_, doc := loadDocument(cmd)

	agentName, agent, err := requireActiveAgent(doc)
	if err != nil {
		return err
	}

	if contextShowAll {
		showAllContexts(cmd, agentName, agent)
		return nil
	}

	current, path, ok := agent.Current()
	if !ok {
		if jsonOutput {
			return outputJSON(cmd, ContextShowResponse{Agent: agentName})
		}
		outputHuman(cmd, "No active context for agent '%s'. Use '--all' to see all.\n", agentName)
		return nil
	}
	if path == "" {
		outputError(cmd, "Path for active context '%s' not found.", current)
		return nil
	}

	snippet, truncated, readErr := contextfile.ReadHead(path, contextfile.SnippetChars)
	if readErr != nil {
		outputWarning(cmd, "Could not read context file '%s': %v", path, readErr)
	}

	if jsonOutput {
		return outputJSON(cmd, ContextShowResponse{
			Agent:     agentName,
			Name:      current,
			Path:      path,
			Snippet:   snippet,
			Truncated: truncated,
		})
	}

	outputHuman(cmd, "Active context for agent '%s':\n  Name: %s\n  Path: %s\n", agentName, current, path)
	if readErr == nil {
		ellipsis := ""
		if truncated {
			ellipsis = "..."
		}
		outputHuman(cmd, "  Snippet: \"%s%s\"\n", snippet, ellipsis)
	}
	return nil
}

func showAllContexts(cmd *cobra.Command, agentName string, agent *store.Agent) {
	names := agent.ContextNames()

	if jsonOutput {
		resp := ContextListResponse{Agent: agentName, Current: agent.CurrentContext, Contexts: []ContextSummary{}}
		for _, name := range names {
			resp.Contexts = append(resp.Contexts, ContextSummary{
				Name:    name,
				Path:    agent.Contexts[name],
				Current: name == agent.CurrentContext,
			})
		}
		outputJSON(cmd, resp)
		return
	}

	if len(names) == 0 {
		outputHuman(cmd, "No contexts defined for agent '%s'.\n", agentName)
		return
	}

	outputHuman(cmd, "Contexts for agent '%s':\n", agentName)
	for _, name := range names {
		marker := ""
		if name == agent.CurrentContext {
			marker = " (*)"
		}
		outputHuman(cmd, "- %s (Path: %s)%s\n", name, agent.Contexts[name], marker)
	}
	if agent.CurrentContext != "" {
		outputHuman(cmd, "\n(*) indicates the active context.\n")
	}
}

var contextRemoveCmd = &cobra.Command{
	Use:               "remove <context_name>",
	Short:             "Remove a context",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeContextNames,
	RunE:              runContextRemove,
}

func runContextRemove(cmd *cobra.Command, args []string) error {
	name := args[0]
	s, doc := loadDocument(cmd)

	agentName, agent, err := requireActiveAgent(doc)
	if err != nil {
		return err
	}

	wasCurrent, err := agent.RemoveContext(name)
	if err != nil {
		outputError(cmd, "Context '%s' not found.", name)
		return nil
	}

	if !saveDocument(cmd, s, doc) {
		return nil
	}
	logger.Info("context removed",
		zap.String("agent", agentName),
		zap.String("context", name),
		zap.Bool("was_current", wasCurrent))

	outputHuman(cmd, "Context '%s' removed from agent '%s'.\n", name, agentName)
	if wasCurrent {
		outputHuman(cmd, "The removed context was active. No active context now.\n")
	}
	return nil
}
