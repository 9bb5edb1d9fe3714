package main

import (
	"errors"

	"github.com/neurocp/neurocp/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var agentCreateModel string

func init() {
	rootCmd.AddCommand(agentCmd)

	agentCreateCmd.Flags().StringVarP(&agentCreateModel, "model", "m", store.DefaultAgentModel, "Model label recorded on the agent")
	agentCmd.AddCommand(agentCreateCmd)
	agentCmd.AddCommand(agentListCmd)
	agentCmd.AddCommand(agentUseCmd)
	agentCmd.AddCommand(agentDeleteCmd)
}

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Manage agents",
	Long:  `Commands for creating, listing, selecting, and deleting agents.`,
}

var agentCreateCmd = &cobra.Command{
	Use:   "create <agent_name>",
	Short: "Create an agent",
	Long: `Create a new agent with no contexts.

If no agent is active, the new agent becomes the active one.`,
	Args: cobra.ExactArgs(1),
	RunE: runAgentCreate,
}

func runAgentCreate(cmd *cobra.Command, args []string) error {
	name := args[0]
	s, doc := loadDocument(cmd)

	activated, err := doc.CreateAgent(name, agentCreateModel)
	if errors.Is(err, store.ErrAgentExists) {
		outputError(cmd, "Agent '%s' already exists.", name)
		return nil
	}

	if !saveDocument(cmd, s, doc) {
		return nil
	}
	logger.Info("agent created", zap.String("agent", name), zap.Bool("activated", activated))

	if activated {
		outputHuman(cmd, "Agent '%s' created and set as active.\n", name)
	} else {
		outputHuman(cmd, "Agent '%s' created.\n", name)
	}
	return nil
}

var agentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List agents",
	Long:  `List all agents in name order. The active agent is marked with (*).`,
	Args:  cobra.NoArgs,
	RunE:  runAgentList,
}

func runAgentList(cmd *cobra.Command, args []string) error {
	_, doc := loadDocument(cmd)
	active := doc.ActiveName()
	names := doc.SortedNames()

	if jsonOutput {
		resp := AgentListResponse{ActiveAgent: active, Agents: []AgentSummary{}}
		for _, name := range names {
			a, _ := doc.Agent(name)
			resp.Agents = append(resp.Agents, AgentSummary{
				Name:           name,
				Model:          a.Model,
				Active:         name == active,
				CurrentContext: a.CurrentContext,
				Contexts:       len(a.Contexts),
			})
		}
		return outputJSON(cmd, resp)
	}

	if len(names) == 0 {
		outputHuman(cmd, "No agents created yet. Use 'neurocp agent create <agent_name>'.\n")
		return nil
	}

	outputHuman(cmd, "Available Agents:\n")
	for _, name := range names {
		marker := ""
		if name == active {
			marker = " (*)"
		}
		outputHuman(cmd, "- %s%s\n", name, marker)
	}
	if active != "" {
		outputHuman(cmd, "\n(*) indicates the active agent.\n")
	} else {
		outputHuman(cmd, "\nNo agent is currently active. Use 'neurocp agent use <agent_name>' to activate one.\n")
	}
	return nil
}

// completeAgentNames offers existing agent names for shell completion.
func completeAgentNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	doc, _ := store.New(resolveDataPath(), logger).Load()
	return doc.SortedNames(), cobra.ShellCompDirectiveNoFileComp
}

var agentUseCmd = &cobra.Command{
	Use:               "use <agent_name>",
	Short:             "Set the active agent",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeAgentNames,
	RunE:              runAgentUse,
}

func runAgentUse(cmd *cobra.Command, args []string) error {
	name := args[0]
	s, doc := loadDocument(cmd)

	if err := doc.UseAgent(name); err != nil {
		outputError(cmd, "Agent '%s' not found.", name)
		return nil
	}

	if !saveDocument(cmd, s, doc) {
		return nil
	}
	logger.Info("agent activated", zap.String("agent", name))
	outputHuman(cmd, "Agent '%s' is now active.\n", name)
	return nil
}

var agentDeleteCmd = &cobra.Command{
	Use:   "delete <agent_name>",
	Short: "Delete an agent",
	Long: `Delete an agent and all of its contexts.

Deleting the active agent activates the oldest remaining agent, if any.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeAgentNames,
	RunE:              runAgentDelete,
}

func runAgentDelete(cmd *cobra.Command, args []string) error {
	name := args[0]
	s, doc := loadDocument(cmd)

	wasActive, promoted, err := doc.DeleteAgent(name)
	if err != nil {
		outputError(cmd, "Agent '%s' not found.", name)
		return nil
	}

	if !saveDocument(cmd, s, doc) {
		return nil
	}
	logger.Info("agent deleted",
		zap.String("agent", name),
		zap.Bool("was_active", wasActive),
		zap.String("promoted", promoted))

	outputHuman(cmd, "Agent '%s' deleted.\n", name)
	if wasActive {
		outputHuman(cmd, "The deleted agent was active. No agent is active now.\n")
		if promoted != "" {
			outputHuman(cmd, "Agent '%s' has been automatically set as active.\n", promoted)
		}
	}
	return nil
}
