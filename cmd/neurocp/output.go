package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// outputJSON writes a value as formatted JSON to the command's stdout.
func outputJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to the command's stdout.
func outputHuman(cmd *cobra.Command, format string, args ...interface{}) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

// outputError reports a soft failure: as JSON on stdout in --json mode,
// otherwise on stderr.
func outputError(cmd *cobra.Command, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if jsonOutput {
		outputJSON(cmd, ErrorResponse{Error: msg})
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", msg)
}

// outputWarning writes a warning to stderr.
func outputWarning(cmd *cobra.Command, format string, args ...interface{}) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Warning: "+format+"\n", args...)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// AgentSummary describes one agent in list output.
type AgentSummary struct {
	Name           string `json:"name"`
	Model          string `json:"model"`
	Active         bool   `json:"active"`
	CurrentContext string `json:"current_context,omitempty"`
	Contexts       int    `json:"contexts"`
}

// AgentListResponse is the response for agent list.
type AgentListResponse struct {
	ActiveAgent string         `json:"active_agent,omitempty"`
	Agents      []AgentSummary `json:"agents"`
}

// ContextSummary describes one context in list output.
type ContextSummary struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Current bool   `json:"current"`
}

// ContextListResponse is the response for context show --all.
type ContextListResponse struct {
	Agent    string           `json:"agent"`
	Current  string           `json:"current,omitempty"`
	Contexts []ContextSummary `json:"contexts"`
}

// ContextShowResponse is the response for context show.
type ContextShowResponse struct {
	Agent     string `json:"agent"`
	Name      string `json:"name,omitempty"`
	Path      string `json:"path,omitempty"`
	Snippet   string `json:"snippet,omitempty"`
	Truncated bool   `json:"truncated,omitempty"`
}

// AskResponse is the response for ask.
type AskResponse struct {
	Agent   string `json:"agent"`
	Context string `json:"context,omitempty"`
	Model   string `json:"model"`
	Query   string `json:"query"`
	Answer  string `json:"answer"`
}

// ConfigResponse is the response for config with no arguments.
type ConfigResponse struct {
	Model     string `json:"model"`
	BaseURL   string `json:"base_url,omitempty"`
	APIKeyEnv string `json:"api_key_env"`
	LogLevel  string `json:"log_level"`
	LogFile   string `json:"log_file"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}
