package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentCreate_FirstIsActive(t *testing.T) {
	setupCLI(t)

	out := mustRun(t, "agent", "create", "a1")
	assert.Equal(t, "Agent 'a1' created and set as active.\n", out)

	doc := loadState(t)
	assert.Equal(t, []string{"a1"}, doc.Names())
	assert.Equal(t, "a1", doc.ActiveName())
}

func TestAgentCreateCreateDelete(t *testing.T) {
	setupCLI(t)

	mustRun(t, "agent", "create", "a1")
	out := mustRun(t, "agent", "create", "a2")
	assert.Equal(t, "Agent 'a2' created.\n", out)
	assert.Equal(t, "a1", loadState(t).ActiveName())

	out = mustRun(t, "agent", "delete", "a1")
	assert.Contains(t, out, "Agent 'a1' deleted.")
	assert.Contains(t, out, "The deleted agent was active.")
	assert.Contains(t, out, "Agent 'a2' has been automatically set as active.")

	doc := loadState(t)
	assert.Equal(t, []string{"a2"}, doc.Names())
	assert.Equal(t, "a2", doc.ActiveName())
}

func TestAgentCreate_Duplicate(t *testing.T) {
	setupCLI(t)
	mustRun(t, "agent", "create", "a1", "--model", "first")

	out, errOut, err := runCLI(t, "agent", "create", "a1", "--model", "second")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Agent 'a1' already exists.")

	a, ok := loadState(t).Agent("a1")
	require.True(t, ok)
	assert.Equal(t, "first", a.Model)
}

func TestAgentDelete_Sole(t *testing.T) {
	setupCLI(t)
	mustRun(t, "agent", "create", "only")

	out := mustRun(t, "agent", "delete", "only")
	assert.Contains(t, out, "No agent is active now.")
	assert.NotContains(t, out, "automatically set as active")

	doc := loadState(t)
	assert.Equal(t, 0, doc.Len())
	assert.Empty(t, doc.ActiveName())
}

func TestAgentDelete_NotFound(t *testing.T) {
	setupCLI(t)
	mustRun(t, "agent", "create", "a1")

	_, errOut, err := runCLI(t, "agent", "delete", "ghost")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Agent 'ghost' not found.")
	assert.Equal(t, 1, loadState(t).Len())
}

func TestAgentUse(t *testing.T) {
	setupCLI(t)
	mustRun(t, "agent", "create", "a1")
	mustRun(t, "agent", "create", "a2")

	out := mustRun(t, "agent", "use", "a2")
	assert.Equal(t, "Agent 'a2' is now active.\n", out)
	assert.Equal(t, "a2", loadState(t).ActiveName())

	_, errOut, err := runCLI(t, "agent", "use", "ghost")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Agent 'ghost' not found.")
	assert.Equal(t, "a2", loadState(t).ActiveName())
}

func TestAgentList(t *testing.T) {
	setupCLI(t)

	out := mustRun(t, "agent", "list")
	assert.Contains(t, out, "No agents created yet.")

	mustRun(t, "agent", "create", "beta")
	mustRun(t, "agent", "create", "alpha")

	out = mustRun(t, "agent", "list")
	want := "Available Agents:\n- alpha\n- beta (*)\n\n(*) indicates the active agent.\n"
	assert.Equal(t, want, out)
}

func TestAgentList_NoneActive(t *testing.T) {
	dir, _ := setupCLI(t)
	writeFile(t, dir, "neurocp_data.json",
		`{"agents": {"idle": {"model": "m", "current_context_name": null, "contexts": {}}}, "active_agent": null}`)

	out := mustRun(t, "agent", "list")
	assert.Contains(t, out, "- idle\n")
	assert.Contains(t, out, "No agent is currently active.")
}

func TestAgentList_JSON(t *testing.T) {
	setupCLI(t)
	mustRun(t, "agent", "create", "a1", "-m", "gpt-4o")
	mustRun(t, "agent", "create", "a2")

	out := mustRun(t, "--json", "agent", "list")
	var resp AgentListResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))

	assert.Equal(t, "a1", resp.ActiveAgent)
	require.Len(t, resp.Agents, 2)
	assert.Equal(t, AgentSummary{Name: "a1", Model: "gpt-4o", Active: true}, resp.Agents[0])
	assert.Equal(t, "a2", resp.Agents[1].Name)
	assert.False(t, resp.Agents[1].Active)
}

func TestAgentCreate_MissingArg(t *testing.T) {
	setupCLI(t)
	_, _, err := runCLI(t, "agent", "create")
	assert.Error(t, err)
}
