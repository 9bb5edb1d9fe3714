package main

import (
	"errors"
	"fmt"

	"github.com/neurocp/neurocp/internal/store"
	"github.com/spf13/cobra"
)

// loadDocument opens the state file and loads it. Load problems are shown as
// warnings and the command continues with an empty document.
func loadDocument(cmd *cobra.Command) (*store.Store, *store.Document) {
	s := store.New(resolveDataPath(), logger)
	doc, err := s.Load()
	if err != nil {
		if errors.Is(err, store.ErrCorrupt) {
			outputWarning(cmd, "%s is corrupted or not valid JSON. A new empty data structure will be used. Previous data might be lost if not backed up.", s.Path())
		} else {
			outputWarning(cmd, "%v. A new empty data structure will be used.", err)
		}
	}
	return s, doc
}

// saveDocument writes doc back, reporting a failure to the user.
// Returns false when the write failed and the change was lost.
func saveDocument(cmd *cobra.Command, s *store.Store, doc *store.Document) bool {
	if err := s.Save(doc); err != nil {
		outputError(cmd, "Could not write to data file %s: %v", s.Path(), err)
		return false
	}
	return true
}

// requireActiveAgent resolves the active agent. The returned error is a hard
// failure: the command must return it so the process exits nonzero.
func requireActiveAgent(doc *store.Document) (string, *store.Agent, error) {
	name, agent, err := doc.ActiveAgent()
	switch {
	case errors.Is(err, store.ErrNoActiveAgent):
		return "", nil, fmt.Errorf("%w. Use 'neurocp agent use <agent_name>' to set one", err)
	case errors.Is(err, store.ErrStaleActiveAgent):
		return "", nil, fmt.Errorf("active agent '%s': %w. The data file may be corrupted. Try setting an existing agent as active again", name, err)
	case err != nil:
		return "", nil, err
	}
	return name, agent, nil
}
