// Package store holds the persisted agent/context document and the rules for
// mutating it.
package store

import (
	"errors"
	"sort"
)

// DefaultAgentModel is recorded on agents created without an explicit model.
// It is informational only.
const DefaultAgentModel = "default_mock_v1"

// Lookup and validation errors.
var (
	ErrAgentExists      = errors.New("agent already exists")
	ErrAgentNotFound    = errors.New("agent not found")
	ErrContextNotFound  = errors.New("context not found")
	ErrNoActiveAgent    = errors.New("no active agent set")
	ErrStaleActiveAgent = errors.New("active agent is configured but not found")
)

// Agent is a named set of contexts plus the one currently in use.
type Agent struct {
	Model          string            // Informational model identifier
	CurrentContext string            // Key of Contexts, empty when none
	Contexts       map[string]string // Context name -> absolute file path
}

// newAgent returns an agent with no contexts.
func newAgent(model string) *Agent {
	if model == "" {
		model = DefaultAgentModel
	}
	return &Agent{Model: model, Contexts: map[string]string{}}
}

// Document is the whole persisted state: every agent and the active one.
//
// Agent insertion order is kept because deleting the active agent promotes
// the earliest remaining agent.
type Document struct {
	order       []string
	agents      map[string]*Agent
	activeAgent string
}

// NewDocument returns the empty default document.
func NewDocument() *Document {
	return &Document{agents: map[string]*Agent{}}
}

// Len returns the number of agents.
func (d *Document) Len() int {
	return len(d.order)
}

// Names returns agent names in insertion order.
func (d *Document) Names() []string {
	return append([]string(nil), d.order...)
}

// SortedNames returns agent names in lexicographic order.
func (d *Document) SortedNames() []string {
	names := d.Names()
	sort.Strings(names)
	return names
}

// Agent returns the named agent.
func (d *Document) Agent(name string) (*Agent, bool) {
	a, ok := d.agents[name]
	return a, ok
}

// ActiveName returns the recorded active agent name, which may be empty or
// stale. Use ActiveAgent to resolve it.
func (d *Document) ActiveName() string {
	return d.activeAgent
}

// ActiveAgent resolves the active agent.
// Returns ErrNoActiveAgent when none is recorded and ErrStaleActiveAgent when
// the recorded name is not an agent.
func (d *Document) ActiveAgent() (string, *Agent, error) {
	if d.activeAgent == "" {
		return "", nil, ErrNoActiveAgent
	}
	a, ok := d.agents[d.activeAgent]
	if !ok {
		return d.activeAgent, nil, ErrStaleActiveAgent
	}
	return d.activeAgent, a, nil
}

// CreateAgent adds a new agent. The agent becomes active when no agent is
// active; activated reports whether that happened.
func (d *Document) CreateAgent(name, model string) (activated bool, err error) {
	if _, ok := d.agents[name]; ok {
		return false, ErrAgentExists
	}
	d.insert(name, newAgent(model))
	if d.activeAgent == "" {
		d.activeAgent = name
		return true, nil
	}
	return false, nil
}

// UseAgent makes the named agent active.
func (d *Document) UseAgent(name string) error {
	if _, ok := d.agents[name]; !ok {
		return ErrAgentNotFound
	}
	d.activeAgent = name
	return nil
}

// DeleteAgent removes the named agent. If it was active, the earliest
// remaining agent is promoted; promoted is empty when the agent was not
// active or no agents remain.
func (d *Document) DeleteAgent(name string) (wasActive bool, promoted string, err error) {
	if _, ok := d.agents[name]; !ok {
		return false, "", ErrAgentNotFound
	}
	delete(d.agents, name)
	for i, n := range d.order {
		if n == name {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}

	if d.activeAgent != name {
		return false, "", nil
	}
	d.activeAgent = ""
	if len(d.order) > 0 {
		d.activeAgent = d.order[0]
		promoted = d.activeAgent
	}
	return true, promoted, nil
}

func (d *Document) insert(name string, a *Agent) {
	if _, ok := d.agents[name]; !ok {
		d.order = append(d.order, name)
	}
	d.agents[name] = a
}

// AddContext records a context path, replacing any context of the same name,
// and makes it current.
func (a *Agent) AddContext(name, absPath string) {
	if a.Contexts == nil {
		a.Contexts = map[string]string{}
	}
	a.Contexts[name] = absPath
	a.CurrentContext = name
}

// UseContext makes the named context current.
func (a *Agent) UseContext(name string) error {
	if _, ok := a.Contexts[name]; !ok {
		return ErrContextNotFound
	}
	a.CurrentContext = name
	return nil
}

// RemoveContext deletes the named context, clearing the current context if
// it pointed there.
func (a *Agent) RemoveContext(name string) (wasCurrent bool, err error) {
	if _, ok := a.Contexts[name]; !ok {
		return false, ErrContextNotFound
	}
	delete(a.Contexts, name)
	if a.CurrentContext == name {
		a.CurrentContext = ""
		return true, nil
	}
	return false, nil
}

// Current returns the current context name and its recorded path.
// path is empty when the name has no entry in Contexts.
func (a *Agent) Current() (name, path string, ok bool) {
	if a.CurrentContext == "" {
		return "", "", false
	}
	return a.CurrentContext, a.Contexts[a.CurrentContext], true
}

// ContextNames returns context names in lexicographic order.
func (a *Agent) ContextNames() []string {
	names := make([]string, 0, len(a.Contexts))
	for n := range a.Contexts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
