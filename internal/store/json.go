package store

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// documentJSON is the on-disk shape of a Document.
type documentJSON struct {
	Agents      agentListJSON `json:"agents"`
	ActiveAgent *string       `json:"active_agent"`
}

// agentJSON is the on-disk shape of an Agent.
type agentJSON struct {
	Model              string            `json:"model"`
	CurrentContextName *string           `json:"current_context_name"`
	Contexts           map[string]string `json:"contexts"`
}

// agentListJSON is a JSON object of agents that keeps key order.
type agentListJSON struct {
	names  []string
	agents map[string]agentJSON
}

// MarshalJSON implements json.Marshaler.
func (d *Document) MarshalJSON() ([]byte, error) {
	w := documentJSON{
		Agents: agentListJSON{
			names:  d.order,
			agents: make(map[string]agentJSON, len(d.agents)),
		},
	}
	for name, a := range d.agents {
		aj := agentJSON{Model: a.Model, Contexts: a.Contexts}
		if aj.Contexts == nil {
			aj.Contexts = map[string]string{}
		}
		if a.CurrentContext != "" {
			cur := a.CurrentContext
			aj.CurrentContextName = &cur
		}
		w.Agents.agents[name] = aj
	}
	if d.activeAgent != "" {
		active := d.activeAgent
		w.ActiveAgent = &active
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	var w documentJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	doc := NewDocument()
	for _, name := range w.Agents.names {
		aj := w.Agents.agents[name]
		a := &Agent{Model: aj.Model, Contexts: make(map[string]string, len(aj.Contexts))}
		for k, v := range aj.Contexts {
			a.Contexts[k] = v
		}
		if aj.CurrentContextName != nil {
			a.CurrentContext = *aj.CurrentContextName
		}
		doc.insert(name, a)
	}
	if w.ActiveAgent != nil {
		doc.activeAgent = *w.ActiveAgent
	}

	*d = *doc
	return nil
}

// MarshalJSON implements json.Marshaler, writing agents in list order.
func (l agentListJSON) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range l.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(l.agents[name])
		if err != nil {
			return nil, fmt.Errorf("encoding agent %q: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler, recording key order.
func (l *agentListJSON) UnmarshalJSON(data []byte) error {
	l.names = nil
	l.agents = map[string]agentJSON{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("agents: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("agents: expected name, got %v", tok)
		}
		var a agentJSON
		if err := dec.Decode(&a); err != nil {
			return fmt.Errorf("agent %q: %w", name, err)
		}
		if _, seen := l.agents[name]; !seen {
			l.names = append(l.names, name)
		}
		l.agents[name] = a
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
