// Package llm builds query prompts and sends them to a chat-completion
// endpoint.
package llm

import "fmt"

// System instructions for the two prompt shapes.
const (
	SystemGeneric     = "You are a helpful assistant. Answer the user's question."
	SystemContextOnly = "You are a helpful assistant. Answer based only on the provided context. If unavailable, say so."
)

// Prompt is the ordered system/user message pair sent for one query.
type Prompt struct {
	System string
	User   string
}

// BuildPrompt builds the prompt for query. Empty contextText means no context:
// the generic instruction is used and only the question is sent.
func BuildPrompt(query, contextText string) Prompt {
	if contextText == "" {
		return Prompt{
			System: SystemGeneric,
			User:   fmt.Sprintf("Question: %s", query),
		}
	}
	return Prompt{
		System: SystemContextOnly,
		User:   fmt.Sprintf("Context:\n---\n%s\n---\n\nQuestion: %s", contextText, query),
	}
}
