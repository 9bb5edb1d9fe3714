package llm

import (
	"context"
	"errors"
	"fmt"
)

// Ask sends prompt to c and returns the reply. It never fails: every error
// becomes a descriptive answer string.
func Ask(ctx context.Context, c Completer, model string, prompt Prompt) string {
	reply, err := c.Complete(ctx, model, prompt)
	if err != nil {
		return ErrorAnswer(err)
	}
	return reply
}

// ErrorAnswer renders a completion failure as the text shown in place of an
// answer.
func ErrorAnswer(err error) string {
	if errors.Is(err, ErrEmptyResponse) {
		return "OpenAI API returned an empty response."
	}

	answer := fmt.Sprintf("OpenAI API Error: %v", err)
	var missing *MissingCredentialError
	if errors.As(err, &missing) {
		answer += fmt.Sprintf("\nMake sure %s is set in your environment.", missing.EnvVar)
	}
	return answer
}
