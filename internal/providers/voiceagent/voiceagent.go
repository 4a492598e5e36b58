package voiceagent

import "context"

// Assistant is the vendor-side view of a configured voice agent.
type Assistant struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	FirstMessage string `json:"firstMessage"`
}

// AssistantParams configures the conversational model and turn-taking
// behavior on the vendor side.
type AssistantParams struct {
	Name         string
	FirstMessage string
	SystemPrompt string
	Model        string // "gpt-4o"
	Provider     string // "openai"
	Language     string // transcriber language, "en"
}

// Provider is the external voice-agent orchestration vendor. The conversation
// engine itself stays opaque; only assistant configuration crosses this
// boundary.
type Provider interface {
	CreateAssistant(ctx context.Context, p AssistantParams) (*Assistant, error)
	UpdateAssistant(ctx context.Context, assistantID string, p AssistantParams) error
}
