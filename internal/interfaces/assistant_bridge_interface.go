package interfaces

import "context"

// AssistantBridge is the completion-generating collaborator behind the
// reserved assistant identity. Implementations bound the call with their own
// timeout; any failure means no reply text.
type AssistantBridge interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
