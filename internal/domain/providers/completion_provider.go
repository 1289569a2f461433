package providers

import "context"

// TextCompletionProvider is the boundary to the remote generative text
// model. The response is raw model text; callers are responsible for parsing
// it defensively.
type TextCompletionProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
