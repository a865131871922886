package llm

import (
	"context"
	"errors"
	"fmt"
)

// Client abstracts text-generation providers. Implementations make exactly
// one remote attempt per call; callers needing resilience wrap the client.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrGenerationFailed marks transport or provider failures of the remote
// generation call, as opposed to a successful call returning unusable content.
var ErrGenerationFailed = errors.New("generation failed")

// PlaceholderClient is a stub implementation for environments without a
// configured provider.
type PlaceholderClient struct{}

// Complete returns a generation failure.
func (PlaceholderClient) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", fmt.Errorf("%w: llm provider not configured", ErrGenerationFailed)
}
