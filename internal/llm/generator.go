// Package llm invokes the hosted generative-language model and normalizes
// its free-text output.
package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when the model produces no text.
var ErrEmptyResponse = errors.New("empty model response")

// Generator sends a single prompt to a model and returns the raw text reply.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
