package service

import (
	"context"
	"fmt"

	"github.com/msomdec/careerforge/internal/domain"
	"github.com/msomdec/careerforge/internal/llm"
)

// requireUser rejects writes that have no resolved user.
func requireUser(userID int64) error {
	if userID <= 0 {
		return domain.ErrUnauthorized
	}
	return nil
}

// generate invokes the model and maps any failure to domain.ErrUpstreamModel.
func generate(ctx context.Context, gen llm.Generator, prompt string) (string, error) {
	text, err := gen.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUpstreamModel, err)
	}
	return text, nil
}
