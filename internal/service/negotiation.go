package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/msomdec/careerforge/internal/domain"
	"github.com/msomdec/careerforge/internal/llm"
	"github.com/msomdec/careerforge/internal/prompt"
)

// NegotiationService plays the HR side of the salary negotiation game.
// Sessions are owned by the caller and never stored.
type NegotiationService struct {
	gen    llm.Generator
	logger *slog.Logger
}

func NewNegotiationService(gen llm.Generator, logger *slog.Logger) *NegotiationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NegotiationService{gen: gen, logger: logger}
}

// Send appends the user's message and the model's reply to session. A model
// or parse failure appends the fallback reply and keeps the offer; it is
// logged, not returned.
func (s *NegotiationService) Send(ctx context.Context, session *domain.NegotiationSession, message string) (*domain.NegotiationSession, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return session, fmt.Errorf("%w: message is required", domain.ErrInvalidInput)
	}

	session.AddUserTurn(message)

	reply, err := s.reply(ctx, session)
	if err != nil {
		s.logger.Error("negotiation reply failed", "error", err, "offer", session.Offer)
		session.ApplyFailure()
		return session, nil
	}

	session.ApplyReply(*reply)
	return session, nil
}

func (s *NegotiationService) reply(ctx context.Context, session *domain.NegotiationSession) (*domain.NegotiationReply, error) {
	p, err := prompt.Negotiation(session)
	if err != nil {
		return nil, err
	}

	raw, err := generate(ctx, s.gen, p)
	if err != nil {
		return nil, err
	}

	var reply domain.NegotiationReply
	if err := llm.DecodeJSON(raw, &reply); err != nil {
		return nil, err
	}
	if err := reply.Validate(); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Reset returns a fresh session.
func (s *NegotiationService) Reset() *domain.NegotiationSession {
	return domain.NewNegotiationSession()
}
