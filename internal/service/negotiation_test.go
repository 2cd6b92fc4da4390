package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/msomdec/careerforge/internal/domain"
	"github.com/msomdec/careerforge/internal/service"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNegotiationService_Send_AppliesReply(t *testing.T) {
	gen := &fakeGenerator{replies: []string{"```json\n{\"text\": \"We can do $53,000.\", \"newOffer\": 53000}\n```"}}
	svc := service.NewNegotiationService(gen, quietLogger())

	session := domain.NewNegotiationSession()
	session, err := svc.Send(context.Background(), session, "I have 5 years of Go and a competing offer.")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	if session.Offer != 53000 {
		t.Fatalf("expected offer 53000, got %d", session.Offer)
	}
	if len(session.History) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(session.History))
	}
	if session.History[1].Role != domain.RoleUser || session.History[2].Content != "We can do $53,000." {
		t.Fatalf("unexpected history: %+v", session.History)
	}

	p := gen.prompts[0]
	if !strings.Contains(p, "50000") || !strings.Contains(p, "competing offer") {
		t.Fatalf("prompt should carry offer and latest message:\n%s", p)
	}
}

func TestNegotiationService_Send_AcceptsAnyOffer(t *testing.T) {
	gen := &fakeGenerator{replies: []string{`{"text": "Wow.", "newOffer": 250000}`}}
	svc := service.NewNegotiationService(gen, quietLogger())

	session, err := svc.Send(context.Background(), domain.NewNegotiationSession(), "Give me everything.")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if session.Offer != 250000 {
		t.Fatalf("offer must not be clamped, got %d", session.Offer)
	}
	if session.Status() != domain.NegotiationWon {
		t.Fatalf("expected won, got %s", session.Status())
	}
}

func TestNegotiationService_Send_FailureKeepsOffer(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"model error", &fakeGenerator{err: errors.New("503 unavailable")}},
		{"malformed json", &fakeGenerator{replies: []string{"I think 60000 sounds fair"}}},
		{"missing offer", &fakeGenerator{replies: []string{`{"text": "Hmm."}`}}},
		{"empty text", &fakeGenerator{replies: []string{`{"text": "", "newOffer": 0}`}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := service.NewNegotiationService(tc.gen, quietLogger())

			session, err := svc.Send(context.Background(), domain.NewNegotiationSession(), "More please.")
			if err != nil {
				t.Fatalf("Send should absorb failures, got %v", err)
			}
			if session.Offer != domain.StartingOffer {
				t.Fatalf("offer changed to %d", session.Offer)
			}
			last := session.History[len(session.History)-1]
			if last.Role != domain.RoleSystem || last.Content != domain.FallbackMessage {
				t.Fatalf("expected fallback turn, got %+v", last)
			}
		})
	}
}

func TestNegotiationService_Send_EmptyMessage(t *testing.T) {
	gen := &fakeGenerator{replies: []string{`{"text": "ok", "newOffer": 1}`}}
	svc := service.NewNegotiationService(gen, quietLogger())

	session := domain.NewNegotiationSession()
	_, err := svc.Send(context.Background(), session, "   ")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if gen.calls() != 0 {
		t.Fatal("model must not be called")
	}
	if len(session.History) != 1 {
		t.Fatalf("history should be untouched, got %d turns", len(session.History))
	}
}

func TestNegotiationService_ResetEqualsNewSession(t *testing.T) {
	gen := &fakeGenerator{replies: []string{`{"text": "Fine.", "newOffer": 70000}`}}
	svc := service.NewNegotiationService(gen, quietLogger())

	session, _ := svc.Send(context.Background(), domain.NewNegotiationSession(), "Raise it.")
	session.Reset()

	if !reflect.DeepEqual(session, svc.Reset()) {
		t.Fatalf("reset session %+v differs from a new session", session)
	}
	if session.Offer != 50000 || len(session.History) != 1 || session.History[0].Content != domain.WelcomeMessage {
		t.Fatalf("unexpected reset state: %+v", session)
	}
}

func TestNegotiationService_Send_IntegralFloatOffer(t *testing.T) {
	gen := &fakeGenerator{replies: []string{`{"text": "Fine, $52,000.", "newOffer": 52000.0}`}}
	svc := service.NewNegotiationService(gen, quietLogger())

	session, err := svc.Send(context.Background(), domain.NewNegotiationSession(), "I can start Monday.")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if session.Offer != 52000 {
		t.Fatalf("expected offer 52000, got %d", session.Offer)
	}
	if last := session.History[len(session.History)-1]; last.Content != "Fine, $52,000." {
		t.Fatalf("expected the model reply, got %q", last.Content)
	}
}
