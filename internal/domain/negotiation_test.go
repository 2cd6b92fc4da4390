package domain_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/msomdec/careerforge/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestNewNegotiationSession(t *testing.T) {
	s := domain.NewNegotiationSession()
	if s.Offer != domain.StartingOffer {
		t.Fatalf("expected offer %d, got %d", domain.StartingOffer, s.Offer)
	}
	if len(s.History) != 1 || s.History[0].Role != domain.RoleSystem || s.History[0].Content != domain.WelcomeMessage {
		t.Fatalf("expected welcome-only history, got %+v", s.History)
	}
	if s.Status() != domain.NegotiationActive {
		t.Fatalf("expected active, got %s", s.Status())
	}
}

func TestNegotiationSession_Reset(t *testing.T) {
	s := domain.NewNegotiationSession()
	s.AddUserTurn("pay me")
	s.ApplyReply(domain.NegotiationReply{Text: "No.", NewOffer: intPtr(0)})

	s.Reset()

	if s.Offer != 50000 {
		t.Fatalf("expected offer 50000 after reset, got %d", s.Offer)
	}
	if len(s.History) != 1 || s.History[0].Content != domain.WelcomeMessage {
		t.Fatalf("expected welcome-only history after reset, got %+v", s.History)
	}
}

func TestNegotiationSession_Status(t *testing.T) {
	tests := []struct {
		offer int
		want  domain.NegotiationStatus
	}{
		{50000, domain.NegotiationActive},
		{99999, domain.NegotiationActive},
		{1, domain.NegotiationActive},
		{100000, domain.NegotiationWon},
		{250000, domain.NegotiationWon},
		{0, domain.NegotiationLost},
		{-5, domain.NegotiationLost},
	}
	for _, tc := range tests {
		s := &domain.NegotiationSession{Offer: tc.offer}
		if got := s.Status(); got != tc.want {
			t.Fatalf("offer %d: expected %s, got %s", tc.offer, tc.want, got)
		}
		if s.Finished() != (tc.want != domain.NegotiationActive) {
			t.Fatalf("offer %d: Finished mismatch", tc.offer)
		}
	}
}

func TestNegotiationSession_ApplyFailureKeepsOffer(t *testing.T) {
	s := domain.NewNegotiationSession()
	s.Offer = 61000
	s.AddUserTurn("hello")
	s.ApplyFailure()

	if s.Offer != 61000 {
		t.Fatalf("expected offer unchanged, got %d", s.Offer)
	}
	last := s.History[len(s.History)-1]
	if last.Role != domain.RoleSystem || last.Content != domain.FallbackMessage {
		t.Fatalf("expected fallback turn, got %+v", last)
	}
}

func TestNegotiationSession_LastUserMessage(t *testing.T) {
	s := domain.NewNegotiationSession()
	if got := s.LastUserMessage(); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
	s.AddUserTurn("first")
	s.ApplyReply(domain.NegotiationReply{Text: "ok", NewOffer: intPtr(51000)})
	s.AddUserTurn("second")
	if got := s.LastUserMessage(); got != "second" {
		t.Fatalf("expected second, got %q", got)
	}
}

func TestNegotiationReply_Validate(t *testing.T) {
	if err := (&domain.NegotiationReply{Text: "hi", NewOffer: intPtr(1)}).Validate(); err != nil {
		t.Fatalf("expected valid reply, got %v", err)
	}
	if err := (&domain.NegotiationReply{NewOffer: intPtr(1)}).Validate(); !errors.Is(err, domain.ErrParse) {
		t.Fatalf("expected ErrParse for empty text, got %v", err)
	}
	if err := (&domain.NegotiationReply{Text: "hi"}).Validate(); !errors.Is(err, domain.ErrParse) {
		t.Fatalf("expected ErrParse for missing offer, got %v", err)
	}
}

func TestNegotiationReply_DecodeOffer(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{"integer", `{"text":"ok","newOffer":52000}`, 52000, false},
		{"integral float", `{"text":"ok","newOffer":52000.0}`, 52000, false},
		{"exponent", `{"text":"ok","newOffer":5.2e4}`, 52000, false},
		{"fraction", `{"text":"ok","newOffer":52000.5}`, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var reply domain.NegotiationReply
			err := json.Unmarshal([]byte(tc.body), &reply)
			if tc.wantErr {
				if !errors.Is(err, domain.ErrParse) {
					t.Fatalf("expected ErrParse, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if reply.NewOffer == nil || *reply.NewOffer != tc.want {
				t.Fatalf("expected offer %d, got %v", tc.want, reply.NewOffer)
			}
		})
	}
}

func TestNegotiationReply_DecodeMissingOffer(t *testing.T) {
	var reply domain.NegotiationReply
	if err := json.Unmarshal([]byte(`{"text":"ok"}`), &reply); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if err := reply.Validate(); !errors.Is(err, domain.ErrParse) {
		t.Fatalf("missing newOffer must fail validation, got %v", err)
	}
}
