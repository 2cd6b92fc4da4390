package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

const (
	StartingOffer = 50000
	WinningOffer  = 100000

	WelcomeMessage  = "Welcome to TechCorp! We are impressed with your profile. We'd like to offer you $50,000."
	FallbackMessage = "Let's circle back on this. (System Error)"
)

// TurnRole identifies the author of a negotiation turn.
type TurnRole string

const (
	RoleUser   TurnRole = "user"
	RoleSystem TurnRole = "system"
)

// Turn is one chat message in a negotiation.
type Turn struct {
	Role    TurnRole `json:"role"`
	Content string   `json:"content"`
}

// NegotiationStatus is derived from the current offer.
type NegotiationStatus string

const (
	NegotiationActive NegotiationStatus = "active"
	NegotiationWon    NegotiationStatus = "won"
	NegotiationLost   NegotiationStatus = "lost"
)

// NegotiationSession is the transient salary negotiation state. It lives in
// the client and is sent back with every message; it is never persisted.
type NegotiationSession struct {
	Offer   int    `json:"offer"`
	History []Turn `json:"history"`
}

// NewNegotiationSession returns a session at the starting offer with the
// welcome message as its only turn.
func NewNegotiationSession() *NegotiationSession {
	return &NegotiationSession{
		Offer:   StartingOffer,
		History: []Turn{{Role: RoleSystem, Content: WelcomeMessage}},
	}
}

// Reset replaces the session state with that of a new session.
func (s *NegotiationSession) Reset() {
	*s = *NewNegotiationSession()
}

// Status reports whether the negotiation is still running. Terminal states
// are informational: nothing here prevents further turns.
func (s *NegotiationSession) Status() NegotiationStatus {
	switch {
	case s.Offer >= WinningOffer:
		return NegotiationWon
	case s.Offer <= 0:
		return NegotiationLost
	default:
		return NegotiationActive
	}
}

func (s *NegotiationSession) Finished() bool {
	return s.Status() != NegotiationActive
}

// AddUserTurn appends a user message.
func (s *NegotiationSession) AddUserTurn(content string) {
	s.History = append(s.History, Turn{Role: RoleUser, Content: content})
}

// ApplyReply moves the offer to the reply's value and appends its text.
// The reply must have passed Validate.
func (s *NegotiationSession) ApplyReply(reply NegotiationReply) {
	s.Offer = *reply.NewOffer
	s.History = append(s.History, Turn{Role: RoleSystem, Content: reply.Text})
}

// ApplyFailure appends the fallback message and leaves the offer unchanged.
func (s *NegotiationSession) ApplyFailure() {
	s.History = append(s.History, Turn{Role: RoleSystem, Content: FallbackMessage})
}

// LastUserMessage returns the content of the most recent user turn.
func (s *NegotiationSession) LastUserMessage() string {
	for i := len(s.History) - 1; i >= 0; i-- {
		if s.History[i].Role == RoleUser {
			return s.History[i].Content
		}
	}
	return ""
}

// NegotiationReply is the model's answer to a negotiation turn.
// Any integer offer is accepted; the policy bounds are only requested
// in the prompt.
type NegotiationReply struct {
	Text     string `json:"text"`
	NewOffer *int   `json:"newOffer"`
}

// UnmarshalJSON accepts newOffer written as an integral float, e.g. 52000.0.
// A fractional offer is a parse failure.
func (r *NegotiationReply) UnmarshalJSON(data []byte) error {
	var raw struct {
		Text     string   `json:"text"`
		NewOffer *float64 `json:"newOffer"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Text = raw.Text
	r.NewOffer = nil
	if raw.NewOffer == nil {
		return nil
	}
	v := *raw.NewOffer
	if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return fmt.Errorf("%w: newOffer %v is not a whole number", ErrParse, v)
	}
	offer := int(v)
	r.NewOffer = &offer
	return nil
}

func (r *NegotiationReply) Validate() error {
	if r.Text == "" {
		return fmt.Errorf("%w: reply text is empty", ErrParse)
	}
	// A missing offer must not read as zero, which would end the game.
	if r.NewOffer == nil {
		return fmt.Errorf("%w: reply has no newOffer", ErrParse)
	}
	return nil
}
