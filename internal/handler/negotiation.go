package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/msomdec/careerforge/internal/domain"
	"github.com/msomdec/careerforge/internal/service"
	"github.com/msomdec/careerforge/internal/view"
)

// maxNegotiationBody caps the posted session: the offer, the running
// history and the new message.
const maxNegotiationBody = 64 << 10

// NegotiationHandler serves the salary negotiation game. The session lives
// in the client's signals and is posted back with every message.
type NegotiationHandler struct {
	negotiation *service.NegotiationService
}

// NewNegotiationHandler creates a new NegotiationHandler.
func NewNegotiationHandler(negotiation *service.NegotiationService) *NegotiationHandler {
	return &NegotiationHandler{negotiation: negotiation}
}

// HandlePage renders the chat seeded with a new session.
func (h *NegotiationHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	view.NegotiationPage(user.DisplayName, h.negotiation.Reset()).Render(r.Context(), w)
}

// HandleSend plays one turn. Datastar clients get the chat and signals
// patched; other clients get the session as JSON.
// Request: {"offer":50000,"history":[...],"message":"..."}
func (h *NegotiationHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxNegotiationBody)
	var signals view.NegotiationSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Conversation is too long. Reset to play again.")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	session := &domain.NegotiationSession{Offer: signals.Offer, History: signals.History}
	if len(session.History) == 0 {
		session = h.negotiation.Reset()
	}
	if session.Finished() {
		writeServiceError(w, "send negotiation message", fmt.Errorf("%w: offer is %d", domain.ErrNegotiationOver, session.Offer), "")
		return
	}

	session, err := h.negotiation.Send(r.Context(), session, signals.Message)
	if err != nil {
		writeServiceError(w, "send negotiation message", err, "")
		return
	}

	h.respond(w, r, session)
}

// HandleReset returns a fresh session.
func (h *NegotiationHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	h.respond(w, r, h.negotiation.Reset())
}

func (h *NegotiationHandler) respond(w http.ResponseWriter, r *http.Request, session *domain.NegotiationSession) {
	if !isDatastarRequest(r) {
		writeJSON(w, http.StatusOK, toNegotiationDTO(session))
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.MarshalAndPatchSignals(view.NegotiationSignals{
		Offer:   session.Offer,
		History: session.History,
	}); err != nil {
		logFailure("patch negotiation signals", err, http.StatusInternalServerError)
		return
	}
	sse.PatchElementTempl(view.NegotiationChat(session))
}

func isDatastarRequest(r *http.Request) bool {
	return r.Header.Get("Datastar-Request") == "true"
}
