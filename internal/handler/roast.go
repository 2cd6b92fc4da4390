package handler

import (
	"errors"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/msomdec/careerforge/internal/domain"
	"github.com/msomdec/careerforge/internal/service"
	"github.com/msomdec/careerforge/internal/view"
)

const roastFailedMessage = "Failed to roast profile. Please try again."

// RoastHandler serves the GitHub roast.
type RoastHandler struct {
	roasts *service.RoastService
}

// NewRoastHandler creates a new RoastHandler.
func NewRoastHandler(roasts *service.RoastService) *RoastHandler {
	return &RoastHandler{roasts: roasts}
}

// HandlePage renders the form and the user's latest roast.
func (h *RoastHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	latest, err := h.roasts.Latest(r.Context(), user.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		logFailure("get latest roast", err, http.StatusInternalServerError)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	view.RoastPage(user.DisplayName, latest).Render(r.Context(), w)
}

// HandleRoast patches #roast-result with a fresh roast.
func (h *RoastHandler) HandleRoast(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	roast, err := h.roasts.Roast(r.Context(), user.ID, r.FormValue("username"))
	sse := datastar.NewSSE(w, r)
	if err != nil {
		logFailure("roast profile", err, statusFor(err))
		sse.PatchElementTempl(view.ErrorBanner("roast-result", messageFor(err, roastFailedMessage)))
		return
	}

	sse.PatchElementTempl(view.RoastResult(roast))
}

// HandleRoastJSON roasts a profile from a JSON request.
// POST /api/roast
// Request:  {"username":"..."}
// Response: {"roast": {...}}
func (h *RoastHandler) HandleRoastJSON(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Username string `json:"username"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	roast, err := h.roasts.Roast(r.Context(), user.ID, req.Username)
	if err != nil {
		writeServiceError(w, "roast profile", err, roastFailedMessage)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"roast": toRoastDTO(roast),
	})
}

// HandleLatestJSON returns the user's most recent roast.
// GET /api/roast/latest
func (h *RoastHandler) HandleLatestJSON(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	roast, err := h.roasts.Latest(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, "get latest roast", err, "")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"roast": toRoastDTO(roast),
	})
}
