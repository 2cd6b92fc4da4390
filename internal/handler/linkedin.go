package handler

import (
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/msomdec/careerforge/internal/service"
	"github.com/msomdec/careerforge/internal/view"
)

const linkedInFailedMessage = "Failed to generate post. Please try again."

// LinkedInHandler serves the post generator.
type LinkedInHandler struct {
	posts *service.LinkedInService
}

// NewLinkedInHandler creates a new LinkedInHandler.
func NewLinkedInHandler(posts *service.LinkedInService) *LinkedInHandler {
	return &LinkedInHandler{posts: posts}
}

// HandlePage renders the post form.
func (h *LinkedInHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	view.LinkedInPage(user.DisplayName).Render(r.Context(), w)
}

// HandleGenerate patches #linkedin-result with the generated post.
func (h *LinkedInHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	post, err := h.posts.Generate(r.Context(), user.ID, r.FormValue("thought"))
	sse := datastar.NewSSE(w, r)
	if err != nil {
		logFailure("generate linkedin post", err, statusFor(err))
		sse.PatchElementTempl(view.ErrorBanner("linkedin-result", messageFor(err, linkedInFailedMessage)))
		return
	}

	sse.PatchElementTempl(view.LinkedInResult(view.LinkedInPostView{Content: post.Content, ImageURL: post.ImageURL}))
}

// HandleGenerateJSON generates a post from a JSON request.
// POST /api/linkedin
// Request:  {"thought":"..."}
// Response: {"content":"...","imageUrl":"..."}
func (h *LinkedInHandler) HandleGenerateJSON(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Thought string `json:"thought"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	post, err := h.posts.Generate(r.Context(), user.ID, req.Thought)
	if err != nil {
		writeServiceError(w, "generate linkedin post", err, linkedInFailedMessage)
		return
	}

	writeJSON(w, http.StatusOK, post)
}
