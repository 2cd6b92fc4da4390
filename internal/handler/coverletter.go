package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/msomdec/careerforge/internal/document"
	"github.com/msomdec/careerforge/internal/domain"
	"github.com/msomdec/careerforge/internal/service"
	"github.com/msomdec/careerforge/internal/view"
)

const coverLetterFailedMessage = "Failed to generate cover letter. Please try again."

// CoverLetterHandler serves cover letter generation and download.
type CoverLetterHandler struct {
	letters *service.CoverLetterService
}

// NewCoverLetterHandler creates a new CoverLetterHandler.
func NewCoverLetterHandler(letters *service.CoverLetterService) *CoverLetterHandler {
	return &CoverLetterHandler{letters: letters}
}

// HandlePage renders the form and the current draft, if any.
func (h *CoverLetterHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	letter, err := h.letters.Current(r.Context(), user.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		logFailure("get cover letter", err, http.StatusInternalServerError)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	view.CoverLetterPage(user.DisplayName, view.CoverLetterPageData{Letter: letter}).Render(r.Context(), w)
}

// HandleGenerate generates a letter from the form and replaces the draft.
func (h *CoverLetterHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	req := service.CoverLetterRequest{
		Name:           user.DisplayName,
		Email:          user.Email,
		Skills:         r.FormValue("skills"),
		CompanyName:    r.FormValue("companyName"),
		JobTitle:       r.FormValue("jobTitle"),
		JobDescription: r.FormValue("jobDescription"),
	}

	letter, err := h.letters.Generate(r.Context(), user.ID, req)
	if err != nil {
		status := statusFor(err)
		logFailure("generate cover letter", err, status)
		w.WriteHeader(status)
		view.CoverLetterPage(user.DisplayName, view.CoverLetterPageData{Form: view.FormState{
			Error: messageFor(err, coverLetterFailedMessage),
			Values: map[string]string{
				"skills":         req.Skills,
				"companyName":    req.CompanyName,
				"jobTitle":       req.JobTitle,
				"jobDescription": req.JobDescription,
			},
		}}).Render(r.Context(), w)
		return
	}

	view.CoverLetterPage(user.DisplayName, view.CoverLetterPageData{Letter: letter}).Render(r.Context(), w)
}

// HandleGenerateJSON generates a letter from a JSON request.
// POST /api/cover-letter
// Request:  {"skills":"...","companyName":"...","jobTitle":"...","jobDescription":"..."}
// Response: {"coverLetter": {...}}
func (h *CoverLetterHandler) HandleGenerateJSON(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req service.CoverLetterRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Name == "" {
		req.Name = user.DisplayName
	}
	if req.Email == "" {
		req.Email = user.Email
	}

	letter, err := h.letters.Generate(r.Context(), user.ID, req)
	if err != nil {
		writeServiceError(w, "generate cover letter", err, coverLetterFailedMessage)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"coverLetter": toCoverLetterDTO(letter),
	})
}

// HandleDownloadPDF sends the current draft as a PDF attachment.
func (h *CoverLetterHandler) HandleDownloadPDF(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	letter, err := h.letters.Current(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		logFailure("get cover letter", err, http.StatusInternalServerError)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	title := fmt.Sprintf("%s at %s", letter.JobTitle, letter.CompanyName)
	if err := document.WriteLetterPDF(&buf, title, letter.Content); err != nil {
		logFailure("write cover letter pdf", err, http.StatusInternalServerError)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="cover-letter.pdf"`)
	w.Write(buf.Bytes())
}
