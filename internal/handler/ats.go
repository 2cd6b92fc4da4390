package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/msomdec/careerforge/internal/document"
	"github.com/msomdec/careerforge/internal/domain"
	"github.com/msomdec/careerforge/internal/service"
	"github.com/msomdec/careerforge/internal/view"
)

const (
	atsFailedMessage = "Failed to analyze resume. Please try again."
	atsHistoryLimit  = 10
)

// ATSHandler serves the resume scanner.
type ATSHandler struct {
	ats *service.ATSService
}

// NewATSHandler creates a new ATSHandler.
func NewATSHandler(ats *service.ATSService) *ATSHandler {
	return &ATSHandler{ats: ats}
}

// HandlePage renders the scanner form and the user's recent scans.
func (h *ATSHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	h.render(w, r, user, http.StatusOK, view.ATSPageData{})
}

// HandleScan scores an uploaded resume and re-renders the page with the result.
func (h *ATSHandler) HandleScan(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, document.MaxResumeSize+1<<20)
	upload, err := readResume(r)
	jobDescription := r.FormValue("jobDescription")
	form := view.FormState{Values: map[string]string{"jobDescription": jobDescription}}

	var scan *domain.ATSScan
	if err == nil {
		scan, err = h.ats.ScanResume(r.Context(), user.ID, upload, jobDescription)
	}
	if err != nil {
		status := statusFor(err)
		logFailure("scan resume", err, status)
		form.Error = messageFor(err, atsFailedMessage)
		h.render(w, r, user, status, view.ATSPageData{Form: form})
		return
	}

	h.render(w, r, user, http.StatusOK, view.ATSPageData{Result: scan})
}

// HandleAnalyze scores pasted resume text.
// POST /api/ats
// Request:  {"resumeText":"...","jobDescription":"..."}
// Response: the analysis object
func (h *ATSHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		ResumeText     string `json:"resumeText"`
		JobDescription string `json:"jobDescription"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	analysis, err := h.ats.Analyze(r.Context(), user.ID, req.ResumeText, req.JobDescription)
	if err != nil {
		writeServiceError(w, "analyze resume", err, atsFailedMessage)
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

func (h *ATSHandler) render(w http.ResponseWriter, r *http.Request, user *domain.User, status int, data view.ATSPageData) {
	history, err := h.ats.History(r.Context(), user.ID, atsHistoryLimit)
	if err != nil {
		// The page is still useful without history.
		logFailure("list scans", err, http.StatusInternalServerError)
	}
	data.History = history

	w.WriteHeader(status)
	view.ATSPage(user.DisplayName, data).Render(r.Context(), w)
}

func readResume(r *http.Request) (service.ResumeUpload, error) {
	if err := r.ParseMultipartForm(document.MaxResumeSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return service.ResumeUpload{}, fmt.Errorf("%w: resume must be at most 5MB", domain.ErrInvalidInput)
		}
		return service.ResumeUpload{}, fmt.Errorf("%w: invalid upload: %w", domain.ErrInvalidInput, err)
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		return service.ResumeUpload{}, fmt.Errorf("%w: resume file is required", domain.ErrInvalidInput)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return service.ResumeUpload{}, fmt.Errorf("read resume: %w", err)
	}

	return service.ResumeUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
