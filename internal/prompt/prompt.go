// Package prompt renders the instruction sent to the model for each feature.
// Field values are embedded verbatim.
package prompt

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/msomdec/careerforge/internal/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// templates is parsed once at package init; reused on every build.
var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", name, err)
	}
	return buf.String(), nil
}

// ATS builds the resume/job-description match prompt.
func ATS(resumeText, jobDescription string) (string, error) {
	return render("ats.tmpl", struct {
		ResumeText     string
		JobDescription string
	}{resumeText, jobDescription})
}

// CoverLetterInput carries the fields embedded in the cover letter prompt.
type CoverLetterInput struct {
	Name           string
	Email          string
	Skills         string
	CompanyName    string
	JobTitle       string
	JobDescription string
}

func CoverLetter(in CoverLetterInput) (string, error) {
	if in.Name == "" {
		in.Name = "Candidate"
	}
	return render("cover_letter.tmpl", in)
}

func LinkedInPost(thought string) (string, error) {
	return render("linkedin_post.tmpl", struct{ Thought string }{thought})
}

// GithubSummary is the condensed profile the roast is based on.
type GithubSummary struct {
	Name        string        `json:"name"`
	Bio         string        `json:"bio"`
	Followers   int           `json:"followers"`
	PublicRepos int           `json:"public_repos"`
	Repos       []RepoSummary `json:"repos"`
}

type RepoSummary struct {
	Name  string `json:"name"`
	Stars int    `json:"stars"`
}

func Roast(summary GithubSummary) (string, error) {
	b, err := json.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("marshal github summary: %w", err)
	}
	return render("roast.tmpl", struct{ SummaryJSON string }{string(b)})
}

// Negotiation builds the HR persona prompt from the full transcript.
func Negotiation(session *domain.NegotiationSession) (string, error) {
	return render("negotiation.tmpl", struct {
		CurrentOffer int
		Goal         int
		History      []domain.Turn
		LastMessage  string
	}{
		CurrentOffer: session.Offer,
		Goal:         domain.WinningOffer,
		History:      session.History,
		LastMessage:  session.LastUserMessage(),
	})
}
