package view

import (
	"github.com/a-h/templ"

	"github.com/msomdec/careerforge/internal/domain"
)

// LinkedInPostView is a generated post ready for display.
type LinkedInPostView struct {
	Content  string
	ImageURL string
}

// LinkedInResult replaces #linkedin-result.
func LinkedInResult(post LinkedInPostView) templ.Component {
	return fragment("linkedin-result", post)
}

// RoastResult replaces #roast-result.
func RoastResult(roast *domain.GithubRoast) templ.Component {
	return fragment("roast-result", roast)
}

// NegotiationChat replaces #negotiation-chat.
func NegotiationChat(session *domain.NegotiationSession) templ.Component {
	return fragment("negotiation-chat", NegotiationView{Session: session, Goal: domain.WinningOffer})
}

// ErrorBanner replaces the element with the given id by an error message.
func ErrorBanner(id, message string) templ.Component {
	return fragment("error-banner", struct{ ID, Message string }{id, message})
}
