package view

import (
	"github.com/a-h/templ"

	"github.com/msomdec/careerforge/internal/domain"
)

// Feature is a card on the home page.
type Feature struct {
	Title       string
	Description string
	Path        string
}

var features = []Feature{
	{"ATS Scanner", "Score your resume against a job description and see the keywords you are missing.", "/ats"},
	{"Cover Letter", "Generate a tailored cover letter and download it as a PDF.", "/cover-letter"},
	{"LinkedIn Post", "Turn a simple thought into a viral thought-leader post with an image.", "/linkedin"},
	{"GitHub Roast", "Get your public GitHub profile roasted.", "/roast"},
	{"Salary Negotiation", "Practice negotiating your offer from $50,000 up to $100,000.", "/negotiation"},
}

func HomePage(displayName string) templ.Component {
	return page("home", "CareerForge", displayName, features)
}

// FormState carries a form's submitted values and its error message.
type FormState struct {
	Error  string
	Values map[string]string
}

func LoginPage(errMsg string) templ.Component {
	return page("login", "Log in", "", FormState{Error: errMsg})
}

func RegisterPage(state FormState) templ.Component {
	return page("register", "Create account", "", state)
}

// ATSPageData is the ATS scanner page state.
type ATSPageData struct {
	Form    FormState
	Result  *domain.ATSScan
	History []domain.ATSScan
}

func ATSPage(displayName string, data ATSPageData) templ.Component {
	return page("ats", "ATS Scanner", displayName, data)
}

// CoverLetterPageData is the cover letter page state.
type CoverLetterPageData struct {
	Form   FormState
	Letter *domain.CoverLetter
}

func CoverLetterPage(displayName string, data CoverLetterPageData) templ.Component {
	return page("cover_letter", "Cover Letter", displayName, data)
}

func LinkedInPage(displayName string) templ.Component {
	return page("linkedin", "LinkedIn Post", displayName, nil)
}

func RoastPage(displayName string, latest *domain.GithubRoast) templ.Component {
	return page("roast", "GitHub Roast", displayName, latest)
}

// NegotiationView is the negotiation state shown in the chat.
type NegotiationView struct {
	Session *domain.NegotiationSession
	Goal    int
}

func NegotiationPage(displayName string, session *domain.NegotiationSession) templ.Component {
	return page("negotiation", "Salary Negotiation", displayName, NegotiationView{Session: session, Goal: domain.WinningOffer})
}
