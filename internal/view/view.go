// Package view renders pages and datastar fragments. Templates are
// html/template files exposed as templ components.
package view

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"strconv"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/msomdec/careerforge/internal/domain"
)

//go:embed templates/*.html
var files embed.FS

// md renders model markdown. Raw HTML in the source is dropped.
var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

var funcs = template.FuncMap{
	"markdown": Markdown,
	"money":    Money,
	"signals":  signalsJSON,
}

var (
	fragments = template.Must(template.New("fragments").Funcs(funcs).ParseFS(files, "templates/fragments.html"))
	pages     = map[string]*template.Template{}
)

func init() {
	for _, name := range []string{"home", "login", "register", "ats", "cover_letter", "linkedin", "roast", "negotiation"} {
		pages[name] = template.Must(template.New(name).Funcs(funcs).ParseFS(files,
			"templates/layout.html", "templates/fragments.html", "templates/"+name+".html"))
	}
}

// Markdown converts markdown to HTML for display.
func Markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		slog.Error("render markdown", "error", err)
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

// Money formats whole dollars with thousands separators, e.g. $100,000.
func Money(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	s := strconv.Itoa(amount)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return sign + "$" + s
}

// NegotiationSignals is the datastar signal set of the negotiation page.
type NegotiationSignals struct {
	Offer   int           `json:"offer"`
	History []domain.Turn `json:"history"`
	Message string        `json:"message"`
}

func signalsJSON(session *domain.NegotiationSession) (string, error) {
	b, err := json.Marshal(NegotiationSignals{Offer: session.Offer, History: session.History})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type pageData struct {
	Title       string
	DisplayName string
	Content     any
}

func page(name, title, displayName string, content any) templ.Component {
	t, ok := pages[name]
	if !ok {
		panic(fmt.Sprintf("view: unknown page %q", name))
	}
	return templ.FromGoHTML(t.Lookup("layout"), pageData{Title: title, DisplayName: displayName, Content: content})
}

func fragment(name string, data any) templ.Component {
	return templ.FromGoHTML(fragments.Lookup(name), data)
}
