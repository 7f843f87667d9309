package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// DefaultTitle is the page heading used when none is set.
const DefaultTitle = "Your celebrity twins"

// Page is an in-memory results page. It implements both ResultsContainer and
// ErrorDisplay and renders to HTML or to a JSON view.
type Page struct {
	Title        string
	Cards        []Card
	ErrorMessage string
	ErrorVisible bool
}

// NewPage creates an empty page.
func NewPage() *Page {
	return &Page{Title: DefaultTitle}
}

// Clear removes all cards.
func (p *Page) Clear() {
	p.Cards = nil
}

// Append adds a card at the end of the results.
func (p *Page) Append(card Card) error {
	p.Cards = append(p.Cards, card)
	return nil
}

// Show displays message in the error element.
func (p *Page) Show(message string) {
	p.ErrorMessage = message
	p.ErrorVisible = message != ""
}

// Hide empties and hides the error element.
func (p *Page) Hide() {
	p.ErrorMessage = ""
	p.ErrorVisible = false
}

// WriteHTML renders the full HTML document.
func (p *Page) WriteHTML(w io.Writer) error {
	if err := pageTemplate.ExecuteTemplate(w, "page", p); err != nil {
		return fmt.Errorf("executing page template: %w", err)
	}
	return nil
}

// WriteResultsHTML renders only the error and results elements, for embedding
// into an existing page.
func (p *Page) WriteResultsHTML(w io.Writer) error {
	if err := pageTemplate.ExecuteTemplate(w, "error", p); err != nil {
		return fmt.Errorf("executing error template: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("writing fragment: %w", err)
	}
	if err := pageTemplate.ExecuteTemplate(w, "results", p); err != nil {
		return fmt.Errorf("executing results template: %w", err)
	}
	return nil
}

// View is the JSON representation of a rendered page.
type View struct {
	Cards []Card `json:"cards"`
	Error string `json:"error,omitempty"`
}

// View returns the JSON view of the page. Cards is never nil.
func (p *Page) View() View {
	cards := p.Cards
	if cards == nil {
		cards = []Card{}
	}
	v := View{Cards: cards}
	if p.ErrorVisible {
		v.Error = p.ErrorMessage
	}
	return v
}
