package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pkordes/vacation-planner/internal/domain"
)

// pages lists every template that can be rendered, by file name.
var pages = []string{
	"index.html",
	"login.html",
	"signup.html",
	"connect-local.html",
	"create.html",
	"profile.html",
	"vacation.html",
	"error.html",
}

// partials are parsed into every page alongside layout.html.
var partials = []string{"templates/layout.html", "templates/budget.html", "templates/legs.html"}

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"date": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("Jan 2, 2006")
	},
	"add":                 func(a, b int) int { return a + b },
	"accommodationTypes":  func() []domain.AccommodationType { return domain.AccommodationTypes },
	"transportationTypes": func() []domain.TransportationType { return domain.TransportationTypes },
}

// pageData is the value every template is executed with.
type pageData struct {
	User      *domain.User
	Flash     []string
	View      *domain.VacationView
	Vacations []domain.Vacation
}

// Renderer executes the embedded page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page in fsys (laid out as web.Templates is).
// Parsing happens once at start-up so a broken template fails fast.
func NewRenderer(fsys fs.FS) (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		files := append(append([]string{}, partials...), "templates/"+page)
		t, err := template.New(page).Funcs(funcs).ParseFS(fsys, files...)
		if err != nil {
			return nil, fmt.Errorf("handler.NewRenderer: parse %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// Render writes page with the given status. The page is executed into a
// buffer first so a template error never leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data pageData) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("handler.Renderer.Render: unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("handler.Renderer.Render: %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
