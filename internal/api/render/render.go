// Package render turns the embedded HTML templates into an echo.Renderer.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/foodforms/questionnaire/internal/core/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

const layout = "base.html"

// Page is the data every template receives.
type Page struct {
	Caller   domain.Caller
	Messages []domain.FlashMessage
	Context  map[string]any
}

// Renderer holds one parsed template set per page, each sharing the layout.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2 Jan 2006")
	},
	"isError": func(m domain.FlashMessage) bool {
		return m.Level == domain.FlashError
	},
}

// New parses every page template found next to the layout.
func New() (*Renderer, error) {
	names, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("render: list templates: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(names))}
	for _, path := range names {
		name := path[len("templates/"):]
		if name == layout {
			continue
		}
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/"+layout, path)
		if err != nil {
			return nil, fmt.Errorf("render: parse %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// MustNew is New for process startup.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Render satisfies echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("render: unknown template %q", name)
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}
