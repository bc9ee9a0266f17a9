package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/penshort/userconsole/internal/console"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names.
const (
	pageLogin   = "login.html"
	pageListing = "listing.html"
	pageDelete  = "delete.html"
	pageCreate  = "create.html"
	pageEdit    = "edit.html"
	pageError   = "error.html"
)

var pageNames = []string{pageLogin, pageListing, pageDelete, pageCreate, pageEdit, pageError}

var templateFuncs = template.FuncMap{
	"isSuccess": func(p console.Phase) bool { return p == console.PhaseSuccess },
	"listEmpty": func(s console.ListState) bool { return s == console.ListEmpty },
	"seconds": func(d time.Duration) string {
		return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
	},
}

// pageData is the root object every template receives.
type pageData struct {
	Authenticated bool
	View          any
}

// errorView fills error.html.
type errorView struct {
	Title  string
	Detail string
}

// Pages renders the console's HTML screens.
type Pages struct {
	templates map[string]*template.Template
}

// NewPages parses the embedded templates.
func NewPages() (*Pages, error) {
	p := &Pages{templates: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		p.templates[name] = tmpl
	}
	return p, nil
}

// Render writes page with status. The page is rendered to a buffer first so
// a template failure never produces a half-written response.
func (p *Pages) Render(w http.ResponseWriter, status int, name string, data pageData) error {
	tmpl, ok := p.templates[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Static serves the embedded stylesheet and script under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
