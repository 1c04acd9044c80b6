package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"
	"time"

	"shortlist-console/internal/domain/recruiting"
	"shortlist-console/internal/session"
)

//go:embed templates
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Page is the binding every template receives.
type Page struct {
	Title   string
	AppName string
	Session session.State
	Flash   string
	Error   string
	Data    any
}

// Renderer implements fiber.Views over the embedded templates. Each page is
// parsed together with the shared layout and executed through it.
type Renderer struct {
	fsys fs.FS

	mu    sync.RWMutex
	pages map[string]*template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{fsys: templateFS, pages: map[string]*template.Template{}}
}

func (r *Renderer) Load() error {
	entries, err := fs.ReadDir(r.fsys, "templates/pages")
	if err != nil {
		return err
	}

	pages := make(map[string]*template.Template, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".html") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".html")
		t, err := template.New(name).Funcs(funcs).ParseFS(r.fsys, layoutFile, path.Join("templates/pages", e.Name()))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = t
	}

	r.mu.Lock()
	r.pages = pages
	r.mu.Unlock()
	return nil
}

func (r *Renderer) Render(out io.Writer, name string, binding any, _ ...string) error {
	r.mu.RLock()
	t, ok := r.pages[name]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(out, "layout", binding)
}

// Has reports whether a page template exists.
func (r *Renderer) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.pages[name]
	return ok
}

var funcs = template.FuncMap{
	"badge": func(s recruiting.Score) string { return s.Badge() },
	"badgeClass": func(s recruiting.Score) string {
		return "badge-" + strings.ToLower(s.Badge())
	},
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("Jan 2, 2006")
	},
	"datetime": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("Jan 2, 2006 15:04 MST")
	},
	"inc": func(i int) int { return i + 1 },
}
