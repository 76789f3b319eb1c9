package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"time"

	"github.com/gin-gonic/gin/render"

	"github.com/noah-isme/booking-admin/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names.
const (
	PageLogin       = "login"
	PageSchedules   = "schedules"
	PageDisciplines = "disciplines"
	PageTeachers    = "teachers"
	PageError       = "error"
)

var pages = []string{PageLogin, PageSchedules, PageDisciplines, PageTeachers, PageError}

// NavItem is one fixed entry of the side panel.
type NavItem struct {
	Label string
	Path  string
}

// Navigation lists the side panel targets in display order.
var Navigation = []NavItem{
	{Label: "Agendamento", Path: "/"},
	{Label: "Professores", Path: "/teacher"},
	{Label: "Disciplinas", Path: "/discipline"},
}

// Page is the data every template receives.
type Page struct {
	Title        string
	CurrentPath  string
	HideChrome   bool
	Session      models.SessionStatus
	Notification *models.Notification
	// NotificationMillis is how long the toast stays visible.
	NotificationMillis int64
	Data               interface{}
}

// Renderer implements gin's HTMLRender with one template set per page, each combining the
// shared layout with the page's own "content" block.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses the embedded templates. Times are displayed in loc.
func NewRenderer(loc *time.Location) (*Renderer, error) {
	if loc == nil {
		loc = time.Local
	}
	funcs := template.FuncMap{
		"formatDateTime": func(raw string) string { return models.FormatDateTime(raw, loc) },
		"isActive":       func(current, target string) bool { return current == target },
		"navigation":     func() []NavItem { return Navigation },
		"idString":       func(id models.ID) string { return id.String() },
	}

	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/partials.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", page, err)
		}
		r.templates[page] = tmpl
	}
	return r, nil
}

// Instance implements render.HTMLRender.
func (r *Renderer) Instance(name string, data interface{}) render.Render {
	tmpl, ok := r.templates[name]
	if !ok {
		tmpl = r.templates[PageError]
	}
	return render.HTML{Template: tmpl, Name: "layout", Data: data}
}

// Static returns the embedded assets rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
