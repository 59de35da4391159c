// cmd/web/templates.go
package main

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"bookshelf/internal/identity"
	"bookshelf/internal/shell"
	"bookshelf/internal/views"
)

//go:embed templates
var templateFS embed.FS

// templateData is what every page template receives.
type templateData struct {
	Session       *identity.Session
	Notifications []shell.Notification
	// RedirectTo, when set alongside RedirectAfter, makes the page
	// navigate away once the transient success indicator has been seen.
	RedirectTo    string
	RedirectAfter float64
	State         any
}

var templateFuncs = template.FuncMap{
	"phaseIs": func(p views.Phase, name string) bool {
		switch name {
		case "loading":
			return p == views.PhaseLoading
		case "loaded":
			return p == views.PhaseLoaded
		case "failed":
			return p == views.PhaseFailed
		case "notfound":
			return p == views.PhaseNotFound
		case "denied":
			return p == views.PhaseAccessDenied
		}
		return false
	},
	"deref": func(p *int) int {
		if p == nil {
			return 0
		}
		return *p
	},
	"isAdd": func(m views.FormMode) bool {
		return m == views.ModeAdd
	},
	"bookTitle": func(titles map[int64]string, id int64) string {
		if title, ok := titles[id]; ok {
			return title
		}
		return fmt.Sprintf("Book #%d", id)
	},
	"levelClass": func(l shell.Level) string {
		if l == shell.LevelSuccess {
			return "success"
		}
		return "error"
	},
}

// render executes the named page inside the base layout. Pages are parsed
// per call against the embedded FS; the set is small enough that caching
// would buy nothing noticeable.
func (app *application) render(w http.ResponseWriter, status int, page string, data templateData) {
	ts, err := template.New("base").Funcs(templateFuncs).ParseFS(templateFS,
		"templates/base.tmpl",
		"templates/"+page,
	)
	if err != nil {
		app.serverError(w, err)
		return
	}

	// Render to a buffer first so a template failure can still become a
	// clean 500 instead of a half-written page.
	var buf bytes.Buffer
	if err := ts.ExecuteTemplate(&buf, "base", data); err != nil {
		app.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (app *application) serverError(w http.ResponseWriter, err error) {
	app.logger.Error(err.Error())
	http.Error(w, "the server encountered a problem and could not process your request", http.StatusInternalServerError)
}

func (app *application) pageData(r *http.Request, state any) templateData {
	return templateData{
		Session:       app.sessionFrom(r),
		Notifications: app.notifier.Active(),
		State:         state,
	}
}
