// Package views renders the HTML pages from embedded templates.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/kdalam/furnidex/pkg/authn"
	"github.com/kdalam/furnidex/pkg/logger"
	"github.com/kdalam/furnidex/pkg/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = map[string]*template.Template{}

func init() {
	for _, name := range []string{"search", "products", "upload", "login"} {
		pages[name] = template.Must(template.ParseFS(templateFS,
			"templates/layout.html", "templates/"+name+".html"))
	}
}

// Render writes the named page. data is merged with the queued flash
// messages and the request identity; the session is saved so consumed
// flashes disappear.
func Render(w http.ResponseWriter, r *http.Request, page string, data map[string]interface{}) {
	tmpl, ok := pages[page]
	if !ok {
		logger.Error("views: unknown page", "page", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sess := session.FromCtx(r)
	if data == nil {
		data = map[string]interface{}{}
	}
	data["Flashes"] = sess.PopFlashes()
	data["Identity"] = authn.FromCtx(r.Context())
	sess.Save(w)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		logger.Error("views: render failed", "page", page, "error", err)
	}
}

// Redirect queues a flash and redirects in one step.
func Redirect(w http.ResponseWriter, r *http.Request, to, category, message string) {
	sess := session.FromCtx(r)
	if message != "" {
		sess.PushFlash(category, message)
	}
	sess.Save(w)
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// Errorf formats a message before queuing it, mirroring fmt.Sprintf.
func Errorf(w http.ResponseWriter, r *http.Request, to, format string, args ...interface{}) {
	Redirect(w, r, to, "danger", fmt.Sprintf(format, args...))
}
