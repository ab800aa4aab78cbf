// Package view renders the METAR web pages from embedded templates.
package view

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"
)

//go:embed templates static
var viewsFS embed.FS

var pages *template.Template

// loadTemplatesFromFS loads page templates from the given fs and dir.
// Used by LoadTemplates and by tests to simulate failure scenarios.
func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	pages, err = template.ParseFS(sub, "*.html", "partials/*.html")
	return err
}

// LoadTemplates loads the embedded page templates. Call during startup before
// serving requests; if it returns an error, do not start the server.
func LoadTemplates() error {
	return loadTemplatesFromFS(viewsFS, "templates")
}

// Favicon returns the site icon as SVG.
func Favicon() ([]byte, error) {
	return viewsFS.ReadFile("static/metarflow.svg")
}

// RenderIndex writes the home page with the station search form.
func RenderIndex(w io.Writer) error {
	return render(w, "index.html", nil)
}

// RenderPrivacy writes the privacy policy page.
func RenderPrivacy(w io.Writer) error {
	return render(w, "privacy.html", nil)
}

// ErrorData is the view model for the error page.
type ErrorData struct {
	Message string
}

// RenderError writes the error page with the given message.
func RenderError(w io.Writer, message string) error {
	return render(w, "error.html", &ErrorData{Message: message})
}

// RenderResults writes the decoded report page.
func RenderResults(w io.Writer, data *ResultsData) error {
	return render(w, "results.html", data)
}

func render(w io.Writer, name string, data any) error {
	if pages == nil {
		return errors.New("page templates not loaded: call view.LoadTemplates during startup")
	}
	return pages.ExecuteTemplate(w, name, data)
}
