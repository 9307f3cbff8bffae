package epub

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/eykd/epubgen/internal/markup"
)

//go:embed templates
var templateFS embed.FS

// Template names understood by the default renderer.
const (
	TemplatePackage   = "content.opf"
	TemplateNavMap    = "toc.ncx"
	TemplateTitlePage = "title_page.html"
	TemplateContents  = "contents.html"
	TemplateArticle   = "article.html"
)

// Renderer turns a named template and a context into document text. It
// must have no side effects visible to the builder.
type Renderer interface {
	Render(name string, data map[string]any) (string, error)
}

// TemplateRenderer renders the embedded package templates with
// text/template. Templates call "xml" on every string they interpolate.
type TemplateRenderer struct {
	tmpl *template.Template
}

// NewTemplateRenderer parses the embedded templates.
func NewTemplateRenderer() (*TemplateRenderer, error) {
	funcs := template.FuncMap{
		"xml": markup.Escape,
		"add": func(a, b int) int { return a + b },
	}
	tmpl, err := template.New("epub").
		Funcs(funcs).
		Option("missingkey=error").
		ParseFS(templateFS,
			"templates/"+TemplatePackage,
			"templates/"+TemplateNavMap,
			"templates/"+TemplateTitlePage,
			"templates/"+TemplateContents,
			"templates/"+TemplateArticle,
		)
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &TemplateRenderer{tmpl: tmpl}, nil
}

// Render executes the template called name.
func (r *TemplateRenderer) Render(name string, data map[string]any) (string, error) {
	var b strings.Builder
	if err := r.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return b.String(), nil
}

// staticFile reads one of the fixed control files shipped with the
// templates.
func staticFile(name string) ([]byte, error) {
	return templateFS.ReadFile("templates/" + name)
}
