package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
)

// ErrTemplateExecute indicates the page template failed to execute.
var ErrTemplateExecute = errors.New("template execution failed")

// Template parameter names. Templates reference them as {{.title}} and
// {{.article}}.
const (
	ParamTitle   = "title"
	ParamArticle = "article"
)

// PageRenderer fills the page template with a note's title and article.
// It is built once per run and reused for every note.
type PageRenderer struct {
	tmpl *template.Template
}

// NewPageRenderer wraps a parsed template.
func NewPageRenderer(tmpl *template.Template) *PageRenderer {
	return &PageRenderer{tmpl: tmpl}
}

// Render executes the template and pretty-prints the result. The article
// is trusted HTML and is not escaped; an empty article renders as nothing.
func (r *PageRenderer) Render(title, article string) (string, error) {
	if r == nil || r.tmpl == nil {
		return "", fmt.Errorf("%w: no template loaded", ErrTemplateExecute)
	}

	var buf bytes.Buffer
	data := map[string]any{
		ParamTitle:   title,
		ParamArticle: template.HTML(article), // #nosec G203 -- fragment comes from the configured notes source
	}
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateExecute, err)
	}

	return Prettify(buf.String())
}
