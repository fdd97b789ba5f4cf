// Package assets loads the page template and stylesheets named by the
// configuration.
//
// The template directory plays the role of a template environment: the
// named template is the entry point, and every other *.html or *.tmpl file
// in the directory is parsed alongside it so it can be included with
// {{template "header.html" .}}.
//
// Templates are html/template templates and receive two values:
//
//	{{.title}}    the note title, escaped
//	{{.article}}  the rendered note, inserted as HTML
//
// All errors from LoadTemplate wrap ErrTemplateLoad so callers can treat
// any template problem as a startup failure.
package assets
