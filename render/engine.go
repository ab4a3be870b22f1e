// Package render projects the assembled book model into its textual XML
// artifacts: the container pointer, the package document, both
// navigation documents and the generated pages. Rendering is pure, it
// never touches the archive.
package render

import (
	"bytes"
	"errors"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"epb/common"
)

// Engine renders a named template against a set of bindings. The default
// implementation wraps text/template; tests substitute failing or
// recording engines without touching the content model.
type Engine interface {
	Render(name string, data any) (string, error)
}

// TemplateSet is the default Engine over the built-in document
// templates.
type TemplateSet struct {
	root *template.Template
}

// NewTemplateSet parses the built-in templates with the sprig function
// map available to all of them.
func NewTemplateSet() (*TemplateSet, error) {
	root := template.New("epb").Funcs(sprig.FuncMap())
	for name, text := range templateSources {
		if _, err := root.New(name).Parse(text); err != nil {
			return nil, common.TemplateError(name, err)
		}
	}
	return &TemplateSet{root: root}, nil
}

// Render executes one named template. Missing bindings are errors, not
// silent holes in the output.
func (ts *TemplateSet) Render(name string, data any) (string, error) {
	t := ts.root.Lookup(name)
	if t == nil {
		return "", common.TemplateError(name, errors.New("unknown template"))
	}
	var buf bytes.Buffer
	if err := t.Option("missingkey=error").Execute(&buf, data); err != nil {
		return "", common.TemplateError(name, err)
	}
	return buf.String(), nil
}
