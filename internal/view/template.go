package view

import (
	"context"
	"fmt"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

// Template adapts a named html/template to templ.Component so html/template
// views plug into the same Renderer contract as templ views.
func Template(set *template.Template, name string, data any) templ.Component {
	t := set.Lookup(name)
	if t == nil {
		return templ.ComponentFunc(func(context.Context, io.Writer) error {
			return fmt.Errorf("view: template %q not defined", name)
		})
	}
	return templ.FromGoHTML(t, data)
}
