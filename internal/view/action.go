package view

import (
	"fmt"
	"html"
	"html/template"
	"net/http"
	"sort"
	"strings"
)

// ActionBuilder configures action registration.
//
//	c.Action("save", c.handleSave)                          // POST by default
//	c.Action("delete", c.handleDelete).Method(http.MethodDelete)
type ActionBuilder struct {
	method *string
}

// Method overrides the default POST method for an action.
func (ab *ActionBuilder) Method(m string) *ActionBuilder {
	*ab.method = m
	return ab
}

// Action holds the htmx attributes of one request. Obtain one from
// Component.Call or Component.Refresh, chain modifiers, and finish with HTML.
//
//	c.Call("delete", props).Target("#country-list").Confirm("Delete France?").HTML()
//
// The response always replaces the target's outer HTML: every screen
// renders its own root element.
type Action struct {
	url       string
	method    string
	target    string
	confirm   string
	indicator string
}

// newAction creates an action for url. An empty method means GET.
func newAction(url, method string) *Action {
	if method == "" {
		method = http.MethodGet
	}
	return &Action{url: url, method: method}
}

// URL returns the request URL, including the encoded props.
func (a *Action) URL() string { return a.url }

func (a *Action) Method() string { return a.method }

func (a *Action) Target(selector string) *Action {
	a.target = selector
	return a
}

// Confirm asks the browser to confirm before sending.
func (a *Action) Confirm(message string) *Action {
	a.confirm = message
	return a
}

// Indicator names the element that gets the htmx-request class while the
// request is in flight.
func (a *Action) Indicator(selector string) *Action {
	a.indicator = selector
	return a
}

func (a *Action) attrs() map[string]string {
	verb := "hx-get"
	switch a.method {
	case http.MethodPost:
		verb = "hx-post"
	case http.MethodPut:
		verb = "hx-put"
	case http.MethodPatch:
		verb = "hx-patch"
	case http.MethodDelete:
		verb = "hx-delete"
	}
	attrs := map[string]string{verb: a.url, "hx-swap": "outerHTML"}
	for k, v := range map[string]string{
		"hx-target":    a.target,
		"hx-confirm":   a.confirm,
		"hx-indicator": a.indicator,
	} {
		if v != "" {
			attrs[k] = v
		}
	}
	return attrs
}

// HTML renders the attributes, sorted by name, for an html/template tag:
//
//	<button {{ .Delete }}>Delete</button>
func (a *Action) HTML() template.HTMLAttr {
	attrs := a.attrs()
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, `%s="%s"`, k, html.EscapeString(attrs[k]))
	}
	return template.HTMLAttr(sb.String())
}
