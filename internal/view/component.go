package view

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/a-h/templ"
	"github.com/rs/zerolog"
)

// PropsParam is the query parameter that carries the encoded props.
const PropsParam = "p"

// Handler handles one named action. It receives the decoded props (before
// hydration) and the request, and returns what should happen next.
type Handler[P any] func(ctx context.Context, props P, r *http.Request) Result[P]

type actionDef[P any] struct {
	name    string
	method  string
	handler Handler[P]
}

// Component[P] is the base type embedded by screens.
// P is the props type: the identifiers and form input that travel between
// requests, plus `hx:"-"` fields that Hydrate fills in.
//
//	type CountryList struct {
//	    *view.Component[CountryListProps]
//	    backend Backend
//	}
//
//	func NewCountryList(b Backend) *CountryList {
//	    c := &CountryList{Component: view.New[CountryListProps]("countrylist"), backend: b}
//	    c.Action("delete", c.handleDelete).Method(http.MethodDelete)
//	    c.Bind(c)
//	    return c
//	}
//
// Each component instance receives a deterministic URL prefix based on its
// name and source location (file:line).
type Component[P any] struct {
	name      string
	prefix    string
	sensitive bool
	actions   map[string]*actionDef[P]
	impl      Implementation[P]
	reg       *Registry
}

// New creates a new component with the given name.
//
// Props are signed by default (visible but tamper-proof). Call Sensitive
// to encrypt them instead.
func New[P any](name string) *Component[P] {
	return &Component[P]{
		name:    name,
		prefix:  ComponentPath + name + "-" + componentHash(name, 1),
		actions: make(map[string]*actionDef[P]),
	}
}

// Sensitive encrypts the component's props instead of only signing them,
// so the browser cannot read what the token carries.
func (c *Component[P]) Sensitive() *Component[P] {
	c.sensitive = true
	return c
}

// Bind attaches the type that hydrates and renders this component.
// It must be called before the component is added to a registry.
func (c *Component[P]) Bind(impl Implementation[P]) {
	c.impl = impl
}

func (c *Component[P]) HXPrefix() string { return c.prefix }

// Action registers a named action handler with default POST method.
func (c *Component[P]) Action(name string, handler Handler[P]) *ActionBuilder {
	def := &actionDef[P]{
		name:    name,
		method:  http.MethodPost,
		handler: handler,
	}
	c.actions[name] = def
	return &ActionBuilder{method: &def.method}
}

// Call returns an action builder for a registered action.
// It panics on an unknown name, which is a programming error.
func (c *Component[P]) Call(action string, props P) *Action {
	def, ok := c.actions[action]
	if !ok {
		panic(fmt.Sprintf("view: %s has no action %q", c.name, action))
	}
	return newAction(c.URL(action, props), def.method)
}

// Refresh re-renders the component with props, which fetches afresh.
func (c *Component[P]) Refresh(props P) *Action {
	return newAction(c.URL("", props), http.MethodGet)
}

// Defer renders placeholder and loads the component right after page load.
// Page routes use it to serve the shell immediately while the component
// fetches from the backend.
func (c *Component[P]) Defer(props P, placeholder templ.Component) templ.Component {
	return deferred(c.URL("", props), placeholder)
}

// URL constructs the URL for an action with encoded props.
// Empty action string means default render (GET).
func (c *Component[P]) URL(action string, props P) string {
	path := c.prefix + "/" + action

	if c.reg == nil {
		return path
	}

	encoded, err := c.reg.encoder.Encode(props, c.sensitive)
	if err != nil {
		c.reg.Logger.Error().Err(err).Str("component", c.name).Msg("encode props")
		return path
	}
	return path + "?" + PropsParam + "=" + encoded
}

func (c *Component[P]) attach(reg *Registry) error {
	if c.impl == nil {
		return fmt.Errorf("view: component %q is not bound", c.name)
	}
	c.reg = reg
	return nil
}

// HXServeHTTP decodes props, routes to the action handler (if any), then
// hydrates and renders.
func (c *Component[P]) HXServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	props, err := c.decodeProps(r)
	if err != nil {
		c.fail(w, r, err)
		return
	}

	name := strings.Trim(strings.TrimPrefix(r.URL.Path, c.prefix), "/")
	if name == "" {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			c.fail(w, r, ErrMethodNotAllowed)
			return
		}
		c.handleResult(w, r, OK(props))
		return
	}

	def, ok := c.actions[name]
	if !ok {
		c.fail(w, r, fmt.Errorf("%w: action %q", ErrNotFound, name))
		return
	}
	if r.Method != def.method {
		w.Header().Set("Allow", def.method)
		c.fail(w, r, ErrMethodNotAllowed)
		return
	}

	zerolog.Ctx(ctx).Debug().Str("component", c.name).Str("action", name).Msg("dispatch")
	c.handleResult(w, r, def.handler(ctx, props, r))
}

func (c *Component[P]) decodeProps(r *http.Request) (P, error) {
	var props P

	token := r.URL.Query().Get(PropsParam)
	if token == "" {
		token = r.FormValue(PropsParam)
	}
	if token == "" {
		return props, nil
	}
	if c.reg == nil {
		return props, fmt.Errorf("view: component %q is not registered", c.name)
	}
	if err := c.reg.encoder.Decode(token, c.sensitive, &props); err != nil {
		return props, WrapDecodeError(err)
	}
	return props, nil
}

// handleResult applies a Result. Headers are set before WriteHeader, and
// the body is buffered so a render failure can still become an error response.
func (c *Component[P]) handleResult(w http.ResponseWriter, r *http.Request, res Result[P]) {
	if err := res.GetErr(); err != nil {
		c.fail(w, r, err)
		return
	}

	h := w.Header()
	for k, v := range res.GetHeaders() {
		h.Set(k, v)
	}

	if dest := res.GetNavigate(); dest != "" {
		h.Set("HX-Redirect", dest)
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx := r.Context()
	props := res.GetProps()
	if err := c.impl.Hydrate(ctx, &props); err != nil {
		c.fail(w, r, fmt.Errorf("%w: %s: %v", ErrHydrationFailed, c.name, err))
		return
	}

	var buf bytes.Buffer
	if err := c.impl.Render(ctx, props).Render(ctx, &buf); err != nil {
		c.fail(w, r, fmt.Errorf("render %s: %w", c.name, err))
		return
	}
	buf.WriteString(RenderFlashesOOB(res.GetFlashes()))

	h.Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(buf.Bytes())
	}
}

func (c *Component[P]) fail(w http.ResponseWriter, r *http.Request, err error) {
	zerolog.Ctx(r.Context()).Error().Err(err).Str("component", c.name).Str("path", r.URL.Path).Msg("component request failed")
	if c.reg != nil && c.reg.OnError != nil {
		c.reg.OnError(w, r, err)
		return
	}
	DefaultErrorHandler(w, r, err)
}

// componentHash generates a deterministic hash based on component name and source location.
func componentHash(name string, skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	input := name
	if ok {
		input = fmt.Sprintf("%s:%d:%s", filepath.Base(file), line, name)
	}
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:4]) // 8 hex chars
}

// deferred wraps placeholder in an element that swaps itself for the
// component once the page has loaded.
func deferred(url string, placeholder templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div hx-get="%s" hx-trigger="load" hx-swap="outerHTML">`, templ.EscapeString(url)); err != nil {
			return err
		}
		if placeholder != nil {
			if err := placeholder.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}
