package view

import (
	"bytes"
	"context"
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"slices"
	"strings"
)

// TestResult is what a component produced for one simulated request.
type TestResult struct {
	HTML        string
	StatusCode  int
	Headers     http.Header
	Flashes     []Flash
	RedirectURL string
}

// TestRender hydrates and renders comp in-process. No props encoding or
// action dispatch is involved; use TestGet and friends for those.
func TestRender[P any](ctx context.Context, comp Implementation[P], props P) (*TestResult, error) {
	if err := comp.Hydrate(ctx, &props); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := comp.Render(ctx, props).Render(ctx, &buf); err != nil {
		return nil, err
	}
	return &TestResult{HTML: buf.String(), StatusCode: http.StatusOK, Headers: http.Header{}}, nil
}

// TestGet sends an htmx GET to a component URL.
func TestGet(comp HXComponent, target string) (*TestResult, error) {
	return NewTestRequest(http.MethodGet, target).Execute(comp)
}

// TestPost sends an htmx POST carrying form to a component URL.
func TestPost(comp HXComponent, target string, form map[string]string) (*TestResult, error) {
	b := NewTestRequest(http.MethodPost, target)
	for k, v := range form {
		b.WithFormData(k, v)
	}
	return b.Execute(comp)
}

// TestDelete sends an htmx DELETE to a component URL.
func TestDelete(comp HXComponent, target string) (*TestResult, error) {
	return NewTestRequest(http.MethodDelete, target).Execute(comp)
}

func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !r.HTMLContains(s) {
			return false
		}
	}
	return true
}

// HasFlash reports whether a toast with this level and text was emitted.
func (r *TestResult) HasFlash(level, message string) bool {
	return slices.Contains(r.Flashes, Flash{Level: level, Message: message})
}

func (r *TestResult) WasRedirected() bool           { return r.RedirectURL != "" }
func (r *TestResult) RedirectedTo(path string) bool { return r.RedirectURL == path }
func (r *TestResult) IsOK() bool                    { return r.StatusCode == http.StatusOK }
func (r *TestResult) HasStatus(code int) bool       { return r.StatusCode == code }

var toastPattern = regexp.MustCompile(`<div class="toast toast-([a-z]+)"[^>]*>(.*?)</div>`)

// parseFlashesFromHTML recovers the toasts written by RenderFlashesOOB.
func parseFlashesFromHTML(body string) []Flash {
	var flashes []Flash
	for _, m := range toastPattern.FindAllStringSubmatch(body, -1) {
		flashes = append(flashes, Flash{Level: m[1], Message: html.UnescapeString(m[2])})
	}
	return flashes
}

// TestRequestBuilder assembles an htmx request for a component.
//
//	res, err := view.NewTestRequest(http.MethodPost, url).
//	    WithFormData("name", "France").
//	    Execute(comp)
type TestRequestBuilder struct {
	method  string
	target  string
	form    url.Values
	headers http.Header
	ctx     context.Context
}

func NewTestRequest(method, target string) *TestRequestBuilder {
	return &TestRequestBuilder{
		method:  method,
		target:  target,
		form:    url.Values{},
		headers: http.Header{},
		ctx:     context.Background(),
	}
}

func (b *TestRequestBuilder) WithFormData(key, value string) *TestRequestBuilder {
	b.form.Set(key, value)
	return b
}

func (b *TestRequestBuilder) WithHeader(key, value string) *TestRequestBuilder {
	b.headers.Set(key, value)
	return b
}

func (b *TestRequestBuilder) WithContext(ctx context.Context) *TestRequestBuilder {
	b.ctx = ctx
	return b
}

// Execute serves the request through comp.HXServeHTTP and collects what
// htmx would see: body, status, redirect and toasts.
func (b *TestRequestBuilder) Execute(comp HXComponent) (*TestResult, error) {
	req := httptest.NewRequestWithContext(b.ctx, b.method, b.target, strings.NewReader(b.form.Encode()))
	req.Header.Set("HX-Request", "true")
	if len(b.form) > 0 {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, vs := range b.headers {
		req.Header[k] = vs
	}

	rec := httptest.NewRecorder()
	comp.HXServeHTTP(rec, req)

	body := rec.Body.String()
	return &TestResult{
		HTML:        body,
		StatusCode:  rec.Code,
		Headers:     rec.Header(),
		RedirectURL: rec.Header().Get("HX-Redirect"),
		Flashes:     parseFlashesFromHTML(body),
	}, nil
}
