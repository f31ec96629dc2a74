package view

import (
	"bytes"
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsHTMX(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if IsHTMX(r) {
		t.Error("plain request detected as htmx")
	}
	r.Header.Set("HX-Request", "true")
	if !IsHTMX(r) {
		t.Error("htmx request not detected")
	}
}

func TestTemplate(t *testing.T) {
	set := template.Must(template.New("root").Parse(`{{ define "hello" }}<p>{{ .Name }}</p>{{ end }}`))

	var buf bytes.Buffer
	if err := Template(set, "hello", map[string]string{"Name": "<France>"}).Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "<p>&lt;France&gt;</p>" {
		t.Errorf("Template() = %q", buf.String())
	}

	if err := Template(set, "missing", nil).Render(context.Background(), &buf); err == nil {
		t.Error("expected error for missing template")
	}
}
