package server

import (
	"context"
	"encoding/json"
	"html"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/geoadmin/internal/api"
	"github.com/pthm/geoadmin/internal/model"
)

// newTestServer runs the UI against a canned REST backend.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	backend := http.NewServeMux()
	backend.HandleFunc("GET /api/country", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]model.Country{{ID: 4, Name: "France", Capital: "Paris"}})
	})
	backend.HandleFunc("GET /api/country/{id}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	client, err := api.New(srv.URL)
	require.NoError(t, err)
	return New(client, []byte("server-test-key"), zerolog.Nop())
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

var deferred = regexp.MustCompile(`hx-get="([^"]+)" hx-trigger="load"`)

func TestPages(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{
		"/", "/country", "/nation", "/city", "/search", "/search?cityName=Lyon",
		"/get-country/4", "/get-countries-from-nation/3",
		"/add-country", "/add-country-to-nation/3", "/edit-country/4", "/edit-country/4/3",
		"/add-city/4", "/edit-city/9", "/edit-city/9/4",
		"/add-nation/4", "/edit-nation/3", "/edit-nation/3/4",
	} {
		rec := get(t, s, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), `id="toasts"`, path)
		if path != "/" {
			assert.Regexp(t, deferred, rec.Body.String(), path)
		}
	}
}

func TestMalformedIDsAreNotFound(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{
		"/get-country/abc", "/get-country/0", "/edit-country/4/x",
		"/edit-city/-1", "/add-nation/1.5", "/no-such-page",
	} {
		rec := get(t, s, path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "Back to Home", path)
	}
}

func TestDeferredComponentLoads(t *testing.T) {
	s := newTestServer(t)

	page := get(t, s, "/country")
	m := deferred.FindStringSubmatch(page.Body.String())
	require.NotNil(t, m)

	rec := get(t, s, html.UnescapeString(m[1]))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "France")
	assert.Contains(t, rec.Body.String(), "Paris")
}

func TestCountryDetailNotFoundRendersInline(t *testing.T) {
	s := newTestServer(t)

	page := get(t, s, "/get-country/77")
	m := deferred.FindStringSubmatch(page.Body.String())
	require.NotNil(t, m)

	rec := get(t, s, html.UnescapeString(m[1]))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to load country details")
}

func TestComponentErrors(t *testing.T) {
	s := newTestServer(t)

	page := get(t, s, "/country")
	m := deferred.FindStringSubmatch(page.Body.String())
	require.NotNil(t, m)
	url := html.UnescapeString(m[1])

	rec := get(t, s, url+"tampered")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `class="view-error"`)

	// mutating requests must come from htmx
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, url, nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, strings.Replace(url, "/?", "/nope?", 1), nil)
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRunStopsOnCancel(t *testing.T) {
	s := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRequestLoggerAttachesRequestID(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(backend.Close)
	client, err := api.New(backend.URL)
	require.NoError(t, err)

	var buf strings.Builder
	s := New(client, nil, zerolog.New(&buf))
	rec := get(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var last map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &last))
	assert.Equal(t, "request", last["message"])
	assert.Equal(t, float64(http.StatusOK), last["status"])
	assert.Equal(t, rec.Header().Get("X-Request-Id"), last["request_id"])
	assert.Contains(t, buf.String(), "no props key configured")
}
