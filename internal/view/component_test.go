package view

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

type counterProps struct {
	ID    int64  `hx:"id"`
	Note  string `hx:"note,omitempty"`
	Count int    `hx:"-"`
}

// counter is a fake component backed by an in-memory store.
type counter struct {
	*Component[counterProps]
	store      map[int64]int
	hydrates   int
	hydrateErr error
}

func newCounter() *counter {
	c := &counter{
		Component: New[counterProps]("counter"),
		store:     map[int64]int{1: 10},
	}
	c.Action("inc", c.handleInc)
	c.Action("reset", c.handleReset).Method(http.MethodDelete)
	c.Action("go", func(ctx context.Context, p counterProps, r *http.Request) Result[counterProps] {
		return Navigate[counterProps](fmt.Sprintf("/things/%d", p.ID))
	})
	c.Action("boom", func(ctx context.Context, p counterProps, r *http.Request) Result[counterProps] {
		return Err(p, errors.New("boom"))
	})
	c.Bind(c)
	return c
}

func (c *counter) Hydrate(ctx context.Context, p *counterProps) error {
	c.hydrates++
	if c.hydrateErr != nil {
		return c.hydrateErr
	}
	p.Count = c.store[p.ID]
	return nil
}

func (c *counter) Render(ctx context.Context, p counterProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div id="counter">count=%d note=%s</div>`, p.Count, p.Note)
		return err
	})
}

func (c *counter) handleInc(ctx context.Context, p counterProps, r *http.Request) Result[counterProps] {
	c.store[p.ID]++
	p.Note = r.FormValue("note")
	return OK(p).Flash(FlashSuccess, "Incremented")
}

func (c *counter) handleReset(ctx context.Context, p counterProps, r *http.Request) Result[counterProps] {
	c.store[p.ID] = 0
	return OK(p)
}

func registered(t *testing.T) (*counter, *Registry) {
	t.Helper()
	reg := NewRegistry([]byte("test-key"))
	c := newCounter()
	reg.Add(c)
	return c, reg
}

func TestComponentRender(t *testing.T) {
	c, _ := registered(t)

	res, err := TestGet(c, c.Refresh(counterProps{ID: 1}).URL())
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsOK() {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}
	if !res.HTMLContains("count=10") {
		t.Errorf("HTML = %q, want count=10", res.HTML)
	}
	if ct := res.Headers.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestComponentActionHydratesAfterHandler(t *testing.T) {
	c, _ := registered(t)

	res, err := TestPost(c, c.Call("inc", counterProps{ID: 1}).URL(), map[string]string{"note": "hi"})
	if err != nil {
		t.Fatal(err)
	}
	if !res.HTMLContains("count=11 note=hi") {
		t.Errorf("HTML = %q, want the post-mutation count", res.HTML)
	}
	if c.hydrates != 1 {
		t.Errorf("Hydrate called %d times, want 1", c.hydrates)
	}
	if !res.HasFlash(FlashSuccess, "Incremented") {
		t.Errorf("flashes = %+v", res.Flashes)
	}
}

func TestComponentMethodOverride(t *testing.T) {
	c, _ := registered(t)

	a := c.Call("reset", counterProps{ID: 1})
	if a.Method() != http.MethodDelete {
		t.Fatalf("method = %q, want DELETE", a.Method())
	}

	res, _ := TestPost(c, a.URL(), nil)
	if !res.HasStatus(http.StatusMethodNotAllowed) {
		t.Errorf("POST to DELETE action: status = %d, want 405", res.StatusCode)
	}

	res, _ = TestDelete(c, a.URL())
	if !res.HTMLContains("count=0") {
		t.Errorf("HTML = %q, want count=0", res.HTML)
	}
}

func TestComponentNavigate(t *testing.T) {
	c, _ := registered(t)

	res, _ := TestPost(c, c.Call("go", counterProps{ID: 7}).URL(), nil)
	if !res.RedirectedTo("/things/7") {
		t.Errorf("redirect = %q, want /things/7", res.RedirectURL)
	}
	if res.HTML != "" {
		t.Errorf("navigate rendered a body: %q", res.HTML)
	}
	if c.hydrates != 0 {
		t.Errorf("navigate hydrated %d times", c.hydrates)
	}
}

func TestComponentErrors(t *testing.T) {
	c, reg := registered(t)

	var got error
	reg.OnError = func(w http.ResponseWriter, r *http.Request, err error) {
		got = err
		DefaultErrorHandler(w, r, err)
	}

	res, _ := TestPost(c, c.Call("boom", counterProps{ID: 1}).URL(), nil)
	if !res.HasStatus(http.StatusInternalServerError) || got == nil || got.Error() != "boom" {
		t.Errorf("boom: status = %d, err = %v", res.StatusCode, got)
	}

	res, _ = TestPost(c, c.HXPrefix()+"/missing", nil)
	if !res.HasStatus(http.StatusNotFound) || !IsNotFound(got) {
		t.Errorf("unknown action: status = %d, err = %v", res.StatusCode, got)
	}

	res, _ = TestGet(c, c.HXPrefix()+"/?p=forged.token")
	if !res.HasStatus(http.StatusBadRequest) || !IsBadRequest(got) {
		t.Errorf("forged props: status = %d, err = %v", res.StatusCode, got)
	}

	c.hydrateErr = errors.New("db down")
	res, _ = TestGet(c, c.Refresh(counterProps{ID: 1}).URL())
	if !res.HasStatus(http.StatusInternalServerError) || !errors.Is(got, ErrHydrationFailed) {
		t.Errorf("hydrate failure: status = %d, err = %v", res.StatusCode, got)
	}
}

func TestComponentPushURL(t *testing.T) {
	c, _ := registered(t)
	c.Action("jump", func(ctx context.Context, p counterProps, r *http.Request) Result[counterProps] {
		return OK(p).PushURL(fmt.Sprintf("/things/%d", p.ID))
	})

	res, _ := TestPost(c, c.Call("jump", counterProps{ID: 1}).URL(), nil)
	if !res.IsOK() || !res.HTMLContains("count=10") {
		t.Errorf("status = %d, HTML = %q", res.StatusCode, res.HTML)
	}
	if got := res.Headers.Get("HX-Push-Url"); got != "/things/1" {
		t.Errorf("HX-Push-Url = %q", got)
	}
}

func TestSensitiveComponentEncryptsProps(t *testing.T) {
	reg := NewRegistry([]byte("test-key"))
	c := newCounter()
	c.Sensitive()
	reg.Add(c)

	props := counterProps{ID: 1, Note: "secret"}
	first, second := c.Refresh(props).URL(), c.Refresh(props).URL()
	if first == second {
		t.Error("encrypted URLs should differ per call")
	}

	token := first[strings.Index(first, "?"+PropsParam+"=")+len(PropsParam)+2:]
	var signedOnly counterProps
	if err := reg.encoder.Decode(token, false, &signedOnly); err == nil {
		t.Error("encrypted token decoded as a signed one")
	}

	res, err := TestGet(c, first)
	if err != nil {
		t.Fatal(err)
	}
	if !res.HTMLContains("count=10 note=secret") {
		t.Errorf("HTML = %q", res.HTML)
	}

	res, _ = TestGet(c, first[:len(first)-2]+"xx")
	if !res.HasStatus(http.StatusBadRequest) {
		t.Errorf("tampered encrypted props: status = %d, want 400", res.StatusCode)
	}
}

func TestRegistryHandler(t *testing.T) {
	c, reg := registered(t)
	h := reg.Handler()

	req := httptest.NewRequest(http.MethodPost, c.Call("inc", counterProps{ID: 1}).URL(), nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("POST without HX-Request: status = %d, want 403", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, c.Refresh(counterProps{ID: 1}).URL(), nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "count=10") {
		t.Errorf("GET via registry: status = %d body = %q", rec.Code, rec.Body.String())
	}
}

func TestRegistryRejectsUnbound(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unbound component")
		}
	}()
	NewRegistry([]byte("k")).Add(New[counterProps]("unbound"))
}

func TestDeferPlaceholder(t *testing.T) {
	c, _ := registered(t)

	var sb strings.Builder
	placeholder := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "Loading...")
		return err
	})
	if err := c.Defer(counterProps{ID: 1}, placeholder).Render(context.Background(), &sb); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	if !strings.Contains(out, `hx-trigger="load"`) || !strings.Contains(out, "Loading...") {
		t.Errorf("Defer output = %q", out)
	}
	if !strings.Contains(out, c.HXPrefix()+"/?p=") {
		t.Errorf("Defer output missing props URL: %q", out)
	}
}
