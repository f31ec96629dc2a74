package view

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/rs/zerolog"
)

// ComponentPath is the URL prefix every component is mounted under.
const ComponentPath = "/_c/"

type attachable interface {
	HXComponent
	attach(reg *Registry) error
}

// Registry manages component registration and routing.
type Registry struct {
	mu         sync.RWMutex
	mux        *http.ServeMux
	encoder    *Encoder
	components map[string]HXComponent

	// OnError is called when a component request fails.
	OnError func(http.ResponseWriter, *http.Request, error)

	// Logger receives registry-level events. Per-request logging goes
	// through the logger attached to the request context.
	Logger zerolog.Logger
}

// NewRegistry creates a new component registry with the given props key.
func NewRegistry(key []byte) *Registry {
	enc, err := NewEncoder(key)
	if err != nil {
		panic(fmt.Sprintf("view: failed to create encoder: %v", err))
	}

	return &Registry{
		mux:        http.NewServeMux(),
		encoder:    enc,
		components: make(map[string]HXComponent),
		OnError:    DefaultErrorHandler,
		Logger:     zerolog.Nop(),
	}
}

// DefaultErrorHandler maps view errors onto plain HTTP error responses.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case IsNotFound(err):
		http.Error(w, "Not found", http.StatusNotFound)
	case IsBadRequest(err):
		http.Error(w, "Bad request", http.StatusBadRequest)
	case errors.Is(err, ErrMethodNotAllowed):
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	default:
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

// Add registers components with the registry.
// Components must embed *view.Component[P] and be bound.
// Panics on an unbound component or a prefix collision.
func (reg *Registry) Add(components ...HXComponent) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, comp := range components {
		a, ok := comp.(attachable)
		if !ok {
			panic(fmt.Sprintf("view: %T does not embed *view.Component", comp))
		}
		prefix := a.HXPrefix()
		if _, exists := reg.components[prefix]; exists {
			panic(fmt.Sprintf("view: prefix collision for %q", prefix))
		}
		if err := a.attach(reg); err != nil {
			panic(err.Error())
		}
		reg.components[prefix] = comp
		reg.mux.HandleFunc(prefix+"/", comp.HXServeHTTP)
		reg.Logger.Debug().Str("prefix", prefix).Msg("component registered")
	}
}

// Handler returns the HTTP handler for component routes.
// Mount it at ComponentPath.
func (reg *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// CSRF protection: mutating methods require the HX-Request header,
		// which a cross-site form post cannot set.
		if r.Method != http.MethodGet && r.Method != http.MethodHead && !IsHTMX(r) {
			http.Error(w, "Forbidden: HTMX request required", http.StatusForbidden)
			return
		}

		reg.mu.RLock()
		defer reg.mu.RUnlock()
		reg.mux.ServeHTTP(w, r)
	})
}
