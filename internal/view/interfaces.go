package view

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
)

// Hydrater is implemented by components to turn lean props into the data
// the view shows. It runs once per request, after any action handler and
// immediately before Render, so a view always shows freshly fetched state.
//
//	func (c *CountryList) Hydrate(ctx context.Context, props *CountryListProps) error {
//	    props.Countries, props.LoadErr = c.backend.ListCountries(ctx)
//	    return nil
//	}
//
// Returning an error aborts the request through the registry's OnError.
// Expected failures (a backend that is down) belong in props so Render can
// show them.
type Hydrater[P any] interface {
	Hydrate(ctx context.Context, props *P) error
}

// Renderer is implemented by components to produce templ output.
//
// Render receives fully-hydrated props and should be pure.
type Renderer[P any] interface {
	Render(ctx context.Context, props P) templ.Component
}

// Implementation is what Component.Bind expects.
type Implementation[P any] interface {
	Hydrater[P]
	Renderer[P]
}

// HXComponent is the surface the registry mounts.
// Every *Component[P] satisfies it, and so does every type embedding one.
type HXComponent interface {
	HXPrefix() string
	HXServeHTTP(w http.ResponseWriter, r *http.Request)
}
