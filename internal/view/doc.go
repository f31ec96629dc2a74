// Package view is a small server-side component runtime for HTMX screens.
//
// A component embeds *Component[P], binds a Hydrate/Render implementation,
// and registers named actions. Props travel between requests as a signed
// (or encrypted) msgpack token in the "p" query parameter, so handlers get
// typed state without sessions or hidden form fields.
//
// Request lifecycle:
//
//	GET  /_c/<name>-<hash>/?p=...          decode -> Hydrate -> Render
//	POST /_c/<name>-<hash>/<action>?p=...  decode -> handler -> Hydrate -> Render
//
// Handlers return a Result that can re-render (OK), navigate (Navigate),
// fail through the registry (Err), rewrite the address bar (PushURL) or
// add toasts (Flash). Hydrate runs after the handler, so a view rendered after a
// mutation always reflects a fresh fetch.
//
// Views can be written in templ or in html/template (see Template).
package view
