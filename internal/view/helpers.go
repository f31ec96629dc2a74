package view

import "net/http"

// IsHTMX reports whether r was sent by htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
