package view

// Result[P] is returned from action handlers to control rendering and side effects.
//
// The runtime processes the Result after the handler returns: it applies
// headers, then hydrates and renders the returned props unless the result
// navigates away.
//
//	return view.OK(props)                                   // re-fetch and re-render
//	return view.OK(props).Flash(view.FlashError, "Failed")  // same, plus a toast
//	return view.Navigate[Props](routes.Countries)           // client-side navigation
//	return view.Err(props, err)                             // hand err to OnError
type Result[P any] struct {
	props    P
	err      error
	navigate string
	flashes  []Flash
	headers  map[string]string
}

// OK creates a success result that will hydrate and render the given props.
func OK[P any](props P) Result[P] {
	return Result[P]{props: props}
}

// Err creates an error result that passes the error to the registry's OnError.
//
// Use it for failures the view cannot show. Failures the view can show
// (a rejected submit) belong in props and an OK result.
func Err[P any](props P, err error) Result[P] {
	return Result[P]{props: props, err: err}
}

// Navigate sends the browser to path via the HX-Redirect header.
// Nothing is rendered.
func Navigate[P any](path string) Result[P] {
	return Result[P]{navigate: path}
}

// Flash adds a toast. Several can be chained; they are appended to
// #toasts with out-of-band swaps.
func (r Result[P]) Flash(level, message string) Result[P] {
	r.flashes = append(r.flashes, Flash{Level: level, Message: message})
	return r
}

// PushURL replaces the browser URL with url (HX-Push-Url), so a reload
// comes back to the same state.
func (r Result[P]) PushURL(url string) Result[P] {
	headers := make(map[string]string, len(r.headers)+1)
	for k, v := range r.headers {
		headers[k] = v
	}
	headers["HX-Push-Url"] = url
	r.headers = headers
	return r
}

func (r Result[P]) GetProps() P                   { return r.props }
func (r Result[P]) GetErr() error                 { return r.err }
func (r Result[P]) GetNavigate() string           { return r.navigate }
func (r Result[P]) GetFlashes() []Flash           { return r.flashes }
func (r Result[P]) GetHeaders() map[string]string { return r.headers }
