package screens

import (
	"context"
	"embed"
	"html/template"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/pthm/geoadmin/internal/routes"
	"github.com/pthm/geoadmin/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"num":                   func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) },
	"countryURL":            routes.CountryDetail,
	"editCountryURL":        routes.EditCountry,
	"editCityURL":           routes.EditCity,
	"editNationURL":         routes.EditNation,
	"nationCountriesURL":    routes.NationCountries,
	"addCityURL":            routes.AddCity,
	"addNationURL":          routes.AddNation,
	"addCountryToNationURL": routes.AddCountryToNation,
}

var tmpl = template.Must(template.New("screens").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))

func render(name string, data any) templ.Component {
	return view.Template(tmpl, name, data)
}

// Layout wraps body in the page shell: head, navigation and the toast
// container that flash messages are swapped into.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := tmpl.ExecuteTemplate(w, "layout_head", title); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		if err := view.ToastContainer().Render(ctx, w); err != nil {
			return err
		}
		return tmpl.ExecuteTemplate(w, "layout_foot", nil)
	})
}

// Loading is the placeholder shown while a deferred screen fetches.
func Loading() templ.Component {
	return render("loading", nil)
}

// Home is the landing page body.
func Home() templ.Component {
	return render("home", nil)
}

// NotFound is the body shown for malformed or unknown paths.
func NotFound() templ.Component {
	return render("not_found", nil)
}
