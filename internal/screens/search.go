package screens

import (
	"context"
	"html/template"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/rs/zerolog"

	"github.com/pthm/geoadmin/internal/model"
	"github.com/pthm/geoadmin/internal/routes"
	"github.com/pthm/geoadmin/internal/view"
)

const searchFailed = "Search failed"

// SearchProps drives the country-by-city search. An empty CityName means
// no search has been run yet.
type SearchProps struct {
	CityName string          `hx:"q,omitempty"`
	Results  []model.Country `hx:"-"`
	Warning  string          `hx:"-"`
	searched bool
}

// Search finds the countries that contain a city with a given name.
type Search struct {
	*view.Component[SearchProps]
	backend Backend
}

func NewSearch(b Backend) *Search {
	c := &Search{
		Component: view.New[SearchProps]("search"),
		backend:   b,
	}
	c.Action("search", c.handleSearch)
	c.Bind(c)
	return c
}

// Hydrate runs the search for a page loaded with a city name already set.
func (c *Search) Hydrate(ctx context.Context, props *SearchProps) error {
	if props.searched || props.CityName == "" {
		return nil
	}
	props.Results, props.Warning = c.run(ctx, props.CityName)
	return nil
}

func (c *Search) run(ctx context.Context, cityName string) ([]model.Country, string) {
	countries, err := c.backend.SearchCountriesByCity(ctx, cityName)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("city", cityName).Msg("search countries")
		return nil, searchFailed + ": " + err.Error()
	}
	return countries, ""
}

func (c *Search) Render(ctx context.Context, props SearchProps) templ.Component {
	return render("search", struct {
		SearchProps
		Submit template.HTMLAttr
	}{
		SearchProps: props,
		Submit: c.Call("search", SearchProps{}).
			Target("#search").
			Indicator("#search .htmx-indicator").
			HTML(),
	})
}

func (c *Search) handleSearch(ctx context.Context, props SearchProps, r *http.Request) view.Result[SearchProps] {
	next := SearchProps{CityName: strings.TrimSpace(r.PostFormValue("cityName")), searched: true}
	if next.CityName == "" {
		return view.OK(next).PushURL(routes.Search)
	}

	next.Results, next.Warning = c.run(ctx, next.CityName)
	res := view.OK(next).PushURL(routes.SearchFor(next.CityName))
	if next.Warning != "" {
		res = res.Flash(view.FlashWarning, searchFailed)
	}
	return res
}
