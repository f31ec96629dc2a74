package screens

import (
	"context"
	"html/template"
	"net/http"

	"github.com/a-h/templ"
	"github.com/rs/zerolog"

	"github.com/pthm/geoadmin/internal/model"
	"github.com/pthm/geoadmin/internal/view"
)

// CountryListProps drives the country list. Target names the row a
// delete action applies to.
type CountryListProps struct {
	Target    int64           `hx:"target,omitempty"`
	Countries []model.Country `hx:"-"`
}

// CountryList shows every country. A failed fetch shows an empty list.
type CountryList struct {
	*view.Component[CountryListProps]
	backend Backend
}

func NewCountryList(b Backend) *CountryList {
	c := &CountryList{
		Component: view.New[CountryListProps]("countrylist"),
		backend:   b,
	}
	c.Action("delete", c.handleDelete).Method(http.MethodDelete)
	c.Action("delete-all", c.handleDeleteAll).Method(http.MethodDelete)
	c.Bind(c)
	return c
}

func (c *CountryList) Hydrate(ctx context.Context, props *CountryListProps) error {
	countries, err := c.backend.ListCountries(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("list countries")
		countries = nil
	}
	props.Countries = countries
	return nil
}

type countryRow struct {
	model.Country
	Delete template.HTMLAttr
}

func (c *CountryList) Render(ctx context.Context, props CountryListProps) templ.Component {
	rows := make([]countryRow, len(props.Countries))
	for i, country := range props.Countries {
		rows[i] = countryRow{
			Country: country,
			Delete: c.Call("delete", CountryListProps{Target: country.ID}).
				Target("#country-list").
				Confirm("Delete " + country.Name + "?").
				HTML(),
		}
	}
	return render("country_list", struct {
		Rows      []countryRow
		Reload    template.HTMLAttr
		DeleteAll template.HTMLAttr
	}{
		Rows:   rows,
		Reload: c.Refresh(CountryListProps{}).Target("#country-list").HTML(),
		DeleteAll: c.Call("delete-all", CountryListProps{}).
			Target("#country-list").
			Confirm("Delete all countries?").
			HTML(),
	})
}

// The list is re-fetched after a delete whether or not it succeeded.
func (c *CountryList) handleDelete(ctx context.Context, props CountryListProps, r *http.Request) view.Result[CountryListProps] {
	return afterMutation(ctx, CountryListProps{}, c.backend.DeleteCountry(ctx, props.Target),
		"Country deleted", "Failed to delete country")
}

func (c *CountryList) handleDeleteAll(ctx context.Context, props CountryListProps, r *http.Request) view.Result[CountryListProps] {
	return afterMutation(ctx, CountryListProps{}, c.backend.DeleteAllCountries(ctx),
		"All countries deleted", "Failed to delete countries")
}

// NationListProps drives the nation list.
type NationListProps struct {
	Target  int64          `hx:"target,omitempty"`
	Nations []model.Nation `hx:"-"`
}

type NationList struct {
	*view.Component[NationListProps]
	backend Backend
}

func NewNationList(b Backend) *NationList {
	c := &NationList{
		Component: view.New[NationListProps]("nationlist"),
		backend:   b,
	}
	c.Action("delete", c.handleDelete).Method(http.MethodDelete)
	c.Bind(c)
	return c
}

func (c *NationList) Hydrate(ctx context.Context, props *NationListProps) error {
	nations, err := c.backend.ListNations(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("list nations")
		nations = nil
	}
	props.Nations = nations
	return nil
}

type nationRow struct {
	model.Nation
	Delete template.HTMLAttr
}

func (c *NationList) Render(ctx context.Context, props NationListProps) templ.Component {
	rows := make([]nationRow, len(props.Nations))
	for i, n := range props.Nations {
		rows[i] = nationRow{
			Nation: n,
			Delete: c.Call("delete", NationListProps{Target: n.ID}).
				Target("#nation-list").
				Confirm("Delete " + n.Name + "?").
				HTML(),
		}
	}
	return render("nation_list", struct {
		Rows   []nationRow
		Reload template.HTMLAttr
	}{rows, c.Refresh(NationListProps{}).Target("#nation-list").HTML()})
}

func (c *NationList) handleDelete(ctx context.Context, props NationListProps, r *http.Request) view.Result[NationListProps] {
	return afterMutation(ctx, NationListProps{}, c.backend.DeleteNation(ctx, props.Target),
		"Nation deleted", "Failed to delete nation")
}

// CityListProps drives the city list.
type CityListProps struct {
	Target int64        `hx:"target,omitempty"`
	Cities []model.City `hx:"-"`
}

type CityList struct {
	*view.Component[CityListProps]
	backend Backend
}

func NewCityList(b Backend) *CityList {
	c := &CityList{
		Component: view.New[CityListProps]("citylist"),
		backend:   b,
	}
	c.Action("delete", c.handleDelete).Method(http.MethodDelete)
	c.Bind(c)
	return c
}

func (c *CityList) Hydrate(ctx context.Context, props *CityListProps) error {
	cities, err := c.backend.ListCities(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("list cities")
		cities = nil
	}
	props.Cities = cities
	return nil
}

type cityRow struct {
	model.City
	Delete template.HTMLAttr
}

func (c *CityList) Render(ctx context.Context, props CityListProps) templ.Component {
	rows := make([]cityRow, len(props.Cities))
	for i, city := range props.Cities {
		rows[i] = cityRow{
			City: city,
			Delete: c.Call("delete", CityListProps{Target: city.ID}).
				Target("#city-list").
				Confirm("Delete " + city.Name + "?").
				HTML(),
		}
	}
	return render("city_list", struct {
		Rows   []cityRow
		Reload template.HTMLAttr
	}{rows, c.Refresh(CityListProps{}).Target("#city-list").HTML()})
}

func (c *CityList) handleDelete(ctx context.Context, props CityListProps, r *http.Request) view.Result[CityListProps] {
	return afterMutation(ctx, CityListProps{}, c.backend.DeleteCity(ctx, props.Target),
		"City deleted", "Failed to delete city")
}

// afterMutation re-renders next (which re-fetches through Hydrate) and
// reports the outcome as a toast.
func afterMutation[P any](ctx context.Context, next P, err error, ok, failed string) view.Result[P] {
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg(failed)
		return view.OK(next).Flash(view.FlashError, failed)
	}
	zerolog.Ctx(ctx).Info().Msg(ok)
	return view.OK(next).Flash(view.FlashSuccess, ok)
}
