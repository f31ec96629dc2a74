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

// CountryDetailProps drives the country detail page.
type CountryDetailProps struct {
	CountryID int64               `hx:"country"`
	Target    int64               `hx:"target,omitempty"`
	Detail    model.CountryDetail `hx:"-"`
	LoadErr   string              `hx:"-"`
}

// CountryDetail shows a country with its cities and nations. If the
// country itself cannot be loaded the page shows an error and nothing else.
type CountryDetail struct {
	*view.Component[CountryDetailProps]
	backend Backend
}

func NewCountryDetail(b Backend) *CountryDetail {
	c := &CountryDetail{
		Component: view.New[CountryDetailProps]("countrydetail"),
		backend:   b,
	}
	c.Action("delete-city", c.handleDeleteCity).Method(http.MethodDelete)
	c.Action("delete-all-cities", c.handleDeleteAllCities).Method(http.MethodDelete)
	c.Action("delete-nation", c.handleDeleteNation).Method(http.MethodDelete)
	c.Bind(c)
	return c
}

func (c *CountryDetail) Hydrate(ctx context.Context, props *CountryDetailProps) error {
	detail, err := c.backend.CountryDetail(ctx, props.CountryID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("country", props.CountryID).Msg("load country detail")
		props.LoadErr = "Failed to load country details: " + err.Error()
		return nil
	}
	props.Detail = detail
	return nil
}

type detailCityRow struct {
	model.City
	Delete template.HTMLAttr
}

type detailNationRow struct {
	model.Nation
	Delete template.HTMLAttr
}

func (c *CountryDetail) Render(ctx context.Context, props CountryDetailProps) templ.Component {
	if props.LoadErr != "" {
		return render("country_detail_error", props.LoadErr)
	}

	id := props.CountryID
	cities := make([]detailCityRow, len(props.Detail.Cities))
	for i, city := range props.Detail.Cities {
		cities[i] = detailCityRow{
			City: city,
			Delete: c.Call("delete-city", CountryDetailProps{CountryID: id, Target: city.ID}).
				Target("#country-detail").
				Confirm("Remove " + city.Name + "?").
				HTML(),
		}
	}
	nations := make([]detailNationRow, len(props.Detail.Nations))
	for i, n := range props.Detail.Nations {
		nations[i] = detailNationRow{
			Nation: n,
			Delete: c.Call("delete-nation", CountryDetailProps{CountryID: id, Target: n.ID}).
				Target("#country-detail").
				Confirm("Remove " + n.Name + " from this country?").
				HTML(),
		}
	}

	return render("country_detail", struct {
		Country         model.Country
		Cities          []detailCityRow
		Nations         []detailNationRow
		DeleteAllCities template.HTMLAttr
	}{
		Country: props.Detail.Country,
		Cities:  cities,
		Nations: nations,
		DeleteAllCities: c.Call("delete-all-cities", CountryDetailProps{CountryID: id}).
			Target("#country-detail").
			Confirm("Delete all cities of " + props.Detail.Country.Name + "?").
			HTML(),
	})
}

// Every mutation re-fetches the whole aggregate rather than patching it.
func (c *CountryDetail) handleDeleteCity(ctx context.Context, props CountryDetailProps, r *http.Request) view.Result[CountryDetailProps] {
	err := c.backend.DeleteCityFromCountry(ctx, props.CountryID, props.Target)
	return afterMutation(ctx, CountryDetailProps{CountryID: props.CountryID}, err,
		"City deleted", "Failed to delete city")
}

func (c *CountryDetail) handleDeleteAllCities(ctx context.Context, props CountryDetailProps, r *http.Request) view.Result[CountryDetailProps] {
	err := c.backend.DeleteAllCitiesOfCountry(ctx, props.CountryID)
	return afterMutation(ctx, CountryDetailProps{CountryID: props.CountryID}, err,
		"All cities deleted", "Failed to delete cities")
}

func (c *CountryDetail) handleDeleteNation(ctx context.Context, props CountryDetailProps, r *http.Request) view.Result[CountryDetailProps] {
	err := c.backend.DeleteNationFromCountry(ctx, props.CountryID, props.Target)
	return afterMutation(ctx, CountryDetailProps{CountryID: props.CountryID}, err,
		"Nation removed", "Failed to delete nation")
}

// NationCountriesProps drives the nation-scoped country list.
type NationCountriesProps struct {
	NationID int64              `hx:"nation"`
	Detail   model.NationDetail `hx:"-"`
	LoadErr  string             `hx:"-"`
}

// NationCountries lists the countries of one nation. Edits started here
// carry the nation id so they return here.
type NationCountries struct {
	*view.Component[NationCountriesProps]
	backend Backend
}

func NewNationCountries(b Backend) *NationCountries {
	c := &NationCountries{
		Component: view.New[NationCountriesProps]("nationcountries"),
		backend:   b,
	}
	c.Bind(c)
	return c
}

func (c *NationCountries) Hydrate(ctx context.Context, props *NationCountriesProps) error {
	detail, err := c.backend.NationDetail(ctx, props.NationID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("nation", props.NationID).Msg("load nation countries")
		props.LoadErr = "Failed to load nation details: " + err.Error()
		return nil
	}
	props.Detail = detail
	return nil
}

func (c *NationCountries) Render(ctx context.Context, props NationCountriesProps) templ.Component {
	if props.LoadErr != "" {
		return render("nation_countries_error", props.LoadErr)
	}
	return render("nation_countries", props.Detail)
}
