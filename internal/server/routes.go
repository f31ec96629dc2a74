package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pthm/geoadmin/internal/routes"
	"github.com/pthm/geoadmin/internal/screens"
)

// Each page serves the layout immediately; the screen component loads
// itself from the backend once the page is in the browser.
func (s *Server) mountPages() {
	e := s.echo
	sc := s.screens
	loading := screens.Loading()

	e.GET(routes.Home, func(c echo.Context) error {
		return page(c, http.StatusOK, "Home", screens.Home())
	})

	e.GET(routes.Countries, func(c echo.Context) error {
		return page(c, http.StatusOK, "Countries", sc.CountryList.Defer(screens.CountryListProps{}, loading))
	})
	e.GET(routes.Nations, func(c echo.Context) error {
		return page(c, http.StatusOK, "Nations", sc.NationList.Defer(screens.NationListProps{}, loading))
	})
	e.GET(routes.Cities, func(c echo.Context) error {
		return page(c, http.StatusOK, "Cities", sc.CityList.Defer(screens.CityListProps{}, loading))
	})
	e.GET(routes.Search, func(c echo.Context) error {
		props := screens.SearchProps{CityName: c.QueryParam("cityName")}
		return page(c, http.StatusOK, "Search", sc.Search.Defer(props, loading))
	})

	e.GET(routes.PatternCountryDetail, func(c echo.Context) error {
		id, ok := routes.ParseID(c.Param("countryId"))
		if !ok {
			return echo.ErrNotFound
		}
		return page(c, http.StatusOK, "Country", sc.CountryDetail.Defer(screens.CountryDetailProps{CountryID: id}, loading))
	})
	e.GET(routes.PatternNationCountries, func(c echo.Context) error {
		id, ok := routes.ParseID(c.Param("nationId"))
		if !ok {
			return echo.ErrNotFound
		}
		return page(c, http.StatusOK, "Nation", sc.NationCountries.Defer(screens.NationCountriesProps{NationID: id}, loading))
	})

	countryForm := func(c echo.Context, props screens.CountryFormProps) error {
		title := "Add Country"
		if props.CountryID != 0 {
			title = "Edit Country"
		}
		return page(c, http.StatusOK, title, sc.CountryForm.Defer(props, loading))
	}
	e.GET(routes.PatternAddCountry, func(c echo.Context) error {
		return countryForm(c, screens.CountryFormProps{})
	})
	e.GET(routes.PatternAddCountryToNation, func(c echo.Context) error {
		nationID, ok := routes.ParseID(c.Param("nationId"))
		if !ok {
			return echo.ErrNotFound
		}
		return countryForm(c, screens.CountryFormProps{NationID: nationID})
	})
	editCountry := func(c echo.Context) error {
		id, ok := routes.ParseID(c.Param("id"))
		nationID, nok := optionalID(c, "nationId")
		if !ok || !nok {
			return echo.ErrNotFound
		}
		return countryForm(c, screens.CountryFormProps{CountryID: id, NationID: nationID})
	}
	e.GET(routes.PatternEditCountry, editCountry)
	e.GET(routes.PatternEditCountryNation, editCountry)

	e.GET(routes.PatternAddCity, func(c echo.Context) error {
		countryID, ok := routes.ParseID(c.Param("id"))
		if !ok {
			return echo.ErrNotFound
		}
		return page(c, http.StatusOK, "Add City", sc.CityForm.Defer(screens.CityFormProps{CountryID: countryID}, loading))
	})
	editCity := func(c echo.Context) error {
		id, ok := routes.ParseID(c.Param("cityId"))
		countryID, cok := optionalID(c, "countryId")
		if !ok || !cok {
			return echo.ErrNotFound
		}
		return page(c, http.StatusOK, "Edit City", sc.CityForm.Defer(screens.CityFormProps{CityID: id, CountryID: countryID}, loading))
	}
	e.GET(routes.PatternEditCity, editCity)
	e.GET(routes.PatternEditCityCountry, editCity)

	e.GET(routes.PatternAddNation, func(c echo.Context) error {
		countryID, ok := routes.ParseID(c.Param("id"))
		if !ok {
			return echo.ErrNotFound
		}
		return page(c, http.StatusOK, "Add Nation", sc.NationForm.Defer(screens.NationFormProps{CountryID: countryID}, loading))
	})
	editNation := func(c echo.Context) error {
		id, ok := routes.ParseID(c.Param("nationId"))
		countryID, cok := optionalID(c, "countryId")
		if !ok || !cok {
			return echo.ErrNotFound
		}
		return page(c, http.StatusOK, "Edit Nation", sc.NationForm.Defer(screens.NationFormProps{NationID: id, CountryID: countryID}, loading))
	}
	e.GET(routes.PatternEditNation, editNation)
	e.GET(routes.PatternEditNationCountry, editNation)
}

// optionalID reads a trailing id segment that may be absent.
func optionalID(c echo.Context, name string) (int64, bool) {
	raw := c.Param(name)
	if raw == "" {
		return 0, true
	}
	return routes.ParseID(raw)
}
