// Package routes names every browser-visible path of the admin UI.
//
// Builders produce concrete paths for links and navigation results;
// the Pattern constants are the echo route patterns that serve them.
package routes

import (
	"net/url"
	"strconv"
)

const (
	Home      = "/"
	Countries = "/country"
	Nations   = "/nation"
	Cities    = "/city"
	Search    = "/search"

	AddCountryPath = "/add-country"
)

// Route patterns.
const (
	PatternCountryDetail      = "/get-country/:countryId"
	PatternAddCountry         = AddCountryPath
	PatternAddCountryToNation = "/add-country-to-nation/:nationId"
	PatternEditCountry        = "/edit-country/:id"
	PatternEditCountryNation  = "/edit-country/:id/:nationId"
	PatternAddCity            = "/add-city/:id"
	PatternEditCity           = "/edit-city/:cityId"
	PatternEditCityCountry    = "/edit-city/:cityId/:countryId"
	PatternAddNation          = "/add-nation/:id"
	PatternEditNation         = "/edit-nation/:nationId"
	PatternEditNationCountry  = "/edit-nation/:nationId/:countryId"
	PatternNationCountries    = "/get-countries-from-nation/:nationId"
)

func id(n int64) string {
	return strconv.FormatInt(n, 10)
}

func CountryDetail(countryID int64) string {
	return "/get-country/" + id(countryID)
}

func AddCountry() string {
	return AddCountryPath
}

func AddCountryToNation(nationID int64) string {
	return "/add-country-to-nation/" + id(nationID)
}

// EditCountry links to the country form. A non-zero nationID records that
// the edit started from that nation's country list.
func EditCountry(countryID, nationID int64) string {
	if nationID != 0 {
		return "/edit-country/" + id(countryID) + "/" + id(nationID)
	}
	return "/edit-country/" + id(countryID)
}

func AddCity(countryID int64) string {
	return "/add-city/" + id(countryID)
}

// EditCity links to the city form. A non-zero countryID records that the
// edit started from that country's detail page.
func EditCity(cityID, countryID int64) string {
	if countryID != 0 {
		return "/edit-city/" + id(cityID) + "/" + id(countryID)
	}
	return "/edit-city/" + id(cityID)
}

func AddNation(countryID int64) string {
	return "/add-nation/" + id(countryID)
}

// EditNation links to the nation form, optionally scoped to a country.
func EditNation(nationID, countryID int64) string {
	if countryID != 0 {
		return "/edit-nation/" + id(nationID) + "/" + id(countryID)
	}
	return "/edit-nation/" + id(nationID)
}

func NationCountries(nationID int64) string {
	return "/get-countries-from-nation/" + id(nationID)
}

// CountryHome is where a country form returns to: the nation's country
// list when the form was reached from one, the country list otherwise.
func CountryHome(nationID int64) string {
	if nationID != 0 {
		return NationCountries(nationID)
	}
	return Countries
}

// CityHome is where a city form returns to.
func CityHome(countryID int64) string {
	if countryID != 0 {
		return CountryDetail(countryID)
	}
	return Cities
}

// NationHome is where a nation form returns to.
func NationHome(countryID int64) string {
	if countryID != 0 {
		return CountryDetail(countryID)
	}
	return Nations
}

// SearchFor links to the search page with cityName filled in.
func SearchFor(cityName string) string {
	if cityName == "" {
		return Search
	}
	return Search + "?" + url.Values{"cityName": {cityName}}.Encode()
}

// ParseID parses a positive identifier from a path segment.
func ParseID(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
