package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilders(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{CountryDetail(7), "/get-country/7"},
		{AddCountry(), "/add-country"},
		{AddCountryToNation(3), "/add-country-to-nation/3"},
		{EditCountry(7, 0), "/edit-country/7"},
		{EditCountry(7, 3), "/edit-country/7/3"},
		{AddCity(7), "/add-city/7"},
		{EditCity(11, 0), "/edit-city/11"},
		{EditCity(11, 7), "/edit-city/11/7"},
		{AddNation(7), "/add-nation/7"},
		{EditNation(3, 0), "/edit-nation/3"},
		{EditNation(3, 7), "/edit-nation/3/7"},
		{NationCountries(3), "/get-countries-from-nation/3"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.got)
	}
}

func TestReturnDestinations(t *testing.T) {
	assert.Equal(t, "/country", CountryHome(0))
	assert.Equal(t, "/get-countries-from-nation/3", CountryHome(3))
	assert.Equal(t, "/city", CityHome(0))
	assert.Equal(t, "/get-country/7", CityHome(7))
	assert.Equal(t, "/nation", NationHome(0))
	assert.Equal(t, "/get-country/7", NationHome(7))
}

func TestParseID(t *testing.T) {
	n, ok := ParseID("42")
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)

	for _, bad := range []string{"", "0", "-1", "abc", "1.5", "99999999999999999999"} {
		_, ok := ParseID(bad)
		assert.False(t, ok, "ParseID(%q)", bad)
	}
}

func TestSearchFor(t *testing.T) {
	assert.Equal(t, "/search", SearchFor(""))
	assert.Equal(t, "/search?cityName=Porto+Alegre", SearchFor("Porto Alegre"))
}
