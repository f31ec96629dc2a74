package form

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/geoadmin/internal/model"
)

func validationError(t *testing.T, err error) *Error {
	t.Helper()
	var fe *Error
	require.True(t, errors.As(err, &fe), "err = %v", err)
	return fe
}

func TestCityValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      CityInput
		wantMsg string
		field   string
	}{
		{"missing name", CityInput{Population: "1", AreaSquareKm: "1"}, MsgRequired, "name"},
		{"blank population", CityInput{Name: "Lyon", Population: "  ", AreaSquareKm: "1"}, MsgRequired, "population"},
		{"negative population", CityInput{Name: "Lyon", Population: "-5", AreaSquareKm: "47.87"}, MsgCityNumbers, "population"},
		{"not a number", CityInput{Name: "Lyon", Population: "many", AreaSquareKm: "47.87"}, MsgCityNumbers, "population"},
		{"bare dot", CityInput{Name: "Lyon", Population: "1", AreaSquareKm: "."}, MsgCityNumbers, "areaSquareKm"},
		{"fractional population", CityInput{Name: "Lyon", Population: "522000.5", AreaSquareKm: "47.87"}, MsgCityNumbers, "population"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.in.Validate()
			fe := validationError(t, err)
			assert.Equal(t, tt.wantMsg, fe.Message)
			assert.True(t, fe.Has(tt.field), "fields = %v", fe.Fields)
		})
	}
}

func TestCityValidateOK(t *testing.T) {
	c, err := CityInput{Name: "Lyon", Population: "522000", AreaSquareKm: "47.87"}.Validate()
	require.NoError(t, err)
	assert.Equal(t, model.City{Name: "Lyon", Population: 522000, AreaSquareKm: 47.87}, c)

	c, err = CityInput{Name: "Nowhere", Population: "0", AreaSquareKm: "0"}.Validate()
	require.NoError(t, err)
	assert.Zero(t, c.Population)
}

func TestCountryValidate(t *testing.T) {
	in := CountryInput{Name: "France", Capital: "Paris", Population: "68000000", AreaSquareKm: "551695", GDP: "-1"}
	_, err := in.Validate()
	fe := validationError(t, err)
	assert.Equal(t, MsgCountryNumbers, fe.Message)
	assert.Equal(t, []string{"gdp"}, fe.Fields)

	in.GDP = "2.9e12"
	c, err := in.Validate()
	require.NoError(t, err)
	assert.Equal(t, 2.9e12, c.GDP)
	assert.Equal(t, "Paris", c.Capital)

	in.Capital = ""
	_, err = in.Validate()
	assert.Equal(t, MsgRequired, validationError(t, err).Message)
}

func TestNationValidate(t *testing.T) {
	_, err := NationInput{Name: "Basques", Language: "Euskara"}.Validate()
	fe := validationError(t, err)
	assert.Equal(t, MsgRequired, fe.Message)
	assert.Equal(t, []string{"religion"}, fe.Fields)

	n, err := NationInput{Name: "Basques", Language: "Euskara", Religion: "Catholic"}.Validate()
	require.NoError(t, err)
	assert.Equal(t, model.Nation{Name: "Basques", Language: "Euskara", Religion: "Catholic"}, n)
}

func TestParseAndPrefill(t *testing.T) {
	body := url.Values{
		"name":         {" Lyon "},
		"population":   {"522000"},
		"areaSquareKm": {"47.87"},
	}
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	assert.Equal(t, CityInput{Name: "Lyon", Population: "522000", AreaSquareKm: "47.87"}, ParseCity(r))

	assert.Equal(t,
		CountryInput{Name: "France", Capital: "Paris", Population: "68000000", AreaSquareKm: "551695.5", GDP: "2900000000000"},
		CountryInputFrom(model.Country{Name: "France", Capital: "Paris", Population: 6.8e7, AreaSquareKm: 551695.5, GDP: 2.9e12}),
	)
}
