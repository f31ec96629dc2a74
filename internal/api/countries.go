package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pthm/geoadmin/internal/model"
)

func id(n int64) string {
	return strconv.FormatInt(n, 10)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (c *Client) ListCountries(ctx context.Context) ([]model.Country, error) {
	return getList[model.Country](ctx, c, nil, "api", "country")
}

func (c *Client) GetCountry(ctx context.Context, countryID int64) (model.Country, error) {
	return getOne[model.Country](ctx, c, "api", "country", id(countryID))
}

// CreateCountry creates a country. A non-zero nationID associates the new
// country with that nation.
func (c *Client) CreateCountry(ctx context.Context, country model.Country, nationID int64) error {
	payload := model.NewCountry{Country: country}
	payload.ID = 0
	if nationID != 0 {
		payload.Nation = &model.NationRef{ID: nationID}
	}
	return c.send(ctx, http.MethodPost, payload, "api", "country")
}

func (c *Client) UpdateCountry(ctx context.Context, countryID int64, country model.Country) error {
	country.ID = 0
	fields := url.Values{
		"name":         {country.Name},
		"capital":      {country.Capital},
		"population":   {formatFloat(country.Population)},
		"areaSquareKm": {formatFloat(country.AreaSquareKm)},
		"gdp":          {formatFloat(country.GDP)},
	}
	return c.put(ctx, fields, country, "api", "country", id(countryID))
}

func (c *Client) DeleteCountry(ctx context.Context, countryID int64) error {
	return c.send(ctx, http.MethodDelete, nil, "api", "country", id(countryID))
}

func (c *Client) DeleteAllCountries(ctx context.Context) error {
	return c.send(ctx, http.MethodDelete, nil, "api", "country")
}

// CountriesOfNation lists the countries associated with a nation.
func (c *Client) CountriesOfNation(ctx context.Context, nationID int64) ([]model.Country, error) {
	return getList[model.Country](ctx, c, nil, "api", "nations", id(nationID), "countries")
}

// SearchCountriesByCity finds the countries that have a city with the
// given name. The search endpoint lives outside /api.
func (c *Client) SearchCountriesByCity(ctx context.Context, cityName string) ([]model.Country, error) {
	return getList[model.Country](ctx, c, url.Values{"cityName": {cityName}}, "search")
}
