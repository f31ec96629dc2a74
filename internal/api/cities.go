package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pthm/geoadmin/internal/model"
)

// cityUpdate is the PUT body for a city. The backend binds population as
// an integer and area as a float.
type cityUpdate struct {
	Name         string  `json:"name"`
	Population   int64   `json:"population"`
	AreaSquareKm float64 `json:"areaSquareKm"`
}

func (c *Client) ListCities(ctx context.Context) ([]model.City, error) {
	return getList[model.City](ctx, c, nil, "api", "cities")
}

func (c *Client) GetCity(ctx context.Context, cityID int64) (model.City, error) {
	return getOne[model.City](ctx, c, "api", "cities", id(cityID))
}

// CitiesOfCountry lists a country's cities. 204 yields an empty slice.
func (c *Client) CitiesOfCountry(ctx context.Context, countryID int64) ([]model.City, error) {
	return getList[model.City](ctx, c, nil, "api", "countries", id(countryID), "cities")
}

// AddCityToCountry creates a city under a country. The endpoint accepts a
// batch, so the city is sent as a one-element array.
func (c *Client) AddCityToCountry(ctx context.Context, countryID int64, city model.City) error {
	city.ID = 0
	return c.send(ctx, http.MethodPost, []model.City{city}, "api", "countries", id(countryID), "cities")
}

func (c *Client) UpdateCity(ctx context.Context, cityID int64, city model.City) error {
	body := cityUpdate{
		Name:         city.Name,
		Population:   int64(city.Population),
		AreaSquareKm: city.AreaSquareKm,
	}
	fields := url.Values{
		"name":         {body.Name},
		"population":   {strconv.FormatInt(body.Population, 10)},
		"areaSquareKm": {formatFloat(body.AreaSquareKm)},
	}
	return c.put(ctx, fields, body, "api", "cities", id(cityID))
}

func (c *Client) DeleteCity(ctx context.Context, cityID int64) error {
	return c.send(ctx, http.MethodDelete, nil, "api", "cities", id(cityID))
}

func (c *Client) DeleteCityFromCountry(ctx context.Context, countryID, cityID int64) error {
	return c.send(ctx, http.MethodDelete, nil, "api", "countries", id(countryID), "cities", id(cityID))
}

func (c *Client) DeleteAllCitiesOfCountry(ctx context.Context, countryID int64) error {
	return c.send(ctx, http.MethodDelete, nil, "api", "countries", id(countryID), "cities")
}
