package api

import (
	"context"
	"fmt"
	"sync"

	"github.com/pthm/geoadmin/internal/model"
)

// CountryDetail loads a country and its cities and nations concurrently.
//
// All three requests run to completion. A failed country request fails
// the whole call. A failed cities or nations request is logged and that
// collection comes back empty.
func (c *Client) CountryDetail(ctx context.Context, countryID int64) (model.CountryDetail, error) {
	var (
		wg         sync.WaitGroup
		country    model.Country
		countryErr error
		cities     []model.City
		citiesErr  error
		nations    []model.Nation
		nationsErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		country, countryErr = c.GetCountry(ctx, countryID)
	}()
	go func() {
		defer wg.Done()
		cities, citiesErr = c.CitiesOfCountry(ctx, countryID)
	}()
	go func() {
		defer wg.Done()
		nations, nationsErr = c.NationsOfCountry(ctx, countryID)
	}()
	wg.Wait()

	if countryErr != nil {
		return model.CountryDetail{}, fmt.Errorf("country %d: %w", countryID, countryErr)
	}

	return model.CountryDetail{
		Country: country,
		Cities:  degrade(ctx, c, "cities", countryID, cities, citiesErr),
		Nations: degrade(ctx, c, "nations", countryID, nations, nationsErr),
	}, nil
}

// NationDetail loads a nation and its countries concurrently, with the
// same policy as CountryDetail: the nation is required, the countries
// degrade to empty.
func (c *Client) NationDetail(ctx context.Context, nationID int64) (model.NationDetail, error) {
	var (
		wg           sync.WaitGroup
		nation       model.Nation
		nationErr    error
		countries    []model.Country
		countriesErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		nation, nationErr = c.GetNation(ctx, nationID)
	}()
	go func() {
		defer wg.Done()
		countries, countriesErr = c.CountriesOfNation(ctx, nationID)
	}()
	wg.Wait()

	if nationErr != nil {
		return model.NationDetail{}, nationErr
	}

	return model.NationDetail{
		Nation:    nation,
		Countries: degrade(ctx, c, "countries", nationID, countries, countriesErr),
	}, nil
}

// degrade turns a failed related-collection fetch into an empty one.
func degrade[T any](ctx context.Context, c *Client, what string, parent int64, items []T, err error) []T {
	if err != nil {
		c.log(ctx).Warn().Err(err).Int64("parent", parent).Str("collection", what).Msg("related collection unavailable")
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}
