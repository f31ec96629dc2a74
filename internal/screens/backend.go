package screens

import (
	"context"

	"github.com/pthm/geoadmin/internal/model"
)

// Backend is the slice of the REST client the screens use.
// *api.Client implements it.
type Backend interface {
	ListCountries(ctx context.Context) ([]model.Country, error)
	GetCountry(ctx context.Context, countryID int64) (model.Country, error)
	CreateCountry(ctx context.Context, country model.Country, nationID int64) error
	UpdateCountry(ctx context.Context, countryID int64, country model.Country) error
	DeleteCountry(ctx context.Context, countryID int64) error
	DeleteAllCountries(ctx context.Context) error
	CountryDetail(ctx context.Context, countryID int64) (model.CountryDetail, error)
	SearchCountriesByCity(ctx context.Context, cityName string) ([]model.Country, error)

	ListCities(ctx context.Context) ([]model.City, error)
	GetCity(ctx context.Context, cityID int64) (model.City, error)
	AddCityToCountry(ctx context.Context, countryID int64, city model.City) error
	UpdateCity(ctx context.Context, cityID int64, city model.City) error
	DeleteCity(ctx context.Context, cityID int64) error
	DeleteCityFromCountry(ctx context.Context, countryID, cityID int64) error
	DeleteAllCitiesOfCountry(ctx context.Context, countryID int64) error

	ListNations(ctx context.Context) ([]model.Nation, error)
	GetNation(ctx context.Context, nationID int64) (model.Nation, error)
	NationDetail(ctx context.Context, nationID int64) (model.NationDetail, error)
	AddNationToCountry(ctx context.Context, countryID int64, nation model.Nation) error
	UpdateNation(ctx context.Context, nationID int64, nation model.Nation) error
	DeleteNation(ctx context.Context, nationID int64) error
	DeleteNationFromCountry(ctx context.Context, countryID, nationID int64) error
}
