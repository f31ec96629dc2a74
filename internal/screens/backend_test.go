package screens

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/pthm/geoadmin/internal/api"
	"github.com/pthm/geoadmin/internal/model"
	"github.com/pthm/geoadmin/internal/view"
)

var _ Backend = (*api.Client)(nil)

var errBackend = errors.New("backend unavailable")

// fakeBackend serves canned data and records every call as a short
// "method args" string. Any method named in fail returns errBackend.
type fakeBackend struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]bool

	countries []model.Country
	cities    []model.City
	nations   []model.Nation
	detail    model.CountryDetail
	nation    model.NationDetail
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{fail: make(map[string]bool)}
}

func (f *fakeBackend) record(method string, args ...any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	call := method
	for _, a := range args {
		call += fmt.Sprintf(" %v", a)
	}
	f.calls = append(f.calls, call)
	if f.fail[method] {
		return errBackend
	}
	return nil
}

func (f *fakeBackend) called(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == method || strings.HasPrefix(c, method+" ") {
			n++
		}
	}
	return n
}

func (f *fakeBackend) ListCountries(ctx context.Context) ([]model.Country, error) {
	if err := f.record("ListCountries"); err != nil {
		return nil, err
	}
	return f.countries, nil
}

func (f *fakeBackend) GetCountry(ctx context.Context, countryID int64) (model.Country, error) {
	if err := f.record("GetCountry", countryID); err != nil {
		return model.Country{}, err
	}
	for _, c := range f.countries {
		if c.ID == countryID {
			return c, nil
		}
	}
	return model.Country{}, api.ErrNotFound
}

func (f *fakeBackend) CreateCountry(ctx context.Context, country model.Country, nationID int64) error {
	return f.record("CreateCountry", country.Name, nationID)
}

func (f *fakeBackend) UpdateCountry(ctx context.Context, countryID int64, country model.Country) error {
	return f.record("UpdateCountry", countryID, country.Name)
}

func (f *fakeBackend) DeleteCountry(ctx context.Context, countryID int64) error {
	return f.record("DeleteCountry", countryID)
}

func (f *fakeBackend) DeleteAllCountries(ctx context.Context) error {
	return f.record("DeleteAllCountries")
}

func (f *fakeBackend) CountryDetail(ctx context.Context, countryID int64) (model.CountryDetail, error) {
	if err := f.record("CountryDetail", countryID); err != nil {
		return model.CountryDetail{}, err
	}
	return f.detail, nil
}

func (f *fakeBackend) SearchCountriesByCity(ctx context.Context, cityName string) ([]model.Country, error) {
	if err := f.record("SearchCountriesByCity", cityName); err != nil {
		return nil, err
	}
	return f.countries, nil
}

func (f *fakeBackend) ListCities(ctx context.Context) ([]model.City, error) {
	if err := f.record("ListCities"); err != nil {
		return nil, err
	}
	return f.cities, nil
}

func (f *fakeBackend) GetCity(ctx context.Context, cityID int64) (model.City, error) {
	if err := f.record("GetCity", cityID); err != nil {
		return model.City{}, err
	}
	for _, c := range f.cities {
		if c.ID == cityID {
			return c, nil
		}
	}
	return model.City{}, api.ErrNotFound
}

func (f *fakeBackend) AddCityToCountry(ctx context.Context, countryID int64, city model.City) error {
	return f.record("AddCityToCountry", countryID, city.Name)
}

func (f *fakeBackend) UpdateCity(ctx context.Context, cityID int64, city model.City) error {
	return f.record("UpdateCity", cityID, city.Name)
}

func (f *fakeBackend) DeleteCity(ctx context.Context, cityID int64) error {
	return f.record("DeleteCity", cityID)
}

func (f *fakeBackend) DeleteCityFromCountry(ctx context.Context, countryID, cityID int64) error {
	return f.record("DeleteCityFromCountry", countryID, cityID)
}

func (f *fakeBackend) DeleteAllCitiesOfCountry(ctx context.Context, countryID int64) error {
	return f.record("DeleteAllCitiesOfCountry", countryID)
}

func (f *fakeBackend) ListNations(ctx context.Context) ([]model.Nation, error) {
	if err := f.record("ListNations"); err != nil {
		return nil, err
	}
	return f.nations, nil
}

func (f *fakeBackend) GetNation(ctx context.Context, nationID int64) (model.Nation, error) {
	if err := f.record("GetNation", nationID); err != nil {
		return model.Nation{}, err
	}
	for _, n := range f.nations {
		if n.ID == nationID {
			return n, nil
		}
	}
	return model.Nation{}, api.ErrNotFound
}

func (f *fakeBackend) NationDetail(ctx context.Context, nationID int64) (model.NationDetail, error) {
	if err := f.record("NationDetail", nationID); err != nil {
		return model.NationDetail{}, err
	}
	return f.nation, nil
}

func (f *fakeBackend) AddNationToCountry(ctx context.Context, countryID int64, nation model.Nation) error {
	return f.record("AddNationToCountry", countryID, nation.Name)
}

func (f *fakeBackend) UpdateNation(ctx context.Context, nationID int64, nation model.Nation) error {
	return f.record("UpdateNation", nationID, nation.Name)
}

func (f *fakeBackend) DeleteNation(ctx context.Context, nationID int64) error {
	return f.record("DeleteNation", nationID)
}

func (f *fakeBackend) DeleteNationFromCountry(ctx context.Context, countryID, nationID int64) error {
	return f.record("DeleteNationFromCountry", countryID, nationID)
}

// setup registers every screen against a fresh fake backend.
func setup(t *testing.T) (*fakeBackend, *Screens) {
	t.Helper()
	fb := newFakeBackend()
	reg := view.NewRegistry([]byte("screens-test-key"))
	return fb, Init(fb, reg)
}
