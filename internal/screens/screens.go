// Package screens holds the admin UI: one component per screen, each
// fetching from the backend in Hydrate and rendering an embedded
// html/template.
package screens

import "github.com/pthm/geoadmin/internal/view"

// Screens is the set of registered screen components.
type Screens struct {
	CountryList     *CountryList
	NationList      *NationList
	CityList        *CityList
	CountryDetail   *CountryDetail
	NationCountries *NationCountries
	CountryForm     *CountryForm
	CityForm        *CityForm
	NationForm      *NationForm
	Search          *Search
}

// Init builds every screen against b and registers it with reg.
func Init(b Backend, reg *view.Registry) *Screens {
	s := &Screens{
		CountryList:     NewCountryList(b),
		NationList:      NewNationList(b),
		CityList:        NewCityList(b),
		CountryDetail:   NewCountryDetail(b),
		NationCountries: NewNationCountries(b),
		CountryForm:     NewCountryForm(b),
		CityForm:        NewCityForm(b),
		NationForm:      NewNationForm(b),
		Search:          NewSearch(b),
	}
	reg.Add(
		s.CountryList,
		s.NationList,
		s.CityList,
		s.CountryDetail,
		s.NationCountries,
		s.CountryForm,
		s.CityForm,
		s.NationForm,
		s.Search,
	)
	return s
}
