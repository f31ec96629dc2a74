package form

import (
	"math"
	"net/http"

	"github.com/pthm/geoadmin/internal/model"
)

// CountryInput is the raw, editable state of the country form.
type CountryInput struct {
	Name         string `hx:"name"`
	Capital      string `hx:"capital"`
	Population   string `hx:"population"`
	AreaSquareKm string `hx:"area"`
	GDP          string `hx:"gdp"`
}

func ParseCountry(r *http.Request) CountryInput {
	return CountryInput{
		Name:         value(r, "name"),
		Capital:      value(r, "capital"),
		Population:   value(r, "population"),
		AreaSquareKm: value(r, "areaSquareKm"),
		GDP:          value(r, "gdp"),
	}
}

func CountryInputFrom(c model.Country) CountryInput {
	return CountryInput{
		Name:         c.Name,
		Capital:      c.Capital,
		Population:   formatNumber(c.Population),
		AreaSquareKm: formatNumber(c.AreaSquareKm),
		GDP:          formatNumber(c.GDP),
	}
}

func (in CountryInput) Validate() (model.Country, error) {
	if err := required(
		field{"name", in.Name},
		field{"capital", in.Capital},
		field{"population", in.Population},
		field{"areaSquareKm", in.AreaSquareKm},
		field{"gdp", in.GDP},
	); err != nil {
		return model.Country{}, err
	}
	n, err := nonNegative(MsgCountryNumbers,
		field{"population", in.Population},
		field{"areaSquareKm", in.AreaSquareKm},
		field{"gdp", in.GDP},
	)
	if err != nil {
		return model.Country{}, err
	}
	return model.Country{
		Name:         in.Name,
		Capital:      in.Capital,
		Population:   n[0],
		AreaSquareKm: n[1],
		GDP:          n[2],
	}, nil
}

// CityInput is the raw, editable state of the city form.
type CityInput struct {
	Name         string `hx:"name"`
	Population   string `hx:"population"`
	AreaSquareKm string `hx:"area"`
}

func ParseCity(r *http.Request) CityInput {
	return CityInput{
		Name:         value(r, "name"),
		Population:   value(r, "population"),
		AreaSquareKm: value(r, "areaSquareKm"),
	}
}

func CityInputFrom(c model.City) CityInput {
	return CityInput{
		Name:         c.Name,
		Population:   formatNumber(c.Population),
		AreaSquareKm: formatNumber(c.AreaSquareKm),
	}
}

func (in CityInput) Validate() (model.City, error) {
	if err := required(
		field{"name", in.Name},
		field{"population", in.Population},
		field{"areaSquareKm", in.AreaSquareKm},
	); err != nil {
		return model.City{}, err
	}
	n, err := nonNegative(MsgCityNumbers,
		field{"population", in.Population},
		field{"areaSquareKm", in.AreaSquareKm},
	)
	if err != nil {
		return model.City{}, err
	}
	// the backend stores a city's population as an integer
	if n[0] != math.Trunc(n[0]) {
		return model.City{}, &Error{Message: MsgCityNumbers, Fields: []string{"population"}}
	}
	return model.City{
		Name:         in.Name,
		Population:   n[0],
		AreaSquareKm: n[1],
	}, nil
}

// NationInput is the raw, editable state of the nation form.
type NationInput struct {
	Name     string `hx:"name"`
	Language string `hx:"language"`
	Religion string `hx:"religion"`
}

func ParseNation(r *http.Request) NationInput {
	return NationInput{
		Name:     value(r, "name"),
		Language: value(r, "language"),
		Religion: value(r, "religion"),
	}
}

func NationInputFrom(n model.Nation) NationInput {
	return NationInput{Name: n.Name, Language: n.Language, Religion: n.Religion}
}

func (in NationInput) Validate() (model.Nation, error) {
	if err := required(
		field{"name", in.Name},
		field{"language", in.Language},
		field{"religion", in.Religion},
	); err != nil {
		return model.Nation{}, err
	}
	return model.Nation{Name: in.Name, Language: in.Language, Religion: in.Religion}, nil
}
