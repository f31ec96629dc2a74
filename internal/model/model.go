// Package model holds the records exchanged with the geography backend.
//
// The backend stores population, area and GDP as doubles, so they are
// float64 here too. Identifiers are 64-bit integers assigned by the backend.
package model

// Country is a sovereign country record.
type Country struct {
	ID           int64   `json:"id,omitempty"`
	Name         string  `json:"name"`
	Capital      string  `json:"capital"`
	Population   float64 `json:"population"`
	AreaSquareKm float64 `json:"areaSquareKm"`
	GDP          float64 `json:"gdp"`
}

// Nation is a people or culture, associated with any number of countries.
type Nation struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name"`
	Language string `json:"language"`
	Religion string `json:"religion"`
}

// City belongs to exactly one country.
type City struct {
	ID           int64   `json:"id,omitempty"`
	Name         string  `json:"name"`
	Population   float64 `json:"population"`
	AreaSquareKm float64 `json:"areaSquareKm"`
}

// NationRef is how a new country names the nation it is created under.
type NationRef struct {
	ID int64 `json:"id"`
}

// NewCountry is the create payload for a country.
type NewCountry struct {
	Country
	Nation *NationRef `json:"nation,omitempty"`
}

// CountryDetail is a country together with its related collections.
// Cities and Nations are never nil once loaded.
type CountryDetail struct {
	Country Country
	Cities  []City
	Nations []Nation
}

// NationDetail is a nation together with the countries it spans.
type NationDetail struct {
	Nation    Nation
	Countries []Country
}
