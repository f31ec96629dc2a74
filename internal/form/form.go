// Package form parses and validates the entity forms before anything is
// sent to the backend.
package form

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/asaskevich/govalidator"
)

const (
	MsgRequired       = "All fields are required"
	MsgCityNumbers    = "Population and Area must be valid non-negative numbers"
	MsgCountryNumbers = "Population, Area and GDP must be valid non-negative numbers"
)

// Error is a validation failure. Fields names the offending inputs.
type Error struct {
	Message string
	Fields  []string
}

func (e *Error) Error() string {
	return e.Message
}

// Has reports whether field is among the offending inputs.
func (e *Error) Has(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}

type field struct {
	name  string
	value string
}

// required fails with MsgRequired listing every blank field.
func required(fields ...field) error {
	var missing []string
	for _, f := range fields {
		if govalidator.IsNull(strings.TrimSpace(f.value)) {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &Error{Message: MsgRequired, Fields: missing}
	}
	return nil
}

// nonNegative parses each field as a number >= 0. On any failure it
// returns msg listing every offending field.
func nonNegative(msg string, fields ...field) ([]float64, error) {
	values := make([]float64, len(fields))
	var bad []string
	for i, f := range fields {
		v, ok := parseNonNegative(f.value)
		if !ok {
			bad = append(bad, f.name)
			continue
		}
		values[i] = v
	}
	if len(bad) > 0 {
		return nil, &Error{Message: msg, Fields: bad}
	}
	return values, nil
}

func parseNonNegative(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !govalidator.IsFloat(s) {
		return 0, false
	}
	v, err := govalidator.ToFloat(s)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func value(r *http.Request, key string) string {
	return strings.TrimSpace(r.PostFormValue(key))
}
