// Package clinical implements the plasma-exchange sizing and clearance
// index calculators.
package clinical

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Status classifies a calculator result
type Status string

const (
	StatusOK         Status = "ok"
	StatusIncomplete Status = "incomplete" // inputs missing or invalid, nothing computed
	StatusUndefined  Status = "undefined"  // inputs valid but the formula has no value
)

// Value is a numeric form field. It accepts a JSON number or a numeric
// string; null, blanks and anything unparsable leave it unset.
type Value struct {
	v   float64
	set bool
}

// Num returns a set value
func Num(v float64) Value {
	return Value{v: v, set: true}
}

// Get returns the value and whether it is set
func (v Value) Get() (float64, bool) {
	return v.v, v.set
}

// Positive returns the value when it is set and strictly positive
func (v Value) Positive() (float64, bool) {
	if !v.set || v.v <= 0 {
		return 0, false
	}
	return v.v, true
}

// UnmarshalJSON never fails: a bad field is an unset field
func (v *Value) UnmarshalJSON(b []byte) error {
	*v = Value{}

	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	raw := string(b)
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	*v = Num(f)
	return nil
}

// MarshalJSON writes null for an unset value
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.set {
		return []byte("null"), nil
	}
	return json.Marshal(v.v)
}
