package market

import (
	"math"

	"github.com/tidwall/gjson"
)

const (
	DefaultLimit = 5
	MinLimit     = 1
	MaxLimit     = 20
)

// NormalizeLimit coerces a requested row count into [MinLimit, MaxLimit].
// A nil or NaN request yields DefaultLimit. Out-of-range values are clamped,
// never rejected.
func NormalizeLimit(v *float64) int {
	if v == nil || math.IsNaN(*v) {
		return DefaultLimit
	}
	f := math.Floor(*v)
	if f < MinLimit {
		return MinLimit
	}
	if f > MaxLimit {
		return MaxLimit
	}
	return int(f)
}

// LimitFromArgs extracts "limit" from raw tool arguments. Anything other than
// a JSON number (string, bool, null, object, absent) reports nil.
func LimitFromArgs(argumentsJSON string) *float64 {
	r := gjson.Get(argumentsJSON, "limit")
	if r.Type != gjson.Number {
		return nil
	}
	v := r.Float()
	return &v
}
