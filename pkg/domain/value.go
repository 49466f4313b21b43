package domain

import "fmt"

// NormalizeValue coerces a flag value into the scalar set that survives a JSON
// round trip unchanged: nil, bool, string and float64.
func NormalizeValue(v any) any {
	switch n := v.(type) {
	case nil, bool, string, float64:
		return n
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case float32:
		return float64(n)
	default:
		return fmt.Sprint(n)
	}
}

// ValuesEqual compares two flag values after normalization.
// A nil or missing expectation equals false, matching unset flags.
func ValuesEqual(a, b any) bool {
	a, b = NormalizeValue(a), NormalizeValue(b)
	if a == nil {
		a = false
	}
	if b == nil {
		b = false
	}
	return a == b
}

// Truthy reports whether a flag value counts as set.
func Truthy(v any) bool {
	switch n := NormalizeValue(v).(type) {
	case nil:
		return false
	case bool:
		return n
	case string:
		return n != ""
	case float64:
		return n != 0
	default:
		return true
	}
}
