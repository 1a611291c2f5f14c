package features

import (
	"fmt"
	"strconv"
	"strings"
)

// Encode resolves every value of a FeatureRecord to a number.
// Boolean-like features go through the literal affirmative mapping,
// registry-backed features through their fitted encoder, and everything
// else through numeric coercion. Absent or unmappable values resolve to
// 0; encoding never fails.
func Encode(rec FeatureRecord, reg *Registry) EncodedFeatureRecord {
	out := make(EncodedFeatureRecord, len(rec))
	for name, v := range rec {
		out[name] = encodeValue(name, v, reg)
	}
	return out
}

func encodeValue(name string, v interface{}, reg *Registry) float64 {
	if BooleanFeatures[name] {
		return BooleanValue(v)
	}
	if reg != nil {
		if enc, ok := reg.Encoder(name); ok {
			if v == nil {
				return float64(enc.Fallback())
			}
			return float64(enc.Apply(stringify(v)))
		}
	}
	return numericValue(v)
}

// stringify renders a value the way the fitting corpus would have
// carried it.
func stringify(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// numericValue coerces scalars to float64; nil and non-numeric values
// become 0.
func numericValue(v interface{}) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
