package hourly

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// Number coerces a loosely typed field to a float64. Strings must be decimal
// (exponents allowed); hex literals and infinities are not accepted. Anything
// that is not a finite number (nil, garbage strings, NaN, maps) becomes 0.
func Number(v interface{}) float64 {
	if n, ok := v.(json.Number); ok {
		v = n.String()
	}
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0
		}
		v = s
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
