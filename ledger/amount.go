package ledger

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// ToAmount coerces a form or JSON value into a number. Blank, null and
// unparseable values become 0; this function never reports an error so
// that a half-filled form can always be recalculated.
func ToAmount(v any) float64 {
	switch t := v.(type) {
	case nil, bool:
		return 0
	case *string:
		if t == nil {
			return 0
		}
		return ToAmount(*t)
	case string:
		s := strings.TrimSpace(t)
		s = strings.TrimPrefix(s, "₹")
		s = strings.ReplaceAll(s, ",", "")
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
