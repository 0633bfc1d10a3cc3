package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultBookingPrefix is used when the previous booking number has no letters.
const DefaultBookingPrefix = "NH"

const bookingNoDigits = 4

// NextBookingNo suggests the number following last, e.g. "NH0034" -> "NH0035".
// The numeric part is zero padded to four digits and grows past that when
// needed. An empty last number yields "NH0001".
func NextBookingNo(last string) string {
	last = strings.TrimSpace(last)

	i := 0
	for i < len(last) && isASCIILetter(last[i]) {
		i++
	}
	prefix := last[:i]
	if prefix == "" {
		prefix = DefaultBookingPrefix
	}

	j := i
	for j < len(last) && last[j] >= '0' && last[j] <= '9' {
		j++
	}
	// decimal keeps suffixes longer than an int64 from wrapping back to 1
	n, err := decimal.NewFromString(last[i:j])
	if err != nil {
		n = decimal.Zero
	}
	digits := n.Add(decimal.NewFromInt(1)).String()
	if pad := bookingNoDigits - len(digits); pad > 0 {
		digits = strings.Repeat("0", pad) + digits
	}
	return prefix + digits
}

func isASCIILetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
