package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextBookingNo(t *testing.T) {
	tests := map[string]string{
		"NH0001":  "NH0002",
		"NH0034":  "NH0035",
		"NH0999":  "NH1000",
		"NH9999":  "NH10000",
		"":        "NH0001",
		"   ":     "NH0001",
		"AB0012":  "AB0013",
		"0041":    "NH0042",
		"NH":      "NH0001",
		"NHxyz":   "NHxyz0001",
		"KA12-XY": "KA0013",
		"nh0007":  "nh0008",

		"NH99999999999999999999": "NH100000000000000000000",
	}
	for last, want := range tests {
		assert.Equal(t, want, NextBookingNo(last), "NextBookingNo(%q)", last)
	}
}
