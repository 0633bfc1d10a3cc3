package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatINR(t *testing.T) {
	cases := map[float64]string{
		0:          "₹0.00",
		999:        "₹999.00",
		1000:       "₹1,000.00",
		100000:     "₹1,00,000.00",
		1234567.5:  "₹12,34,567.50",
		-2500:      "-₹2,500.00",
		0.1 + 0.2:  "₹0.30",
		99999999.9: "₹9,99,99,999.90",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatINR(in), "input %v", in)
	}
}

func TestNormalizeVehicleNumber(t *testing.T) {
	assert.Equal(t, "MH12AB1234", NormalizeVehicleNumber("mh 12-ab 1234"))
	assert.Equal(t, "MH12AB1234", NormalizeVehicleNumber("MH12AB1234"))
	assert.Equal(t, "", NormalizeVehicleNumber("  "))
}
