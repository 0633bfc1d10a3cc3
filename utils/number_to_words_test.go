package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumberToWords(t *testing.T) {
	cases := map[int64]string{
		0:         "",
		7:         "Seven",
		19:        "Nineteen",
		40:        "Forty",
		99:        "Ninety Nine",
		100:       "One Hundred",
		101:       "One Hundred One",
		1234:      "One Thousand Two Hundred Thirty Four",
		100000:    "One Lakh",
		1250000:   "Twelve Lakh Fifty Thousand",
		10000000:  "One Crore",
		123456789: "Twelve Crore Thirty Four Lakh Fifty Six Thousand Seven Hundred Eighty Nine",
	}
	for in, want := range cases {
		assert.Equal(t, want, NumberToWords(in), "input %d", in)
	}
}

func TestAmountInWords(t *testing.T) {
	assert.Equal(t, "Zero Rupees Only", AmountInWords(0))
	assert.Equal(t, "Forty Thousand Rupees Only", AmountInWords(40000))
	assert.Equal(t, "Twelve Lakh Fifty Thousand Rupees and Fifty Paise Only", AmountInWords(1250000.5))
	assert.Equal(t, "Thirty Paise Only", AmountInWords(0.1+0.2))
	assert.Equal(t, "Five Hundred Rupees Only", AmountInWords(-500))
}
