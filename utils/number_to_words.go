package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// indianScales are the place names of the Indian numbering system, largest first.
var indianScales = []struct {
	size int64
	name string
}{
	{10000000, "Crore"},
	{100000, "Lakh"},
	{1000, "Thousand"},
	{100, "Hundred"},
}

// NumberToWords spells a non-negative integer in Indian English, e.g.
// 1250000 is "Twelve Lakh Fifty Thousand". Zero yields "".
func NumberToWords(num int64) string {
	if num <= 0 {
		return ""
	}
	if num < 20 {
		return ones[num]
	}
	if num < 100 {
		return strings.TrimSpace(tens[num/10] + " " + ones[num%10])
	}
	for _, s := range indianScales {
		if num < s.size {
			continue
		}
		words := NumberToWords(num/s.size) + " " + s.name
		if rest := num % s.size; rest > 0 {
			words += " " + NumberToWords(rest)
		}
		return words
	}
	return ""
}

// AmountInWords spells a rupee amount for invoices, rounded to paise.
// Negative amounts are spelled by magnitude.
func AmountInWords(amount float64) string {
	d := decimal.NewFromFloat(amount).Abs().Round(2)
	rupees := d.IntPart()
	paise := d.Sub(decimal.NewFromInt(rupees)).Shift(2).IntPart()

	var parts []string
	if rupees > 0 {
		parts = append(parts, NumberToWords(rupees)+" Rupees")
	}
	if paise > 0 {
		parts = append(parts, NumberToWords(paise)+" Paise")
	}
	if len(parts) == 0 {
		return "Zero Rupees Only"
	}
	return strings.Join(parts, " and ") + " Only"
}
