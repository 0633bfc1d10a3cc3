package utils

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FormatINR renders an amount with the rupee sign and Indian digit grouping,
// e.g. 1234567.5 becomes "₹12,34,567.50".
func FormatINR(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	s := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	return sign + "₹" + groupIndian(intPart) + "." + frac
}

// groupIndian groups the last three digits, then every two.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}

// NormalizeVehicleNumber upper-cases a registration number and drops spaces
// and dashes, so "mh 12-ab 1234" and "MH12AB1234" are the same vehicle.
func NormalizeVehicleNumber(s string) string {
	s = strings.NewReplacer(" ", "", "-", "", "\t", "").Replace(s)
	return cases.Upper(language.Und).String(s)
}
