package ledger

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToAmount(t *testing.T) {
	s := "42.5"
	var nilStr *string

	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"nil", nil, 0},
		{"empty", "", 0},
		{"spaces", "   ", 0},
		{"garbage", "twelve", 0},
		{"numeric string", "50000", 50000},
		{"padded", " 1500.25 ", 1500.25},
		{"grouped", "1,50,000", 150000},
		{"rupee", "₹ 2,000", 2000},
		{"int", 300, 300},
		{"float", 12.75, 12.75},
		{"json number", json.Number("99.5"), 99.5},
		{"string pointer", &s, 42.5},
		{"nil pointer", nilStr, 0},
		{"bool", true, 0},
		{"nan", math.NaN(), 0},
		{"inf", "Inf", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToAmount(tt.in))
		})
	}
}
