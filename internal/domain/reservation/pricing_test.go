//go:build unit

package reservation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestHourlyPriceCalculatorTotal(t *testing.T) {
	calc := NewHourlyPriceCalculator()
	day := date(2026, 3, 10)

	cases := map[string]struct {
		rate  string
		span  Span
		total string
	}{
		"two hours at 100": {
			rate:  "100.00",
			span:  mustSpan(t, day, day, 9*time.Hour, 11*time.Hour),
			total: "200.00",
		},
		"ninety minutes at 100": {
			rate:  "100.00",
			span:  mustSpan(t, day, day, 9*time.Hour, 10*time.Hour+30*time.Minute),
			total: "150.00",
		},
		"fractional rate": {
			rate:  "37.50",
			span:  mustSpan(t, day, day, 14*time.Hour, 18*time.Hour),
			total: "150.00",
		},
		"overnight spanning days": {
			rate:  "80.00",
			span:  mustSpan(t, day, date(2026, 3, 11), 22*time.Hour, 6*time.Hour),
			total: "640.00",
		},
		"zero rate": {
			rate:  "0",
			span:  mustSpan(t, day, day, 9*time.Hour, 17*time.Hour),
			total: "0",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rate := decimal.RequireFromString(tc.rate)
			total := calc.Total(rate, tc.span)
			assert.True(t, total.Equal(decimal.RequireFromString(tc.total)),
				"want %s, got %s", tc.total, total.String())
		})
	}
}
