package reservation

import (
	"github.com/shopspring/decimal"
)

var secondsPerHour = decimal.NewFromInt(3600)

// PriceCalculator turns a booked span and an hourly rate into a total amount.
type PriceCalculator interface {
	Total(hourlyRate decimal.Decimal, span Span) decimal.Decimal
}

// HourlyPriceCalculator charges exact elapsed hours times the hourly rate.
// Hours are not rounded: a 90-minute booking at 100/h costs 150.
type HourlyPriceCalculator struct{}

func NewHourlyPriceCalculator() *HourlyPriceCalculator {
	return &HourlyPriceCalculator{}
}

func (c *HourlyPriceCalculator) Total(hourlyRate decimal.Decimal, span Span) decimal.Decimal {
	seconds := decimal.NewFromInt(int64(span.Duration().Seconds()))
	hours := seconds.Div(secondsPerHour)
	return hourlyRate.Mul(hours)
}
