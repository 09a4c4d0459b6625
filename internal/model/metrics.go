package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// GroupTotal is one bucket of an aggregation.
type GroupTotal struct {
	Key   string
	Value decimal.Decimal
	Share float64 // Value / grand total, set by pipeline.Shares

	// FirstRow is the index of the first row that fed this group.
	// It orders ties.
	FirstRow int
}

// Comparison pairs two metrics for the same group key.
type Comparison struct {
	Key       string
	Primary   decimal.Decimal
	Secondary decimal.Decimal
}

// Gap returns Primary - Secondary.
func (c Comparison) Gap() decimal.Decimal {
	return c.Primary.Sub(c.Secondary)
}

// Summary holds the headline figures for a (filtered) table.
type Summary struct {
	Rows     int
	Centers  int
	Accounts int
	Months   int

	TotalRealized decimal.Decimal // sum of Expense
	TotalForecast decimal.Decimal
	Variance      decimal.Decimal // TotalForecast - TotalRealized

	First time.Time
	Last  time.Time
}

// Outcome classifies the summary variance.
func (s Summary) Outcome() Outcome {
	return OutcomeOf(s.Variance)
}

// Execution returns realized over forecast as a fraction, or 0 with no forecast.
func (s Summary) Execution() float64 {
	if s.TotalForecast.IsZero() {
		return 0
	}
	return s.TotalRealized.Div(s.TotalForecast).InexactFloat64()
}
