package model

import "github.com/shopspring/decimal"

// Outcome says whether spending stayed within forecast.
type Outcome int

const (
	Savings Outcome = iota // forecast >= realized
	Overrun
)

// OutcomeOf classifies a forecast-minus-realized variance.
func OutcomeOf(variance decimal.Decimal) Outcome {
	if variance.IsNegative() {
		return Overrun
	}
	return Savings
}

// String returns the label shown next to the variance figure.
func (o Outcome) String() string {
	if o == Overrun {
		return "Estouro"
	}
	return "Economia"
}
