// Package ledger holds the budget rules shared by the server and the offline mirror.
//
// Nothing in this package performs I/O. The server feeds it rows read from the
// database, the mirror feeds it its in-memory copy of the same entities, and both
// get identical numbers back.
package ledger

import (
	"github.com/shopspring/decimal"
)

// swagger:enum Status
type Status string

const (
	StatusOnTrack    Status = "on-track"
	StatusWarning    Status = "warning"
	StatusOverBudget Status = "over-budget"
)

var (
	hundred = decimal.NewFromInt(100)

	// WarningThreshold is the utilization in percent from which on a budget is in warning state.
	WarningThreshold = decimal.NewFromInt(75)

	// OverBudgetThreshold is the utilization in percent from which on a budget is over budget.
	OverBudgetThreshold = decimal.NewFromInt(90)
)

// Evaluation is the result of applying the status rule to a budget.
type Evaluation struct {
	Utilization decimal.Decimal // spent / allocated * 100, not rounded
	Remaining   decimal.Decimal // allocated - spent, negative when overspent
	Status      Status
}

// Evaluate applies the budget status rule.
//
// A budget without allocation has a utilization of 0 and is on track.
// Remaining is never clamped here.
func Evaluate(allocated, spent decimal.Decimal) Evaluation {
	return Evaluation{
		Utilization: Utilization(allocated, spent),
		Remaining:   allocated.Sub(spent),
		Status:      StatusFor(allocated, spent),
	}
}

// Utilization returns spent as a percentage of allocated.
func Utilization(allocated, spent decimal.Decimal) decimal.Decimal {
	if !allocated.IsPositive() {
		return decimal.Zero
	}

	return spent.Div(allocated).Mul(hundred)
}

// StatusFor returns the status for the given allocation and spent amount.
func StatusFor(allocated, spent decimal.Decimal) Status {
	// Compare spent*100 against threshold*allocated to avoid rounding on division
	if !allocated.IsPositive() {
		return StatusOnTrack
	}

	scaled := spent.Mul(hundred)
	switch {
	case scaled.GreaterThanOrEqual(OverBudgetThreshold.Mul(allocated)):
		return StatusOverBudget
	case scaled.GreaterThanOrEqual(WarningThreshold.Mul(allocated)):
		return StatusWarning
	default:
		return StatusOnTrack
	}
}

// Valid reports if s is a known status.
func (s Status) Valid() bool {
	return s == StatusOnTrack || s == StatusWarning || s == StatusOverBudget
}
