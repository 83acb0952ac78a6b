package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// BurnRateWindow is the trailing window used for the monthly burn rate.
const BurnRateWindow = 30 * 24 * time.Hour

// DashboardMetrics are portfolio-wide figures. They are computed, never stored.
type DashboardMetrics struct {
	TotalBudget       decimal.Decimal  `json:"totalBudget" example:"12000"`
	TotalExpenses     decimal.Decimal  `json:"totalExpenses" example:"4521.30"`
	RemainingBudget   decimal.Decimal  `json:"remainingBudget" example:"7478.70"`
	MonthlyBurnRate   decimal.Decimal  `json:"monthlyBurnRate" example:"1290"`
	BudgetUtilization decimal.Decimal  `json:"budgetUtilization" example:"37.7"` // Percent, rounded to one decimal
	ExpenseGrowth     decimal.Decimal  `json:"expenseGrowth" example:"-12.5"`    // Percent, rounded to one decimal
	CategoryBreakdown []CategoryAmount `json:"categoryBreakdown"`
}

// CategoryAmount is the approved spending in one category.
type CategoryAmount struct {
	Category   string          `json:"category" example:"Travel"`
	Amount     decimal.Decimal `json:"amount" example:"300"`
	Percentage decimal.Decimal `json:"percentage" example:"30"` // Share of total expenses in percent, rounded to one decimal
}

// percentOf returns part / whole * 100 rounded to one decimal, 0 when whole is not positive.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(1)
}

// within reports if t is in the half-open window (from, to].
func within(t, from, to time.Time) bool {
	return t.After(from) && !t.After(to)
}

// Metrics folds budgets and expenses into the dashboard metrics as of now.
func Metrics(budgets []Budget, expenses []Expense, categories []Category, now time.Time) DashboardMetrics {
	m := DashboardMetrics{
		TotalBudget:       decimal.Zero,
		TotalExpenses:     decimal.Zero,
		MonthlyBurnRate:   decimal.Zero,
		CategoryBreakdown: make([]CategoryAmount, 0),
	}

	for _, b := range budgets {
		m.TotalBudget = m.TotalBudget.Add(b.Allocated)
	}

	currentFrom := now.Add(-BurnRateWindow)
	previousFrom := currentFrom.Add(-BurnRateWindow)
	previous := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)

	for _, e := range expenses {
		if !e.Approved() {
			continue
		}

		m.TotalExpenses = m.TotalExpenses.Add(e.Amount)
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)

		if within(e.Date, currentFrom, now) {
			m.MonthlyBurnRate = m.MonthlyBurnRate.Add(e.Amount)
		} else if within(e.Date, previousFrom, currentFrom) {
			previous = previous.Add(e.Amount)
		}
	}

	m.RemainingBudget = m.TotalBudget.Sub(m.TotalExpenses)
	m.BudgetUtilization = percentOf(m.TotalExpenses, m.TotalBudget)

	if previous.IsPositive() {
		m.ExpenseGrowth = m.MonthlyBurnRate.Sub(previous).Div(previous).Mul(hundred).Round(1)
	}

	for _, c := range categories {
		if !c.IsActive {
			continue
		}

		amount := byCategory[c.Name]
		if amount.IsZero() {
			continue
		}

		m.CategoryBreakdown = append(m.CategoryBreakdown, CategoryAmount{
			Category:   c.Name,
			Amount:     amount,
			Percentage: percentOf(amount, m.TotalExpenses),
		})
	}

	return m
}

// BudgetHealth is the display view of a budget.
//
// Unlike Spent, DisplaySpent includes approved expenses without a budget ID whose
// category equals the budget's category. DisplayRemaining is clamped at zero.
type BudgetHealth struct {
	BudgetID           uuid.UUID       `json:"budgetId"`
	Name               string          `json:"name"`
	Category           string          `json:"category"`
	Allocated          decimal.Decimal `json:"allocated"`
	Spent              decimal.Decimal `json:"spent"`
	UnlinkedSpent      decimal.Decimal `json:"unlinkedSpent"`
	DisplaySpent       decimal.Decimal `json:"displaySpent"`
	DisplayRemaining   decimal.Decimal `json:"displayRemaining"`
	DisplayUtilization decimal.Decimal `json:"displayUtilization"`
	Status             Status          `json:"status"` // Authoritative status, from Spent only
}

// Health returns the display view for every budget.
func Health(budgets []Budget, expenses []Expense) []BudgetHealth {
	health := make([]BudgetHealth, 0, len(budgets))

	for _, b := range budgets {
		unlinked := decimal.Zero
		for _, e := range expenses {
			if e.Approved() && e.BudgetID == nil && e.Category == b.Category {
				unlinked = unlinked.Add(e.Amount)
			}
		}

		display := b.Spent.Add(unlinked)
		remaining := b.Allocated.Sub(display)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		health = append(health, BudgetHealth{
			BudgetID:           b.ID,
			Name:               b.Name,
			Category:           b.Category,
			Allocated:          b.Allocated,
			Spent:              b.Spent,
			UnlinkedSpent:      unlinked,
			DisplaySpent:       display,
			DisplayRemaining:   remaining,
			DisplayUtilization: Utilization(b.Allocated, display).Round(1),
			Status:             StatusFor(b.Allocated, b.Spent),
		})
	}

	return health
}

// swagger:enum Severity
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Alert flags a budget that reached a threshold.
type Alert struct {
	BudgetID    uuid.UUID       `json:"budgetId"`
	BudgetName  string          `json:"budgetName"`
	Category    string          `json:"category"`
	Severity    Severity        `json:"severity"`
	Utilization decimal.Decimal `json:"utilization"`
	Message     string          `json:"message"`
}

var printer = message.NewPrinter(language.English)

// Alerts returns an alert for every budget in warning or over budget.
func Alerts(budgets []Budget) []Alert {
	alerts := make([]Alert, 0)

	for _, b := range budgets {
		status := StatusFor(b.Allocated, b.Spent)
		if status == StatusOnTrack {
			continue
		}

		severity := SeverityWarning
		verb := "is approaching its limit"
		if status == StatusOverBudget {
			severity = SeverityCritical
			verb = "is over budget"
		}

		utilization := Utilization(b.Allocated, b.Spent).Round(1)
		alerts = append(alerts, Alert{
			BudgetID:    b.ID,
			BudgetName:  b.Name,
			Category:    b.Category,
			Severity:    severity,
			Utilization: utilization,
			Message: printer.Sprintf("%s %s: %.1f%% used (%.2f of %.2f)",
				b.Name, verb, utilization.InexactFloat64(), b.Spent.InexactFloat64(), b.Allocated.InexactFloat64()),
		})
	}

	return alerts
}

// CashFlowSummary sums completed transactions in a window.
type CashFlowSummary struct {
	From     time.Time       `json:"from"`
	To       time.Time       `json:"to"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
	Count    int             `json:"count"`
}

// CashFlow sums completed transactions with a date in [from, to].
func CashFlow(transactions []Transaction, from, to time.Time) CashFlowSummary {
	s := CashFlowSummary{From: from, To: to, Income: decimal.Zero, Expenses: decimal.Zero}

	for _, t := range transactions {
		if t.Status != TransactionCompleted || t.Date.Before(from) || t.Date.After(to) {
			continue
		}

		s.Count++
		switch t.Type {
		case TransactionIncome:
			s.Income = s.Income.Add(t.Amount)
		case TransactionExpense:
			s.Expenses = s.Expenses.Add(t.Amount)
		}
	}

	s.Net = s.Income.Sub(s.Expenses)
	return s
}
