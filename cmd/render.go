package cmd

import (
	"fmt"
	"strings"

	"github.com/budgetwise/backend/internal/ledger"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorBorder = lipgloss.Color("#575653")
	colorAccent = lipgloss.Color("#3AA99F")
	colorGreen  = lipgloss.Color("#879A39")
	colorOrange = lipgloss.Color("#DA702C")
	colorRed    = lipgloss.Color("#D14D41")
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	labelStyle = lipgloss.NewStyle().Width(22)
)

func statusStyle(s ledger.Status) lipgloss.Style {
	switch s {
	case ledger.StatusOverBudget:
		return lipgloss.NewStyle().Foreground(colorRed)
	case ledger.StatusWarning:
		return lipgloss.NewStyle().Foreground(colorOrange)
	default:
		return lipgloss.NewStyle().Foreground(colorGreen)
	}
}

func row(label, value string) string {
	return labelStyle.Render(label) + value
}

func renderMetrics(m ledger.DashboardMetrics, online bool) string {
	source := "local mirror"
	if online {
		source = "server"
	}

	lines := []string{
		headerStyle.Render("Dashboard") + " (" + source + ")",
		row("Total budget", m.TotalBudget.StringFixed(2)),
		row("Total expenses", m.TotalExpenses.StringFixed(2)),
		row("Remaining", m.RemainingBudget.StringFixed(2)),
		row("Utilization", m.BudgetUtilization.String()+"%"),
		row("Burn rate (30 days)", m.MonthlyBurnRate.StringFixed(2)),
		row("Growth", m.ExpenseGrowth.String()+"%"),
	}

	for _, c := range m.CategoryBreakdown {
		lines = append(lines, row("  "+c.Category, fmt.Sprintf("%s (%s%%)", c.Amount.StringFixed(2), c.Percentage)))
	}

	return boxStyle.Render(strings.Join(lines, "\n"))
}

func renderAlerts(alerts []ledger.Alert) string {
	lines := []string{headerStyle.Render("Alerts")}
	if len(alerts) == 0 {
		lines = append(lines, "No budget needs attention")
	}

	for _, a := range alerts {
		status := ledger.StatusWarning
		if a.Severity == ledger.SeverityCritical {
			status = ledger.StatusOverBudget
		}
		lines = append(lines, statusStyle(status).Render(string(a.Severity))+" "+a.Message)
	}

	return boxStyle.Render(strings.Join(lines, "\n"))
}

func renderHealth(health []ledger.BudgetHealth) string {
	lines := []string{headerStyle.Render("Budgets")}
	for _, h := range health {
		value := fmt.Sprintf("%s of %s, %s%% ", h.DisplaySpent.StringFixed(2), h.Allocated.StringFixed(2), h.DisplayUtilization)
		if h.UnlinkedSpent.IsPositive() {
			value += fmt.Sprintf("(%s unlinked) ", h.UnlinkedSpent.StringFixed(2))
		}
		lines = append(lines, row(h.Name, value+statusStyle(h.Status).Render(string(h.Status))))
	}

	return boxStyle.Render(strings.Join(lines, "\n"))
}
