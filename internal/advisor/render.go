package advisor

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

var tips = map[model.Type]string{
	model.TypeNeeds:   "Consider: cheaper groceries, energy-saving tips, or public transport.",
	model.TypeWants:   "Try: cooking at home, free entertainment, or delayed gratification.",
	model.TypeSavings: "Consider moving the surplus into a savings goal.",
}

// Render formats a suggestion as one line of advice.
func Render(s Suggestion, currency string) string {
	msg := fmt.Sprintf("%s spending exceeded by %s (%s).",
		s.Type.Label(), money(currency, s.OverAmount), s.Level)
	if s.TopCategory != "" {
		msg += fmt.Sprintf(" Reduce spending on %s, which accounts for %s%% of your %s overspend.",
			s.TopCategory, s.TopShare.String(), s.Type.Label())
	}
	return msg + " " + tips[s.Type]
}

// RenderInsight formats an insight as one line.
func RenderInsight(in Insight, currency string) string {
	switch in.Kind {
	case InsightIncomeExceeded:
		return fmt.Sprintf("You've overspent your income by %s this month!", money(currency, in.Amount))
	case InsightHighAverage:
		return fmt.Sprintf("High spending in %s: %s average. Consider reducing frequency or finding alternatives.",
			in.Category, money(currency, in.Amount))
	default:
		return string(in.Kind)
	}
}

func money(currency string, d decimal.Decimal) string {
	return currency + d.StringFixed(2)
}
