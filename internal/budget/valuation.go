package budget

import (
	"math"
	"sort"

	appErrors "gastos/errors"
	"gastos/internal/fx"
)

// TightMarginRatio is the share of income below which the remaining
// balance counts as a tight margin.
const TightMarginRatio = 0.2

type Status string

const (
	StatusNeedsIncome  Status = "NEEDS_INCOME"
	StatusOverspent    Status = "OVERSPENT"
	StatusExactlySpent Status = "EXACTLY_SPENT"
	StatusTightMargin  Status = "TIGHT_MARGIN"
	StatusComfortable  Status = "COMFORTABLE"
)

// ConvertToLocal converts amount in the given currency to ARS. ARS
// amounts pass through unchanged; USD amounts are multiplied by the
// snapshot's sell rate, never the buy rate.
func ConvertToLocal(amount float64, currency Currency, snap fx.Snapshot) (float64, error) {
	if currency == CurrencyARS {
		return amount, nil
	}
	if !snap.HasSellRate() {
		return 0, appErrors.ErrorResponse{
			Code:    appErrors.ErrRateUnavailable,
			Message: "No exchange rate available for USD, refresh or use ARS.",
		}
	}
	converted := amount * snap.Sell
	if math.IsNaN(converted) || math.IsInf(converted, 0) {
		return 0, appErrors.ErrorResponse{
			Code:    appErrors.ErrConversionFailed,
			Message: "Could not convert the amount to ARS.",
		}
	}
	return converted, nil
}

// TotalSpent sums the frozen local amounts; it never re-converts.
func TotalSpent(expenses []Expense) float64 {
	var total float64
	for _, expense := range expenses {
		total += expense.AmountLocal
	}
	return total
}

// Balance may be negative.
func Balance(income float64, expenses []Expense) float64 {
	return income - TotalSpent(expenses)
}

// CategoryTotals groups the frozen local amounts by category, ordered
// by the first occurrence of each category in the expense sequence.
// Categories without expenses are absent.
func CategoryTotals(expenses []Expense) []CategoryTotal {
	index := make(map[string]int, len(expenses))
	var totals []CategoryTotal
	for _, expense := range expenses {
		i, ok := index[expense.Category]
		if !ok {
			i = len(totals)
			index[expense.Category] = i
			totals = append(totals, CategoryTotal{Category: expense.Category})
		}
		totals[i].Total += expense.AmountLocal
	}
	return totals
}

// Ranking sorts the category totals by total descending; ties keep the
// first-occurrence order of CategoryTotals.
func Ranking(expenses []Expense) []CategoryTotal {
	totals := CategoryTotals(expenses)
	ranking := make([]CategoryTotal, len(totals))
	copy(ranking, totals)
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Total > ranking[j].Total
	})
	return ranking
}

// Classify derives the qualitative status. The precedence is fixed:
// missing income, overspent, exactly spent, tight margin, comfortable.
// The zero-balance comparison is done on the same float64 the balance
// is computed with, without extra rounding.
func Classify(income float64, expenses []Expense) Status {
	totalSpent := TotalSpent(expenses)
	balance := income - totalSpent

	switch {
	case income <= 0:
		return StatusNeedsIncome
	case balance < 0:
		return StatusOverspent
	case balance == 0 && totalSpent > 0:
		return StatusExactlySpent
	case balance < income*TightMarginRatio:
		return StatusTightMargin
	default:
		return StatusComfortable
	}
}
