package api

import (
	"time"

	appErrors "gastos/errors"
	"gastos/internal/budget"
	"gastos/internal/fx"
)

// REQUESTS START:

type SetIncomeRequest struct {
	Amount float64 `json:"amount"`
}

type CreateExpenseRequest struct {
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
}

type RefreshRatesRequest struct {
	Source string `json:"source"`
	Force  bool   `json:"force"`
}

// REQUESTS END:

// RESPONSES:

type ExpenseItem struct {
	ID             string  `json:"id"`
	Category       string  `json:"category"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	AmountLocal    float64 `json:"amount_local"`
	Description    string  `json:"description"`
	CreatedAt      string  `json:"created_at"`
	RateSourceUsed string  `json:"rate_source_used,omitempty"`
	RateAtCreation float64 `json:"rate_at_creation,omitempty"`
}

type ListExpensesResponse struct {
	Expenses []ExpenseItem `json:"expenses"`
}

type CategoryTotalItem struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type SummaryResponse struct {
	Income         float64             `json:"income"`
	TotalSpent     float64             `json:"total_spent"`
	Balance        float64             `json:"balance"`
	Status         string              `json:"status"`
	StatusMessage  string              `json:"status_message"`
	CategoryTotals []CategoryTotalItem `json:"category_totals"`
	Ranking        []CategoryTotalItem `json:"ranking"`
}

type RatesResponse struct {
	Source       string  `json:"source"`
	Buy          float64 `json:"buy,omitempty"`
	Sell         float64 `json:"sell,omitempty"`
	Available    bool    `json:"available"`
	UpdatedLabel string  `json:"updated_label,omitempty"`
	FetchedAt    string  `json:"fetched_at,omitempty"`
}

type ListCategoriesResponse struct {
	Categories []string `json:"categories"`
}

// statusMessages are the human-readable renderings of the status enum;
// the core only ever emits the enum.
var statusMessages = map[budget.Status]string{
	budget.StatusNeedsIncome:  "Load your monthly income first to track limits and balance.",
	budget.StatusOverspent:    "You overspent: your expenses exceed your income.",
	budget.StatusExactlySpent: "You spent exactly your income. Balance is zero.",
	budget.StatusTightMargin:  "You are tight: less than 20% of your income remains.",
	budget.StatusComfortable:  "You are doing fine: a comfortable margin remains.",
}

func httpStatusFromError(err error) int {
	switch appErrors.CodeOf(err) {
	case appErrors.ErrNotFound:
		return 404 // not found
	case appErrors.ErrMissingCategory,
		appErrors.ErrInvalidAmount,
		appErrors.ErrConversionFailed,
		appErrors.ErrExceedsBalance,
		appErrors.ErrInvalidInput:
		return 400 // bad request
	case appErrors.ErrRateUnavailable:
		return 503 // rate source is down or stale
	default:
		return 500 //internal error
	}
}

func ExpenseToHttp(expense budget.Expense) ExpenseItem {
	return ExpenseItem{
		ID:             expense.ID,
		Category:       expense.Category,
		Amount:         expense.Amount,
		Currency:       string(expense.Currency),
		AmountLocal:    expense.AmountLocal,
		Description:    expense.Description,
		CreatedAt:      expense.CreatedAt.Format("02/01/2006 15:04"),
		RateSourceUsed: expense.RateSourceUsed,
		RateAtCreation: expense.RateAtCreation,
	}
}

func SummaryToHttp(summary budget.Summary) SummaryResponse {
	resp := SummaryResponse{
		Income:         summary.Income,
		TotalSpent:     summary.TotalSpent,
		Balance:        summary.Balance,
		Status:         string(summary.Status),
		StatusMessage:  statusMessages[summary.Status],
		CategoryTotals: categoryTotalsToHttp(summary.CategoryTotals),
		Ranking:        categoryTotalsToHttp(summary.Ranking),
	}
	return resp
}

func categoryTotalsToHttp(totals []budget.CategoryTotal) []CategoryTotalItem {
	items := make([]CategoryTotalItem, 0, len(totals))
	for _, total := range totals {
		items = append(items, CategoryTotalItem{Category: total.Category, Total: total.Total})
	}
	return items
}

func RatesToHttp(snap fx.Snapshot) RatesResponse {
	resp := RatesResponse{
		Source:       snap.Source,
		Available:    snap.HasRates(),
		UpdatedLabel: snap.UpdatedLabel,
	}
	if resp.Available {
		resp.Buy = snap.Buy
		resp.Sell = snap.Sell
	}
	if !snap.FetchedAt.IsZero() {
		resp.FetchedAt = snap.FetchedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
