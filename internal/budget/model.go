package budget

import (
	"time"
)

type Currency string

const (
	CurrencyARS Currency = "ARS" // local currency, all aggregates are expressed in it
	CurrencyUSD Currency = "USD" // converted via the fetched sell rate
)

// DefaultDescription is used when an expense is created with a blank
// description.
const DefaultDescription = "Sin descripción"

// REQUESTS START:

type ExpenseRequest struct {
	Category    string
	Amount      float64
	Currency    Currency
	Description string
}

// REQUESTS END:

// MODELS:

// Expense is immutable once created, except for deletion. AmountLocal
// is frozen from the conversion performed at creation time and is never
// recomputed, even when the exchange rate changes later.
// RateSourceUsed and RateAtCreation are an audit trail recorded only
// for USD entries; they take no part in later computation.
type Expense struct {
	ID             string    `json:"id"`
	Category       string    `json:"category"`
	Amount         float64   `json:"amount"`
	Currency       Currency  `json:"currency"`
	AmountLocal    float64   `json:"amountLocal"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"createdAt"`
	RateSourceUsed string    `json:"rateSourceUsed,omitempty"`
	RateAtCreation float64   `json:"rateAtCreation,omitempty"`
}

// RESPONSES:

type CategoryTotal struct {
	Category string
	Total    float64
}

type Summary struct {
	Income         float64
	TotalSpent     float64
	Balance        float64
	Status         Status
	CategoryTotals []CategoryTotal
	Ranking        []CategoryTotal
}
