package budget

import (
	"math"
	"testing"

	appErrors "gastos/errors"
	"gastos/internal/fx"
)

func expenseARS(category string, amount float64) Expense {
	return Expense{Category: category, Amount: amount, Currency: CurrencyARS, AmountLocal: amount}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		income   float64
		expenses []Expense
		expected Status
	}{
		{
			name:     "no income regardless of expenses",
			income:   0,
			expenses: []Expense{expenseARS("Comida", 500)},
			expected: StatusNeedsIncome,
		},
		{
			name:     "overspent",
			income:   1000,
			expenses: []Expense{expenseARS("Comida", 1200)},
			expected: StatusOverspent,
		},
		{
			name:     "exactly spent",
			income:   1000,
			expenses: []Expense{expenseARS("Comida", 1000)},
			expected: StatusExactlySpent,
		},
		{
			name:     "tight margin below 20 percent",
			income:   1000,
			expenses: []Expense{expenseARS("Comida", 600), expenseARS("Transporte", 250)},
			expected: StatusTightMargin,
		},
		{
			name:     "comfortable",
			income:   1000,
			expenses: []Expense{expenseARS("Comida", 300)},
			expected: StatusComfortable,
		},
		{
			name:     "no expenses with income is comfortable",
			income:   1000,
			expenses: nil,
			expected: StatusComfortable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.income, tt.expenses); got != tt.expected {
				t.Errorf("Classify() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestBalanceIdentity(t *testing.T) {
	expenses := []Expense{
		expenseARS("Comida", 120.55),
		expenseARS("Transporte", 30.10),
		{Category: "Otros", Amount: 2, Currency: CurrencyUSD, AmountLocal: 2400},
	}
	income := 5000.0

	if got, want := Balance(income, expenses), income-TotalSpent(expenses); got != want {
		t.Errorf("Balance() = %v, want income-totalSpent = %v", got, want)
	}
}

func TestCategoryTotalsOrderAndSum(t *testing.T) {
	expenses := []Expense{
		expenseARS("Comida", 100),
		expenseARS("Transporte", 50),
		expenseARS("Comida", 25),
		expenseARS("Salud", 75),
	}

	totals := CategoryTotals(expenses)

	wantOrder := []string{"Comida", "Transporte", "Salud"}
	if len(totals) != len(wantOrder) {
		t.Fatalf("got %d categories, want %d", len(totals), len(wantOrder))
	}
	for i, category := range wantOrder {
		if totals[i].Category != category {
			t.Errorf("totals[%d].Category = %s, want %s (first-occurrence order)", i, totals[i].Category, category)
		}
	}
	if totals[0].Total != 125 {
		t.Errorf("Comida total = %v, want 125", totals[0].Total)
	}

	var sum float64
	for _, total := range totals {
		sum += total.Total
	}
	if sum != TotalSpent(expenses) {
		t.Errorf("category totals sum = %v, want totalSpent = %v", sum, TotalSpent(expenses))
	}
}

func TestCategoryTotalsEmptyLedger(t *testing.T) {
	if totals := CategoryTotals(nil); len(totals) != 0 {
		t.Errorf("expected no categories for an empty ledger, got %v", totals)
	}
}

func TestRanking(t *testing.T) {
	expenses := []Expense{
		expenseARS("Comida", 100),
		expenseARS("Transporte", 300),
		expenseARS("Salud", 100), // ties with Comida, must stay after it
		expenseARS("Ropa", 200),
	}

	ranking := Ranking(expenses)

	wantOrder := []string{"Transporte", "Ropa", "Comida", "Salud"}
	if len(ranking) != len(wantOrder) {
		t.Fatalf("got %d entries, want %d", len(ranking), len(wantOrder))
	}
	seen := map[string]bool{}
	for i, entry := range ranking {
		if entry.Category != wantOrder[i] {
			t.Errorf("ranking[%d] = %s, want %s", i, entry.Category, wantOrder[i])
		}
		if seen[entry.Category] {
			t.Errorf("category %s appears twice in ranking", entry.Category)
		}
		seen[entry.Category] = true
	}
	for i := 1; i < len(ranking); i++ {
		if ranking[i].Total > ranking[i-1].Total {
			t.Errorf("ranking not sorted descending at %d: %v > %v", i, ranking[i].Total, ranking[i-1].Total)
		}
	}
}

func TestConvertToLocal(t *testing.T) {
	available := fx.Snapshot{Source: "oficial", Buy: 950, Sell: 1000}
	unavailable := fx.Snapshot{Source: "oficial"}

	tests := []struct {
		name     string
		amount   float64
		currency Currency
		snap     fx.Snapshot
		want     float64
		wantCode string
	}{
		{name: "ARS identity", amount: 123.45, currency: CurrencyARS, snap: unavailable, want: 123.45},
		{name: "USD uses sell rate", amount: 2, currency: CurrencyUSD, snap: available, want: 2000},
		{name: "USD without rate", amount: 2, currency: CurrencyUSD, snap: unavailable, wantCode: appErrors.ErrRateUnavailable},
		{name: "USD non-finite product", amount: math.MaxFloat64, currency: CurrencyUSD, snap: available, wantCode: appErrors.ErrConversionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertToLocal(tt.amount, tt.currency, tt.snap)
			if tt.wantCode != "" {
				if !appErrors.IsCode(err, tt.wantCode) {
					t.Fatalf("got error %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ConvertToLocal() = %v, want %v", got, tt.want)
			}
		})
	}
}
