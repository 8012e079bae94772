package budget

import (
	"math"
	"testing"

	appErrors "gastos/errors"
	"gastos/internal/fx"
)

func TestValidateNewExpense(t *testing.T) {
	withRate := fx.Snapshot{Source: "oficial", Buy: 950, Sell: 1000}
	noRate := fx.Snapshot{Source: "oficial"}

	tests := []struct {
		name     string
		category string
		amount   float64
		currency Currency
		snap     fx.Snapshot
		income   float64
		balance  float64
		wantCode string
	}{
		{
			name:     "missing category wins over bad amount",
			category: " ",
			amount:   -5,
			currency: CurrencyARS,
			snap:     withRate,
			wantCode: appErrors.ErrMissingCategory,
		},
		{
			name:     "zero amount",
			category: "Comida",
			amount:   0,
			currency: CurrencyARS,
			snap:     withRate,
			wantCode: appErrors.ErrInvalidAmount,
		},
		{
			name:     "non-finite amount",
			category: "Comida",
			amount:   math.NaN(),
			currency: CurrencyARS,
			snap:     withRate,
			wantCode: appErrors.ErrInvalidAmount,
		},
		{
			name:     "USD without usable sell rate",
			category: "Comida",
			amount:   10,
			currency: CurrencyUSD,
			snap:     noRate,
			income:   100000,
			balance:  100000,
			wantCode: appErrors.ErrRateUnavailable,
		},
		{
			name:     "exceeds balance with income set",
			category: "Comida",
			amount:   500,
			currency: CurrencyARS,
			snap:     withRate,
			income:   1000,
			balance:  300,
			wantCode: appErrors.ErrExceedsBalance,
		},
		{
			name:     "converted USD amount exceeds balance",
			category: "Comida",
			amount:   1, // 1 USD = 1000 ARS > balance 900
			currency: CurrencyUSD,
			snap:     withRate,
			income:   1000,
			balance:  900,
			wantCode: appErrors.ErrExceedsBalance,
		},
		{
			name:     "balance cap skipped before income is set",
			category: "Comida",
			amount:   500,
			currency: CurrencyARS,
			snap:     withRate,
			income:   0,
			balance:  -200,
		},
		{
			name:     "valid ARS expense",
			category: "Comida",
			amount:   100,
			currency: CurrencyARS,
			snap:     noRate, // rate not needed for ARS
			income:   1000,
			balance:  800,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNewExpense(tt.category, tt.amount, tt.currency, tt.snap, tt.income, tt.balance)
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !appErrors.IsCode(err, tt.wantCode) {
				t.Errorf("got error %v, want code %s", err, tt.wantCode)
			}
		})
	}
}
