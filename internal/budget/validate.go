package budget

import (
	"math"
	"strings"

	appErrors "gastos/errors"
	"gastos/internal/fx"
)

// ValidateNewExpense gates expense creation. Checks run in a fixed
// order and the first failing one wins, because the reported message is
// user-facing: category presence, amount positivity, rate availability
// for USD, convertibility, and the balance cap. The balance cap is only
// enforced once an income is set.
func ValidateNewExpense(category string, amount float64, currency Currency, snap fx.Snapshot, income float64, balance float64) error {
	if strings.TrimSpace(category) == "" {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrMissingCategory,
			Message: "Pick a category first.",
		}
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidAmount,
			Message: "Enter a valid amount greater than 0.",
		}
	}
	if currency == CurrencyUSD && !snap.HasSellRate() {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrRateUnavailable,
			Message: "No exchange rate available for USD, refresh or use ARS.",
		}
	}

	amountLocal, err := ConvertToLocal(amount, currency, snap)
	if err != nil {
		return err
	}

	if income > 0 && amountLocal > balance {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrExceedsBalance,
			Message: "That expense exceeds the available balance.",
		}
	}
	return nil
}
