package budget

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	appErrors "gastos/errors"
	"gastos/internal/fx"
	"gastos/logging"

	"github.com/google/uuid"
)

const MAX_EXPENSE_DESCRIPTION_LENGTH = 1000

// Storage persists the ledger. Reads degrade to defaults on
// missing/corrupt data; writes must fail loudly so a mutation is never
// reported applied without being durable.
type Storage interface {
	LoadIncome(ctx context.Context) (float64, error)
	SaveIncome(ctx context.Context, value float64) error
	LoadExpenses(ctx context.Context) ([]Expense, error)
	SaveExpenses(ctx context.Context, expenses []Expense) error
	GetStorageType() string
}

// RateProvider is the exchange-rate cache as seen by the ledger.
type RateProvider interface {
	Refresh(ctx context.Context, source string, force bool) (fx.Snapshot, error)
	Snapshot() fx.Snapshot
}

// BudgetTracker owns the income value and the ordered expense
// sequence. Every mutation is persisted before it is applied in
// memory. The mutex is needed because the HTTP host serves requests
// concurrently.
type BudgetTracker struct {
	mu          sync.Mutex
	storage     Storage
	rates       RateProvider
	StorageType string

	income   float64
	expenses []Expense
}

func NewBudgetTracker(s Storage, rates RateProvider) *BudgetTracker {
	return &BudgetTracker{
		storage:     s,
		rates:       rates,
		StorageType: s.GetStorageType(),
	}
}

// Load reads the persisted ledger at startup. Corrupt payloads have
// already been degraded to defaults by the storage layer.
func (bt *BudgetTracker) Load(ctx context.Context) error {
	income, err := bt.storage.LoadIncome(ctx)
	if err != nil {
		return fmt.Errorf("failed to load income: %w", err)
	}
	expenses, err := bt.storage.LoadExpenses(ctx)
	if err != nil {
		return fmt.Errorf("failed to load expenses: %w", err)
	}

	bt.mu.Lock()
	bt.income = income
	bt.expenses = expenses
	bt.mu.Unlock()

	logging.Logger.Infof("ledger loaded: income=%.2f expenses=%d storage=%s", income, len(expenses), bt.StorageType)
	return nil
}

// SetIncome replaces the income wholesale.
func (bt *BudgetTracker) SetIncome(ctx context.Context, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidAmount,
			Message: "Enter a valid income of 0 or more.",
		}
	}

	bt.mu.Lock()
	defer bt.mu.Unlock()

	if err := bt.storage.SaveIncome(ctx, value); err != nil {
		return fmt.Errorf("failed to persist income: %w", err)
	}
	bt.income = value
	return nil
}

// AddExpense validates and appends a new expense. For USD entries the
// rate is refreshed first (non-forced): refresh-then-validate is a
// strict sequential dependency, and the refresh runs before the ledger
// lock is taken so other mutations are not blocked by the network.
func (bt *BudgetTracker) AddExpense(ctx context.Context, req ExpenseRequest) (Expense, error) {
	snap := bt.rates.Snapshot()
	if req.Currency == CurrencyUSD {
		// Failure is surfaced by validation as RATE_UNAVAILABLE below.
		snap, _ = bt.rates.Refresh(ctx, "", false)
	}

	bt.mu.Lock()
	defer bt.mu.Unlock()

	if err := ValidateNewExpense(req.Category, req.Amount, req.Currency, snap, bt.income, Balance(bt.income, bt.expenses)); err != nil {
		return Expense{}, err
	}

	if len(req.Description) > MAX_EXPENSE_DESCRIPTION_LENGTH {
		return Expense{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Description too long, maximum allowed length is: %d", MAX_EXPENSE_DESCRIPTION_LENGTH),
		}
	}

	amountLocal, err := ConvertToLocal(req.Amount, req.Currency, snap)
	if err != nil {
		return Expense{}, err
	}

	description := req.Description
	if description == "" {
		description = DefaultDescription
	}

	expense := Expense{
		ID:          uuid.New().String(),
		Category:    req.Category,
		Amount:      req.Amount,
		Currency:    req.Currency,
		AmountLocal: amountLocal,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	if req.Currency == CurrencyUSD {
		expense.RateSourceUsed = snap.Source
		expense.RateAtCreation = snap.Sell
	}

	next := append(append([]Expense{}, bt.expenses...), expense)
	if err := bt.storage.SaveExpenses(ctx, next); err != nil {
		return Expense{}, fmt.Errorf("failed to persist expense: %w", err)
	}
	bt.expenses = next
	return expense, nil
}

// RemoveExpense removes the matching entry. An absent id is a no-op,
// not an error.
func (bt *BudgetTracker) RemoveExpense(ctx context.Context, id string) error {
	bt.mu.Lock()
	defer bt.mu.Unlock()

	next := make([]Expense, 0, len(bt.expenses))
	found := false
	for _, expense := range bt.expenses {
		if expense.ID == id {
			found = true
			continue
		}
		next = append(next, expense)
	}
	if !found {
		return nil
	}

	if err := bt.storage.SaveExpenses(ctx, next); err != nil {
		return fmt.Errorf("failed to persist expense removal: %w", err)
	}
	bt.expenses = next
	return nil
}

// ClearExpenses empties the expense sequence; income is untouched.
func (bt *BudgetTracker) ClearExpenses(ctx context.Context) error {
	bt.mu.Lock()
	defer bt.mu.Unlock()

	if err := bt.storage.SaveExpenses(ctx, []Expense{}); err != nil {
		return fmt.Errorf("failed to persist expense clear: %w", err)
	}
	bt.expenses = nil
	return nil
}

// Income returns the current income value.
func (bt *BudgetTracker) Income() float64 {
	bt.mu.Lock()
	defer bt.mu.Unlock()
	return bt.income
}

// ListExpenses returns the expenses in insertion order.
func (bt *BudgetTracker) ListExpenses() []Expense {
	bt.mu.Lock()
	defer bt.mu.Unlock()
	return append([]Expense{}, bt.expenses...)
}

// GetSummary recomputes all derived aggregates from the current
// ledger.
func (bt *BudgetTracker) GetSummary() Summary {
	bt.mu.Lock()
	defer bt.mu.Unlock()

	return Summary{
		Income:         bt.income,
		TotalSpent:     TotalSpent(bt.expenses),
		Balance:        Balance(bt.income, bt.expenses),
		Status:         Classify(bt.income, bt.expenses),
		CategoryTotals: CategoryTotals(bt.expenses),
		Ranking:        Ranking(bt.expenses),
	}
}
