package storage

import (
	"context"
	"encoding/json"
	"math"
	"strconv"

	budgetModel "gastos/internal/budget"
	"gastos/logging"
)

// The ledger is persisted under exactly two string-valued keys: the
// income as a decimal string and the expense sequence as a JSON array.
const (
	incomeKey   = "income"
	expensesKey = "expenses"
)

// KV is the minimal string key-value contract a backend has to offer.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Type() string
}

// Store adapts a KV backend to the ledger's storage contract. Reads
// degrade silently to defaults on missing or corrupt payloads so
// startup never fails on bad data; write errors propagate.
type Store struct {
	kv KV
}

func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

func (s *Store) GetStorageType() string {
	return s.kv.Type()
}

func (s *Store) LoadIncome(ctx context.Context) (float64, error) {
	raw, ok, err := s.kv.Get(ctx, incomeKey)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	// ParseFloat accepts "NaN" and "Inf"; income must stay a
	// non-negative finite number or every aggregate goes non-finite.
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		logging.Logger.Warnf("corrupt income value %q in %s storage, defaulting to 0", raw, s.kv.Type())
		return 0, nil
	}
	return value, nil
}

func (s *Store) SaveIncome(ctx context.Context, value float64) error {
	return s.kv.Set(ctx, incomeKey, strconv.FormatFloat(value, 'f', -1, 64))
}

func (s *Store) LoadExpenses(ctx context.Context) ([]budgetModel.Expense, error) {
	raw, ok, err := s.kv.Get(ctx, expensesKey)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var expenses []budgetModel.Expense
	if err := json.Unmarshal([]byte(raw), &expenses); err != nil {
		logging.Logger.Warnf("corrupt expenses payload in %s storage, defaulting to empty: %v", s.kv.Type(), err)
		return nil, nil
	}
	return expenses, nil
}

func (s *Store) SaveExpenses(ctx context.Context, expenses []budgetModel.Expense) error {
	if expenses == nil {
		expenses = []budgetModel.Expense{}
	}
	payload, err := json.Marshal(expenses)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, expensesKey, string(payload))
}
