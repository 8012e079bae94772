package api

import (
	"context"
	"encoding/json"
	"fmt"

	"gastos/internal/budget"
	"gastos/internal/contextutil"
	"gastos/internal/fx"
	"gastos/logging"

	"github.com/0xcafe-io/iz"
	"github.com/google/uuid"
)

type Api struct {
	Service    *budget.BudgetTracker
	Rates      *fx.Service
	Categories []string
}

func NewApi(service *budget.BudgetTracker, rates *fx.Service, categories []string) *Api {
	return &Api{
		Service:    service,
		Rates:      rates,
		Categories: categories,
	}
}

func requestContext(r *iz.Request) context.Context {
	return contextutil.WithTraceID(r.Context(), uuid.New().String())
}

func (api *Api) SetIncomeHandler(r *iz.Request) iz.Responder {
	var req SetIncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		msg := fmt.Sprintf("invalid request body: %s", err.Error())
		return iz.Respond().Status(400).Text(msg)
	}

	if err := api.Service.SetIncome(requestContext(r), req.Amount); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}

	return iz.Respond().Status(200).JSON(SummaryToHttp(api.Service.GetSummary()))
}

func (api *Api) GetSummaryHandler(r *iz.Request) iz.Responder {
	return iz.Respond().Status(200).JSON(SummaryToHttp(api.Service.GetSummary()))
}

func (api *Api) ListExpensesHandler(r *iz.Request) iz.Responder {
	expenses := api.Service.ListExpenses()

	resp := ListExpensesResponse{Expenses: make([]ExpenseItem, 0, len(expenses))}
	for _, expense := range expenses {
		resp.Expenses = append(resp.Expenses, ExpenseToHttp(expense))
	}
	return iz.Respond().Status(200).JSON(resp)
}

func (api *Api) CreateExpenseHandler(r *iz.Request) iz.Responder {
	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		msg := fmt.Sprintf("invalid request body: %s", err.Error())
		return iz.Respond().Status(400).Text(msg)
	}

	currency := budget.Currency(req.Currency)
	if currency == "" {
		currency = budget.CurrencyARS
	}
	if currency != budget.CurrencyARS && currency != budget.CurrencyUSD {
		msg := fmt.Sprintf("invalid currency: '%s'", req.Currency)
		return iz.Respond().Status(400).Text(msg)
	}

	expense, err := api.Service.AddExpense(requestContext(r), budget.ExpenseRequest{
		Category:    req.Category,
		Amount:      req.Amount,
		Currency:    currency,
		Description: req.Description,
	})
	if err != nil {
		logging.Logger.Debugf("expense rejected: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}

	return iz.Respond().Status(201).JSON(ExpenseToHttp(expense))
}

func (api *Api) DeleteExpenseHandler(r *iz.Request) iz.Responder {
	// The route pattern guarantees a non-empty id; an empty segment
	// routes to the clear-all handler instead.
	id := r.PathValue("id")

	if err := api.Service.RemoveExpense(requestContext(r), id); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}
	// Removal of an absent id is a no-op, never an error.
	return iz.Respond().Status(204).Text("")
}

func (api *Api) ClearExpensesHandler(r *iz.Request) iz.Responder {
	if err := api.Service.ClearExpenses(requestContext(r)); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}
	return iz.Respond().Status(204).Text("")
}

func (api *Api) GetRatesHandler(r *iz.Request) iz.Responder {
	snap, err := api.Rates.Refresh(requestContext(r), r.URL.Query().Get("source"), false)
	if err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).JSON(RatesToHttp(snap))
	}
	return iz.Respond().Status(200).JSON(RatesToHttp(snap))
}

func (api *Api) RefreshRatesHandler(r *iz.Request) iz.Responder {
	var req RefreshRatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		msg := fmt.Sprintf("invalid request body: %s", err.Error())
		return iz.Respond().Status(400).Text(msg)
	}

	snap, err := api.Rates.Refresh(requestContext(r), req.Source, req.Force)
	if err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).JSON(RatesToHttp(snap))
	}
	return iz.Respond().Status(200).JSON(RatesToHttp(snap))
}

func (api *Api) ListCategoriesHandler(r *iz.Request) iz.Responder {
	return iz.Respond().Status(200).JSON(ListCategoriesResponse{Categories: api.Categories})
}
