package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"gastos/api"
	"gastos/internal/budget"
	"gastos/internal/categories"
	"gastos/internal/fx"
	"gastos/internal/storage"
	"gastos/logging"

	"github.com/0xcafe-io/iz"
	"github.com/rs/cors"
)

var corsConf = cors.New(cors.Options{
	AllowedOrigins:   []string{"*"},
	AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	AllowedHeaders:   []string{"Authorization", "Content-Type"},
	AllowCredentials: true,
})

func newKV() (storage.KV, error) {
	backend := os.Getenv("STORAGE_BACKEND")
	if backend == "" {
		backend = "sqlite"
	}

	switch backend {
	case "mysql":
		db, err := storage.Init()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize mysql storage: %w", err)
		}
		return storage.NewMySQLKV(db), nil
	case "sqlite":
		db, err := storage.InitSQLite(os.Getenv("SQLITE_DB_PATH"))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sqlite storage: %w", err)
		}
		return storage.NewSQLiteKV(db), nil
	case "memory":
		return storage.NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND: '%s'", backend)
	}
}

func fxCacheTTL() time.Duration {
	raw := os.Getenv("FX_CACHE_TTL")
	if raw == "" {
		return fx.DefaultMaxAge
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil {
		logging.Logger.Warnf("invalid FX_CACHE_TTL '%s', using default %s", raw, fx.DefaultMaxAge)
		return fx.DefaultMaxAge
	}
	return ttl
}

func main() {
	if err := logging.Init(os.Getenv("LOG_LEVEL")); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		return
	}

	logging.Logger.Info("application starting...")

	kv, err := newKV()
	if err != nil {
		logging.Logger.Errorf("failed to initialize storage: %v", err)
		return
	}

	rates := fx.NewService(fx.NewClient(os.Getenv("FX_API_URL")), fxCacheTTL())
	bt := budget.NewBudgetTracker(storage.NewStore(kv), rates)

	if err := bt.Load(context.Background()); err != nil {
		logging.Logger.Errorf("failed to load ledger: %v", err)
		return
	}

	// The rate source being down must not prevent startup; ARS entries
	// stay usable and USD entries report RATE_UNAVAILABLE.
	source := os.Getenv("FX_DEFAULT_SOURCE")
	if _, err := rates.Refresh(context.Background(), source, false); err != nil {
		logging.Logger.Warnf("initial rate refresh failed: %v", err)
	}

	cats := categories.Load(os.Getenv("CATEGORIES_FILE"))

	server := http.NewServeMux()
	api := api.NewApi(bt, rates, cats)

	// INCOME & SUMMARY ENDPOINTS.
	server.HandleFunc("PUT /api/income", iz.Bind(api.SetIncomeHandler)) // Set monthly income
	server.HandleFunc("GET /api/summary", iz.Bind(api.GetSummaryHandler))

	// EXPENSE ENDPOINTS.
	server.HandleFunc("GET /api/expenses", iz.Bind(api.ListExpensesHandler))
	server.HandleFunc("POST /api/expenses", iz.Bind(api.CreateExpenseHandler))
	server.HandleFunc("DELETE /api/expenses/{id}", iz.Bind(api.DeleteExpenseHandler))
	server.HandleFunc("DELETE /api/expenses", iz.Bind(api.ClearExpensesHandler)) // Clear all

	// RATE & CATEGORY ENDPOINTS.
	server.HandleFunc("GET /api/rates", iz.Bind(api.GetRatesHandler))
	server.HandleFunc("POST /api/rates/refresh", iz.Bind(api.RefreshRatesHandler))
	server.HandleFunc("GET /api/categories", iz.Bind(api.ListCategoriesHandler))

	port := os.Getenv("APP_PORT")
	if port == "" {
		logging.Logger.Info("APP_PORT environment variable not set, using default port 8080")
		port = "8080"
	}
	fmt.Println("Starting server on port: ", port)
	handlerWithCors := corsConf.Handler(server)
	if err := http.ListenAndServe(":"+port, handlerWithCors); err != nil {
		logging.Logger.Errorf("failed to start server: %v", err)
		return
	}
}
