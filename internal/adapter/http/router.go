package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/osteria/tillbook/internal/adapter/http/handler"
	"github.com/osteria/tillbook/internal/adapter/http/middleware"
	"github.com/osteria/tillbook/internal/infrastructure/metrics"
	"github.com/osteria/tillbook/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler   *handler.AccountHandler
	TransferHandler  *handler.TransferHandler
	ShiftHandler     *handler.ShiftHandler
	CardReconHandler *handler.CardReconHandler
	DebtHandler      *handler.DebtHandler
	PartnerHandler   *handler.PartnerHandler
	PayrollHandler   *handler.PayrollHandler
	ExpenseHandler   *handler.ExpenseHandler
	HealthHandler    *handler.HealthHandler

	IdempotencyStore usecase.IdempotencyStore
	Metrics          *metrics.Metrics
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}
	r.Use(middleware.Actor)

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Post("/{id}/adjust", cfg.AccountHandler.Adjust)
			r.Get("/{id}/transactions", cfg.AccountHandler.ListTransactions)
		})

		// Transfers
		r.Route("/transfers", func(r chi.Router) {
			r.Post("/", cfg.TransferHandler.Create)
			r.Get("/", cfg.TransferHandler.List)
			r.Get("/{id}", cfg.TransferHandler.Get)
		})

		// Shifts
		r.Route("/shifts", func(r chi.Router) {
			r.Post("/open", cfg.ShiftHandler.Open)
			r.Get("/current", cfg.ShiftHandler.Current)
			r.Post("/topup", cfg.ShiftHandler.TopUp)
			r.Post("/bankdrop", cfg.ShiftHandler.BankDrop)
			r.Post("/expense", cfg.ShiftHandler.QuickExpense)
			r.Post("/close/preview", cfg.ShiftHandler.Preview)
			r.Post("/close", cfg.ShiftHandler.Close)
		})

		// Card reconciliation
		r.Route("/cards", func(r chi.Router) {
			r.Get("/pending", cfg.CardReconHandler.Pending)
			r.Post("/settle", cfg.CardReconHandler.Settle)
		})

		// Client debts
		r.Route("/debts", func(r chi.Router) {
			r.Get("/", cfg.DebtHandler.Outstanding)
			r.Post("/collect", cfg.DebtHandler.Collect)
		})
		r.Route("/customers", func(r chi.Router) {
			r.Post("/", cfg.DebtHandler.CreateCustomer)
			r.Get("/", cfg.DebtHandler.ListCustomers)
		})

		// Partner ledger
		r.Route("/partner/sales", func(r chi.Router) {
			r.Post("/", cfg.PartnerHandler.Record)
			r.Get("/pending", cfg.PartnerHandler.Pending)
			r.Post("/{id}/settle", cfg.PartnerHandler.Settle)
		})

		// Staff and payroll
		r.Route("/staff", func(r chi.Router) {
			r.Post("/", cfg.PayrollHandler.CreateStaff)
			r.Get("/", cfg.PayrollHandler.ListStaff)
			r.Get("/{id}/advances", cfg.PayrollHandler.Advances)
		})
		r.Route("/payroll", func(r chi.Router) {
			r.Post("/advance", cfg.PayrollHandler.IssueAdvance)
			r.Post("/preview", cfg.PayrollHandler.Preview)
			r.Post("/disburse", cfg.PayrollHandler.Disburse)
		})

		// Expenses
		r.Route("/expenses", func(r chi.Router) {
			r.Post("/", cfg.ExpenseHandler.Log)
			r.Get("/templates", cfg.ExpenseHandler.Templates)
			r.Delete("/templates/{id}", cfg.ExpenseHandler.DeleteTemplate)
			r.Get("/bills", cfg.ExpenseHandler.Bills)
			r.Post("/bills/{id}/settle", cfg.ExpenseHandler.SettleBill)
		})
	})

	return r
}
