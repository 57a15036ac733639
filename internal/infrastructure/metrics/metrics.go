package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transfer metrics
	TransfersCreated prometheus.Counter
	TransferAmount   prometheus.Histogram
	TransferErrors   *prometheus.CounterVec

	// Shift metrics
	ShiftsOpened  prometheus.Counter
	ShiftsClosed  prometheus.Counter
	ShiftVariance prometheus.Histogram

	// Settlement metrics
	CardBatchesSettled prometheus.Counter
	CardFeesTotal      prometheus.Counter
	DebtsCollected     prometheus.Counter
	PartnerSettlements prometheus.Counter
	PayrollDisbursed   prometheus.Counter

	// Expense metrics
	ExpensesLogged    prometheus.Counter
	RecurringFired    prometheus.Counter
	RecurringFailures prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Outbox metrics
	EventsPublished prometheus.Counter
	PublishFailures prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Transfer metrics
		TransfersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tillbook_transfers_created_total",
			Help: "Total number of ledger transfers recorded",
		}),
		TransferAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tillbook_transfer_amount",
			Help:    "Transfer amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
		}),
		TransferErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tillbook_transfer_errors_total",
				Help: "Total number of transfer errors by type",
			},
			[]string{"error_type"},
		),

		// Shift metrics
		ShiftsOpened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tillbook_shifts_opened_total",
			Help: "Total number of register shifts opened",
		}),
		ShiftsClosed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tillbook_shifts_closed_total",
			Help: "Total number of register shifts closed",
		}),
		ShiftVariance: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tillbook_shift_variance",
			Help:    "Cash variance recorded at shift close",
			Buckets: []float64{-100, -50, -10, -1, 0, 1, 10, 50, 100},
		}),

		// Settlement metrics
		CardBatchesSettled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tillbook_card_batches_settled_total",
			Help: "Total number of card batches reconciled",
		}),
		CardFeesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tillbook_card_fees_total",
			Help: "Cumulative card processing fees absorbed",
		}),
		DebtsCollected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tillbook_debts_collected_total",
			Help: "Total number of client debt collections",
		}),
		PartnerSettlements: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tillbook_partner_settlements_total",
			Help: "Total number of partner sales settled",
		}),
		PayrollDisbursed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tillbook_payroll_disbursed_total",
			Help: "Total number of payroll disbursements",
		}),

		// Expense metrics
		ExpensesLogged: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tillbook_expenses_logged_total",
			Help: "Total number of expenses logged",
		}),
		RecurringFired: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tillbook_recurring_expenses_fired_total",
			Help: "Total number of recurring expenses generated",
		}),
		RecurringFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tillbook_recurring_expenses_failures_total",
			Help: "Total number of recurring expense generation failures",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tillbook_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tillbook_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tillbook_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "tillbook_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tillbook_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Outbox metrics
		EventsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tillbook_events_published_total",
			Help: "Total outbox events published",
		}),
		PublishFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tillbook_events_publish_failures_total",
			Help: "Total outbox publish failures",
		}),
	}
}
