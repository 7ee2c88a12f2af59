package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "travel_ledger"

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	ExpenseMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "expense_mutations_total",
		Help:      "Committed expense mutations by operation.",
	}, []string{"operation"})

	BudgetAdjustments = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "budget_spent_adjustments_total",
		Help:      "Atomic increments applied to budget spent totals.",
	})

	BudgetDrift = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "budget_reconciled_drift_total",
		Help:      "Budgets whose spent total differed from their expenses on reconcile.",
	})

	EventPublishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "expense_event_publish_failures_total",
		Help:      "Expense events that could not be published.",
	})
)
