// Package metrics exposes Prometheus counters for ledger activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "splitledger"

var (
	// DebtUpdates counts debt ledger updates by outcome
	// (created, increased, cancelled, reduced, reversed).
	DebtUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "debt_updates_total",
		Help:      "Debt ledger updates by outcome.",
	}, []string{"outcome"})

	// ExpensesCreated counts persisted expenses by scope (direct or group).
	ExpensesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "expenses_created_total",
		Help:      "Expenses applied to the ledgers.",
	}, []string{"scope"})

	// GroupBalanceUpdates counts writes to the group balance ledger.
	GroupBalanceUpdates = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "group_balance_updates_total",
		Help:      "Group balance rows adjusted or set.",
	})

	// SettlementTransactions counts payments recorded by group settlements.
	SettlementTransactions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "settlement_transactions_total",
		Help:      "Payments emitted by group settlements.",
	})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
