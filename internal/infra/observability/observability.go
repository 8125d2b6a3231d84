// Package observability exposes Prometheus metrics for the ledger daemon.
// Metrics are registered with promauto at package init and served through
// the API server's /metrics endpoint when enabled.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Ledger Metrics ─────────────────────────────────────────────────────────

var AssetsCreated = promauto.NewCounter(prometheus.CounterOpts{
	Name: "fleetshare_assets_created_total",
	Help: "Total assets registered.",
})

var RevenueDeposits = promauto.NewCounter(prometheus.CounterOpts{
	Name: "fleetshare_revenue_deposits_total",
	Help: "Total revenue deposit operations.",
})

var RevenueAmount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "fleetshare_revenue_amount_total",
	Help: "Total revenue value deposited, in value units.",
})

var Trades = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "fleetshare_trades_total",
	Help: "Total share trades by side.",
}, []string{"side"})

var Claims = promauto.NewCounter(prometheus.CounterOpts{
	Name: "fleetshare_claims_total",
	Help: "Total successful claim operations.",
})

var PayoutAmount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "fleetshare_payout_amount_total",
	Help: "Total value paid out to holders, in value units.",
})

var ContractBalance = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "fleetshare_contract_balance",
	Help: "Current contract account balance, in value units.",
})
