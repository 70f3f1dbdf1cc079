package escrow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StatusTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "escrow_status_transitions_total",
			Help: "Total number of committed contract status transitions",
		},
		[]string{"from", "to"},
	)

	ActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "escrow_actions_total",
			Help: "Total number of accepted contract actions",
		},
		[]string{"action"},
	)

	CancellationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "escrow_cancellations_total",
			Help: "Total number of cancellation attempts by role and outcome",
		},
		[]string{"role", "outcome"},
	)

	StaleTransfersReturnedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "escrow_stale_transfers_returned_total",
			Help: "Confirmed pulls the contract no longer needed, sent back to the payer",
		},
		[]string{"tag"},
	)
)
