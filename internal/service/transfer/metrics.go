package transfer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var TransfersDispatchedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "transfer_requests_dispatched_total",
		Help: "Total number of transfer requests handed to the ledger by tag and result",
	},
	[]string{"tag", "result"},
)
