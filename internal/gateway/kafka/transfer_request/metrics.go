package transfer_request

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var MessagesPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_published_total",
		Help: "Total number of messages sent to Kafka by topic and result",
	},
	[]string{"topic", "result"},
)
