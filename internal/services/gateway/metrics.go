package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultOK          = "ok"
	resultError       = "error"
	resultUnavailable = "unavailable"
)

var insertsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "agenthub_gateway_inserts_total",
	Help: "Insert attempts by table and result",
}, []string{"table", "result"})

func recordInsert(table, result string) {
	insertsTotal.WithLabelValues(table, result).Inc()
}
