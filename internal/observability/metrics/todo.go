package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var TodoOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "todo_operations_total",
		Help: "Total number of todo operations by operation and result",
	},
	[]string{"operation", "result"},
)
