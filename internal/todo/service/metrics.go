package service

import "github.com/AlibekovAA/todo-api/internal/observability/metrics"

func recordOperation(operation, result string) {
	metrics.TodoOperationsTotal.WithLabelValues(operation, result).Inc()
}
