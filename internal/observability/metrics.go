// Package observability holds the Prometheus collectors exported by the tracker.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Operation results recorded by RecordWorkoutOperation.
const (
	ResultOK        = "ok"
	ResultForbidden = "forbidden"
	ResultNotFound  = "not_found"
	ResultInvalid   = "invalid"
	ResultError     = "error"
)

var workoutOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "workout_tracker",
	Subsystem: "workouts",
	Name:      "operations_total",
	Help:      "Workout manager operations by operation and result.",
}, []string{"operation", "result"})

func init() {
	prometheus.MustRegister(workoutOperations)
}

// RecordWorkoutOperation counts one manager operation outcome.
func RecordWorkoutOperation(operation, result string) {
	workoutOperations.WithLabelValues(operation, result).Inc()
}
