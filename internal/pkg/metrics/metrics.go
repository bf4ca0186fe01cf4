// Package metrics holds the engine's Prometheus collectors. Collectors are
// registered with the default registry on import and are safe for concurrent use.
//
//   - workshop_stage_transitions_total{stage, outcome}: every transition attempt,
//     labelled with the requested stage and an outcome class
//   - workshop_orders_overdue: undelivered orders past their expected day, as of
//     the last overdue scan
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"workshop/internal/pkg/errs"
)

// Outcome classes used as the outcome label.
const (
	OutcomeOK                 = "ok"
	OutcomeValidation         = "validation"
	OutcomeNotFound           = "not_found"
	OutcomeInvalidTransition  = "invalid_transition"
	OutcomeMissingProof       = "missing_proof"
	OutcomeBusy               = "busy"
	OutcomePersistenceFailure = "persistence_failure"
	OutcomeError              = "error"
)

var (
	stageTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workshop_stage_transitions_total",
			Help: "Stage transition attempts by target stage and outcome.",
		},
		[]string{"stage", "outcome"},
	)

	ordersOverdue = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "workshop_orders_overdue",
			Help: "Undelivered orders whose expected delivery day has passed.",
		},
	)
)

func init() {
	prometheus.MustRegister(stageTransitions, ordersOverdue)
}

// RecordTransition counts one transition attempt towards stage.
func RecordTransition(stage string, err error) {
	stageTransitions.WithLabelValues(stage, Outcome(err)).Inc()
}

// SetOverdue publishes the latest overdue count.
func SetOverdue(n int) {
	ordersOverdue.Set(float64(n))
}

// Outcome classifies err into one of the Outcome constants. Persistence
// failures take precedence since they may wrap any other cause.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, errs.ErrPersistenceFailure):
		return OutcomePersistenceFailure
	case errors.Is(err, errs.ErrOrderIsBusy):
		return OutcomeBusy
	case errors.Is(err, errs.ErrInvalidTransition):
		return OutcomeInvalidTransition
	case errors.Is(err, errs.ErrMissingProof):
		return OutcomeMissingProof
	case errors.Is(err, errs.ErrObjectNotFound):
		return OutcomeNotFound
	case errs.IsValidation(err):
		return OutcomeValidation
	default:
		return OutcomeError
	}
}
