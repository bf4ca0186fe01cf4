package queries

import (
	"errors"

	"workshop/internal/pkg/guard"
)

var ErrGetTodayMetricsQueryIsNotConstructed = errors.New(
	"GetTodayMetricsQuery must be created via NewGetTodayMetricsQuery constructor",
)

// GetTodayMetricsQuery asks for the current day's intake and handovers.
type GetTodayMetricsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetTodayMetricsQuery() GetTodayMetricsQuery {
	return GetTodayMetricsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetTodayMetricsQuery) Validate() error {
	return q.guard.Validate(ErrGetTodayMetricsQueryIsNotConstructed)
}
