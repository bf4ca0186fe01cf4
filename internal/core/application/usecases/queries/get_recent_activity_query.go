package queries

import (
	"errors"

	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

const (
	DefaultRecentLimit = 10
	MaxRecentLimit     = 100
)

var ErrGetRecentActivityQueryIsNotConstructed = errors.New(
	"GetRecentActivityQuery must be created via NewGetRecentActivityQuery constructor",
)

// GetRecentActivityQuery asks for the newest orders. A zero limit means
// DefaultRecentLimit.
type GetRecentActivityQuery struct {
	limit int
	guard guard.ConstructorGuard
}

func NewGetRecentActivityQuery(limit int) (GetRecentActivityQuery, error) {
	if limit == 0 {
		limit = DefaultRecentLimit
	}
	if limit < 1 || limit > MaxRecentLimit {
		return GetRecentActivityQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxRecentLimit)
	}
	return GetRecentActivityQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRecentActivityQuery) Validate() error {
	return q.guard.Validate(ErrGetRecentActivityQueryIsNotConstructed)
}

func (q GetRecentActivityQuery) Limit() int {
	return q.limit
}
