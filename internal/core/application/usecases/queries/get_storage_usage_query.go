package queries

import (
	"errors"

	"workshop/internal/pkg/guard"
)

var ErrGetStorageUsageQueryIsNotConstructed = errors.New(
	"GetStorageUsageQuery must be created via NewGetStorageUsageQuery constructor",
)

type GetStorageUsageQuery struct {
	guard guard.ConstructorGuard
}

func NewGetStorageUsageQuery() GetStorageUsageQuery {
	return GetStorageUsageQuery{guard: guard.NewConstructorGuard()}
}

func (q GetStorageUsageQuery) Validate() error {
	return q.guard.Validate(ErrGetStorageUsageQueryIsNotConstructed)
}
