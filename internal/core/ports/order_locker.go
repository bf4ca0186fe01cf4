package ports

import (
	"context"

	"workshop/internal/core/domain/model/kernel"
)

// Unlock releases a lock obtained from OrderLocker.
type Unlock func(ctx context.Context) error

// OrderLocker serialises transitions of a single order. Different orders
// never contend.
type OrderLocker interface {
	// Lock waits until the order is free or ctx is done. When ctx ends first
	// it returns errs.ErrOrderIsBusy.
	Lock(ctx context.Context, id kernel.UUID) (Unlock, error)
}
