package commands

import (
	"context"
	"errors"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
)

// ClockFunc adapts a function to ports.Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// storeError keeps not-found and validation errors as they are and reports
// everything else from a repository, store or commit as a persistence failure.
func storeError(operation string, err error) error {
	if err == nil || errors.Is(err, errs.ErrObjectNotFound) || errs.IsValidation(err) {
		return err
	}
	return errs.AsPersistenceFailure(operation, err)
}

// resolveActor prefers an explicitly named actor and falls back to the
// identity of the current request.
func resolveActor(ctx context.Context, identity ports.IdentityProvider, name string) kernel.Actor {
	if a, err := kernel.NewActor(name); err == nil {
		return a
	}
	if identity != nil {
		return identity.CurrentActor(ctx)
	}
	return kernel.SystemActor()
}
