package ports

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/kernel"
)

// IdentityProvider exposes the acting user of the current request.
type IdentityProvider interface {
	// CurrentActor returns the authenticated user, or the system actor.
	CurrentActor(ctx context.Context) kernel.Actor
}

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}
