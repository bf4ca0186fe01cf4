package http

import (
	"context"
	"strings"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ActorHeader carries the display name of the acting user.
const ActorHeader = "X-Actor"

type actorKey struct{}

var _ ports.IdentityProvider = HeaderIdentity{}

// HeaderIdentity reads the actor stored by ActorMiddleware.
type HeaderIdentity struct{}

func (HeaderIdentity) CurrentActor(ctx context.Context) kernel.Actor {
	if a, ok := ctx.Value(actorKey{}).(kernel.Actor); ok {
		return a
	}
	return kernel.SystemActor()
}

// WithActor returns ctx carrying the actor named name, or the system actor
// when name is blank.
func WithActor(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, actorKey{}, kernel.ActorOrSystem(strings.TrimSpace(name)))
}

// ActorMiddleware resolves the acting user from the X-Actor header and tags
// the request logger with it.
func ActorMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := WithActor(c.Request().Context(), c.Request().Header.Get(ActorHeader))
			actor := HeaderIdentity{}.CurrentActor(ctx)
			ctx = logger.With(ctx, "actor", actor.Name())
			c.Set("actor", actor.Name())
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
