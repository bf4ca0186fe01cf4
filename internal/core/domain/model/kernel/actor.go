package kernel

import (
	"strings"

	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

// SystemActorName stamps changes made without an identified user.
const SystemActorName = "System"

var ErrActorIsNotConstructed = errs.NewValueIsRequiredError("Actor must be created via NewActor or SystemActor")

// Actor is the display identity stamped on history entries, amendments and
// delivery proofs.
type Actor struct {
	name  string
	guard guard.ConstructorGuard
}

// NewActor trims name and rejects blanks.
func NewActor(name string) (Actor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Actor{}, errs.NewValueIsRequiredError("actor")
	}
	return Actor{name: name, guard: guard.NewConstructorGuard()}, nil
}

// ActorOrSystem returns the named actor, or SystemActor when name is blank.
func ActorOrSystem(name string) Actor {
	a, err := NewActor(name)
	if err != nil {
		return SystemActor()
	}
	return a
}

func SystemActor() Actor {
	return Actor{name: SystemActorName, guard: guard.NewConstructorGuard()}
}

func (a Actor) Name() string {
	return a.name
}

func (a Actor) String() string {
	return a.name
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}
