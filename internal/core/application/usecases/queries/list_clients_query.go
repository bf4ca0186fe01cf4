package queries

import (
	"errors"
	"strings"

	"workshop/internal/pkg/guard"
)

var ErrListClientsQueryIsNotConstructed = errors.New(
	"ListClientsQuery must be created via NewListClientsQuery constructor",
)

// ListClientsQuery lists clients by name. Search matches the name or the
// phone, ignoring case.
type ListClientsQuery struct {
	search string
	guard  guard.ConstructorGuard
}

func NewListClientsQuery(search string) ListClientsQuery {
	return ListClientsQuery{search: strings.TrimSpace(search), guard: guard.NewConstructorGuard()}
}

func (q ListClientsQuery) Validate() error {
	return q.guard.Validate(ErrListClientsQueryIsNotConstructed)
}

func (q ListClientsQuery) Search() string {
	return q.search
}
