package queries

import (
	"errors"
	"strings"

	"workshop/internal/pkg/guard"
)

var ErrExportDeliveredOrdersQueryIsNotConstructed = errors.New(
	"ExportDeliveredOrdersQuery must be created via NewExportDeliveredOrdersQuery constructor",
)

// ExportDeliveredOrdersQuery renders the billing list as a spreadsheet. The
// search narrows the rows the same way ListDeliveredOrdersQuery does.
type ExportDeliveredOrdersQuery struct {
	search string
	guard  guard.ConstructorGuard
}

func NewExportDeliveredOrdersQuery(search string) ExportDeliveredOrdersQuery {
	return ExportDeliveredOrdersQuery{search: strings.TrimSpace(search), guard: guard.NewConstructorGuard()}
}

func (q ExportDeliveredOrdersQuery) Validate() error {
	return q.guard.Validate(ErrExportDeliveredOrdersQueryIsNotConstructed)
}

func (q ExportDeliveredOrdersQuery) Search() string {
	return q.search
}
