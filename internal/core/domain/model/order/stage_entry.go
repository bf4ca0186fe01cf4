package order

import (
	"errors"
	"strings"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var ErrStageEntryIsNotConstructed = errs.NewValueIsRequiredError("StageEntry must be created via NewStageEntry")

// StageEntry is one immutable line of an order's stage history.
type StageEntry struct {
	stage     Stage
	timestamp time.Time
	updatedBy kernel.Actor
	notes     string

	guard guard.ConstructorGuard
}

func NewStageEntry(stage Stage, timestamp time.Time, updatedBy kernel.Actor, notes string) (StageEntry, error) {
	var tsErr error
	if timestamp.IsZero() {
		tsErr = errs.NewValueIsRequiredError("timestamp")
	}
	if err := errors.Join(stage.Validate(), updatedBy.Validate(), tsErr); err != nil {
		return StageEntry{}, err
	}

	return StageEntry{
		stage:     stage,
		timestamp: timestamp,
		updatedBy: updatedBy,
		notes:     strings.TrimSpace(notes),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (e StageEntry) Validate() error {
	return e.guard.Validate(ErrStageEntryIsNotConstructed)
}

func (e StageEntry) Stage() Stage {
	return e.stage
}

func (e StageEntry) Timestamp() time.Time {
	return e.timestamp
}

func (e StageEntry) UpdatedBy() kernel.Actor {
	return e.updatedBy
}

func (e StageEntry) Notes() string {
	return e.notes
}
