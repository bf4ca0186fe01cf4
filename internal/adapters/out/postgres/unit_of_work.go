// Package postgres provides the GORM implementation of the unit of work and
// the schema migration for every repository it hands out.
//
// A unit of work wraps one database transaction. Repositories obtained from
// it run inside that transaction and register the aggregates they write.
// After a successful commit the domain events raised by those aggregates are
// handed to the event publisher; a failed publish is logged and never undoes
// the commit.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx) // publishes o's events
package postgres

import (
	"context"

	"workshop/internal/adapters/out/postgres/clientrepo"
	"workshop/internal/adapters/out/postgres/orderrepo"
	"workshop/internal/adapters/out/postgres/settingsrepo"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/logger"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// eventSource is implemented by aggregates that raise domain events.
type eventSource interface {
	DomainEvents() []order.DomainEvent
	ClearDomainEvents()
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
}

// NewGormUnitOfWorkFactory creates a factory. A nil publisher drops events.
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.EventPublisher) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, publisher: publisher}
}

// Create produces a new UnitOfWork with its own transaction state and
// aggregate tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and the aggregates
// written in it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         ports.EventPublisher
	trackedAggregates []trackedAggregate
}

// Begin opens the transaction. Calling it twice is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction and then publishes the events of every
// tracked aggregate. Events of a failed commit are discarded.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.discardEvents()
		return err
	}

	uow.publishEvents(ctx)
	return nil
}

// Rollback discards the transaction and any events raised in it.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.discardEvents()
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ClientRepository() ports.ClientRepository {
	return clientrepo.NewGormClientRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) SettingsRepository() ports.SettingsRepository {
	return settingsrepo.NewGormSettingsRepository(uow.conn(), nil)
}

// TrackAggregate registers an aggregate written within this unit of work.
// Repositories call it after every successful Add or Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// conn is the open transaction, or the pool outside of one.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// pendingEvents collects and clears events, visiting each aggregate once.
func (uow *GormUnitOfWork) pendingEvents() []order.DomainEvent {
	seen := make(map[any]struct{}, len(uow.trackedAggregates))
	var events []order.DomainEvent
	for _, t := range uow.trackedAggregates {
		if _, ok := seen[t.Aggregate]; ok {
			continue
		}
		seen[t.Aggregate] = struct{}{}

		src, ok := t.Aggregate.(eventSource)
		if !ok {
			continue
		}
		events = append(events, src.DomainEvents()...)
		src.ClearDomainEvents()
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return events
}

func (uow *GormUnitOfWork) discardEvents() {
	_ = uow.pendingEvents()
}

func (uow *GormUnitOfWork) publishEvents(ctx context.Context) {
	events := uow.pendingEvents()
	if len(events) == 0 || uow.publisher == nil {
		return
	}

	if err := uow.publisher.Publish(context.WithoutCancel(ctx), events...); err != nil {
		logger.Errorw(ctx, "failed to publish domain events", "count", len(events), "error", err)
	}
}
