package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/services"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/logger"
	"workshop/internal/pkg/metrics"
)

const (
	// DefaultPersistenceTimeout bounds the work done once the order lock is held.
	DefaultPersistenceTimeout = 15 * time.Second

	// DefaultLockWait bounds how long a transition queues for the order lock.
	DefaultLockWait = 5 * time.Second
)

// AdvanceStageCommandHandler runs one stage transition as a single unit of work.
//
// The steps, in order:
//  1. take the per-order lock; a second transition on the same order waits
//  2. load the order and check the target is its immediate successor
//  3. for Delivered, run the proof gate and only then upload photo and signature
//  4. apply the transition, write the order and, on delivery, add the order's
//     weights to the client's accumulators if the client still exists
//  5. commit
//
// Validation, invalid transitions, unreadable media and missing proof are
// rejected before any write or upload. Store, upload, commit and timeout
// errors surface as PersistenceFailure and leave the stored order untouched.
// Media uploaded before a failed commit stay in the attachment store.
//
// Waiting for the lock and the work done under it have separate budgets: a
// caller that queued for most of lockWait still gets the full timeout to
// commit. A lock that is not obtained within lockWait fails with
// ErrOrderIsBusy.
type AdvanceStageCommandHandler struct {
	uowFactory OrderUoWFactory
	locker     ports.OrderLocker
	store      ports.AttachmentStore
	gate       services.DeliveryProofGate
	identity   ports.IdentityProvider
	clock      ports.Clock
	timeout    time.Duration
	lockWait   time.Duration
}

// NewAdvanceStageCommandHandler wires a transition handler.
//
// Parameters:
//   - timeout: budget for the work done once the lock is held; zero or less
//     falls back to DefaultPersistenceTimeout
//   - lockWait: how long to queue for the order lock; zero or less falls back
//     to DefaultLockWait
func NewAdvanceStageCommandHandler(
	uowFactory OrderUoWFactory,
	locker ports.OrderLocker,
	store ports.AttachmentStore,
	gate services.DeliveryProofGate,
	identity ports.IdentityProvider,
	clock ports.Clock,
	timeout time.Duration,
	lockWait time.Duration,
) AdvanceStageCommandHandler {
	if timeout <= 0 {
		timeout = DefaultPersistenceTimeout
	}
	if lockWait <= 0 {
		lockWait = DefaultLockWait
	}
	return AdvanceStageCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		store:      store,
		gate:       gate,
		identity:   identity,
		clock:      clock,
		timeout:    timeout,
		lockWait:   lockWait,
	}
}

// Handle moves the order one stage forward.
//
// Returns:
//   - nil once the transition is committed
//   - a validation error for a malformed command or unreadable media
//   - ErrObjectNotFound for an unknown order
//   - ErrInvalidTransition when the target is not the next stage
//   - ErrMissingProof when a delivery lacks photo or signature
//   - ErrOrderIsBusy when the lock is not obtained within lockWait
//   - ErrPersistenceFailure for store, upload, commit and timeout failures
//
// Every outcome is counted, traced and logged.
func (h AdvanceStageCommandHandler) Handle(ctx context.Context, cmd AdvanceStageCommand) error {
	ctx, span := otel.Tracer("commands/AdvanceStage").Start(ctx, "Handle",
		trace.WithAttributes(
			attribute.String("order.id", cmd.OrderID().String()),
			attribute.String("order.target_stage", cmd.Target().String()),
		),
	)
	defer span.End()

	target, err := h.handle(ctx, cmd)

	metrics.RecordTransition(target.String(), err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, metrics.Outcome(err))
		logger.Warnw(ctx, "stage transition rejected",
			"order_id", cmd.OrderID().String(),
			"target", target.String(),
			"error", err,
		)
		return err
	}

	logger.Infow(ctx, "stage advanced", "order_id", cmd.OrderID().String(), "stage", target.String())
	return nil
}

func (h AdvanceStageCommandHandler) handle(ctx context.Context, cmd AdvanceStageCommand) (order.Stage, error) {
	target := cmd.Target()
	if err := cmd.Validate(); err != nil {
		return target, err
	}

	if !cmd.ToNext() && target != order.Delivered && cmd.HasProof() {
		return target, errs.NewValueIsInvalidErrorWithCause(
			"deliveryProof",
			fmt.Errorf("proof is only accepted when advancing to %s", order.Delivered),
		)
	}

	actor := resolveActor(ctx, h.identity, cmd.Actor())

	unlock, err := h.lock(ctx, cmd.OrderID())
	if err != nil {
		return target, err
	}
	defer func() {
		if uerr := unlock(context.WithoutCancel(ctx)); uerr != nil {
			logger.Warnw(ctx, "failed to release order lock", "order_id", cmd.OrderID().String(), "error", uerr)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return target, errs.AsPersistenceFailure("begin", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return target, storeError("get order", err)
	}

	if cmd.ToNext() {
		next, ok := o.CurrentStage().Next()
		if !ok {
			return target, errs.NewInvalidTransitionError(o.CurrentStage().String(), "next")
		}
		target = next
	}

	if err = o.CurrentStage().ValidateAdvance(target); err != nil {
		return target, err
	}

	var proof *order.DeliveryProof
	if target == order.Delivered {
		if proof, err = h.resolveProof(ctx, cmd, actor); err != nil {
			return target, err
		}
	}

	if err = o.AdvanceTo(target, actor, cmd.Notes(), proof, h.clock.Now()); err != nil {
		return target, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return target, errs.AsPersistenceFailure("update order", err)
	}

	if target == order.Delivered {
		if err = h.creditClient(ctx, uow.ClientRepository(), o); err != nil {
			return target, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return target, errs.AsPersistenceFailure("commit", err)
	}

	return target, nil
}

// lock queues for the order lock for at most lockWait.
func (h AdvanceStageCommandHandler) lock(ctx context.Context, id kernel.UUID) (ports.Unlock, error) {
	lockCtx, cancel := context.WithTimeout(ctx, h.lockWait)
	defer cancel()

	unlock, err := h.locker.Lock(lockCtx, id)
	if err == nil {
		return unlock, nil
	}
	if errors.Is(err, errs.ErrOrderIsBusy) {
		return nil, err
	}
	return nil, errs.AsPersistenceFailure("lock order", err)
}

// resolveProof checks the handover evidence and uploads it. The gate runs
// first so rejected evidence is never uploaded.
func (h AdvanceStageCommandHandler) resolveProof(
	ctx context.Context,
	cmd AdvanceStageCommand,
	actor kernel.Actor,
) (*order.DeliveryProof, error) {
	if err := h.gate.Check(services.ProofPayload{Photo: cmd.Photo(), Signature: cmd.Signature()}); err != nil {
		return nil, err
	}

	photo, err := h.store.Store(ctx, cmd.Photo(), ports.CategoryDeliveryPhotos)
	if err != nil {
		return nil, storeError("upload delivery photo", err)
	}

	signature, err := h.store.Store(ctx, cmd.Signature(), ports.CategorySignatures)
	if err != nil {
		return nil, storeError("upload signature", err)
	}

	proof, err := order.NewDeliveryProof(photo, signature, actor, h.clock.Now())
	if err != nil {
		return nil, err
	}
	return &proof, nil
}

// creditClient adds a delivered order's gross and fine metal to its client.
// A deleted client is skipped.
func (h AdvanceStageCommandHandler) creditClient(ctx context.Context, repo ports.ClientRepository, o *order.Order) error {
	c, err := repo.Get(ctx, o.ClientID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		logger.Infow(ctx, "delivered order has no client record", "order_id", o.ID().String())
		return nil
	}
	if err != nil {
		return errs.AsPersistenceFailure("get client", err)
	}

	if err = c.RecordDelivery(o.TotalDelivered(), o.FineGold()); err != nil {
		return err
	}

	if err = repo.Update(ctx, c); err != nil {
		return errs.AsPersistenceFailure("update client", err)
	}
	return nil
}
