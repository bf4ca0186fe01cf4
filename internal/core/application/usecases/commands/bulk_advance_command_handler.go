package commands

import (
	"context"

	"golang.org/x/sync/errgroup"

	"workshop/internal/core/domain/model/kernel"
)

// bulkParallelism bounds concurrent transitions in one bulk request.
const bulkParallelism = 4

// StageAdvancer runs a single transition.
type StageAdvancer interface {
	Handle(ctx context.Context, cmd AdvanceStageCommand) error
}

// BulkAdvanceResult is the outcome for one order. Err is nil on success.
type BulkAdvanceResult struct {
	OrderID kernel.UUID
	Err     error
}

// BulkAdvanceCommandHandler advances many orders independently. Each order is
// locked, validated and committed on its own; one failure never affects the
// others. Results keep the command's order.
type BulkAdvanceCommandHandler struct {
	advancer StageAdvancer
}

func NewBulkAdvanceCommandHandler(advancer StageAdvancer) BulkAdvanceCommandHandler {
	return BulkAdvanceCommandHandler{advancer: advancer}
}

func (h BulkAdvanceCommandHandler) Handle(ctx context.Context, cmd BulkAdvanceCommand) ([]BulkAdvanceResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	ids := cmd.OrderIDs()
	results := make([]BulkAdvanceResult, len(ids))

	var g errgroup.Group
	g.SetLimit(bulkParallelism)
	for i, id := range ids {
		g.Go(func() error {
			results[i] = BulkAdvanceResult{OrderID: id, Err: h.advance(ctx, id, cmd.Actor())}
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}

func (h BulkAdvanceCommandHandler) advance(ctx context.Context, id kernel.UUID, actor string) error {
	cmd, err := NewAdvanceToNextStageCommand(id, actor, "")
	if err != nil {
		return err
	}
	return h.advancer.Handle(ctx, cmd)
}
