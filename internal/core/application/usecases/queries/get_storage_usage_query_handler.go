package queries

import (
	"context"

	"workshop/internal/core/ports"
)

// GetStorageUsageQueryHandler reports how much the attachment store holds.
type GetStorageUsageQueryHandler struct {
	store ports.AttachmentStore
}

func NewGetStorageUsageQueryHandler(store ports.AttachmentStore) GetStorageUsageQueryHandler {
	return GetStorageUsageQueryHandler{store: store}
}

func (h GetStorageUsageQueryHandler) Handle(ctx context.Context, query GetStorageUsageQuery) (ports.StorageUsage, error) {
	if err := query.Validate(); err != nil {
		return ports.StorageUsage{}, err
	}
	return h.store.Usage(ctx)
}
