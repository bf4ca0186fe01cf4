package ports

import (
	"context"
)

// AttachmentCategory groups stored media by purpose.
type AttachmentCategory string

const (
	CategoryOrderPhotos    AttachmentCategory = "order-photos"
	CategoryDeliveryPhotos AttachmentCategory = "delivery-photos"
	CategorySignatures     AttachmentCategory = "signatures"
)

// StorageUsage is the footprint of the attachment store.
type StorageUsage struct {
	Bytes   int64
	Objects int
}

// AttachmentStore turns captured media into durable references.
type AttachmentStore interface {
	// Store uploads a data URI or base64 payload and returns a reference that
	// resolves to a displayable resource. A payload that already is an http(s)
	// reference is returned unchanged. Retrying a failed call is safe.
	Store(ctx context.Context, payload string, category AttachmentCategory) (string, error)

	// Usage reports the bytes and objects held by the store.
	Usage(ctx context.Context) (StorageUsage, error)
}
