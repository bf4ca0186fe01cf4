package order

import (
	"strings"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var ErrDeliveryProofIsNotConstructed = errs.NewMissingProofError("DeliveryProof must be created via NewDeliveryProof")

// DeliveryProof records the handover of a finished order. Photo and signature
// are durable references to uploaded media; both are required.
type DeliveryProof struct {
	photo       string
	signature   string
	deliveredBy kernel.Actor
	timestamp   time.Time

	guard guard.ConstructorGuard
}

// NewDeliveryProof fails with a MissingProof error naming every blank reference.
func NewDeliveryProof(photo, signature string, deliveredBy kernel.Actor, timestamp time.Time) (DeliveryProof, error) {
	photo = strings.TrimSpace(photo)
	signature = strings.TrimSpace(signature)

	var missing []string
	if photo == "" {
		missing = append(missing, "photo")
	}
	if signature == "" {
		missing = append(missing, "signature")
	}
	if len(missing) > 0 {
		return DeliveryProof{}, errs.NewMissingProofError(missing...)
	}

	if err := deliveredBy.Validate(); err != nil {
		return DeliveryProof{}, err
	}

	return DeliveryProof{
		photo:       photo,
		signature:   signature,
		deliveredBy: deliveredBy,
		timestamp:   timestamp,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (p DeliveryProof) Validate() error {
	return p.guard.Validate(ErrDeliveryProofIsNotConstructed)
}

func (p DeliveryProof) Photo() string {
	return p.photo
}

func (p DeliveryProof) Signature() string {
	return p.signature
}

func (p DeliveryProof) DeliveredBy() kernel.Actor {
	return p.deliveredBy
}

func (p DeliveryProof) Timestamp() time.Time {
	return p.timestamp
}

func (p DeliveryProof) withTimestamp(t time.Time) DeliveryProof {
	p.timestamp = t
	return p
}
