package services

import (
	"strings"

	"workshop/internal/pkg/errs"
)

// MediaInspector reads captured handover images before they are uploaded.
type MediaInspector interface {
	// CheckImage fails when the payload does not decode to an image.
	// References to already stored media are accepted unchecked.
	CheckImage(payload string) error

	// IsBlank reports whether every sampled pixel of the payload is at the
	// background value. References it cannot inspect are reported as not blank.
	IsBlank(payload string) (bool, error)
}

// ProofPayload is the raw handover evidence as captured, before upload.
type ProofPayload struct {
	Photo     string
	Signature string
}

// DeliveryProofGate is the precondition for the terminal transition. It runs
// before any media is uploaded so a rejected handover leaves nothing behind.
//
// Example:
//
//	gate := NewDeliveryProofGate(media.NewImageInspector())
//	if err := gate.Check(ProofPayload{Photo: photo, Signature: sig}); err != nil {
//	    // errs.ErrMissingProof: nothing was uploaded
//	}
type DeliveryProofGate struct {
	inspector MediaInspector
}

// NewDeliveryProofGate creates a gate. A nil inspector only checks presence.
func NewDeliveryProofGate(inspector MediaInspector) DeliveryProofGate {
	return DeliveryProofGate{inspector: inspector}
}

// Check fails with a MissingProof error naming every absent part. A signature
// whose canvas is entirely blank counts as absent. A photo or signature that
// does not decode to an image is a validation error.
//
// Parameters:
//   - p: the photo and signature exactly as captured
//
// Returns:
//   - nil when both parts are present and readable
//   - MissingProofError listing "photo" and/or "signature"
//   - ValueIsInvalidError naming the unreadable part
func (g DeliveryProofGate) Check(p ProofPayload) error {
	var missing []string

	photo := strings.TrimSpace(p.Photo)
	switch {
	case photo == "":
		missing = append(missing, "photo")
	case g.inspector != nil:
		if err := g.inspector.CheckImage(photo); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("photo", err)
		}
	}

	signature := strings.TrimSpace(p.Signature)
	switch {
	case signature == "":
		missing = append(missing, "signature")
	case g.inspector != nil:
		blank, err := g.inspector.IsBlank(signature)
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause("signature", err)
		}
		if blank {
			missing = append(missing, "signature")
		}
	}

	if len(missing) > 0 {
		return errs.NewMissingProofError(missing...)
	}
	return nil
}
