package order

import (
	"fmt"
	"strings"

	"workshop/internal/pkg/errs"
)

// Stage is a production state of an order. Stages form a fixed line and an
// order moves forward exactly one step at a time:
//
//	Received ──> Making ──> Polishing ──> Ready ──> Delivered
//
// Delivered is terminal. Skipping a stage or moving backward is an invalid
// transition.
type Stage int

const (
	// StageUnknown is the zero value and is never valid.
	StageUnknown Stage = iota

	// Received is the intake stage every order is created in.
	Received

	// Making covers casting and fabrication.
	Making

	// Polishing covers finishing work.
	Polishing

	// Ready means the item waits for handover.
	Ready

	// Delivered is reached only with a delivery proof and never left.
	Delivered
)

func getStageStrings() map[Stage]string {
	return map[Stage]string{
		StageUnknown: "unknown",
		Received:     "received",
		Making:       "making",
		Polishing:    "polishing",
		Ready:        "ready",
		Delivered:    "delivered",
	}
}

// Stages lists the valid stages in workflow order.
func Stages() []Stage {
	return []Stage{Received, Making, Polishing, Ready, Delivered}
}

// ParseStage maps the lower-case name used on the wire and in storage.
func ParseStage(s string) (Stage, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, st := range Stages() {
		if st.String() == needle {
			return st, nil
		}
	}
	return StageUnknown, errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%q is not a valid stage", s))
}

func (s Stage) String() string {
	if str, ok := getStageStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func (s Stage) Validate() error {
	if s < Received || s > Delivered {
		return errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%d is not a valid stage", s))
	}
	return nil
}

// IsTerminal reports whether no further transition exists.
func (s Stage) IsTerminal() bool {
	return s == Delivered
}

// Next returns the immediate successor. ok is false for Delivered and for
// invalid stages.
func (s Stage) Next() (next Stage, ok bool) {
	if s.Validate() != nil || s.IsTerminal() {
		return StageUnknown, false
	}
	return s + 1, true
}

// ValidateAdvance checks that target is the immediate successor of s without
// changing anything.
func (s Stage) ValidateAdvance(target Stage) error {
	if err := target.Validate(); err != nil {
		return err
	}

	next, ok := s.Next()
	if !ok || next != target {
		return errs.NewInvalidTransitionError(s.String(), target.String())
	}
	return nil
}

// AdvanceTo returns target if it is the immediate successor of s.
//
//	next, err := order.Ready.AdvanceTo(order.Delivered) // Delivered, nil
//	_, err = order.Received.AdvanceTo(order.Ready)      // ErrInvalidTransition
func (s Stage) AdvanceTo(target Stage) (Stage, error) {
	if err := s.ValidateAdvance(target); err != nil {
		return StageUnknown, err
	}
	return target, nil
}
