package order

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/measurement"
	"workshop/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderIsDelivered is the cause attached when a delivered order is amended.
	ErrOrderIsDelivered = errors.New("delivered orders cannot be amended")
)

// Extras are optional accounting figures recorded alongside the primary
// measurements. Zero means not recorded. ProfitGold is the workshop's own
// metal or fee and is never part of FineGold.
type Extras struct {
	ProfitGold  float64
	Wastage     float64
	FinalWeight float64
}

// Intake is everything known about an order when the client hands over metal.
type Intake struct {
	ClientID             kernel.UUID
	ClientName           string
	JewelleryType        JewelleryType
	Measurements         Measurements
	ExpectedDeliveryDate kernel.Date
	Notes                string
	Photo                string
	Extras               Extras
}

// Order is one production job and the aggregate root of the workflow.
//
// Order follows these invariants:
//   - id, createdAt and clientName never change after creation; clientName is
//     the name of record on the transaction and is not refreshed from the client
//   - net and fine metal are derived from Measurements on every read
//   - stageHistory is never empty, is ordered by strictly increasing
//     timestamps, and its last entry's stage equals the current stage
//   - deliveryProof and deliveredAt are set exactly when the stage is
//     Delivered, and are never cleared
//
// The stage only moves through AdvanceTo. Amend edits measurements and
// commitments, leaves an audit record, and is not a transition.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// clientID references the client who handed over the metal
	clientID kernel.UUID

	// clientName is the client's name of record at intake
	clientName string

	jewelleryType JewelleryType

	// measurements hold the raw inputs; net and fine metal are derived
	measurements Measurements

	extras               Extras
	expectedDeliveryDate kernel.Date

	// stage is the current position on the production line
	stage Stage

	// history is append-only, oldest first
	history []StageEntry

	// proof and deliveredAt are set together on the Delivered transition
	proof       *DeliveryProof
	createdAt   time.Time
	deliveredAt *time.Time

	notes      string
	photo      string
	amendments []Amendment

	// version is the persisted revision used for optimistic writes
	version int

	// events are raised by transitions and drained after commit
	events []DomainEvent

	// isConstructed ensures the order was created via NewOrder or RestoreOrder
	isConstructed bool
}

// NewOrder creates an order in the Received stage, seeding its history with a
// single entry stamped by actor.
//
// Parameters:
//   - id: unique identifier for the order (must be a valid UUID)
//   - intake: client, jewellery type, measurements, expected day and optional
//     notes, photo reference and extras
//   - actor: the user recording the intake
//   - now: intake instant; stored in UTC at microsecond precision
//
// Returns:
//   - *Order: the created order if every field is valid
//   - error: the joined validation errors of every invalid field
//
// Example:
//
//	m, _ := order.NewMeasurements(10.5, 0.5, 91.6)
//	o, err := order.NewOrder(kernel.NewUUID(), order.Intake{
//	    ClientID:             clientID,
//	    ClientName:           "Meera Jewellers",
//	    JewelleryType:        order.Gold,
//	    Measurements:         m,
//	    ExpectedDeliveryDate: kernel.NewDate(2024, time.March, 20),
//	}, kernel.SystemActor(), time.Now())
//	// o.NetGoldUsed() == 10.000, o.FineGold() == 9.160
func NewOrder(id kernel.UUID, intake Intake, actor kernel.Actor, now time.Time) (*Order, error) {
	o := &Order{
		stage:         Received,
		createdAt:     normalizeTime(now),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setIntake(intake),
		actor.Validate(),
	); err != nil {
		return nil, err
	}

	entry, err := NewStageEntry(Received, o.createdAt, actor, "")
	if err != nil {
		return nil, err
	}
	o.history = []StageEntry{entry}

	return o, nil
}

// Snapshot is the persisted state of an order.
type Snapshot struct {
	ID          kernel.UUID
	Intake      Intake
	Stage       Stage
	History     []StageEntry
	Proof       *DeliveryProof
	CreatedAt   time.Time
	DeliveredAt *time.Time
	Amendments  []Amendment
	Version     int
}

// RestoreOrder rebuilds an order from persistence and re-checks every invariant.
//
// Parameters:
//   - s: the stored state, history included
//
// Returns:
//   - *Order: the rebuilt order with no pending domain events
//   - error: a validation error when the stored history is empty, out of
//     order, disagrees with the stage, or when proof and delivery time do not
//     match the stage
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		stage:         s.Stage,
		createdAt:     s.CreatedAt,
		deliveredAt:   s.DeliveredAt,
		amendments:    append([]Amendment(nil), s.Amendments...),
		version:       s.Version,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setIntake(s.Intake),
		s.Stage.Validate(),
	); err != nil {
		return nil, err
	}

	if err := o.restoreHistory(s.History); err != nil {
		return nil, err
	}

	if err := o.restoreDelivery(s.Proof, s.DeliveredAt); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
//
// Returns:
//   - nil if the order is valid
//   - ErrOrderIsNotConstructed if the order was not created via NewOrder or
//     RestoreOrder
//
// Repositories call it before every write.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identity.
//
// Returns:
//   - true if both orders have the same ID
//   - false if other is nil or IDs differ
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ClientID returns the identifier of the client the order belongs to. The
// client may since have been deleted.
func (o *Order) ClientID() kernel.UUID {
	return o.clientID
}

// ClientName is the client's name as recorded at intake.
func (o *Order) ClientName() string {
	return o.clientName
}

// JewelleryType returns the metal the order is made of.
func (o *Order) JewelleryType() JewelleryType {
	return o.jewelleryType
}

// Measurements returns the raw weights and purity.
func (o *Order) Measurements() Measurements {
	return o.measurements
}

// TotalDelivered is the gross weight received from the client, in grams.
func (o *Order) TotalDelivered() float64 {
	return o.measurements.TotalDelivered()
}

// StoneWeight is the weight of non-metal inclusions, in grams.
func (o *Order) StoneWeight() float64 {
	return o.measurements.StoneWeight()
}

// Quality is the purity percentage applied to the net weight.
func (o *Order) Quality() float64 {
	return o.measurements.Quality()
}

// NetGoldUsed is max(0, totalDelivered - stoneWeight), rounded for display.
func (o *Order) NetGoldUsed() float64 {
	return o.measurements.Derived().Rounded().NetUsed
}

// FineGold is netGoldUsed * quality / 100, rounded for display.
func (o *Order) FineGold() float64 {
	return o.measurements.Derived().Rounded().Fine
}

// Extras returns profit gold, wastage and final weight; zero means not recorded.
func (o *Order) Extras() Extras {
	return o.extras
}

// ExpectedDeliveryDate is the day the order was promised for.
func (o *Order) ExpectedDeliveryDate() kernel.Date {
	return o.expectedDeliveryDate
}

// CurrentStage returns the stage of the newest history entry.
func (o *Order) CurrentStage() Stage {
	return o.stage
}

// StageHistory returns a copy of the history, oldest first.
func (o *Order) StageHistory() []StageEntry {
	return append([]StageEntry(nil), o.history...)
}

// LastStageEntry returns the newest history entry.
func (o *Order) LastStageEntry() StageEntry {
	return o.history[len(o.history)-1]
}

// DeliveryProof returns the handover proof, or nil before delivery.
func (o *Order) DeliveryProof() *DeliveryProof {
	if o.proof == nil {
		return nil
	}
	p := *o.proof
	return &p
}

// CreatedAt is the intake instant in UTC.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// DeliveredAt returns the delivery instant, or nil before delivery.
func (o *Order) DeliveredAt() *time.Time {
	if o.deliveredAt == nil {
		return nil
	}
	t := *o.deliveredAt
	return &t
}

// Notes returns the free-text notes taken at intake or set by an amendment.
func (o *Order) Notes() string {
	return o.notes
}

// Photo is the durable reference of the intake photo, if one was taken.
func (o *Order) Photo() string {
	return o.photo
}

// Amendments returns a copy of the audit records, oldest first.
func (o *Order) Amendments() []Amendment {
	return append([]Amendment(nil), o.amendments...)
}

// Version is the persisted revision the order was loaded at.
func (o *Order) Version() int {
	return o.version
}

// SetPersistedVersion records the revision written by the repository.
func (o *Order) SetPersistedVersion(v int) {
	o.version = v
}

// IsDelivered reports whether the order reached the terminal stage.
func (o *Order) IsDelivered() bool {
	return o.stage == Delivered
}

// IsOverdue reports whether the order is undelivered and its expected
// delivery day is strictly before today.
func (o *Order) IsOverdue(today kernel.Date) bool {
	return IsOverdue(o.stage, o.expectedDeliveryDate, today)
}

// IsOverdue is the overdue rule on raw values, shared with read models.
func IsOverdue(stage Stage, expected, today kernel.Date) bool {
	return stage != Delivered && !expected.IsZero() && expected.Before(today)
}

// AdvanceTo moves the order one stage forward.
//
// It fails with an InvalidTransition error unless target is the immediate
// successor of the current stage, and with a MissingProof error when target is
// Delivered and proof is nil. A proof passed for any other target is rejected
// as invalid input. On error the order is unchanged.
//
// On success a history entry is appended, the stage is set, and for Delivered
// the proof and delivery instant are recorded with the entry's timestamp.
//
// Parameters:
//   - target: the stage to move to (must be the immediate successor)
//   - actor: the user performing the transition
//   - notes: optional free text stored on the history entry
//   - proof: required for Delivered, must be nil otherwise
//   - now: transition instant; nudged forward when it does not follow the
//     previous entry
//
// Returns:
//   - nil on success
//   - InvalidTransitionError, MissingProofError or a validation error
//
// Example:
//
//	err := o.AdvanceTo(order.Making, actor, "", nil, time.Now())
//	if errors.Is(err, errs.ErrInvalidTransition) {
//	    // o is still in its previous stage
//	}
//
// A StageAdvancedEvent is raised for every transition and a DeliveredEvent
// for the terminal one.
func (o *Order) AdvanceTo(target Stage, actor kernel.Actor, notes string, proof *DeliveryProof, now time.Time) error {
	next, err := o.stage.AdvanceTo(target)
	if err != nil {
		return err
	}

	if next == Delivered {
		if proof == nil {
			return errs.NewMissingProofError("photo", "signature")
		}
		if err = proof.Validate(); err != nil {
			return err
		}
	} else if proof != nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"deliveryProof",
			fmt.Errorf("proof is only accepted when advancing to %s", Delivered),
		)
	}

	at := o.nextTimestamp(now)
	entry, err := NewStageEntry(next, at, actor, notes)
	if err != nil {
		return err
	}

	from := o.stage
	o.history = append(o.history, entry)
	o.stage = next
	o.raise(StageAdvancedEvent{
		OrderID:  o.id,
		ClientID: o.clientID,
		From:     from,
		To:       next,
		Actor:    actor.Name(),
		At:       at,
	})

	if next == Delivered {
		p := proof.withTimestamp(at)
		o.proof = &p
		o.deliveredAt = &at
		o.raise(DeliveredEvent{
			OrderID:        o.id,
			ClientID:       o.clientID,
			ClientName:     o.clientName,
			TotalDelivered: o.TotalDelivered(),
			FineGold:       o.FineGold(),
			DeliveredBy:    p.DeliveredBy().Name(),
			At:             at,
		})
	}

	return nil
}

// Amend edits measurements, extras, the expected delivery date or notes and
// appends an Amendment listing every changed field. Delivered orders cannot
// be amended, and an input that changes nothing is rejected. On error the
// order is unchanged.
//
// Parameters:
//   - in: the proposed values; nil fields are left as they are
//   - actor: the user making the edit
//   - now: the amendment instant
//
// Returns:
//   - nil on success
//   - ValueIsInvalidError("order") for a delivered order
//   - ValueIsRequiredError("changes") when nothing differs
//   - the validation errors of the resulting measurements, extras or date
//
// Example:
//
//	total := 12.5
//	err := o.Amend(order.AmendInput{TotalDelivered: &total, Reason: "weighed again"}, actor, time.Now())
//	// o.NetGoldUsed() and o.FineGold() now follow the new weight
func (o *Order) Amend(in AmendInput, actor kernel.Actor, now time.Time) error {
	if o.stage == Delivered {
		return errs.NewValueIsInvalidErrorWithCause("order", ErrOrderIsDelivered)
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	var changes []FieldChange
	pick := func(field string, current float64, proposed *float64) float64 {
		if proposed == nil || *proposed == current {
			return current
		}
		changes = append(changes, FieldChange{Field: field, Before: formatFloat(current), After: formatFloat(*proposed)})
		return *proposed
	}

	m := o.measurements
	total := pick("totalDelivered", m.TotalDelivered(), in.TotalDelivered)
	stone := pick("stoneWeight", m.StoneWeight(), in.StoneWeight)
	quality := pick("quality", m.Quality(), in.Quality)
	extras := Extras{
		ProfitGold:  pick("profitGold", o.extras.ProfitGold, in.ProfitGold),
		Wastage:     pick("wastage", o.extras.Wastage, in.Wastage),
		FinalWeight: pick("finalWeight", o.extras.FinalWeight, in.FinalWeight),
	}

	expected := o.expectedDeliveryDate
	if in.ExpectedDeliveryDate != nil && !in.ExpectedDeliveryDate.Equal(expected) {
		changes = append(changes, FieldChange{
			Field:  "expectedDeliveryDate",
			Before: expected.String(),
			After:  in.ExpectedDeliveryDate.String(),
		})
		expected = *in.ExpectedDeliveryDate
	}

	notes := o.notes
	if in.Notes != nil && strings.TrimSpace(*in.Notes) != notes {
		changes = append(changes, FieldChange{Field: "notes", Before: notes, After: strings.TrimSpace(*in.Notes)})
		notes = strings.TrimSpace(*in.Notes)
	}

	if len(changes) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("changes", errors.New("amendment changes nothing"))
	}

	measurements, mErr := NewMeasurements(total, stone, quality)
	if err := errors.Join(mErr, validateExtras(extras), validateExpectedDate(expected)); err != nil {
		return err
	}

	o.measurements = measurements
	o.extras = extras
	o.expectedDeliveryDate = expected
	o.notes = notes
	o.amendments = append(o.amendments, Amendment{
		timestamp: normalizeTime(now),
		actor:     actor,
		reason:    strings.TrimSpace(in.Reason),
		changes:   changes,
	})

	return nil
}

// DomainEvents returns events raised since the last ClearDomainEvents.
func (o *Order) DomainEvents() []DomainEvent {
	return append([]DomainEvent(nil), o.events...)
}

// ClearDomainEvents drops raised events once they have been published.
func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) raise(e DomainEvent) {
	o.events = append(o.events, e)
}

// nextTimestamp keeps history timestamps strictly increasing even when the
// clock does not move between two transitions.
func (o *Order) nextTimestamp(now time.Time) time.Time {
	now = normalizeTime(now)
	last := o.history[len(o.history)-1].Timestamp()
	if now.After(last) {
		return now
	}
	return last.Add(time.Microsecond)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setIntake(in Intake) error {
	var clientErr, nameErr error
	if err := in.ClientID.Validate(); err != nil {
		clientErr = errs.NewValueIsRequiredErrorWithCause("clientId", err)
	}
	name := strings.TrimSpace(in.ClientName)
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("clientName")
	}

	if err := errors.Join(
		clientErr,
		nameErr,
		in.JewelleryType.Validate(),
		in.Measurements.Validate(),
		validateExtras(in.Extras),
		validateExpectedDate(in.ExpectedDeliveryDate),
	); err != nil {
		return err
	}

	o.clientID = in.ClientID
	o.clientName = name
	o.jewelleryType = in.JewelleryType
	o.measurements = in.Measurements
	o.extras = in.Extras
	o.expectedDeliveryDate = in.ExpectedDeliveryDate
	o.notes = strings.TrimSpace(in.Notes)
	o.photo = strings.TrimSpace(in.Photo)
	return nil
}

func (o *Order) restoreHistory(history []StageEntry) error {
	if len(history) == 0 {
		return errs.NewValueIsRequiredError("stageHistory")
	}

	for i, entry := range history {
		if err := entry.Validate(); err != nil {
			return err
		}
		if i > 0 && !entry.Timestamp().After(history[i-1].Timestamp()) {
			return errs.NewValueIsInvalidErrorWithCause(
				"stageHistory",
				fmt.Errorf("entry %d is not after entry %d", i, i-1),
			)
		}
	}

	if last := history[len(history)-1].Stage(); last != o.stage {
		return errs.NewValueIsInvalidErrorWithCause(
			"stageHistory",
			fmt.Errorf("last entry is %s but current stage is %s", last, o.stage),
		)
	}

	o.history = append([]StageEntry(nil), history...)
	return nil
}

func (o *Order) restoreDelivery(proof *DeliveryProof, deliveredAt *time.Time) error {
	delivered := o.stage == Delivered
	if delivered != (proof != nil) {
		return errs.NewValueIsInvalidErrorWithCause(
			"deliveryProof",
			fmt.Errorf("proof presence does not match stage %s", o.stage),
		)
	}
	if delivered != (deliveredAt != nil) {
		return errs.NewValueIsInvalidErrorWithCause(
			"deliveredAt",
			fmt.Errorf("delivery time presence does not match stage %s", o.stage),
		)
	}
	if proof != nil {
		if err := proof.Validate(); err != nil {
			return err
		}
		p := *proof
		o.proof = &p
	}
	return nil
}

func validateExtras(e Extras) error {
	return errors.Join(
		validateWeight("profitGold", e.ProfitGold),
		validateWeight("wastage", e.Wastage),
		validateWeight("finalWeight", e.FinalWeight),
	)
}

func validateExpectedDate(d kernel.Date) error {
	if d.IsZero() {
		return errs.NewValueIsRequiredError("expectedDeliveryDate")
	}
	return nil
}

// normalizeTime keeps timestamps at the precision every supported store
// round-trips exactly.
func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func formatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(measurement.Round(v), 'f', -1, 64)
}
