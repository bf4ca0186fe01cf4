package commands

import (
	"errors"
	"strings"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderInput is the raw intake form.
type CreateOrderInput struct {
	ClientID             kernel.UUID
	JewelleryType        string
	TotalDelivered       float64
	StoneWeight          float64
	Quality              float64
	ProfitGold           float64
	Wastage              float64
	FinalWeight          float64
	ExpectedDeliveryDate kernel.Date
	Notes                string

	// Photo is an optional data URI, base64 payload or existing URL.
	Photo string

	// Actor names the user taking the order; blank means the request identity.
	Actor string
}

// CreateOrderCommand represents a client handing over metal for a new job.
// All intake fields are validated here, before anything is written.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), CreateOrderInput{
//	    ClientID:             clientID,
//	    JewelleryType:        "gold",
//	    TotalDelivered:       10.5,
//	    StoneWeight:          0.5,
//	    Quality:              91.6,
//	    ExpectedDeliveryDate: kernel.NewDate(2024, time.March, 20),
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid intake: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	clientID      kernel.UUID
	jewelleryType order.JewelleryType
	measurements  order.Measurements
	extras        order.Extras
	expected      kernel.Date
	notes         string
	photo         string
	actor         string

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(orderID kernel.UUID, in CreateOrderInput) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		extras: order.Extras{
			ProfitGold:  in.ProfitGold,
			Wastage:     in.Wastage,
			FinalWeight: in.FinalWeight,
		},
		expected: in.ExpectedDeliveryDate,
		notes:    strings.TrimSpace(in.Notes),
		photo:    strings.TrimSpace(in.Photo),
		actor:    strings.TrimSpace(in.Actor),
		guard:    guard.NewConstructorGuard(),
	}

	var clientErr, dateErr error
	if err := in.ClientID.Validate(); err != nil {
		clientErr = errs.NewValueIsRequiredErrorWithCause("clientId", err)
	}
	if in.ExpectedDeliveryDate.IsZero() {
		dateErr = errs.NewValueIsRequiredError("expectedDeliveryDate")
	}

	jewelleryType, typeErr := order.ParseJewelleryType(in.JewelleryType)
	measurements, measurementsErr := order.NewMeasurements(in.TotalDelivered, in.StoneWeight, in.Quality)

	if err := errors.Join(
		orderID.Validate(),
		clientErr,
		typeErr,
		measurementsErr,
		dateErr,
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.clientID = in.ClientID
	cmd.jewelleryType = jewelleryType
	cmd.measurements = measurements
	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) ClientID() kernel.UUID {
	return c.clientID
}

func (c CreateOrderCommand) JewelleryType() order.JewelleryType {
	return c.jewelleryType
}

func (c CreateOrderCommand) Measurements() order.Measurements {
	return c.measurements
}

func (c CreateOrderCommand) Extras() order.Extras {
	return c.extras
}

func (c CreateOrderCommand) ExpectedDeliveryDate() kernel.Date {
	return c.expected
}

func (c CreateOrderCommand) Notes() string {
	return c.notes
}

func (c CreateOrderCommand) Photo() string {
	return c.photo
}

func (c CreateOrderCommand) Actor() string {
	return c.actor
}
