package client

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
)

var (
	// ErrClientIsNotConstructed is returned by Validate for a Client that did
	// not come from NewClient or RestoreClient.
	ErrClientIsNotConstructed = errors.New("Client must be created via NewClient constructor")
)

// Client is a counterparty who deposits metal and receives finished goods.
//
// Invariants:
//   - name and phone are non-blank; phone format is not checked
//   - totalGoldGiven and totalGoldDelivered never decrease
//
// Deleting a client never touches its orders. Orders keep their own copy of
// the client's name.
type Client struct {
	id                 kernel.UUID
	name               string
	phone              string
	address            string
	gstNumber          string
	totalGoldGiven     float64
	totalGoldDelivered float64
	createdAt          time.Time

	isConstructed bool
}

// Details groups the editable attributes of a client.
type Details struct {
	Name      string
	Phone     string
	Address   string
	GSTNumber string
}

// NewClient registers a client with zero lifetime accumulators.
func NewClient(id kernel.UUID, details Details, createdAt time.Time) (*Client, error) {
	c := &Client{
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setDetails(details),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreClient rebuilds a client from persistence.
func RestoreClient(
	id kernel.UUID,
	details Details,
	totalGoldGiven, totalGoldDelivered float64,
	createdAt time.Time,
) (*Client, error) {
	c, err := NewClient(id, details, createdAt)
	if err != nil {
		return nil, err
	}

	if err = errors.Join(
		validateAccumulator("totalGoldGiven", totalGoldGiven),
		validateAccumulator("totalGoldDelivered", totalGoldDelivered),
	); err != nil {
		return nil, err
	}

	c.totalGoldGiven = totalGoldGiven
	c.totalGoldDelivered = totalGoldDelivered
	return c, nil
}

func (c *Client) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrClientIsNotConstructed
	}
	return nil
}

func (c *Client) ID() kernel.UUID {
	return c.id
}

func (c *Client) Name() string {
	return c.name
}

func (c *Client) Phone() string {
	return c.phone
}

func (c *Client) Address() string {
	return c.address
}

func (c *Client) GSTNumber() string {
	return c.gstNumber
}

func (c *Client) TotalGoldGiven() float64 {
	return c.totalGoldGiven
}

func (c *Client) TotalGoldDelivered() float64 {
	return c.totalGoldDelivered
}

func (c *Client) CreatedAt() time.Time {
	return c.createdAt
}

// Details returns the editable attributes.
func (c *Client) Details() Details {
	return Details{Name: c.name, Phone: c.phone, Address: c.address, GSTNumber: c.gstNumber}
}

// Edit replaces the editable attributes. On error nothing changes.
func (c *Client) Edit(details Details) error {
	next := *c
	if err := next.setDetails(details); err != nil {
		return err
	}
	*c = next
	return nil
}

// RecordDelivery adds a completed order's gross intake and fine metal to the
// lifetime accumulators. Negative amounts are rejected so the totals only grow.
func (c *Client) RecordDelivery(given, delivered float64) error {
	if err := errors.Join(
		validateAccumulator("given", given),
		validateAccumulator("delivered", delivered),
	); err != nil {
		return err
	}

	c.totalGoldGiven += given
	c.totalGoldDelivered += delivered
	return nil
}

func (c *Client) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Client) setDetails(d Details) error {
	name := strings.TrimSpace(d.Name)
	phone := strings.TrimSpace(d.Phone)

	var nameErr, phoneErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if phone == "" {
		phoneErr = errs.NewValueIsRequiredError("phone")
	}
	if err := errors.Join(nameErr, phoneErr); err != nil {
		return err
	}

	c.name = name
	c.phone = phone
	c.address = strings.TrimSpace(d.Address)
	c.gstNumber = strings.ToUpper(strings.TrimSpace(d.GSTNumber))
	return nil
}

func validateAccumulator(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%v is not a non-negative weight", v))
	}
	return nil
}
