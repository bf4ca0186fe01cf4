package services

import (
	"cmp"
	"slices"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/measurement"
	"workshop/internal/core/domain/model/order"
)

// OrderFacts is the read-side slice of an order the ledger aggregates over.
// Weights are the persisted (rounded) figures.
type OrderFacts struct {
	ID                   kernel.UUID
	ClientID             kernel.UUID
	ClientName           string
	Stage                order.Stage
	TotalDelivered       float64
	FineGold             float64
	ProfitGold           float64
	ExpectedDeliveryDate kernel.Date
	CreatedAt            time.Time
	DeliveredAt          *time.Time
}

// FactsOf projects an order aggregate.
func FactsOf(o *order.Order) OrderFacts {
	return OrderFacts{
		ID:                   o.ID(),
		ClientID:             o.ClientID(),
		ClientName:           o.ClientName(),
		Stage:                o.CurrentStage(),
		TotalDelivered:       measurement.Round(o.TotalDelivered()),
		FineGold:             o.FineGold(),
		ProfitGold:           measurement.Round(o.Extras().ProfitGold),
		ExpectedDeliveryDate: o.ExpectedDeliveryDate(),
		CreatedAt:            o.CreatedAt(),
		DeliveredAt:          o.DeliveredAt(),
	}
}

type Totals struct {
	Orders     int
	FineGold   float64
	ProfitGold float64
}

type StatusCounts struct {
	Delivered int
	Ready     int
	Overdue   int
	Pending   int
}

type ClientRollup struct {
	TotalOrders  int
	ActiveOrders int
}

type TodayMetrics struct {
	OrdersReceivedToday int
	TotalDeliveredToday float64
	FineGoldToday       float64
	DeliveredToday      int
	PendingDeliveries   int
	OverdueOrders       int
	ReadyOrders         int
}

// Ledger computes the read-side projections. Every method is a pure function
// of its input; nothing is cached between calls. Calendar days are observed
// in the ledger's location.
type Ledger struct {
	loc *time.Location
}

// NewLedger creates a ledger observing days in loc. A nil loc means UTC.
func NewLedger(loc *time.Location) Ledger {
	if loc == nil {
		loc = time.UTC
	}
	return Ledger{loc: loc}
}

// Today returns the calendar day of now in the ledger's location.
func (l Ledger) Today(now time.Time) kernel.Date {
	return kernel.DateOf(now, l.loc)
}

// Totals sums fine metal and profit metal separately over all orders.
func (l Ledger) Totals(facts []OrderFacts) Totals {
	fine := make([]float64, 0, len(facts))
	profit := make([]float64, 0, len(facts))
	for _, f := range facts {
		fine = append(fine, f.FineGold)
		profit = append(profit, f.ProfitGold)
	}

	return Totals{
		Orders:     len(facts),
		FineGold:   measurement.Sum(fine...),
		ProfitGold: measurement.Sum(profit...),
	}
}

// StatusCounts counts delivered, ready, overdue and pending orders as of now.
func (l Ledger) StatusCounts(facts []OrderFacts, now time.Time) StatusCounts {
	today := l.Today(now)

	var c StatusCounts
	for _, f := range facts {
		switch f.Stage {
		case order.Delivered:
			c.Delivered++
		case order.Ready:
			c.Ready++
		}
		if f.Stage != order.Delivered {
			c.Pending++
		}
		if order.IsOverdue(f.Stage, f.ExpectedDeliveryDate, today) {
			c.Overdue++
		}
	}
	return c
}

// OverdueCount is the number of undelivered orders whose expected day is
// strictly before today.
func (l Ledger) OverdueCount(facts []OrderFacts, now time.Time) int {
	return l.StatusCounts(facts, now).Overdue
}

// ClientRollups counts total and active (undelivered) orders per client.
func (l Ledger) ClientRollups(facts []OrderFacts) map[kernel.UUID]ClientRollup {
	rollups := make(map[kernel.UUID]ClientRollup)
	for _, f := range facts {
		r := rollups[f.ClientID]
		r.TotalOrders++
		if f.Stage != order.Delivered {
			r.ActiveOrders++
		}
		rollups[f.ClientID] = r
	}
	return rollups
}

// Recent returns up to limit orders, newest first. A non-positive limit
// returns all of them.
func (l Ledger) Recent(facts []OrderFacts, limit int) []OrderFacts {
	sorted := slices.Clone(facts)
	slices.SortStableFunc(sorted, func(a, b OrderFacts) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})

	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// TodayMetrics summarises the current day's intake and handovers.
func (l Ledger) TodayMetrics(facts []OrderFacts, now time.Time) TodayMetrics {
	today := l.Today(now)

	var (
		m     TodayMetrics
		gross []float64
		fine  []float64
	)
	for _, f := range facts {
		if kernel.DateOf(f.CreatedAt, l.loc).Equal(today) {
			m.OrdersReceivedToday++
			gross = append(gross, f.TotalDelivered)
			fine = append(fine, f.FineGold)
		}
		if f.DeliveredAt != nil && kernel.DateOf(*f.DeliveredAt, l.loc).Equal(today) {
			m.DeliveredToday++
		}
	}

	counts := l.StatusCounts(facts, now)
	m.TotalDeliveredToday = measurement.Sum(gross...)
	m.FineGoldToday = measurement.Sum(fine...)
	m.PendingDeliveries = counts.Pending
	m.OverdueOrders = counts.Overdue
	m.ReadyOrders = counts.Ready
	return m
}
