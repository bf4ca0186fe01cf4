package queries_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"workshop/internal/adapters/out/postgres/clientrepo"
	"workshop/internal/adapters/out/postgres/orderrepo"
	"workshop/internal/adapters/out/postgres/pgtest"
	"workshop/internal/adapters/out/postgres/settingsrepo"
	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/domain/model/client"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/services"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var now = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// QueriesTestSuite seeds three orders for two clients:
//   - overdue: Meera, received on 12 Mar, expected 14 Mar
//   - delivered: Ravi, received on 13 Mar, delivered today
//   - ready: Meera, received today, expected tomorrow
type QueriesTestSuite struct {
	suite.Suite
	db       *gorm.DB
	settings *settingsrepo.GormSettingsRepository
	ledger   services.Ledger
	clock    fixedClock

	meera, ravi               *client.Client
	overdue, delivered, ready *order.Order
}

func (suite *QueriesTestSuite) SetupTest() {
	suite.db = pgtest.NewSQLite(suite.T())
	suite.settings = settingsrepo.NewGormSettingsRepository(suite.db, func() time.Time { return now })
	suite.ledger = services.NewLedger(time.UTC)
	suite.clock = fixedClock{t: now}

	ctx := context.Background()
	clients := clientrepo.NewGormClientRepository(suite.db, noopTracker{})
	orders := orderrepo.NewGormOrderRepository(suite.db, noopTracker{})

	suite.meera = suite.newClient("Meera Jewellers", "98200 12345")
	suite.ravi = suite.newClient("Ravi Ornaments", "+91 99876 54321")
	suite.Require().NoError(clients.Add(ctx, suite.meera))
	suite.Require().NoError(clients.Add(ctx, suite.ravi))

	suite.overdue = suite.newOrder(suite.meera, 10.5, 0.5, 91.6,
		kernel.NewDate(2024, time.March, 14), now.Add(-75*time.Hour))

	suite.delivered = suite.newOrder(suite.ravi, 20, 0, 75,
		kernel.NewDate(2024, time.March, 20), now.Add(-50*time.Hour))
	suite.advance(suite.delivered, now.Add(-24*time.Hour), order.Making, order.Polishing, order.Ready)
	proof, err := order.NewDeliveryProof("https://cdn/p.jpg", "https://cdn/s.png", kernel.ActorOrSystem("asha"), now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.delivered.AdvanceTo(order.Delivered, kernel.ActorOrSystem("asha"), "", &proof, now.Add(-time.Hour)))

	suite.ready = suite.newOrder(suite.meera, 5, 0, 91.6,
		kernel.NewDate(2024, time.March, 16), now.Add(-4*time.Hour))
	suite.advance(suite.ready, now.Add(-3*time.Hour), order.Making, order.Polishing, order.Ready)

	for _, o := range []*order.Order{suite.overdue, suite.delivered, suite.ready} {
		suite.Require().NoError(orders.Add(ctx, o))
	}
}

func (suite *QueriesTestSuite) newClient(name, phone string) *client.Client {
	c, err := client.NewClient(kernel.NewUUID(), client.Details{Name: name, Phone: phone}, now.Add(-30*24*time.Hour))
	suite.Require().NoError(err)
	return c
}

func (suite *QueriesTestSuite) newOrder(c *client.Client, gross, stone, quality float64, expected kernel.Date, at time.Time) *order.Order {
	m, err := order.NewMeasurements(gross, stone, quality)
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), order.Intake{
		ClientID:             c.ID(),
		ClientName:           c.Name(),
		JewelleryType:        order.Gold,
		Measurements:         m,
		ExpectedDeliveryDate: expected,
		Extras:               order.Extras{ProfitGold: 0.25},
	}, kernel.ActorOrSystem("asha"), at)
	suite.Require().NoError(err)
	return o
}

func (suite *QueriesTestSuite) advance(o *order.Order, at time.Time, stages ...order.Stage) {
	for _, s := range stages {
		suite.Require().NoError(o.AdvanceTo(s, kernel.ActorOrSystem("ravi"), "", nil, at))
	}
}

func ids(facts []services.OrderFacts) []kernel.UUID {
	out := make([]kernel.UUID, 0, len(facts))
	for _, f := range facts {
		out = append(out, f.ID)
	}
	return out
}

func (suite *QueriesTestSuite) TestListOrders() {
	ctx := context.Background()
	handler := queries.NewListOrdersQueryHandler(suite.db, suite.ledger, suite.clock)

	suite.Run("should list every order newest first with overdue flags", func() {
		q, err := queries.NewListOrdersQuery(queries.OrderFilter{})
		suite.Require().NoError(err)

		got, err := handler.Handle(ctx, q)
		suite.Require().NoError(err)
		suite.Require().Len(got, 3)
		suite.Equal(suite.ready.ID(), got[0].ID)
		suite.Equal(suite.delivered.ID(), got[1].ID)
		suite.Equal(suite.overdue.ID(), got[2].ID)
		suite.False(got[0].IsOverdue)
		suite.False(got[1].IsOverdue)
		suite.True(got[2].IsOverdue)
		suite.InDelta(9.16, got[2].FineGold, 1e-9)
	})

	suite.Run("should filter by stage", func() {
		q, err := queries.NewListOrdersQuery(queries.OrderFilter{Stage: order.Delivered})
		suite.Require().NoError(err)

		got, err := handler.Handle(ctx, q)
		suite.Require().NoError(err)
		suite.Require().Len(got, 1)
		suite.Equal(suite.delivered.ID(), got[0].ID)
		suite.NotNil(got[0].DeliveredAt)
	})

	suite.Run("should filter by client and case-folded search", func() {
		q, err := queries.NewListOrdersQuery(queries.OrderFilter{ClientID: suite.meera.ID()})
		suite.Require().NoError(err)
		got, err := handler.Handle(ctx, q)
		suite.Require().NoError(err)
		suite.Len(got, 2)

		q, err = queries.NewListOrdersQuery(queries.OrderFilter{Search: "  RAVI "})
		suite.Require().NoError(err)
		got, err = handler.Handle(ctx, q)
		suite.Require().NoError(err)
		suite.Require().Len(got, 1)
		suite.Equal(suite.delivered.ID(), got[0].ID)
	})

	suite.Run("should match a partial order id", func() {
		q, err := queries.NewListOrdersQuery(queries.OrderFilter{Search: suite.ready.ID().String()[:8]})
		suite.Require().NoError(err)
		got, err := handler.Handle(ctx, q)
		suite.Require().NoError(err)
		suite.Require().NotEmpty(got)
		suite.Contains(ids(orderFacts(got)), suite.ready.ID())
	})

	suite.Run("should reject an unconstructed query", func() {
		_, err := handler.Handle(ctx, queries.ListOrdersQuery{})
		suite.ErrorIs(err, queries.ErrListOrdersQueryIsNotConstructed)
	})
}

func orderFacts(summaries []queries.OrderSummary) []services.OrderFacts {
	out := make([]services.OrderFacts, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, s.OrderFacts)
	}
	return out
}

func (suite *QueriesTestSuite) TestGetLedger() {
	handler := queries.NewGetLedgerQueryHandler(suite.db, suite.settings, suite.ledger, suite.clock)

	got, err := handler.Handle(context.Background(), queries.NewGetLedgerQuery())
	suite.Require().NoError(err)

	suite.Equal(3, got.Totals.Orders)
	suite.InDelta(28.74, got.Totals.FineGold, 1e-9)
	suite.InDelta(0.75, got.Totals.ProfitGold, 1e-9)
	suite.Equal(services.StatusCounts{Delivered: 1, Ready: 1, Overdue: 1, Pending: 2}, got.StatusCounts)
	suite.InDelta(28.74*7000, got.Valuation, 1e-6)
	suite.InDelta(7000, got.Rates.Rate24k, 1e-9)

	suite.Run("should give the same overdue count on repeated reads", func() {
		again, err := handler.Handle(context.Background(), queries.NewGetLedgerQuery())
		suite.Require().NoError(err)
		suite.Equal(got.StatusCounts.Overdue, again.StatusCounts.Overdue)
	})
}

func (suite *QueriesTestSuite) TestGetTodayMetrics() {
	handler := queries.NewGetTodayMetricsQueryHandler(suite.db, suite.ledger, suite.clock)

	got, err := handler.Handle(context.Background(), queries.NewGetTodayMetricsQuery())
	suite.Require().NoError(err)

	suite.Equal(1, got.OrdersReceivedToday)
	suite.InDelta(4.58, got.FineGoldToday, 1e-9)
	suite.InDelta(5, got.TotalDeliveredToday, 1e-9)
	suite.Equal(1, got.DeliveredToday)
	suite.Equal(2, got.PendingDeliveries)
	suite.Equal(1, got.OverdueOrders)
	suite.Equal(1, got.ReadyOrders)
}

func (suite *QueriesTestSuite) TestGetRecentActivity() {
	handler := queries.NewGetRecentActivityQueryHandler(suite.db, suite.ledger)

	q, err := queries.NewGetRecentActivityQuery(2)
	suite.Require().NoError(err)

	got, err := handler.Handle(context.Background(), q)
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{suite.ready.ID(), suite.delivered.ID()}, ids(got))

	suite.Run("should reject a limit above the maximum", func() {
		_, err := queries.NewGetRecentActivityQuery(queries.MaxRecentLimit + 1)
		suite.ErrorIs(err, errs.ErrValueIsOutOfRange)
	})
}

func (suite *QueriesTestSuite) TestGetOrder() {
	ctx := context.Background()
	handler := queries.NewGetOrderQueryHandler(
		orderrepo.NewGormOrderRepository(suite.db, noopTracker{}), suite.ledger, suite.clock)

	suite.Run("should return the full order with its overdue flag", func() {
		q, err := queries.NewGetOrderQuery(suite.overdue.ID())
		suite.Require().NoError(err)

		got, err := handler.Handle(ctx, q)
		suite.Require().NoError(err)
		suite.True(got.IsOverdue)
		suite.Equal(order.Received, got.Order.CurrentStage())
		suite.Len(got.Order.StageHistory(), 1)
	})

	suite.Run("should report an unknown order", func() {
		q, err := queries.NewGetOrderQuery(kernel.NewUUID())
		suite.Require().NoError(err)

		_, err = handler.Handle(ctx, q)
		suite.ErrorIs(err, errs.ErrObjectNotFound)
	})
}

func (suite *QueriesTestSuite) TestClients() {
	ctx := context.Background()
	list := queries.NewListClientsQueryHandler(suite.db, suite.ledger)
	get := queries.NewGetClientQueryHandler(suite.db, suite.ledger)

	suite.Run("should list clients by name with rollups", func() {
		got, err := list.Handle(ctx, queries.NewListClientsQuery(""))
		suite.Require().NoError(err)
		suite.Require().Len(got, 2)
		suite.Equal("Meera Jewellers", got[0].Name)
		suite.Equal(services.ClientRollup{TotalOrders: 2, ActiveOrders: 2}, got[0].ClientRollup)
		suite.Equal(services.ClientRollup{TotalOrders: 1, ActiveOrders: 0}, got[1].ClientRollup)
	})

	suite.Run("should search by phone", func() {
		got, err := list.Handle(ctx, queries.NewListClientsQuery("99876"))
		suite.Require().NoError(err)
		suite.Require().Len(got, 1)
		suite.Equal(suite.ravi.ID(), got[0].ID)
	})

	suite.Run("should return a client with its orders", func() {
		q, err := queries.NewGetClientQuery(suite.meera.ID())
		suite.Require().NoError(err)

		got, err := get.Handle(ctx, q)
		suite.Require().NoError(err)
		suite.Equal("98200 12345", got.Client.Phone)
		suite.Equal([]kernel.UUID{suite.ready.ID(), suite.overdue.ID()}, ids(got.Orders))
		suite.Equal(2, got.Client.ActiveOrders)
	})

	suite.Run("should report an unknown client", func() {
		q, err := queries.NewGetClientQuery(kernel.NewUUID())
		suite.Require().NoError(err)

		_, err = get.Handle(ctx, q)
		suite.ErrorIs(err, errs.ErrObjectNotFound)
	})
}

func (suite *QueriesTestSuite) TestBilling() {
	ctx := context.Background()

	suite.Run("should list delivered orders only", func() {
		handler := queries.NewListDeliveredOrdersQueryHandler(suite.db)

		got, err := handler.Handle(ctx, queries.NewListDeliveredOrdersQuery(""))
		suite.Require().NoError(err)
		suite.Equal([]kernel.UUID{suite.delivered.ID()}, ids(got))

		got, err = handler.Handle(ctx, queries.NewListDeliveredOrdersQuery("meera"))
		suite.Require().NoError(err)
		suite.Empty(got)
	})

	suite.Run("should render the receipt with a share link", func() {
		handler := queries.NewGetReceiptQueryHandler(suite.db, suite.settings, "IN")
		q, err := queries.NewGetReceiptQuery(suite.delivered.ID())
		suite.Require().NoError(err)

		got, err := handler.Handle(ctx, q)
		suite.Require().NoError(err)

		want := "*RADHA MADHAV CASTING*\n\n*RECEIPT*\n" +
			"ID: #" + suite.delivered.ID().Short() + "\n" +
			"Client: Ravi Ornaments\n" +
			"Fine Metal: 15.000g\n" +
			"Date: 15 Mar 2024"
		suite.Equal(want, got.Text)
		suite.True(strings.HasPrefix(got.ShareLink, "https://wa.me/919987654321?text="))
	})

	suite.Run("should refuse a receipt for an undelivered order", func() {
		handler := queries.NewGetReceiptQueryHandler(suite.db, suite.settings, "IN")
		q, err := queries.NewGetReceiptQuery(suite.ready.ID())
		suite.Require().NoError(err)

		_, err = handler.Handle(ctx, q)
		suite.ErrorIs(err, errs.ErrValueIsInvalid)
	})

	suite.Run("should export delivered orders as a workbook", func() {
		handler := queries.NewExportDeliveredOrdersQueryHandler(suite.db)

		got, err := handler.Handle(ctx, queries.NewExportDeliveredOrdersQuery(""))
		suite.Require().NoError(err)
		suite.Equal(1, got.Rows)

		f, err := excelize.OpenReader(bytes.NewReader(got.Content))
		suite.Require().NoError(err)
		defer f.Close()

		rows, err := f.GetRows(queries.ExportSheet)
		suite.Require().NoError(err)
		suite.Require().Len(rows, 2)
		suite.Equal("Order", rows[0][0])
		suite.Equal("#"+suite.delivered.ID().Short(), rows[1][0])
		suite.Equal("Ravi Ornaments", rows[1][1])
		suite.Equal("2024-03-15", rows[1][5])
	})
}

func (suite *QueriesTestSuite) TestGetSettings() {
	handler := queries.NewGetSettingsQueryHandler(suite.settings)

	got, err := handler.Handle(context.Background(), queries.NewGetSettingsQuery())
	suite.Require().NoError(err)
	suite.Equal("Radha Madhav Casting", got.Shop.Name)
	suite.InDelta(6400, got.Rates.Rate22k, 1e-9)
}

func TestQueriesSQLiteSuite(t *testing.T) {
	suite.Run(t, new(QueriesTestSuite))
}
