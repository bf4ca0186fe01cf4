package http

import (
	"net/http"

	"workshop/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// GetLedger handles GET /api/v1/ledger.
func (s *Server) GetLedger(c echo.Context) error {
	result, err := s.h.GetLedger.Handle(c.Request().Context(), queries.NewGetLedgerQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, LedgerResponse{
		TotalOrders:     result.Totals.Orders,
		TotalFineGold:   result.Totals.FineGold,
		TotalProfitGold: result.Totals.ProfitGold,
		Delivered:       result.StatusCounts.Delivered,
		Ready:           result.StatusCounts.Ready,
		Overdue:         result.StatusCounts.Overdue,
		Pending:         result.StatusCounts.Pending,
		Rates:           toRatesResponse(result.Rates),
		Valuation:       result.Valuation,
	})
}

// GetTodayMetrics handles GET /api/v1/ledger/today.
func (s *Server) GetTodayMetrics(c echo.Context) error {
	m, err := s.h.GetTodayMetrics.Handle(c.Request().Context(), queries.NewGetTodayMetricsQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, TodayResponse{
		OrdersReceivedToday: m.OrdersReceivedToday,
		TotalDeliveredToday: m.TotalDeliveredToday,
		FineGoldToday:       m.FineGoldToday,
		DeliveredToday:      m.DeliveredToday,
		PendingDeliveries:   m.PendingDeliveries,
		OverdueOrders:       m.OverdueOrders,
		ReadyOrders:         m.ReadyOrders,
	})
}

// GetRecentActivity handles GET /api/v1/ledger/recent.
func (s *Server) GetRecentActivity(c echo.Context) error {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}
	query, err := queries.NewGetRecentActivityQuery(limit)
	if err != nil {
		return err
	}

	facts, err := s.h.GetRecentActivity.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderSummaries(facts))
}
