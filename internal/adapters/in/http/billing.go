package http

import (
	"fmt"
	"net/http"
	"strconv"

	"workshop/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// ListDeliveredOrders handles GET /api/v1/billing/delivered.
func (s *Server) ListDeliveredOrders(c echo.Context) error {
	search, err := queryString(c, "q")
	if err != nil {
		return err
	}
	facts, err := s.h.ListDeliveredOrders.Handle(c.Request().Context(), queries.NewListDeliveredOrdersQuery(search))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderSummaries(facts))
}

// GetReceipt handles GET /api/v1/orders/:id/receipt.
func (s *Server) GetReceipt(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetReceiptQuery(id)
	if err != nil {
		return err
	}

	receipt, err := s.h.GetReceipt.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ReceiptResponse{Text: receipt.Text, ShareLink: receipt.ShareLink})
}

// ExportDeliveredOrders handles GET /api/v1/billing/export.
func (s *Server) ExportDeliveredOrders(c echo.Context) error {
	search, err := queryString(c, "q")
	if err != nil {
		return err
	}
	export, err := s.h.ExportDeliveredOrders.Handle(c.Request().Context(), queries.NewExportDeliveredOrdersQuery(search))
	if err != nil {
		return err
	}

	h := c.Response().Header()
	h.Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.FileName))
	h.Set("X-Row-Count", strconv.Itoa(export.Rows))
	return c.Blob(http.StatusOK, queries.ExportContentType, export.Content)
}
