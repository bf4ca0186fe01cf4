package http

import (
	"net/http"
	"strings"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := s.bindBody(c, "CreateOrderRequest", &req); err != nil {
		return err
	}
	clientID, err := kernel.UUIDFromString(req.ClientID)
	if err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(id, commands.CreateOrderInput{
		ClientID:             clientID,
		JewelleryType:        req.JewelleryType,
		TotalDelivered:       req.TotalDelivered,
		StoneWeight:          req.StoneWeight,
		Quality:              req.Quality,
		ProfitGold:           req.ProfitGold,
		Wastage:              req.Wastage,
		FinalWeight:          req.FinalWeight,
		ExpectedDeliveryDate: kernel.DateOf(req.ExpectedDeliveryDate.Time, nil),
		Notes:                req.Notes,
		Photo:                req.Photo,
	})
	if err != nil {
		return err
	}
	if err = s.h.CreateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, CreatedResponse{ID: id.String()})
}

// ListOrders handles GET /api/v1/orders. The stage, clientId and q parameters
// narrow the listing.
func (s *Server) ListOrders(c echo.Context) error {
	var filter queries.OrderFilter

	stage, err := queryString(c, "stage")
	if err != nil {
		return err
	}
	if stage != "" {
		if filter.Stage, err = order.ParseStage(stage); err != nil {
			return err
		}
	}

	clientID, err := queryString(c, "clientId")
	if err != nil {
		return err
	}
	if clientID != "" {
		if filter.ClientID, err = kernel.UUIDFromString(clientID); err != nil {
			return err
		}
	}

	if filter.Search, err = queryString(c, "q"); err != nil {
		return err
	}

	query, err := queries.NewListOrdersQuery(filter)
	if err != nil {
		return err
	}
	orders, err := s.h.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	resp := make([]OrderSummaryResponse, 0, len(orders))
	for _, o := range orders {
		row := toOrderSummary(o.OrderFacts)
		overdue := o.IsOverdue
		row.IsOverdue = &overdue
		resp = append(resp, row)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return err
	}

	result, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(result.Order, result.IsOverdue))
}

// AdvanceOrder handles POST /api/v1/orders/:id/advance.
//
// A blank stage advances to whatever follows the current stage. Handover
// evidence without a stage is a delivery request.
func (s *Server) AdvanceOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req AdvanceRequest
	if err = s.bindBody(c, "AdvanceRequest", &req); err != nil {
		return err
	}

	cmd, err := advanceCommand(id, req)
	if err != nil {
		return err
	}
	if err = s.h.AdvanceStage.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return err
	}
	result, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(result.Order, result.IsOverdue))
}

func advanceCommand(id kernel.UUID, req AdvanceRequest) (commands.AdvanceStageCommand, error) {
	stage := strings.TrimSpace(req.Stage)
	hasProof := strings.TrimSpace(req.Photo) != "" || strings.TrimSpace(req.Signature) != ""

	if stage == "" && !hasProof {
		return commands.NewAdvanceToNextStageCommand(id, "", req.Notes)
	}

	target := order.Delivered
	if stage != "" {
		var err error
		if target, err = order.ParseStage(stage); err != nil {
			return commands.AdvanceStageCommand{}, err
		}
	}
	return commands.NewAdvanceStageCommand(id, commands.AdvanceStageInput{
		Target:    target,
		Notes:     req.Notes,
		Photo:     req.Photo,
		Signature: req.Signature,
	})
}

// BulkAdvance handles POST /api/v1/orders/advance. Every order is reported on
// its own; the request succeeds even when some orders fail.
func (s *Server) BulkAdvance(c echo.Context) error {
	var req BulkAdvanceRequest
	if err := s.bindBody(c, "BulkAdvanceRequest", &req); err != nil {
		return err
	}

	ids := make([]kernel.UUID, 0, len(req.OrderIDs))
	for _, raw := range req.OrderIDs {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	cmd, err := commands.NewBulkAdvanceCommand(ids, "")
	if err != nil {
		return err
	}
	results, err := s.h.BulkAdvance.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	resp := BulkAdvanceResponse{Results: make([]BulkAdvanceItem, 0, len(results))}
	for _, r := range results {
		item := BulkAdvanceItem{OrderID: r.OrderID.String(), OK: r.Err == nil, Status: http.StatusOK}
		if r.Err != nil {
			item.Status = StatusOf(r.Err)
			item.Error = errorBody(r.Err, item.Status)
		}
		resp.Results = append(resp.Results, item)
	}
	return c.JSON(http.StatusOK, resp)
}

// AmendOrder handles PATCH /api/v1/orders/:id. Absent fields are unchanged.
func (s *Server) AmendOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req AmendRequest
	if err = s.bindBody(c, "AmendRequest", &req); err != nil {
		return err
	}

	in := order.AmendInput{
		TotalDelivered: req.TotalDelivered,
		StoneWeight:    req.StoneWeight,
		Quality:        req.Quality,
		ProfitGold:     req.ProfitGold,
		Wastage:        req.Wastage,
		FinalWeight:    req.FinalWeight,
		Notes:          req.Notes,
		Reason:         req.Reason,
	}
	if req.ExpectedDeliveryDate != nil {
		d := kernel.DateOf(req.ExpectedDeliveryDate.Time, nil)
		in.ExpectedDeliveryDate = &d
	}

	cmd, err := commands.NewAmendOrderCommand(id, in, "")
	if err != nil {
		return err
	}
	if err = s.h.AmendOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return err
	}
	result, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(result.Order, result.IsOverdue))
}
