package http

import (
	"net/http"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/domain/model/client"
	"workshop/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// CreateClient handles POST /api/v1/clients.
func (s *Server) CreateClient(c echo.Context) error {
	var req ClientRequest
	if err := s.bindBody(c, "ClientRequest", &req); err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateClientCommand(id, clientDetails(req))
	if err != nil {
		return err
	}
	if err = s.h.CreateClient.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, CreatedResponse{ID: id.String()})
}

// ListClients handles GET /api/v1/clients.
func (s *Server) ListClients(c echo.Context) error {
	search, err := queryString(c, "q")
	if err != nil {
		return err
	}

	clients, err := s.h.ListClients.Handle(c.Request().Context(), queries.NewListClientsQuery(search))
	if err != nil {
		return err
	}

	resp := make([]ClientResponse, 0, len(clients))
	for _, cl := range clients {
		resp = append(resp, toClientResponse(cl))
	}
	return c.JSON(http.StatusOK, resp)
}

// GetClient handles GET /api/v1/clients/:id.
func (s *Server) GetClient(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetClientQuery(id)
	if err != nil {
		return err
	}

	result, err := s.h.GetClient.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ClientDetailResponse{
		ClientResponse: toClientResponse(result.Client),
		Orders:         toOrderSummaries(result.Orders),
	})
}

// EditClient handles PUT /api/v1/clients/:id.
func (s *Server) EditClient(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req ClientRequest
	if err = s.bindBody(c, "ClientRequest", &req); err != nil {
		return err
	}

	cmd, err := commands.NewEditClientCommand(id, clientDetails(req))
	if err != nil {
		return err
	}
	if err = s.h.EditClient.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteClient handles DELETE /api/v1/clients/:id. The client's orders stay.
func (s *Server) DeleteClient(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteClientCommand(id)
	if err != nil {
		return err
	}
	if err = s.h.DeleteClient.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func clientDetails(req ClientRequest) client.Details {
	return client.Details{
		Name:      req.Name,
		Phone:     req.Phone,
		Address:   req.Address,
		GSTNumber: req.GSTNumber,
	}
}
