package http

import (
	"net/http"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/domain/model/settings"

	"github.com/labstack/echo/v4"
)

// GetSettings handles GET /api/v1/settings.
func (s *Server) GetSettings(c echo.Context) error {
	result, err := s.h.GetSettings.Handle(c.Request().Context(), queries.NewGetSettingsQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSettingsResponse(result))
}

// UpdateSettings handles PUT /api/v1/settings. Either section may be left out.
func (s *Server) UpdateSettings(c echo.Context) error {
	var req UpdateSettingsRequest
	if err := s.bindBody(c, "UpdateSettingsRequest", &req); err != nil {
		return err
	}

	var (
		rates *commands.RatesInput
		shop  *settings.ShopDetails
	)
	if req.Rates != nil {
		rates = &commands.RatesInput{Rate24k: req.Rates.Rate24k, Rate22k: req.Rates.Rate22k}
	}
	if req.Shop != nil {
		shop = &settings.ShopDetails{
			Name:      req.Shop.Name,
			Address:   req.Shop.Address,
			Phone:     req.Shop.Phone,
			GSTNumber: req.Shop.GSTNumber,
		}
	}

	cmd, err := commands.NewUpdateSettingsCommand(rates, shop)
	if err != nil {
		return err
	}
	if err = s.h.UpdateSettings.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	result, err := s.h.GetSettings.Handle(c.Request().Context(), queries.NewGetSettingsQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSettingsResponse(result))
}

// GetStorageUsage handles GET /api/v1/storage/usage.
func (s *Server) GetStorageUsage(c echo.Context) error {
	usage, err := s.h.GetStorageUsage.Handle(c.Request().Context(), queries.NewGetStorageUsageQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStorageUsage(usage))
}

func toSettingsResponse(r queries.GetSettingsQueryResponse) SettingsResponse {
	return SettingsResponse{
		Rates: toRatesResponse(r.Rates),
		Shop: ShopResponse{
			Name:      r.Shop.Name,
			Address:   r.Shop.Address,
			Phone:     r.Shop.Phone,
			GSTNumber: r.Shop.GSTNumber,
		},
	}
}
