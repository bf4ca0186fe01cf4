package queries

import (
	"context"

	"workshop/internal/core/domain/model/settings"
	"workshop/internal/core/ports"
)

type GetSettingsQueryResponse struct {
	Rates settings.GoldRates
	Shop  settings.ShopDetails
}

type GetSettingsQueryHandler struct {
	settings ports.SettingsRepository
}

func NewGetSettingsQueryHandler(settings ports.SettingsRepository) GetSettingsQueryHandler {
	return GetSettingsQueryHandler{settings: settings}
}

func (h GetSettingsQueryHandler) Handle(ctx context.Context, query GetSettingsQuery) (GetSettingsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSettingsQueryResponse{}, err
	}

	s, err := h.settings.Get(ctx)
	if err != nil {
		return GetSettingsQueryResponse{}, err
	}
	return GetSettingsQueryResponse{Rates: s.Rates(), Shop: s.Shop()}, nil
}
