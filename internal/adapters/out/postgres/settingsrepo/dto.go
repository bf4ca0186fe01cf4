// Package settingsrepo persists the single workshop settings record.
package settingsrepo

import (
	"time"

	"workshop/internal/core/domain/model/settings"
)

// settingsRowID is the primary key of the only settings row.
const settingsRowID = 1

type SettingsDTO struct {
	ID             int `gorm:"primaryKey;autoIncrement:false"`
	Rate24k        float64
	Rate22k        float64
	RatesUpdatedAt time.Time
	ShopName       string
	ShopAddress    string
	ShopPhone      string
	ShopGSTNumber  string `gorm:"column:shop_gst_number"`
}

func (SettingsDTO) TableName() string {
	return "settings"
}

func fromDomain(s *settings.Settings) SettingsDTO {
	rates, shop := s.Rates(), s.Shop()
	return SettingsDTO{
		ID:             settingsRowID,
		Rate24k:        rates.Rate24k,
		Rate22k:        rates.Rate22k,
		RatesUpdatedAt: rates.LastUpdated,
		ShopName:       shop.Name,
		ShopAddress:    shop.Address,
		ShopPhone:      shop.Phone,
		ShopGSTNumber:  shop.GSTNumber,
	}
}

func toDomain(dto SettingsDTO) (*settings.Settings, error) {
	return settings.RestoreSettings(
		settings.GoldRates{
			Rate24k:     dto.Rate24k,
			Rate22k:     dto.Rate22k,
			LastUpdated: dto.RatesUpdatedAt.UTC(),
		},
		settings.ShopDetails{
			Name:      dto.ShopName,
			Address:   dto.ShopAddress,
			Phone:     dto.ShopPhone,
			GSTNumber: dto.ShopGSTNumber,
		},
	)
}
