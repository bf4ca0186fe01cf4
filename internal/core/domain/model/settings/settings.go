package settings

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"workshop/internal/core/domain/model/measurement"
	"workshop/internal/pkg/errs"
)

var ErrSettingsIsNotConstructed = errors.New("Settings must be created via DefaultSettings or RestoreSettings")

// Default values applied before the shop owner edits anything.
const (
	DefaultRate24k     = 7000
	DefaultRate22k     = 6400
	DefaultShopName    = "Radha Madhav Casting"
	DefaultShopAddress = "Jewelers Market, Panvel"
	DefaultShopPhone   = "+91 7977696813"
	DefaultShopGST     = "27ABCU9603R1ZM"
)

// GoldRates are per-gram prices used for valuation only. They never feed the
// fine-metal figures.
type GoldRates struct {
	Rate24k     float64
	Rate22k     float64
	LastUpdated time.Time
}

// ShopDetails are printed on receipts.
type ShopDetails struct {
	Name      string
	Address   string
	Phone     string
	GSTNumber string
}

// Settings is the single workshop-wide configuration record.
type Settings struct {
	rates GoldRates
	shop  ShopDetails

	isConstructed bool
}

func DefaultSettings(now time.Time) *Settings {
	return &Settings{
		rates: GoldRates{Rate24k: DefaultRate24k, Rate22k: DefaultRate22k, LastUpdated: now.UTC()},
		shop: ShopDetails{
			Name:      DefaultShopName,
			Address:   DefaultShopAddress,
			Phone:     DefaultShopPhone,
			GSTNumber: DefaultShopGST,
		},
		isConstructed: true,
	}
}

func RestoreSettings(rates GoldRates, shop ShopDetails) (*Settings, error) {
	if err := errors.Join(validateRates(rates), validateShop(shop)); err != nil {
		return nil, err
	}
	return &Settings{rates: rates, shop: shop, isConstructed: true}, nil
}

func (s *Settings) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSettingsIsNotConstructed
	}
	return nil
}

func (s *Settings) Rates() GoldRates {
	return s.rates
}

func (s *Settings) Shop() ShopDetails {
	return s.shop
}

// UpdateRates replaces both rates and stamps LastUpdated.
func (s *Settings) UpdateRates(rate24k, rate22k float64, now time.Time) error {
	rates := GoldRates{Rate24k: rate24k, Rate22k: rate22k, LastUpdated: now.UTC()}
	if err := validateRates(rates); err != nil {
		return err
	}
	s.rates = rates
	return nil
}

func (s *Settings) UpdateShop(shop ShopDetails) error {
	shop = ShopDetails{
		Name:      strings.TrimSpace(shop.Name),
		Address:   strings.TrimSpace(shop.Address),
		Phone:     strings.TrimSpace(shop.Phone),
		GSTNumber: strings.ToUpper(strings.TrimSpace(shop.GSTNumber)),
	}
	if err := validateShop(shop); err != nil {
		return err
	}
	s.shop = shop
	return nil
}

// Valuation prices fine grams at the 24k rate, rounded to whole currency units.
func (s *Settings) Valuation(fineGrams float64) float64 {
	return measurement.Value(fineGrams, s.rates.Rate24k)
}

func validateRates(r GoldRates) error {
	return errors.Join(validateRate("rate24k", r.Rate24k), validateRate("rate22k", r.Rate22k))
}

func validateRate(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return errs.NewValueIsOutOfRangeErrorWithCause(name, v, 0, math.Inf(1), fmt.Errorf("rate must be a non-negative number"))
	}
	return nil
}

func validateShop(s ShopDetails) error {
	if strings.TrimSpace(s.Name) == "" {
		return errs.NewValueIsRequiredError("shopName")
	}
	return nil
}
