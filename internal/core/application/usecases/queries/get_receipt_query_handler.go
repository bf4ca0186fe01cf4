package queries

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"workshop/internal/core/domain/model/measurement"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/services"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"

	"github.com/ttacon/libphonenumber"
	"gorm.io/gorm"
)

// ReceiptDateLayout renders the delivery day on receipts, e.g. "2 Jan 2006".
const ReceiptDateLayout = "2 Jan 2006"

// GetReceiptQueryResponse carries the receipt text and, when the client has a
// phone on record, a WhatsApp link that opens a chat with the text prefilled.
type GetReceiptQueryResponse struct {
	Text      string
	ShareLink string
}

// GetReceiptQueryHandler renders receipts. Phones are normalized with
// libphonenumber in the configured default region; an unparsable phone falls
// back to its digits.
type GetReceiptQueryHandler struct {
	db       *gorm.DB
	settings ports.SettingsRepository
	region   string
}

func NewGetReceiptQueryHandler(db *gorm.DB, settings ports.SettingsRepository, region string) GetReceiptQueryHandler {
	return GetReceiptQueryHandler{db: db, settings: settings, region: strings.ToUpper(strings.TrimSpace(region))}
}

func (h GetReceiptQueryHandler) Handle(ctx context.Context, query GetReceiptQuery) (GetReceiptQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetReceiptQueryResponse{}, err
	}

	id := query.OrderID()
	facts, err := loadOrderFacts(ctx, h.db, "id = ?", id.Bytes())
	if err != nil {
		return GetReceiptQueryResponse{}, err
	}
	if len(facts) == 0 {
		return GetReceiptQueryResponse{}, errs.NewObjectNotFoundError("order", id.String())
	}
	f := facts[0]
	if f.Stage != order.Delivered {
		return GetReceiptQueryResponse{}, errs.NewValueIsInvalidErrorWithCause(
			"orderId",
			fmt.Errorf("order is %s, receipts are issued for delivered orders", f.Stage),
		)
	}

	s, err := h.settings.Get(ctx)
	if err != nil {
		return GetReceiptQueryResponse{}, err
	}

	text := ReceiptText(s.Shop().Name, f)
	resp := GetReceiptQueryResponse{Text: text}

	clients, err := loadClients(ctx, h.db, "id = ?", f.ClientID.Bytes())
	if err != nil {
		return GetReceiptQueryResponse{}, err
	}
	if len(clients) > 0 {
		if phone := h.whatsAppNumber(clients[0].Phone); phone != "" {
			resp.ShareLink = "https://wa.me/" + phone + "?text=" + url.QueryEscape(text)
		}
	}
	return resp, nil
}

// ReceiptText renders the receipt for a delivered order.
func ReceiptText(shopName string, f services.OrderFacts) string {
	day := f.CreatedAt
	if f.DeliveredAt != nil {
		day = *f.DeliveredAt
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n\n", strings.ToUpper(strings.TrimSpace(shopName)))
	b.WriteString("*RECEIPT*\n")
	fmt.Fprintf(&b, "ID: #%s\n", f.ID.Short())
	fmt.Fprintf(&b, "Client: %s\n", f.ClientName)
	fmt.Fprintf(&b, "Fine Metal: %s\n", measurement.Format(f.FineGold))
	fmt.Fprintf(&b, "Date: %s", day.Format(ReceiptDateLayout))
	return b.String()
}

// whatsAppNumber returns the international number without the plus sign.
func (h GetReceiptQueryHandler) whatsAppNumber(phone string) string {
	if num, err := libphonenumber.Parse(phone, h.region); err == nil && libphonenumber.IsValidNumber(num) {
		return strings.TrimPrefix(libphonenumber.Format(num, libphonenumber.E164), "+")
	}

	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
}
