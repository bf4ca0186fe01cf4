package http

import (
	"time"

	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/model/settings"
	"workshop/internal/core/domain/services"
	"workshop/internal/core/ports"

	"github.com/labstack/gommon/bytes"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type ClientRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	Phone     string `json:"phone" validate:"required,max=40"`
	Address   string `json:"address" validate:"max=500"`
	GSTNumber string `json:"gstNumber" validate:"max=20"`
}

type CreateOrderRequest struct {
	ClientID             string             `json:"clientId" validate:"required,uuid"`
	JewelleryType        string             `json:"jewelleryType" validate:"required"`
	TotalDelivered       float64            `json:"totalDelivered" validate:"gte=0"`
	StoneWeight          float64            `json:"stoneWeight" validate:"gte=0"`
	Quality              float64            `json:"quality" validate:"gt=0,lte=100"`
	ProfitGold           float64            `json:"profitGold" validate:"gte=0"`
	Wastage              float64            `json:"wastage" validate:"gte=0"`
	FinalWeight          float64            `json:"finalWeight" validate:"gte=0"`
	ExpectedDeliveryDate openapi_types.Date `json:"expectedDeliveryDate"`
	Notes                string             `json:"notes" validate:"max=2000"`
	Photo                string             `json:"photo"`
}

// AdvanceRequest moves an order forward. A blank stage means the stage after
// the current one.
type AdvanceRequest struct {
	Stage     string `json:"stage"`
	Notes     string `json:"notes" validate:"max=2000"`
	Photo     string `json:"photo"`
	Signature string `json:"signature"`
}

type BulkAdvanceRequest struct {
	OrderIDs []string `json:"orderIds" validate:"required,min=1,dive,uuid"`
}

type AmendRequest struct {
	TotalDelivered       *float64            `json:"totalDelivered,omitempty" validate:"omitempty,gte=0"`
	StoneWeight          *float64            `json:"stoneWeight,omitempty" validate:"omitempty,gte=0"`
	Quality              *float64            `json:"quality,omitempty" validate:"omitempty,gt=0,lte=100"`
	ProfitGold           *float64            `json:"profitGold,omitempty" validate:"omitempty,gte=0"`
	Wastage              *float64            `json:"wastage,omitempty" validate:"omitempty,gte=0"`
	FinalWeight          *float64            `json:"finalWeight,omitempty" validate:"omitempty,gte=0"`
	ExpectedDeliveryDate *openapi_types.Date `json:"expectedDeliveryDate,omitempty"`
	Notes                *string             `json:"notes,omitempty"`
	Reason               string              `json:"reason" validate:"max=500"`
}

type RatesRequest struct {
	Rate24k float64 `json:"rate24k" validate:"gte=0"`
	Rate22k float64 `json:"rate22k" validate:"gte=0"`
}

type ShopRequest struct {
	Name      string `json:"name" validate:"required"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	GSTNumber string `json:"gstNumber"`
}

type UpdateSettingsRequest struct {
	Rates *RatesRequest `json:"rates,omitempty"`
	Shop  *ShopRequest  `json:"shop,omitempty"`
}

type CreatedResponse struct {
	ID string `json:"id"`
}

type StageEntryResponse struct {
	Stage     string    `json:"stage"`
	Timestamp time.Time `json:"timestamp"`
	UpdatedBy string    `json:"updatedBy"`
	Notes     string    `json:"notes,omitempty"`
}

type DeliveryProofResponse struct {
	Photo       string    `json:"photo"`
	Signature   string    `json:"signature"`
	DeliveredBy string    `json:"deliveredBy"`
	Timestamp   time.Time `json:"timestamp"`
}

type FieldChangeResponse struct {
	Field  string `json:"field"`
	Before string `json:"before"`
	After  string `json:"after"`
}

type AmendmentResponse struct {
	Timestamp time.Time             `json:"timestamp"`
	Actor     string                `json:"actor"`
	Reason    string                `json:"reason,omitempty"`
	Changes   []FieldChangeResponse `json:"changes"`
}

type OrderResponse struct {
	ID                   string                 `json:"id"`
	ClientID             string                 `json:"clientId"`
	ClientName           string                 `json:"clientName"`
	JewelleryType        string                 `json:"jewelleryType"`
	TotalDelivered       float64                `json:"totalDelivered"`
	StoneWeight          float64                `json:"stoneWeight"`
	Quality              float64                `json:"quality"`
	NetGoldUsed          float64                `json:"netGoldUsed"`
	FineGold             float64                `json:"fineGold"`
	ProfitGold           float64                `json:"profitGold"`
	Wastage              float64                `json:"wastage"`
	FinalWeight          float64                `json:"finalWeight"`
	ExpectedDeliveryDate openapi_types.Date     `json:"expectedDeliveryDate"`
	CurrentStage         string                 `json:"currentStage"`
	StageHistory         []StageEntryResponse   `json:"stageHistory"`
	DeliveryProof        *DeliveryProofResponse `json:"deliveryProof,omitempty"`
	CreatedAt            time.Time              `json:"createdAt"`
	DeliveredAt          *time.Time             `json:"deliveredAt,omitempty"`
	Notes                string                 `json:"notes,omitempty"`
	Photo                string                 `json:"photo,omitempty"`
	Amendments           []AmendmentResponse    `json:"amendments"`
	IsOverdue            bool                   `json:"isOverdue"`
	Version              int                    `json:"version"`
}

// OrderSummaryResponse is one row of a listing.
type OrderSummaryResponse struct {
	ID                   string             `json:"id"`
	ShortID              string             `json:"shortId"`
	ClientID             string             `json:"clientId"`
	ClientName           string             `json:"clientName"`
	CurrentStage         string             `json:"currentStage"`
	TotalDelivered       float64            `json:"totalDelivered"`
	FineGold             float64            `json:"fineGold"`
	ProfitGold           float64            `json:"profitGold"`
	ExpectedDeliveryDate openapi_types.Date `json:"expectedDeliveryDate"`
	CreatedAt            time.Time          `json:"createdAt"`
	DeliveredAt          *time.Time         `json:"deliveredAt,omitempty"`
	IsOverdue            *bool              `json:"isOverdue,omitempty"`
}

type ClientResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Phone              string    `json:"phone"`
	Address            string    `json:"address,omitempty"`
	GSTNumber          string    `json:"gstNumber,omitempty"`
	TotalGoldGiven     float64   `json:"totalGoldGiven"`
	TotalGoldDelivered float64   `json:"totalGoldDelivered"`
	TotalOrders        int       `json:"totalOrders"`
	ActiveOrders       int       `json:"activeOrders"`
	CreatedAt          time.Time `json:"createdAt"`
}

type ClientDetailResponse struct {
	ClientResponse
	Orders []OrderSummaryResponse `json:"orders"`
}

type BulkAdvanceItem struct {
	OrderID string `json:"orderId"`
	OK      bool   `json:"ok"`
	Status  int    `json:"status"`
	Error   *Error `json:"error,omitempty"`
}

type BulkAdvanceResponse struct {
	Results []BulkAdvanceItem `json:"results"`
}

type RatesResponse struct {
	Rate24k     float64   `json:"rate24k"`
	Rate22k     float64   `json:"rate22k"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type ShopResponse struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	GSTNumber string `json:"gstNumber"`
}

type SettingsResponse struct {
	Rates RatesResponse `json:"rates"`
	Shop  ShopResponse  `json:"shop"`
}

type LedgerResponse struct {
	TotalOrders     int           `json:"totalOrders"`
	TotalFineGold   float64       `json:"totalFineGold"`
	TotalProfitGold float64       `json:"totalProfitGold"`
	Delivered       int           `json:"delivered"`
	Ready           int           `json:"ready"`
	Overdue         int           `json:"overdue"`
	Pending         int           `json:"pending"`
	Rates           RatesResponse `json:"rates"`
	Valuation       float64       `json:"valuation"`
}

type TodayResponse struct {
	OrdersReceivedToday int     `json:"ordersReceivedToday"`
	TotalDeliveredToday float64 `json:"totalDeliveredToday"`
	FineGoldToday       float64 `json:"fineGoldToday"`
	DeliveredToday      int     `json:"deliveredToday"`
	PendingDeliveries   int     `json:"pendingDeliveries"`
	OverdueOrders       int     `json:"overdueOrders"`
	ReadyOrders         int     `json:"readyOrders"`
}

type ReceiptResponse struct {
	Text      string `json:"text"`
	ShareLink string `json:"shareLink,omitempty"`
}

type StorageUsageResponse struct {
	Bytes     int64   `json:"bytes"`
	Megabytes float64 `json:"megabytes"`
	Human     string  `json:"human"`
	Objects   int     `json:"objects"`
}

func date(d kernel.Date) openapi_types.Date {
	return openapi_types.Date{Time: d.Time()}
}

func toOrderResponse(o *order.Order, overdue bool) OrderResponse {
	resp := OrderResponse{
		ID:                   o.ID().String(),
		ClientID:             o.ClientID().String(),
		ClientName:           o.ClientName(),
		JewelleryType:        o.JewelleryType().String(),
		TotalDelivered:       o.TotalDelivered(),
		StoneWeight:          o.StoneWeight(),
		Quality:              o.Quality(),
		NetGoldUsed:          o.NetGoldUsed(),
		FineGold:             o.FineGold(),
		ProfitGold:           o.Extras().ProfitGold,
		Wastage:              o.Extras().Wastage,
		FinalWeight:          o.Extras().FinalWeight,
		ExpectedDeliveryDate: date(o.ExpectedDeliveryDate()),
		CurrentStage:         o.CurrentStage().String(),
		CreatedAt:            o.CreatedAt(),
		DeliveredAt:          o.DeliveredAt(),
		Notes:                o.Notes(),
		Photo:                o.Photo(),
		IsOverdue:            overdue,
		Version:              o.Version(),
	}

	for _, e := range o.StageHistory() {
		resp.StageHistory = append(resp.StageHistory, StageEntryResponse{
			Stage:     e.Stage().String(),
			Timestamp: e.Timestamp(),
			UpdatedBy: e.UpdatedBy().Name(),
			Notes:     e.Notes(),
		})
	}

	if p := o.DeliveryProof(); p != nil {
		resp.DeliveryProof = &DeliveryProofResponse{
			Photo:       p.Photo(),
			Signature:   p.Signature(),
			DeliveredBy: p.DeliveredBy().Name(),
			Timestamp:   p.Timestamp(),
		}
	}

	resp.Amendments = make([]AmendmentResponse, 0, len(o.Amendments()))
	for _, a := range o.Amendments() {
		changes := make([]FieldChangeResponse, 0, len(a.Changes()))
		for _, c := range a.Changes() {
			changes = append(changes, FieldChangeResponse{Field: c.Field, Before: c.Before, After: c.After})
		}
		resp.Amendments = append(resp.Amendments, AmendmentResponse{
			Timestamp: a.Timestamp(),
			Actor:     a.Actor().Name(),
			Reason:    a.Reason(),
			Changes:   changes,
		})
	}
	return resp
}

func toOrderSummary(f services.OrderFacts) OrderSummaryResponse {
	return OrderSummaryResponse{
		ID:                   f.ID.String(),
		ShortID:              f.ID.Short(),
		ClientID:             f.ClientID.String(),
		ClientName:           f.ClientName,
		CurrentStage:         f.Stage.String(),
		TotalDelivered:       f.TotalDelivered,
		FineGold:             f.FineGold,
		ProfitGold:           f.ProfitGold,
		ExpectedDeliveryDate: date(f.ExpectedDeliveryDate),
		CreatedAt:            f.CreatedAt,
		DeliveredAt:          f.DeliveredAt,
	}
}

func toOrderSummaries(facts []services.OrderFacts) []OrderSummaryResponse {
	out := make([]OrderSummaryResponse, 0, len(facts))
	for _, f := range facts {
		out = append(out, toOrderSummary(f))
	}
	return out
}

func toClientResponse(c queries.ClientSummary) ClientResponse {
	return ClientResponse{
		ID:                 c.ID.String(),
		Name:               c.Name,
		Phone:              c.Phone,
		Address:            c.Address,
		GSTNumber:          c.GSTNumber,
		TotalGoldGiven:     c.TotalGoldGiven,
		TotalGoldDelivered: c.TotalGoldDelivered,
		TotalOrders:        c.TotalOrders,
		ActiveOrders:       c.ActiveOrders,
		CreatedAt:          c.CreatedAt,
	}
}

func toRatesResponse(r settings.GoldRates) RatesResponse {
	return RatesResponse{Rate24k: r.Rate24k, Rate22k: r.Rate22k, LastUpdated: r.LastUpdated}
}

func toStorageUsage(u ports.StorageUsage) StorageUsageResponse {
	return StorageUsageResponse{
		Bytes:     u.Bytes,
		Megabytes: float64(u.Bytes) / (1024 * 1024),
		Human:     bytes.Format(u.Bytes),
		Objects:   u.Objects,
	}
}
