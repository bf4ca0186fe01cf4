package http

import (
	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// Handlers are the use cases exposed over HTTP.
type Handlers struct {
	// Command handlers
	CreateClient   commands.CreateClientCommandHandler
	EditClient     commands.EditClientCommandHandler
	DeleteClient   commands.DeleteClientCommandHandler
	CreateOrder    commands.CreateOrderCommandHandler
	AdvanceStage   commands.AdvanceStageCommandHandler
	BulkAdvance    commands.BulkAdvanceCommandHandler
	AmendOrder     commands.AmendOrderCommandHandler
	UpdateSettings commands.UpdateSettingsCommandHandler

	// Query handlers
	ListClients           queries.ListClientsQueryHandler
	GetClient             queries.GetClientQueryHandler
	ListOrders            queries.ListOrdersQueryHandler
	GetOrder              queries.GetOrderQueryHandler
	GetLedger             queries.GetLedgerQueryHandler
	GetTodayMetrics       queries.GetTodayMetricsQueryHandler
	GetRecentActivity     queries.GetRecentActivityQueryHandler
	ListDeliveredOrders   queries.ListDeliveredOrdersQueryHandler
	GetReceipt            queries.GetReceiptQueryHandler
	ExportDeliveredOrders queries.ExportDeliveredOrdersQueryHandler
	GetSettings           queries.GetSettingsQueryHandler
	GetStorageUsage       queries.GetStorageUsageQueryHandler
}

// Server translates HTTP requests into commands and queries.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	h   Handlers
	api *apiDocument
}

// NewServer creates a server. It fails when the embedded API document does
// not load.
func NewServer(h Handlers) (*Server, error) {
	api, err := loadAPIDocument()
	if err != nil {
		return nil, err
	}
	return &Server{h: h, api: api}, nil
}

// RegisterRoutes mounts the REST API on g, normally the /api/v1 group.
func (s *Server) RegisterRoutes(g *echo.Group) {
	g.POST("/clients", s.CreateClient)
	g.GET("/clients", s.ListClients)
	g.GET("/clients/:id", s.GetClient)
	g.PUT("/clients/:id", s.EditClient)
	g.DELETE("/clients/:id", s.DeleteClient)

	g.POST("/orders", s.CreateOrder)
	g.GET("/orders", s.ListOrders)
	g.POST("/orders/advance", s.BulkAdvance)
	g.GET("/orders/:id", s.GetOrder)
	g.PATCH("/orders/:id", s.AmendOrder)
	g.POST("/orders/:id/advance", s.AdvanceOrder)
	g.GET("/orders/:id/receipt", s.GetReceipt)

	g.GET("/ledger", s.GetLedger)
	g.GET("/ledger/today", s.GetTodayMetrics)
	g.GET("/ledger/recent", s.GetRecentActivity)

	g.GET("/billing/delivered", s.ListDeliveredOrders)
	g.GET("/billing/export", s.ExportDeliveredOrders)

	g.GET("/settings", s.GetSettings)
	g.PUT("/settings", s.UpdateSettings)

	g.GET("/storage/usage", s.GetStorageUsage)
}
