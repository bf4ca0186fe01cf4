package queries

import (
	"context"

	"workshop/internal/core/domain/services"
	"workshop/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetClientQueryResponse struct {
	Client ClientSummary
	// Orders are the client's orders, newest first.
	Orders []services.OrderFacts
}

type GetClientQueryHandler struct {
	db     *gorm.DB
	ledger services.Ledger
}

func NewGetClientQueryHandler(db *gorm.DB, ledger services.Ledger) GetClientQueryHandler {
	return GetClientQueryHandler{db: db, ledger: ledger}
}

func (h GetClientQueryHandler) Handle(ctx context.Context, query GetClientQuery) (GetClientQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetClientQueryResponse{}, err
	}

	id := query.ClientID()
	clients, err := loadClients(ctx, h.db, "id = ?", id.Bytes())
	if err != nil {
		return GetClientQueryResponse{}, err
	}
	if len(clients) == 0 {
		return GetClientQueryResponse{}, errs.NewObjectNotFoundError("client", id.String())
	}

	facts, err := loadOrderFacts(ctx, h.db, "client_id = ?", id.Bytes())
	if err != nil {
		return GetClientQueryResponse{}, err
	}

	c := clients[0]
	c.ClientRollup = h.ledger.ClientRollups(facts)[id]
	return GetClientQueryResponse{Client: c, Orders: facts}, nil
}
