package queries

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientSummary is a client with its lifetime accumulators and order counts.
type ClientSummary struct {
	ID                 kernel.UUID
	Name               string
	Phone              string
	Address            string
	GSTNumber          string
	TotalGoldGiven     float64
	TotalGoldDelivered float64
	CreatedAt          time.Time
	services.ClientRollup
}

type ListClientsQueryHandler struct {
	db     *gorm.DB
	ledger services.Ledger
}

func NewListClientsQueryHandler(db *gorm.DB, ledger services.Ledger) ListClientsQueryHandler {
	return ListClientsQueryHandler{db: db, ledger: ledger}
}

// Handle returns matching clients in ascending name order.
func (h ListClientsQueryHandler) Handle(ctx context.Context, query ListClientsQuery) ([]ClientSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	clients, err := loadClients(ctx, h.db, "")
	if err != nil {
		return nil, err
	}

	facts, err := loadOrderFacts(ctx, h.db, "")
	if err != nil {
		return nil, err
	}
	rollups := h.ledger.ClientRollups(facts)

	m := newMatcher(query.Search())
	result := make([]ClientSummary, 0, len(clients))
	for _, c := range clients {
		if !m.match(c.Name, c.Phone) {
			continue
		}
		c.ClientRollup = rollups[c.ID]
		result = append(result, c)
	}
	return result, nil
}

func loadClients(ctx context.Context, db *gorm.DB, where string, args ...any) ([]ClientSummary, error) {
	sql := `
		SELECT
			id,
			name,
			phone,
			address,
			gst_number,
			total_gold_given,
			total_gold_delivered,
			created_at
		FROM clients`
	if where != "" {
		sql += " WHERE " + where
	}
	sql += " ORDER BY name, id"

	rows, err := db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]ClientSummary, 0)
	for rows.Next() {
		var (
			c  ClientSummary
			id uuid.UUID
		)
		if err = rows.Scan(
			&id,
			&c.Name,
			&c.Phone,
			&c.Address,
			&c.GSTNumber,
			&c.TotalGoldGiven,
			&c.TotalGoldDelivered,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}

		clientID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		c.ID = clientID
		c.CreatedAt = c.CreatedAt.UTC()
		clients = append(clients, c)
	}

	return clients, rows.Err()
}
