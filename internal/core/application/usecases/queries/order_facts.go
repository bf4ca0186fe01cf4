// Package queries contains the read side: ledger projections, order and
// client listings, billing and settings lookups. Handlers read with raw SQL
// over gorm and aggregate in memory with the domain Ledger.
package queries

import (
	"context"
	"strings"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/measurement"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/services"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"gorm.io/gorm"
)

const orderFactsSelect = `
	SELECT
		id,
		client_id,
		client_name,
		stage,
		total_delivered,
		stone_weight,
		quality,
		profit_gold,
		expected_delivery_date,
		created_at,
		delivered_at
	FROM orders`

// loadOrderFacts reads the ledger slice of every order matching where.
// An empty where reads all orders. Rows come back newest first.
func loadOrderFacts(ctx context.Context, db *gorm.DB, where string, args ...any) ([]services.OrderFacts, error) {
	sql := orderFactsSelect
	if where != "" {
		sql += " WHERE " + where
	}
	sql += " ORDER BY created_at DESC, id"

	rows, err := db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	facts := make([]services.OrderFacts, 0)
	for rows.Next() {
		var (
			id, clientID                  uuid.UUID
			clientName, stageName         string
			gross, stone, quality, profit float64
			expected, createdAt           time.Time
			deliveredAt                   *time.Time
		)
		if err = rows.Scan(
			&id,
			&clientID,
			&clientName,
			&stageName,
			&gross,
			&stone,
			&quality,
			&profit,
			&expected,
			&createdAt,
			&deliveredAt,
		); err != nil {
			return nil, err
		}

		f, convErr := toOrderFacts(id, clientID, clientName, stageName, gross, stone, quality, profit, expected, createdAt, deliveredAt)
		if convErr != nil {
			return nil, convErr
		}
		facts = append(facts, f)
	}

	return facts, rows.Err()
}

func toOrderFacts(
	id, clientID uuid.UUID,
	clientName, stageName string,
	gross, stone, quality, profit float64,
	expected, createdAt time.Time,
	deliveredAt *time.Time,
) (services.OrderFacts, error) {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return services.OrderFacts{}, err
	}
	cID, err := kernel.UUIDFromBytes(clientID[:])
	if err != nil {
		return services.OrderFacts{}, err
	}
	stage, err := order.ParseStage(stageName)
	if err != nil {
		return services.OrderFacts{}, err
	}

	var delivered *time.Time
	if deliveredAt != nil {
		at := deliveredAt.UTC()
		delivered = &at
	}

	return services.OrderFacts{
		ID:                   orderID,
		ClientID:             cID,
		ClientName:           clientName,
		Stage:                stage,
		TotalDelivered:       measurement.Round(gross),
		FineGold:             measurement.Compute(gross, stone, quality).Rounded().Fine,
		ProfitGold:           measurement.Round(profit),
		ExpectedDeliveryDate: kernel.DateOf(expected, nil),
		CreatedAt:            createdAt.UTC(),
		DeliveredAt:          delivered,
	}, nil
}

// matcher reports whether any field contains the search term, ignoring case.
// A blank term matches everything.
type matcher struct {
	term string
}

func newMatcher(term string) matcher {
	return matcher{term: fold(strings.TrimSpace(term))}
}

func (m matcher) match(fields ...string) bool {
	if m.term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(fold(f), m.term) {
			return true
		}
	}
	return false
}

// fold builds a fresh Caser per call: a Caser keeps state and must not be
// shared between goroutines.
func fold(s string) string {
	return cases.Fold().String(s)
}
