// Package clientrepo persists the client aggregate.
package clientrepo

import (
	"time"

	"workshop/internal/core/domain/model/client"
	"workshop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ClientDTO represents the database structure for persisting client aggregates.
type ClientDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name               string    `gorm:"index;not null"`
	Phone              string    `gorm:"not null"`
	Address            string
	GSTNumber          string  `gorm:"column:gst_number"`
	TotalGoldGiven     float64 `gorm:"not null;default:0"`
	TotalGoldDelivered float64 `gorm:"not null;default:0"`
	CreatedAt          time.Time
}

func (ClientDTO) TableName() string {
	return "clients"
}

func fromDomain(c *client.Client) ClientDTO {
	return ClientDTO{
		ID:                 c.ID().Bytes(),
		Name:               c.Name(),
		Phone:              c.Phone(),
		Address:            c.Address(),
		GSTNumber:          c.GSTNumber(),
		TotalGoldGiven:     c.TotalGoldGiven(),
		TotalGoldDelivered: c.TotalGoldDelivered(),
		CreatedAt:          c.CreatedAt(),
	}
}

func toDomain(dto ClientDTO) (*client.Client, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return client.RestoreClient(
		id,
		client.Details{
			Name:      dto.Name,
			Phone:     dto.Phone,
			Address:   dto.Address,
			GSTNumber: dto.GSTNumber,
		},
		dto.TotalGoldGiven,
		dto.TotalGoldDelivered,
		dto.CreatedAt.UTC(),
	)
}
