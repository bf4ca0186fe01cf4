// Package orderrepo persists the order aggregate. An order is one row; its
// stage history and amendments are append-only JSON columns and the delivery
// proof is a set of nullable columns filled exactly when the order is delivered.
package orderrepo

import (
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by client and stage for the ledger and billing queries.
type OrderDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientID             uuid.UUID `gorm:"type:uuid;index"`
	ClientName           string    `gorm:"not null"`
	JewelleryType        string    `gorm:"size:16;not null"`
	TotalDelivered       float64   `gorm:"not null"`
	StoneWeight          float64   `gorm:"not null"`
	Quality              float64   `gorm:"not null"`
	ProfitGold           float64   `gorm:"not null;default:0"`
	Wastage              float64   `gorm:"not null;default:0"`
	FinalWeight          float64   `gorm:"not null;default:0"`
	ExpectedDeliveryDate datatypes.Date
	Stage                string `gorm:"size:16;index;not null"`
	History              datatypes.JSONSlice[StageEntryDTO]
	Proof                DeliveryProofDTO `gorm:"embedded;embeddedPrefix:proof_"`
	CreatedAt            time.Time        `gorm:"index;not null"`
	DeliveredAt          *time.Time       `gorm:"index"`
	Notes                string
	Photo                string
	Amendments           datatypes.JSONSlice[AmendmentDTO]
	Version              int `gorm:"not null;default:1"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// StageEntryDTO is one element of the history column.
type StageEntryDTO struct {
	Stage     string    `json:"stage"`
	Timestamp time.Time `json:"timestamp"`
	UpdatedBy string    `json:"updatedBy"`
	Notes     string    `json:"notes,omitempty"`
}

// DeliveryProofDTO holds the handover columns. All are null before delivery.
type DeliveryProofDTO struct {
	Photo       *string
	Signature   *string
	DeliveredBy *string
	Timestamp   *time.Time
}

// AmendmentDTO is one element of the amendments column.
type AmendmentDTO struct {
	Timestamp time.Time        `json:"timestamp"`
	Actor     string           `json:"actor"`
	Reason    string           `json:"reason,omitempty"`
	Changes   []FieldChangeDTO `json:"changes"`
}

type FieldChangeDTO struct {
	Field  string `json:"field"`
	Before string `json:"before"`
	After  string `json:"after"`
}

func fromDomain(o *order.Order) OrderDTO {
	history := make([]StageEntryDTO, 0, len(o.StageHistory()))
	for _, e := range o.StageHistory() {
		history = append(history, StageEntryDTO{
			Stage:     e.Stage().String(),
			Timestamp: e.Timestamp(),
			UpdatedBy: e.UpdatedBy().Name(),
			Notes:     e.Notes(),
		})
	}

	amendments := make([]AmendmentDTO, 0, len(o.Amendments()))
	for _, a := range o.Amendments() {
		changes := make([]FieldChangeDTO, 0, len(a.Changes()))
		for _, c := range a.Changes() {
			changes = append(changes, FieldChangeDTO{Field: c.Field, Before: c.Before, After: c.After})
		}
		amendments = append(amendments, AmendmentDTO{
			Timestamp: a.Timestamp(),
			Actor:     a.Actor().Name(),
			Reason:    a.Reason(),
			Changes:   changes,
		})
	}

	var proof DeliveryProofDTO
	if p := o.DeliveryProof(); p != nil {
		photo, signature, by, at := p.Photo(), p.Signature(), p.DeliveredBy().Name(), p.Timestamp()
		proof = DeliveryProofDTO{Photo: &photo, Signature: &signature, DeliveredBy: &by, Timestamp: &at}
	}

	m := o.Measurements()
	extras := o.Extras()
	return OrderDTO{
		ID:                   o.ID().Bytes(),
		ClientID:             o.ClientID().Bytes(),
		ClientName:           o.ClientName(),
		JewelleryType:        string(o.JewelleryType()),
		TotalDelivered:       m.TotalDelivered(),
		StoneWeight:          m.StoneWeight(),
		Quality:              m.Quality(),
		ProfitGold:           extras.ProfitGold,
		Wastage:              extras.Wastage,
		FinalWeight:          extras.FinalWeight,
		ExpectedDeliveryDate: datatypes.Date(o.ExpectedDeliveryDate().Time()),
		Stage:                o.CurrentStage().String(),
		History:              history,
		Proof:                proof,
		CreatedAt:            o.CreatedAt(),
		DeliveredAt:          o.DeliveredAt(),
		Notes:                o.Notes(),
		Photo:                o.Photo(),
		Amendments:           amendments,
		Version:              o.Version(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	stage, err := order.ParseStage(dto.Stage)
	if err != nil {
		return nil, err
	}

	jewelleryType, err := order.ParseJewelleryType(dto.JewelleryType)
	if err != nil {
		return nil, err
	}

	measurements, err := order.NewMeasurements(dto.TotalDelivered, dto.StoneWeight, dto.Quality)
	if err != nil {
		return nil, err
	}

	history := make([]order.StageEntry, 0, len(dto.History))
	for _, h := range dto.History {
		s, parseErr := order.ParseStage(h.Stage)
		if parseErr != nil {
			return nil, parseErr
		}
		entry, entryErr := order.NewStageEntry(s, h.Timestamp.UTC(), kernel.ActorOrSystem(h.UpdatedBy), h.Notes)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	amendments := make([]order.Amendment, 0, len(dto.Amendments))
	for _, a := range dto.Amendments {
		changes := make([]order.FieldChange, 0, len(a.Changes))
		for _, c := range a.Changes {
			changes = append(changes, order.FieldChange{Field: c.Field, Before: c.Before, After: c.After})
		}
		amendments = append(amendments, order.RestoreAmendment(a.Timestamp.UTC(), kernel.ActorOrSystem(a.Actor), a.Reason, changes))
	}

	proof, err := proofToDomain(dto.Proof)
	if err != nil {
		return nil, err
	}

	var deliveredAt *time.Time
	if dto.DeliveredAt != nil {
		at := dto.DeliveredAt.UTC()
		deliveredAt = &at
	}

	return order.RestoreOrder(order.Snapshot{
		ID: id,
		Intake: order.Intake{
			ClientID:             clientID,
			ClientName:           dto.ClientName,
			JewelleryType:        jewelleryType,
			Measurements:         measurements,
			ExpectedDeliveryDate: kernel.DateOf(time.Time(dto.ExpectedDeliveryDate), nil),
			Notes:                dto.Notes,
			Photo:                dto.Photo,
			Extras: order.Extras{
				ProfitGold:  dto.ProfitGold,
				Wastage:     dto.Wastage,
				FinalWeight: dto.FinalWeight,
			},
		},
		Stage:       stage,
		History:     history,
		Proof:       proof,
		CreatedAt:   dto.CreatedAt.UTC(),
		DeliveredAt: deliveredAt,
		Amendments:  amendments,
		Version:     dto.Version,
	})
}

func proofToDomain(dto DeliveryProofDTO) (*order.DeliveryProof, error) {
	if dto.Photo == nil && dto.Signature == nil {
		return nil, nil
	}

	var photo, signature, by string
	var at time.Time
	if dto.Photo != nil {
		photo = *dto.Photo
	}
	if dto.Signature != nil {
		signature = *dto.Signature
	}
	if dto.DeliveredBy != nil {
		by = *dto.DeliveredBy
	}
	if dto.Timestamp != nil {
		at = dto.Timestamp.UTC()
	}

	p, err := order.NewDeliveryProof(photo, signature, kernel.ActorOrSystem(by), at)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
