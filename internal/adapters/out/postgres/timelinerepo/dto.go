// Package timelinerepo persists the append-only audit timeline of orders.
package timelinerepo

import (
	"time"

	"printshop/internal/core/domain/model/item"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/timeline"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// EventDTO is one timeline row. Rows are inserted and never updated.
type EventDTO struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID      `gorm:"type:uuid;index:idx_timeline_order_created,priority:1;not null"`
	ItemID      *uuid.UUID     `gorm:"type:uuid;index"`
	Stage       string         `gorm:"type:varchar(32)"`
	Substage    string         `gorm:"type:varchar(64)"`
	Action      string         `gorm:"type:varchar(32);not null"`
	ActorID     string         `gorm:"not null"`
	ActorName   string
	Notes       string
	Attachments pq.StringArray `gorm:"type:text[]"`
	IsPublic    bool           `gorm:"not null;default:false"`
	CreatedAt   time.Time      `gorm:"index:idx_timeline_order_created,priority:2;autoCreateTime:false"`
}

func (EventDTO) TableName() string {
	return "timeline_events"
}

func fromDomain(ev *timeline.Event) EventDTO {
	var itemID *uuid.UUID
	if id := ev.ItemID(); id != nil {
		raw := id.Bytes()
		itemID = &raw
	}

	return EventDTO{
		ID:          ev.ID().Bytes(),
		OrderID:     ev.OrderID().Bytes(),
		ItemID:      itemID,
		Stage:       string(ev.Stage()),
		Substage:    string(ev.Substage()),
		Action:      string(ev.Action()),
		ActorID:     ev.ActorID(),
		ActorName:   ev.ActorName(),
		Notes:       ev.Notes(),
		Attachments: pq.StringArray(ev.Attachments()),
		IsPublic:    ev.IsPublic(),
		CreatedAt:   ev.CreatedAt(),
	}
}

// ToDomain rebuilds an event from a row; the timeline query reuses it.
func ToDomain(dto EventDTO) (*timeline.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var itemID *kernel.UUID
	if dto.ItemID != nil {
		parsed, itemErr := kernel.UUIDFromBytes((*dto.ItemID)[:])
		if itemErr != nil {
			return nil, itemErr
		}
		itemID = &parsed
	}

	return timeline.RestoreEvent(timeline.Snapshot{
		ID:          id,
		OrderID:     orderID,
		ItemID:      itemID,
		Stage:       item.Stage(dto.Stage),
		Substage:    item.Substage(dto.Substage),
		Action:      timeline.Action(dto.Action),
		ActorID:     dto.ActorID,
		ActorName:   dto.ActorName,
		Notes:       dto.Notes,
		Attachments: dto.Attachments,
		IsPublic:    dto.IsPublic,
		CreatedAt:   dto.CreatedAt,
	})
}
