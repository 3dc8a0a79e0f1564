package queries

import (
	"context"

	"printshop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ListTimelineQueryHandler struct {
	db *gorm.DB
}

func NewListTimelineQueryHandler(db *gorm.DB) ListTimelineQueryHandler {
	return ListTimelineQueryHandler{db: db}
}

// Handle returns an empty slice for an order without events.
func (h ListTimelineQueryHandler) Handle(ctx context.Context, query ListTimelineQuery) ([]TimelineEventView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	events := make([]TimelineEventView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			item_id,
			COALESCE(stage, ''),
			COALESCE(substage, ''),
			action,
			actor_id,
			COALESCE(actor_name, ''),
			COALESCE(notes, ''),
			attachments,
			is_public,
			created_at
		FROM timeline_events
		WHERE order_id = ? AND (is_public OR NOT ?)
		ORDER BY created_at, id
	`, query.OrderID().Bytes(), query.PublicOnly()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ev          TimelineEventView
			id, orderID uuid.UUID
			itemID      *uuid.UUID
			attachments pq.StringArray
		)

		err = rows.Scan(
			&id,
			&orderID,
			&itemID,
			&ev.Stage,
			&ev.Substage,
			&ev.Action,
			&ev.ActorID,
			&ev.ActorName,
			&ev.Notes,
			&attachments,
			&ev.IsPublic,
			&ev.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if ev.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if ev.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if itemID != nil {
			parsed, idErr := kernel.UUIDFromBytes(itemID[:])
			if idErr != nil {
				return nil, idErr
			}
			ev.ItemID = &parsed
		}
		ev.Attachments = []string(attachments)
		if ev.Attachments == nil {
			ev.Attachments = []string{}
		}

		events = append(events, ev)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
