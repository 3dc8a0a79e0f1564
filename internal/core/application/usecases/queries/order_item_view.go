package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"printshop/internal/core/domain/model/item"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/priority"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// OrderItemView is the read model of an order item. Priority and DaysUntilDelivery are
// computed at read time and never stored.
type OrderItemView struct {
	ID                 kernel.UUID
	OrderID            kernel.UUID
	ProductName        string
	Quantity           int
	NeedDesign         bool
	DeliveryDate       time.Time
	Stage              item.Stage
	OriginStage        item.Stage
	Department         kernel.Department
	Substage           item.Substage
	SubstageStatus     item.SubstageStatus
	ProductionSequence []item.Substage
	SubstageProgress   map[item.Substage]item.SubstageStatus
	AssignedUser       string
	ReadyForProduction bool
	Dispatched         bool
	Version            int
	Priority           priority.Tier
	DaysUntilDelivery  int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

const orderItemColumns = `
	id,
	order_id,
	product_name,
	quantity,
	need_design,
	delivery_date,
	stage,
	COALESCE(origin_stage, ''),
	department,
	COALESCE(substage, ''),
	COALESCE(substage_status, ''),
	production_sequence,
	substage_progress,
	COALESCE(assigned_user, ''),
	ready_for_production,
	dispatched,
	version,
	created_at,
	updated_at`

// scanOrderItems reads rows selected with orderItemColumns and fills in the priority as
// of today.
func scanOrderItems(ctx context.Context, rows *sql.Rows, resolver priorityResolver, today time.Time) ([]OrderItemView, error) {
	views := make([]OrderItemView, 0)
	for rows.Next() {
		var (
			v                OrderItemView
			id, orderID      uuid.UUID
			stage, origin    string
			department       string
			substage, status string
			sequence         pq.StringArray
			progress         []byte
		)

		if err := rows.Scan(
			&id,
			&orderID,
			&v.ProductName,
			&v.Quantity,
			&v.NeedDesign,
			&v.DeliveryDate,
			&stage,
			&origin,
			&department,
			&substage,
			&status,
			&sequence,
			&progress,
			&v.AssignedUser,
			&v.ReadyForProduction,
			&v.Dispatched,
			&v.Version,
			&v.CreatedAt,
			&v.UpdatedAt,
		); err != nil {
			return nil, err
		}

		itemID, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		v.ID = itemID

		if v.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}

		v.Stage = item.Stage(stage)
		v.OriginStage = item.Stage(origin)
		v.Department = kernel.Department(department)
		v.Substage = item.Substage(substage)
		v.SubstageStatus = item.SubstageStatus(status)

		v.ProductionSequence = make([]item.Substage, 0, len(sequence))
		for _, key := range sequence {
			v.ProductionSequence = append(v.ProductionSequence, item.Substage(key))
		}

		v.SubstageProgress = map[item.Substage]item.SubstageStatus{}
		if len(progress) > 0 {
			if err = json.Unmarshal(progress, &v.SubstageProgress); err != nil {
				return nil, err
			}
		}

		v.Priority = resolver.resolve(ctx, v.ID, v.DeliveryDate, today)
		v.DaysUntilDelivery = priority.DaysUntil(v.DeliveryDate, today)
		views = append(views, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
