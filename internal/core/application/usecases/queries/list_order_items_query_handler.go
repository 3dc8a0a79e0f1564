package queries

import (
	"context"

	"printshop/internal/core/domain/model/item"
	"printshop/internal/core/ports"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ListOrderItemsQueryHandler builds the listing with the gorm query builder; the priority
// filter runs after the tiers are computed because tiers are not stored.
type ListOrderItemsQueryHandler struct {
	db       *gorm.DB
	priority priorityResolver
}

func NewListOrderItemsQueryHandler(db *gorm.DB, cache ports.PriorityCache, logger *logrus.Logger) ListOrderItemsQueryHandler {
	return ListOrderItemsQueryHandler{db: db, priority: newPriorityResolver(cache, logger)}
}

func (h ListOrderItemsQueryHandler) Handle(ctx context.Context, query ListOrderItemsQuery) ([]OrderItemView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	filter := query.Filter()

	tx := h.db.WithContext(ctx).Table("order_items").Select(orderItemColumns)
	if filter.OrderID != nil {
		tx = tx.Where("order_id = ?", filter.OrderID.Bytes())
	}
	if filter.Stage != "" {
		tx = tx.Where("stage = ?", string(filter.Stage))
	}
	if filter.Department != "" {
		tx = tx.Where("department = ?", string(filter.Department))
	}
	if filter.AssignedUser != "" {
		tx = tx.Where("assigned_user = ?", filter.AssignedUser)
	}
	if !filter.IncludeCompleted {
		tx = tx.Where("stage <> ?", string(item.StageCompleted))
	}

	rows, err := tx.Order("delivery_date, created_at, id").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views, err := scanOrderItems(ctx, rows, h.priority, h.priority.now())
	if err != nil {
		return nil, err
	}
	if filter.Priority == "" {
		return views, nil
	}

	filtered := make([]OrderItemView, 0, len(views))
	for _, v := range views {
		if v.Priority == filter.Priority {
			filtered = append(filtered, v)
		}
	}
	return filtered, nil
}
