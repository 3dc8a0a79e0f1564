package queries

import (
	"context"

	"printshop/internal/core/ports"
	"printshop/internal/pkg/errs"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GetOrderItemQueryHandler reads one item directly from order_items.
type GetOrderItemQueryHandler struct {
	db       *gorm.DB
	priority priorityResolver
}

// NewGetOrderItemQueryHandler creates the handler. cache may be nil, in which case the
// priority is computed on every read.
func NewGetOrderItemQueryHandler(db *gorm.DB, cache ports.PriorityCache, logger *logrus.Logger) GetOrderItemQueryHandler {
	return GetOrderItemQueryHandler{db: db, priority: newPriorityResolver(cache, logger)}
}

// Handle returns *errs.ObjectNotFoundError for an unknown item.
func (h GetOrderItemQueryHandler) Handle(ctx context.Context, query GetOrderItemQuery) (OrderItemView, error) {
	if err := query.Validate(); err != nil {
		return OrderItemView{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderItemColumns+`
		FROM order_items
		WHERE id = ?
	`, query.ItemID().Bytes()).Rows()
	if err != nil {
		return OrderItemView{}, err
	}
	defer rows.Close()

	views, err := scanOrderItems(ctx, rows, h.priority, h.priority.now())
	if err != nil {
		return OrderItemView{}, err
	}
	if len(views) == 0 {
		return OrderItemView{}, errs.NewObjectNotFoundError("order item", query.ItemID().String())
	}

	return views[0], nil
}
