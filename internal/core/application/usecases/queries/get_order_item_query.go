package queries

import (
	"errors"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

var ErrGetOrderItemQueryIsNotConstructed = errors.New(
	"GetOrderItemQuery must be created via NewGetOrderItemQuery constructor",
)

// GetOrderItemQuery retrieves one order item with its priority computed for today.
//
// Example:
//
//	query, err := NewGetOrderItemQuery(itemID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetOrderItemQuery struct {
	itemID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewGetOrderItemQuery(itemID kernel.UUID) (GetOrderItemQuery, error) {
	if err := itemID.Validate(); err != nil {
		return GetOrderItemQuery{}, errs.NewValueIsRequiredErrorWithCause("item id", err)
	}
	return GetOrderItemQuery{itemID: itemID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderItemQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderItemQueryIsNotConstructed)
}

func (q GetOrderItemQuery) ItemID() kernel.UUID { return q.itemID }
