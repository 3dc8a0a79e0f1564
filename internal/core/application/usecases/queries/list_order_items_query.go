package queries

import (
	"errors"

	"printshop/internal/core/domain/model/item"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/priority"
	"printshop/internal/pkg/guard"
)

var ErrListOrderItemsQueryIsNotConstructed = errors.New(
	"ListOrderItemsQuery must be created via NewListOrderItemsQuery constructor",
)

// ItemFilter narrows a listing. Zero fields do not filter.
type ItemFilter struct {
	OrderID          *kernel.UUID
	Stage            item.Stage
	Department       kernel.Department
	Priority         priority.Tier
	AssignedUser     string
	IncludeCompleted bool
}

// ListOrderItemsQuery lists items ordered by delivery date, most urgent first. Completed
// items are left out unless IncludeCompleted is set.
//
// Example:
//
//	query, err := NewListOrderItemsQuery(ItemFilter{Department: kernel.DepartmentPrepress, Priority: priority.Red})
//	if err != nil {
//	    return err
//	}
//	urgent, err := handler.Handle(ctx, query)
type ListOrderItemsQuery struct {
	filter ItemFilter
	guard  guard.ConstructorGuard
}

// NewListOrderItemsQuery validates every enum in the filter.
func NewListOrderItemsQuery(filter ItemFilter) (ListOrderItemsQuery, error) {
	var orderErr, stageErr, deptErr, tierErr error
	if filter.OrderID != nil {
		orderErr = filter.OrderID.Validate()
	}
	if filter.Stage != "" {
		stageErr = filter.Stage.Validate()
	}
	if filter.Department != "" {
		deptErr = filter.Department.Validate()
	}
	if filter.Priority != "" {
		_, tierErr = priority.Parse(string(filter.Priority))
	}
	if err := errors.Join(orderErr, stageErr, deptErr, tierErr); err != nil {
		return ListOrderItemsQuery{}, err
	}

	return ListOrderItemsQuery{filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrderItemsQuery) Validate() error {
	return q.guard.Validate(ErrListOrderItemsQueryIsNotConstructed)
}

func (q ListOrderItemsQuery) Filter() ItemFilter { return q.filter }
