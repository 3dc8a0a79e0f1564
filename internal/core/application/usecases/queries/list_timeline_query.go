package queries

import (
	"errors"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

var ErrListTimelineQueryIsNotConstructed = errors.New(
	"ListTimelineQuery must be created via NewListTimelineQuery constructor",
)

// ListTimelineQuery lists the audit events of an order in creation order. publicOnly keeps
// only the events meant for the customer.
type ListTimelineQuery struct {
	orderID    kernel.UUID
	publicOnly bool
	guard      guard.ConstructorGuard
}

func NewListTimelineQuery(orderID kernel.UUID, publicOnly bool) (ListTimelineQuery, error) {
	if err := orderID.Validate(); err != nil {
		return ListTimelineQuery{}, errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	return ListTimelineQuery{orderID: orderID, publicOnly: publicOnly, guard: guard.NewConstructorGuard()}, nil
}

func (q ListTimelineQuery) Validate() error {
	return q.guard.Validate(ErrListTimelineQueryIsNotConstructed)
}

func (q ListTimelineQuery) OrderID() kernel.UUID { return q.orderID }
func (q ListTimelineQuery) PublicOnly() bool     { return q.publicOnly }

// TimelineEventView is one audit event.
type TimelineEventView struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	ItemID      *kernel.UUID
	Stage       string
	Substage    string
	Action      string
	ActorID     string
	ActorName   string
	Notes       string
	Attachments []string
	IsPublic    bool
	CreatedAt   time.Time
}
