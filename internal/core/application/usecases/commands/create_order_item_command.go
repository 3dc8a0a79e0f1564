package commands

import (
	"errors"
	"strings"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

var ErrCreateOrderItemCommandIsNotConstructed = errors.New(
	"CreateOrderItemCommand must be created via NewCreateOrderItemCommand constructor",
)

// CreateOrderItemCommand registers a new unit of production work in the sales stage.
// It is issued by order ingestion or by manual entry.
//
// Example:
//
//	cmd, err := NewCreateOrderItemCommand(orderID, "Wedding card", 250, delivery, true, actor)
//	if err != nil {
//	    return fmt.Errorf("invalid item data: %w", err)
//	}
//	it, err := handler.Handle(ctx, cmd)
type CreateOrderItemCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	productName  string
	quantity     int
	deliveryDate time.Time
	needDesign   bool
	actor        kernel.Actor

	guard guard.ConstructorGuard
}

func NewCreateOrderItemCommand(
	orderID kernel.UUID,
	productName string,
	quantity int,
	deliveryDate time.Time,
	needDesign bool,
	actor kernel.Actor,
) (CreateOrderItemCommand, error) {
	cmd := CreateOrderItemCommand{
		needDesign: needDesign,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setProductName(productName),
		cmd.setQuantity(quantity),
		cmd.setDeliveryDate(deliveryDate),
		cmd.setActor(actor),
	); err != nil {
		return CreateOrderItemCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderItemCommandIsNotConstructed)
}

func (c CreateOrderItemCommand) OrderID() kernel.UUID    { return c.orderID }
func (c CreateOrderItemCommand) ProductName() string     { return c.productName }
func (c CreateOrderItemCommand) Quantity() int           { return c.quantity }
func (c CreateOrderItemCommand) DeliveryDate() time.Time { return c.deliveryDate }
func (c CreateOrderItemCommand) NeedDesign() bool        { return c.needDesign }
func (c CreateOrderItemCommand) Actor() kernel.Actor     { return c.actor }

func (c *CreateOrderItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderItemCommand) setProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	c.productName = name
	return nil
}

func (c *CreateOrderItemCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewInvalidQuantityError("quantity", quantity, "must be greater than 0")
	}
	c.quantity = quantity
	return nil
}

func (c *CreateOrderItemCommand) setDeliveryDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("delivery date")
	}
	c.deliveryDate = date
	return nil
}

func (c *CreateOrderItemCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
