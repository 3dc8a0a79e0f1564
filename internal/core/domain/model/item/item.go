package item

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/priority"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

const entityName = "order item"

var (
	// ErrOrderItemIsNotConstructed is returned when an OrderItem was not created through
	// NewOrderItem or RestoreOrderItem.
	ErrOrderItemIsNotConstructed = errors.New("OrderItem must be created via NewOrderItem constructor")

	ErrProductNameIsRequired  = errs.NewValueIsRequiredError("product name")
	ErrDeliveryDateIsRequired = errs.NewValueIsRequiredError("delivery date")
	ErrSequenceIsRequired     = errs.NewValueIsRequiredError("production sequence")
)

// OrderItem represents a unit of production work. It is the aggregate root of the
// fulfillment workflow; every field is mutated only through its methods.
//
// OrderItem follows these invariants:
//   - quantity is positive
//   - substage is set only while stage is production
//   - readyForProduction equals "every step of the effective sequence is completed"
//   - originStage is set only while stage is outsource
//   - assigned department always matches the stage
type OrderItem struct {
	id           kernel.UUID
	orderID      kernel.UUID
	productName  string
	quantity     int
	needDesign   bool
	deliveryDate time.Time

	stage       Stage
	originStage Stage
	department  kernel.Department

	substage       Substage
	substageStatus SubstageStatus
	sequence       []Substage
	progress       map[Substage]SubstageStatus

	assignedUser       string
	readyForProduction bool
	dispatched         bool

	version   int
	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// Snapshot is the flat, persistence-friendly view of an OrderItem. Adapters read it to
// build rows and pass it back to RestoreOrderItem.
type Snapshot struct {
	ID                 kernel.UUID
	OrderID            kernel.UUID
	ProductName        string
	Quantity           int
	NeedDesign         bool
	DeliveryDate       time.Time
	Stage              Stage
	OriginStage        Stage
	Department         kernel.Department
	Substage           Substage
	SubstageStatus     SubstageStatus
	Sequence           []Substage
	Progress           map[Substage]SubstageStatus
	AssignedUser       string
	ReadyForProduction bool
	Dispatched         bool
	Version            int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewOrderItem creates an item in the sales stage, as done by order ingestion or manual entry.
//
// Example:
//
//	it, err := item.NewOrderItem(kernel.NewUUID(), orderID, "Wedding card", 250, delivery, true, time.Now())
//	if err != nil {
//	    return err
//	}
func NewOrderItem(
	id, orderID kernel.UUID,
	productName string,
	quantity int,
	deliveryDate time.Time,
	needDesign bool,
	now time.Time,
) (*OrderItem, error) {
	it := &OrderItem{
		needDesign: needDesign,
		stage:      StageSales,
		department: StageSales.Department(),
		progress:   map[Substage]SubstageStatus{},
		version:    1,
		createdAt:  now,
		updatedAt:  now,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		it.setID(id),
		it.setOrderID(orderID),
		it.setProductName(productName),
		it.setQuantity(quantity),
		it.setDeliveryDate(deliveryDate),
	); err != nil {
		return nil, err
	}

	return it, nil
}

// RestoreOrderItem reconstructs an item from persistent storage and re-checks its invariants.
func RestoreOrderItem(s Snapshot) (*OrderItem, error) {
	it := &OrderItem{
		needDesign:         s.NeedDesign,
		originStage:        s.OriginStage,
		substage:           s.Substage,
		substageStatus:     s.SubstageStatus,
		sequence:           slices.Clone(s.Sequence),
		progress:           make(map[Substage]SubstageStatus, len(s.Progress)),
		assignedUser:       s.AssignedUser,
		readyForProduction: s.ReadyForProduction,
		dispatched:         s.Dispatched,
		version:            s.Version,
		createdAt:          s.CreatedAt,
		updatedAt:          s.UpdatedAt,
		guard:              guard.NewConstructorGuard(),
	}
	for k, v := range s.Progress {
		it.progress[k] = v
	}

	if err := errors.Join(
		it.setID(s.ID),
		it.setOrderID(s.OrderID),
		it.setProductName(s.ProductName),
		it.setQuantity(s.Quantity),
		it.setDeliveryDate(s.DeliveryDate),
		it.setStage(s.Stage),
		it.checkInvariants(),
	); err != nil {
		return nil, err
	}

	return it, nil
}

// Validate ensures the item was built through a constructor.
func (i *OrderItem) Validate() error {
	if i == nil {
		return ErrOrderItemIsNotConstructed
	}
	return i.guard.Validate(ErrOrderItemIsNotConstructed)
}

func (i *OrderItem) ID() kernel.UUID                { return i.id }
func (i *OrderItem) OrderID() kernel.UUID           { return i.orderID }
func (i *OrderItem) ProductName() string            { return i.productName }
func (i *OrderItem) Quantity() int                  { return i.quantity }
func (i *OrderItem) NeedDesign() bool               { return i.needDesign }
func (i *OrderItem) DeliveryDate() time.Time        { return i.deliveryDate }
func (i *OrderItem) Stage() Stage                   { return i.stage }
func (i *OrderItem) OriginStage() Stage             { return i.originStage }
func (i *OrderItem) Department() kernel.Department  { return i.department }
func (i *OrderItem) Substage() Substage             { return i.substage }
func (i *OrderItem) SubstageStatus() SubstageStatus { return i.substageStatus }
func (i *OrderItem) AssignedUser() string           { return i.assignedUser }
func (i *OrderItem) IsReadyForProduction() bool     { return i.readyForProduction }
func (i *OrderItem) IsDispatched() bool             { return i.dispatched }
func (i *OrderItem) Version() int                   { return i.version }
func (i *OrderItem) CreatedAt() time.Time           { return i.createdAt }
func (i *OrderItem) UpdatedAt() time.Time           { return i.updatedAt }

// ProductionSequence returns the item's own sequence; empty means the default one applies.
func (i *OrderItem) ProductionSequence() []Substage {
	return slices.Clone(i.sequence)
}

// EffectiveSequence returns the sequence production works through.
func (i *OrderItem) EffectiveSequence() []Substage {
	if len(i.sequence) == 0 {
		return DefaultSequence()
	}
	return slices.Clone(i.sequence)
}

// SubstageProgress returns the status of one production step.
func (i *OrderItem) SubstageProgress(key Substage) SubstageStatus {
	if status, ok := i.progress[key]; ok {
		return status
	}
	return SubstagePending
}

// Priority derives the urgency tier as seen on today.
func (i *OrderItem) Priority(today time.Time) priority.Tier {
	return priority.Compute(i.deliveryDate, today)
}

// Snapshot exports the item state.
func (i *OrderItem) Snapshot() Snapshot {
	progress := make(map[Substage]SubstageStatus, len(i.progress))
	for k, v := range i.progress {
		progress[k] = v
	}
	return Snapshot{
		ID:                 i.id,
		OrderID:            i.orderID,
		ProductName:        i.productName,
		Quantity:           i.quantity,
		NeedDesign:         i.needDesign,
		DeliveryDate:       i.deliveryDate,
		Stage:              i.stage,
		OriginStage:        i.originStage,
		Department:         i.department,
		Substage:           i.substage,
		SubstageStatus:     i.substageStatus,
		Sequence:           slices.Clone(i.sequence),
		Progress:           progress,
		AssignedUser:       i.assignedUser,
		ReadyForProduction: i.readyForProduction,
		Dispatched:         i.dispatched,
		Version:            i.version,
		CreatedAt:          i.createdAt,
		UpdatedAt:          i.updatedAt,
	}
}

// TransitionOptions carries the optional parts of a stage transition.
type TransitionOptions struct {
	// AssignedUser is set on the item after the move; empty clears the assignment.
	AssignedUser string
	// Force skips the readiness gates. Callers check the actor is elevated.
	Force bool
	Now   time.Time
}

// TransitionTo moves the item to target following the allowed-transition table.
//
// Gates:
//   - entering production needs readiness unless forced or returning from outsource
//   - production -> dispatch needs readiness unless forced
//   - dispatch -> completed needs the item to be dispatched
func (i *OrderItem) TransitionTo(target Stage, opts TransitionOptions) error {
	if err := target.Validate(); err != nil {
		return err
	}

	from := i.stage
	if !from.CanReach(target, i.needDesign, i.originStage) {
		return i.transitionErr(target)
	}

	if target == StageProduction && from != StageOutsource && !i.readyForProduction && !opts.Force {
		return i.transitionErr(target).WithReason("item is not ready for production")
	}
	if from == StageProduction && target == StageDispatch && !i.readyForProduction && !opts.Force {
		return i.transitionErr(target).WithReason("production sequence is not completed")
	}
	if target == StageCompleted && !i.dispatched {
		return i.transitionErr(target).WithReason("item has not been dispatched")
	}

	switch {
	case target == StageOutsource:
		i.originStage = from
	case from == StageOutsource:
		i.originStage = ""
	}

	if from == StageProduction {
		i.substage = ""
		i.substageStatus = ""
	}

	i.stage = target
	i.department = target.Department()
	i.assignedUser = strings.TrimSpace(opts.AssignedUser)

	if target == StageProduction {
		i.enterProduction()
	}

	i.touch(opts.Now)
	return nil
}

// SetSubstage records progress of one production step and recomputes readiness.
// Reopening a completed step (completed -> in_progress) clears readiness.
func (i *OrderItem) SetSubstage(key Substage, status SubstageStatus, now time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if i.stage != StageProduction {
		return errs.NewInvalidTransitionError(entityName, i.id.String(), "set substage", string(i.stage), string(key)).
			WithReason("item is not in production")
	}
	if !slices.Contains(i.EffectiveSequence(), key) {
		return errs.NewInvalidTransitionError(entityName, i.id.String(), "set substage", string(i.substage), string(key)).
			WithReason("substage is not part of the production sequence")
	}

	current := i.SubstageProgress(key)
	if !current.canBecome(status) {
		return errs.NewInvalidTransitionError(entityName, i.id.String(), "set substage "+string(key), string(current), string(status))
	}

	i.progress[key] = status
	i.substage = key
	i.substageStatus = status
	i.readyForProduction = i.allStepsCompleted()
	i.touch(now)
	return nil
}

// AssignUser assigns a member of the item's current department. userDepartment comes from
// the profile collaborator; a mismatch fails closed.
func (i *OrderItem) AssignUser(userID string, userDepartment kernel.Department, now time.Time) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return errs.NewValueIsRequiredError("user id")
	}
	if userDepartment != i.department {
		return errs.NewUserNotInDepartmentError(userID, string(i.department), string(userDepartment))
	}
	if i.stage == StageCompleted {
		return errs.NewInvalidTransitionError(entityName, i.id.String(), "assign", string(i.stage), userID).
			WithReason("completed items cannot be reassigned")
	}

	i.assignedUser = userID
	i.touch(now)
	return nil
}

// DefineProductionSequence replaces the ordered production steps.
//
// Before production anyone allowed on the item may redefine it. Elevated callers may
// also redefine it later, provided no step has started, so no completed work is dropped.
func (i *OrderItem) DefineProductionSequence(keys []Substage, elevated bool, now time.Time) error {
	if len(keys) == 0 {
		return ErrSequenceIsRequired
	}
	seen := make(map[Substage]struct{}, len(keys))
	for _, k := range keys {
		if _, err := NewSubstage(string(k)); err != nil {
			return err
		}
		if _, dup := seen[k]; dup {
			return errs.NewValueIsInvalidErrorWithCause("production sequence", fmt.Errorf("%q appears twice", string(k)))
		}
		seen[k] = struct{}{}
	}

	if !i.stage.IsPreProduction() {
		if !elevated || i.stage == StageCompleted {
			return errs.NewInvalidTransitionError(entityName, i.id.String(), "define sequence", string(i.stage), string(i.stage)).
				WithReason("sequence can only be redefined before production")
		}
		if i.anyStepStarted() {
			return errs.NewInvalidTransitionError(entityName, i.id.String(), "define sequence", string(i.stage), string(i.stage)).
				WithReason("production steps have already started")
		}
	}

	i.sequence = slices.Clone(keys)
	i.progress = make(map[Substage]SubstageStatus, len(keys))
	for _, k := range keys {
		i.progress[k] = SubstagePending
	}
	i.readyForProduction = false
	if i.stage == StageProduction {
		i.substage = keys[0]
		i.substageStatus = SubstagePending
	}
	i.touch(now)
	return nil
}

// MarkDispatched flags the item as shipped; complete also closes it.
func (i *OrderItem) MarkDispatched(complete bool, now time.Time) error {
	if i.stage != StageDispatch {
		return errs.NewInvalidTransitionError(entityName, i.id.String(), "dispatch", string(i.stage), string(StageDispatch)).
			WithReason("item is not in dispatch")
	}
	if i.dispatched {
		return errs.NewInvalidTransitionError(entityName, i.id.String(), "dispatch", "dispatched", "dispatched").
			WithReason("item is already dispatched")
	}

	i.dispatched = true
	if complete {
		i.stage = StageCompleted
		i.department = StageCompleted.Department()
		i.assignedUser = ""
	}
	i.touch(now)
	return nil
}

// Reschedule changes the delivery date; the priority changes with it.
func (i *OrderItem) Reschedule(deliveryDate time.Time, now time.Time) error {
	if i.stage == StageCompleted {
		return errs.NewInvalidTransitionError(entityName, i.id.String(), "reschedule", string(i.stage), deliveryDate.Format(time.DateOnly)).
			WithReason("completed items cannot be rescheduled")
	}
	if err := i.setDeliveryDate(deliveryDate); err != nil {
		return err
	}
	i.touch(now)
	return nil
}

// CommitVersion is called by repositories after a successful version-conditional write.
func (i *OrderItem) CommitVersion() {
	i.version++
}

func (i *OrderItem) enterProduction() {
	seq := i.EffectiveSequence()
	for _, k := range seq {
		if _, ok := i.progress[k]; !ok {
			i.progress[k] = SubstagePending
		}
	}
	cursor := seq[len(seq)-1]
	for _, k := range seq {
		if i.progress[k] != SubstageCompleted {
			cursor = k
			break
		}
	}
	i.substage = cursor
	i.substageStatus = i.progress[cursor]
	i.readyForProduction = i.allStepsCompleted()
}

func (i *OrderItem) allStepsCompleted() bool {
	for _, k := range i.EffectiveSequence() {
		if i.progress[k] != SubstageCompleted {
			return false
		}
	}
	return true
}

func (i *OrderItem) anyStepStarted() bool {
	for _, status := range i.progress {
		if status != SubstagePending {
			return true
		}
	}
	return false
}

func (i *OrderItem) transitionErr(target Stage) *errs.InvalidTransitionError {
	return errs.NewInvalidTransitionError(entityName, i.id.String(), "transition", string(i.stage), string(target))
}

func (i *OrderItem) touch(now time.Time) {
	if now.IsZero() {
		now = time.Now()
	}
	i.updatedAt = now
}

func (i *OrderItem) checkInvariants() error {
	if i.substage != "" && i.stage != StageProduction {
		return errs.NewValueIsInvalidErrorWithCause("substage", fmt.Errorf("%q is set outside production", string(i.substage)))
	}
	if i.originStage != "" && i.stage != StageOutsource {
		return errs.NewValueIsInvalidErrorWithCause("origin stage", fmt.Errorf("%q is set outside outsource", string(i.originStage)))
	}
	if i.version <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("version", fmt.Errorf("%d is not greater than 0", i.version))
	}
	return nil
}

func (i *OrderItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *OrderItem) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	i.orderID = id
	return nil
}

func (i *OrderItem) setProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrProductNameIsRequired
	}
	i.productName = name
	return nil
}

func (i *OrderItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewInvalidQuantityError("quantity", quantity, "must be greater than 0")
	}
	i.quantity = quantity
	return nil
}

func (i *OrderItem) setDeliveryDate(date time.Time) error {
	if date.IsZero() {
		return ErrDeliveryDateIsRequired
	}
	i.deliveryDate = date
	return nil
}

func (i *OrderItem) setStage(stage Stage) error {
	if err := stage.Validate(); err != nil {
		return err
	}
	i.stage = stage
	i.department = stage.Department()
	return nil
}
