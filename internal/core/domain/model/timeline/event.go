// Package timeline provides the immutable audit record emitted by every state change
// of the workflow and the reservation service.
package timeline

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"printshop/internal/core/domain/model/item"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent constructor")

// Action is the wire-visible event kind. The set is closed and its values are stable.
type Action string

const (
	ActionCreated            Action = "created"
	ActionAssigned           Action = "assigned"
	ActionUploadedProof      Action = "uploaded_proof"
	ActionCustomerApproved   Action = "customer_approved"
	ActionFinalProofUploaded Action = "final_proof_uploaded"
	ActionSentToProduction   Action = "sent_to_production"
	ActionSubstageStarted    Action = "substage_started"
	ActionSubstageCompleted  Action = "substage_completed"
	ActionPacked             Action = "packed"
	ActionDispatched         Action = "dispatched"
	ActionNoteAdded          Action = "note_added"
)

func AllActions() []Action {
	return []Action{
		ActionCreated, ActionAssigned, ActionUploadedProof, ActionCustomerApproved,
		ActionFinalProofUploaded, ActionSentToProduction, ActionSubstageStarted,
		ActionSubstageCompleted, ActionPacked, ActionDispatched, ActionNoteAdded,
	}
}

func ParseAction(s string) (Action, error) {
	a := Action(s)
	if err := a.Validate(); err != nil {
		return "", err
	}
	return a, nil
}

func (a Action) Validate() error {
	if !slices.Contains(AllActions(), a) {
		return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a valid action", string(a)))
	}
	return nil
}

func (a Action) String() string {
	return string(a)
}

// IsMilestone reports whether the action is a proof or packing milestone recorded
// without a state change.
func (a Action) IsMilestone() bool {
	switch a {
	case ActionUploadedProof, ActionCustomerApproved, ActionFinalProofUploaded, ActionPacked:
		return true
	default:
		return false
	}
}

type Event struct {
	id          kernel.UUID
	orderID     kernel.UUID
	itemID      *kernel.UUID
	stage       item.Stage
	substage    item.Substage
	action      Action
	actorID     string
	actorName   string
	notes       string
	attachments []string
	isPublic    bool
	createdAt   time.Time

	guard guard.ConstructorGuard
}

// Snapshot is the persistence view of an Event.
type Snapshot struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	ItemID      *kernel.UUID
	Stage       item.Stage
	Substage    item.Substage
	Action      Action
	ActorID     string
	ActorName   string
	Notes       string
	Attachments []string
	IsPublic    bool
	CreatedAt   time.Time
}

// NewEvent records an action by actor on an order. Item scoping, notes, attachments and
// visibility are set with the With* methods before the event is appended.
//
// Example:
//
//	ev, err := timeline.NewEvent(kernel.NewUUID(), it.OrderID(), timeline.ActionAssigned, actor, now)
//	if err != nil {
//	    return err
//	}
//	ev.WithItem(it.ID(), it.Stage(), it.Substage()).WithNotes(cmd.Notes())
func NewEvent(id, orderID kernel.UUID, action Action, actor kernel.Actor, now time.Time) (*Event, error) {
	ev := &Event{
		action:    action,
		actorID:   actor.ID(),
		actorName: actor.Name(),
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		id.Validate(),
		wrapRequired("order id", orderID.Validate()),
		action.Validate(),
		actor.Validate(),
	); err != nil {
		return nil, err
	}
	ev.id = id
	ev.orderID = orderID
	return ev, nil
}

// ForItem is a shortcut for an event about the current state of an item.
func ForItem(it *item.OrderItem, action Action, actor kernel.Actor, now time.Time) (*Event, error) {
	ev, err := NewEvent(kernel.NewUUID(), it.OrderID(), action, actor, now)
	if err != nil {
		return nil, err
	}
	return ev.WithItem(it.ID(), it.Stage(), it.Substage()), nil
}

func RestoreEvent(s Snapshot) (*Event, error) {
	actor, err := kernel.NewActor(s.ActorID, "restored", "", s.ActorName)
	if err != nil {
		return nil, err
	}
	ev, err := NewEvent(s.ID, s.OrderID, s.Action, actor, s.CreatedAt)
	if err != nil {
		return nil, err
	}
	if s.ItemID != nil {
		ev.WithItem(*s.ItemID, s.Stage, s.Substage)
	} else {
		ev.stage = s.Stage
	}
	ev.WithNotes(s.Notes).WithAttachments(s.Attachments...)
	ev.isPublic = s.IsPublic
	return ev, nil
}

func (e *Event) WithItem(itemID kernel.UUID, stage item.Stage, substage item.Substage) *Event {
	id := itemID
	e.itemID = &id
	e.stage = stage
	e.substage = substage
	return e
}

func (e *Event) WithNotes(notes string) *Event {
	e.notes = strings.TrimSpace(notes)
	return e
}

func (e *Event) WithAttachments(refs ...string) *Event {
	for _, r := range refs {
		if r = strings.TrimSpace(r); r != "" {
			e.attachments = append(e.attachments, r)
		}
	}
	return e
}

// Public marks the event visible to customer-facing views.
func (e *Event) Public(isPublic bool) *Event {
	e.isPublic = isPublic
	return e
}

func (e *Event) Validate() error {
	if e == nil {
		return ErrEventIsNotConstructed
	}
	return e.guard.Validate(ErrEventIsNotConstructed)
}

func (e *Event) ID() kernel.UUID         { return e.id }
func (e *Event) OrderID() kernel.UUID    { return e.orderID }
func (e *Event) ItemID() *kernel.UUID    { return e.itemID }
func (e *Event) Stage() item.Stage       { return e.stage }
func (e *Event) Substage() item.Substage { return e.substage }
func (e *Event) Action() Action          { return e.action }
func (e *Event) ActorID() string         { return e.actorID }
func (e *Event) ActorName() string       { return e.actorName }
func (e *Event) Notes() string           { return e.notes }
func (e *Event) Attachments() []string   { return slices.Clone(e.attachments) }
func (e *Event) IsPublic() bool          { return e.isPublic }
func (e *Event) CreatedAt() time.Time    { return e.createdAt }

func (e *Event) Snapshot() Snapshot {
	return Snapshot{
		ID:          e.id,
		OrderID:     e.orderID,
		ItemID:      e.itemID,
		Stage:       e.stage,
		Substage:    e.substage,
		Action:      e.action,
		ActorID:     e.actorID,
		ActorName:   e.actorName,
		Notes:       e.notes,
		Attachments: slices.Clone(e.attachments),
		IsPublic:    e.isPublic,
		CreatedAt:   e.createdAt,
	}
}

func wrapRequired(param string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewValueIsRequiredErrorWithCause(param, err)
}
