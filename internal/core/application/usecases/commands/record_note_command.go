package commands

import (
	"errors"
	"strings"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/timeline"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

var ErrRecordNoteCommandIsNotConstructed = errors.New(
	"RecordNoteCommand must be created via NewRecordNoteCommand constructor",
)

// RecordNoteCommand appends an audit entry to an item's timeline. With a milestone
// action it records a proof or packing milestone instead of a plain note.
type RecordNoteCommand struct { //nolint:recvcheck //using for validation
	itemID      kernel.UUID
	action      timeline.Action
	text        string
	attachments []string
	isPublic    bool
	actor       kernel.Actor

	guard guard.ConstructorGuard
}

func NewRecordNoteCommand(itemID kernel.UUID, text string, isPublic bool, actor kernel.Actor) (RecordNoteCommand, error) {
	text = strings.TrimSpace(text)
	var textErr error
	if text == "" {
		textErr = errs.NewValueIsRequiredError("note text")
	}
	if err := errors.Join(itemID.Validate(), textErr, actor.Validate()); err != nil {
		return RecordNoteCommand{}, err
	}

	return RecordNoteCommand{
		itemID:   itemID,
		action:   timeline.ActionNoteAdded,
		text:     text,
		isPublic: isPublic,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// NewRecordMilestoneCommand records uploaded_proof, customer_approved,
// final_proof_uploaded or packed.
func NewRecordMilestoneCommand(
	itemID kernel.UUID,
	action string,
	notes string,
	attachments []string,
	isPublic bool,
	actor kernel.Actor,
) (RecordNoteCommand, error) {
	parsed, actionErr := timeline.ParseAction(action)
	if actionErr == nil && !parsed.IsMilestone() {
		actionErr = errs.NewValueIsInvalidErrorWithCause("action", errors.New(action+" is not a milestone"))
	}
	if err := errors.Join(itemID.Validate(), actionErr, actor.Validate()); err != nil {
		return RecordNoteCommand{}, err
	}

	return RecordNoteCommand{
		itemID:      itemID,
		action:      parsed,
		text:        strings.TrimSpace(notes),
		attachments: attachments,
		isPublic:    isPublic,
		actor:       actor,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RecordNoteCommand) Validate() error {
	return c.guard.Validate(ErrRecordNoteCommandIsNotConstructed)
}

func (c RecordNoteCommand) ItemID() kernel.UUID     { return c.itemID }
func (c RecordNoteCommand) Action() timeline.Action { return c.action }
func (c RecordNoteCommand) Text() string            { return c.text }
func (c RecordNoteCommand) Attachments() []string   { return c.attachments }
func (c RecordNoteCommand) IsPublic() bool          { return c.isPublic }
func (c RecordNoteCommand) Actor() kernel.Actor     { return c.actor }
