package timeline_test

import (
	"testing"
	"time"

	"printshop/internal/core/domain/model/item"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/timeline"
	"printshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func TestAction_WireValues(t *testing.T) {
	wire := []string{
		"created", "assigned", "uploaded_proof", "customer_approved", "final_proof_uploaded",
		"sent_to_production", "substage_started", "substage_completed", "packed", "dispatched", "note_added",
	}
	require.Len(t, timeline.AllActions(), len(wire))
	for i, w := range wire {
		a, err := timeline.ParseAction(w)
		require.NoError(t, err)
		assert.Equal(t, timeline.AllActions()[i], a)
	}

	_, err := timeline.ParseAction("deleted")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestForItem(t *testing.T) {
	actor, err := kernel.NewActor("u-7", "designer", kernel.DepartmentDesign, "Asha")
	require.NoError(t, err)
	it, err := item.NewOrderItem(kernel.NewUUID(), kernel.NewUUID(), "Invite", 100, now.AddDate(0, 0, 4), true, now)
	require.NoError(t, err)

	ev, err := timeline.ForItem(it, timeline.ActionUploadedProof, actor, now)
	require.NoError(t, err)
	ev.WithNotes("  v2 ").WithAttachments("proofs/v2.pdf", " ").Public(true)

	assert.True(t, ev.OrderID().IsEqual(it.OrderID()))
	require.NotNil(t, ev.ItemID())
	assert.True(t, ev.ItemID().IsEqual(it.ID()))
	assert.Equal(t, item.StageSales, ev.Stage())
	assert.Equal(t, "Asha", ev.ActorName())
	assert.Equal(t, "v2", ev.Notes())
	assert.Equal(t, []string{"proofs/v2.pdf"}, ev.Attachments())
	assert.True(t, ev.IsPublic())
	assert.True(t, ev.Action().IsMilestone())
}

func TestNewEvent_Validation(t *testing.T) {
	ev, err := timeline.NewEvent(kernel.NewUUID(), kernel.UUID{}, timeline.Action("x"), kernel.Actor{}, now)

	require.Error(t, err)
	assert.Nil(t, ev)
	assert.Contains(t, err.Error(), "order id")
	assert.Contains(t, err.Error(), "action")
	require.ErrorIs(t, err, kernel.ErrActorIDIsRequired)
}

func TestRestoreEvent(t *testing.T) {
	itemID := kernel.NewUUID()
	s := timeline.Snapshot{
		ID: kernel.NewUUID(), OrderID: kernel.NewUUID(), ItemID: &itemID,
		Stage: item.StageProduction, Substage: item.SubstagePrinting,
		Action: timeline.ActionSubstageCompleted, ActorID: "u-1", ActorName: "Ravi",
		Notes: "done", Attachments: []string{"a"}, IsPublic: false, CreatedAt: now,
	}

	ev, err := timeline.RestoreEvent(s)

	require.NoError(t, err)
	assert.Equal(t, s, ev.Snapshot())
}
