package item_test

import (
	"testing"
	"time"

	"printshop/internal/core/domain/model/item"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/priority"
	"printshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func newItem(t *testing.T, needDesign bool) *item.OrderItem {
	t.Helper()
	it, err := item.NewOrderItem(kernel.NewUUID(), kernel.NewUUID(), "Wedding card", 250, now.AddDate(0, 0, 10), needDesign, now)
	require.NoError(t, err)
	return it
}

func toProduction(t *testing.T, it *item.OrderItem) {
	t.Helper()
	require.NoError(t, it.TransitionTo(item.StagePrepress, item.TransitionOptions{Now: now}))
	require.NoError(t, it.TransitionTo(item.StageProduction, item.TransitionOptions{Force: true, Now: now}))
}

func TestNewOrderItem(t *testing.T) {
	t.Run("should start in sales", func(t *testing.T) {
		it := newItem(t, true)

		require.NoError(t, it.Validate())
		assert.Equal(t, item.StageSales, it.Stage())
		assert.Equal(t, kernel.DepartmentSales, it.Department())
		assert.Equal(t, 1, it.Version())
		assert.False(t, it.IsReadyForProduction())
		assert.Empty(t, it.Substage())
		assert.Equal(t, item.DefaultSequence(), it.EffectiveSequence())
	})

	t.Run("should join validation errors", func(t *testing.T) {
		it, err := item.NewOrderItem(kernel.UUID{}, kernel.NewUUID(), " ", 0, time.Time{}, false, now)

		require.Error(t, err)
		assert.Nil(t, it)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, errs.ErrInvalidQuantity)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "product name")
		assert.Contains(t, err.Error(), "delivery date")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var it item.OrderItem
		require.ErrorIs(t, it.Validate(), item.ErrOrderItemIsNotConstructed)
	})
}

func TestOrderItem_TransitionTo(t *testing.T) {
	tests := []struct {
		name       string
		needDesign bool
		path       []item.Stage
		target     item.Stage
		wantErr    bool
	}{
		{"sales to design", true, nil, item.StageDesign, false},
		{"sales to prepress", true, nil, item.StagePrepress, false},
		{"sales to production without design", false, nil, item.StageProduction, false},
		{"sales to production with design", true, nil, item.StageProduction, true},
		{"sales to outsource", true, nil, item.StageOutsource, true},
		{"sales to dispatch", false, nil, item.StageDispatch, true},
		{"design to prepress", true, []item.Stage{item.StageDesign}, item.StagePrepress, false},
		{"design back to sales", true, []item.Stage{item.StageDesign}, item.StageSales, true},
		{"prepress back to design", true, []item.Stage{item.StagePrepress}, item.StageDesign, false},
		{"production back to prepress", false, []item.Stage{item.StageProduction}, item.StagePrepress, true},
		{"production back to sales", false, []item.Stage{item.StageProduction}, item.StageSales, true},
		{"production to completed", false, []item.Stage{item.StageProduction}, item.StageCompleted, true},
		{"unknown stage", false, nil, item.Stage("archive"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := newItem(t, tt.needDesign)
			for _, s := range tt.path {
				require.NoError(t, it.TransitionTo(s, item.TransitionOptions{Force: true, Now: now}))
			}

			err := it.TransitionTo(tt.target, item.TransitionOptions{Force: true, Now: now})

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.target, it.Stage())
			assert.Equal(t, tt.target.Department(), it.Department())
		})
	}
}

func TestOrderItem_ProductionGate(t *testing.T) {
	t.Run("should refuse production when not ready", func(t *testing.T) {
		it := newItem(t, true)
		require.NoError(t, it.TransitionTo(item.StagePrepress, item.TransitionOptions{Now: now}))

		err := it.TransitionTo(item.StageProduction, item.TransitionOptions{Now: now})

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, item.StagePrepress, it.Stage())
	})

	t.Run("should enter production when forced and point at the first step", func(t *testing.T) {
		it := newItem(t, true)
		toProduction(t, it)

		assert.Equal(t, item.StageProduction, it.Stage())
		assert.Equal(t, item.SubstageFoiling, it.Substage())
		assert.Equal(t, item.SubstagePending, it.SubstageStatus())
	})

	t.Run("should refuse dispatch until every step is completed", func(t *testing.T) {
		it := newItem(t, true)
		toProduction(t, it)

		err := it.TransitionTo(item.StageDispatch, item.TransitionOptions{Now: now})
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestOrderItem_Readiness(t *testing.T) {
	it := newItem(t, true)
	require.NoError(t, it.DefineProductionSequence([]item.Substage{item.SubstagePrinting, item.SubstageCutting}, false, now))
	toProduction(t, it)

	require.NoError(t, it.SetSubstage(item.SubstagePrinting, item.SubstageInProgress, now))
	assert.Equal(t, item.SubstagePrinting, it.Substage())
	assert.False(t, it.IsReadyForProduction())

	require.NoError(t, it.SetSubstage(item.SubstagePrinting, item.SubstageCompleted, now))
	require.NoError(t, it.SetSubstage(item.SubstageCutting, item.SubstageCompleted, now))
	assert.True(t, it.IsReadyForProduction())

	// reopen clears readiness
	require.NoError(t, it.SetSubstage(item.SubstagePrinting, item.SubstageInProgress, now))
	assert.False(t, it.IsReadyForProduction())
	require.ErrorIs(t, it.TransitionTo(item.StageDispatch, item.TransitionOptions{Now: now}), errs.ErrInvalidTransition)

	require.NoError(t, it.SetSubstage(item.SubstagePrinting, item.SubstageCompleted, now))
	assert.True(t, it.IsReadyForProduction())
	require.NoError(t, it.TransitionTo(item.StageDispatch, item.TransitionOptions{Now: now}))
	assert.Empty(t, it.Substage())
	assert.Empty(t, it.SubstageStatus())
}

func TestOrderItem_SetSubstage(t *testing.T) {
	t.Run("should refuse outside production", func(t *testing.T) {
		it := newItem(t, true)
		err := it.SetSubstage(item.SubstagePrinting, item.SubstageInProgress, now)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("should refuse a step outside the sequence", func(t *testing.T) {
		it := newItem(t, true)
		require.NoError(t, it.DefineProductionSequence([]item.Substage{item.SubstagePrinting}, false, now))
		toProduction(t, it)

		err := it.SetSubstage(item.SubstageFoiling, item.SubstageInProgress, now)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("should refuse resetting a completed step to pending", func(t *testing.T) {
		it := newItem(t, true)
		toProduction(t, it)
		require.NoError(t, it.SetSubstage(item.SubstageFoiling, item.SubstageCompleted, now))

		err := it.SetSubstage(item.SubstageFoiling, item.SubstagePending, now)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("should refuse an unknown status", func(t *testing.T) {
		it := newItem(t, true)
		toProduction(t, it)
		err := it.SetSubstage(item.SubstageFoiling, item.SubstageStatus("done"), now)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrderItem_Outsource(t *testing.T) {
	it := newItem(t, true)
	require.NoError(t, it.TransitionTo(item.StageDesign, item.TransitionOptions{Now: now}))
	require.NoError(t, it.TransitionTo(item.StageOutsource, item.TransitionOptions{AssignedUser: "vendor-1", Now: now}))

	assert.Equal(t, item.StageDesign, it.OriginStage())
	assert.Equal(t, kernel.DepartmentOutsource, it.Department())
	assert.Equal(t, "vendor-1", it.AssignedUser())

	require.ErrorIs(t, it.TransitionTo(item.StagePrepress, item.TransitionOptions{Now: now}), errs.ErrInvalidTransition)
	require.NoError(t, it.TransitionTo(item.StageDesign, item.TransitionOptions{Now: now}))
	assert.Empty(t, it.OriginStage())
	assert.Empty(t, it.AssignedUser())
}

func TestOrderItem_OutsourceFromProductionReturnsWithoutForce(t *testing.T) {
	it := newItem(t, true)
	toProduction(t, it)
	require.NoError(t, it.SetSubstage(item.SubstageFoiling, item.SubstageCompleted, now))
	require.NoError(t, it.TransitionTo(item.StageOutsource, item.TransitionOptions{Now: now}))
	assert.Empty(t, it.Substage())

	require.NoError(t, it.TransitionTo(item.StageProduction, item.TransitionOptions{Now: now}))
	assert.Equal(t, item.SubstagePrinting, it.Substage())
	assert.Equal(t, item.SubstageCompleted, it.SubstageProgress(item.SubstageFoiling))
}

func TestOrderItem_AssignUser(t *testing.T) {
	t.Run("should assign a member of the current department", func(t *testing.T) {
		it := newItem(t, true)
		require.NoError(t, it.AssignUser("u-1", kernel.DepartmentSales, now))
		assert.Equal(t, "u-1", it.AssignedUser())
	})

	t.Run("should fail for another department", func(t *testing.T) {
		it := newItem(t, true)
		err := it.AssignUser("u-2", kernel.DepartmentDesign, now)

		require.ErrorIs(t, err, errs.ErrUserNotInDepartment)
		assert.Empty(t, it.AssignedUser())
	})
}

func TestOrderItem_DefineProductionSequence(t *testing.T) {
	t.Run("should refuse empty and duplicated sequences", func(t *testing.T) {
		it := newItem(t, true)
		require.ErrorIs(t, it.DefineProductionSequence(nil, false, now), errs.ErrValueIsRequired)
		require.ErrorIs(t, it.DefineProductionSequence(
			[]item.Substage{item.SubstagePrinting, item.SubstagePrinting}, false, now), errs.ErrValueIsInvalid)
	})

	t.Run("should refuse in production for non elevated callers", func(t *testing.T) {
		it := newItem(t, true)
		toProduction(t, it)
		err := it.DefineProductionSequence([]item.Substage{item.SubstagePrinting}, false, now)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("should allow elevated callers until a step starts", func(t *testing.T) {
		it := newItem(t, true)
		toProduction(t, it)
		require.NoError(t, it.DefineProductionSequence([]item.Substage{item.SubstagePrinting}, true, now))
		assert.Equal(t, item.SubstagePrinting, it.Substage())

		require.NoError(t, it.SetSubstage(item.SubstagePrinting, item.SubstageInProgress, now))
		err := it.DefineProductionSequence([]item.Substage{item.SubstageCutting}, true, now)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestOrderItem_MarkDispatched(t *testing.T) {
	it := newItem(t, false)
	require.ErrorIs(t, it.MarkDispatched(false, now), errs.ErrInvalidTransition)

	require.NoError(t, it.TransitionTo(item.StageProduction, item.TransitionOptions{Force: true, Now: now}))
	require.NoError(t, it.TransitionTo(item.StageDispatch, item.TransitionOptions{Force: true, Now: now}))
	require.ErrorIs(t, it.TransitionTo(item.StageCompleted, item.TransitionOptions{Now: now}), errs.ErrInvalidTransition)

	require.NoError(t, it.MarkDispatched(false, now))
	assert.True(t, it.IsDispatched())
	require.ErrorIs(t, it.MarkDispatched(false, now), errs.ErrInvalidTransition)

	require.NoError(t, it.TransitionTo(item.StageCompleted, item.TransitionOptions{Now: now}))
	require.ErrorIs(t, it.TransitionTo(item.StageDispatch, item.TransitionOptions{Force: true, Now: now}), errs.ErrInvalidTransition)
}

func TestOrderItem_Reschedule(t *testing.T) {
	it := newItem(t, true)
	assert.Equal(t, priority.Blue, it.Priority(now))

	require.NoError(t, it.Reschedule(now.AddDate(0, 0, 2), now))
	assert.Equal(t, priority.Red, it.Priority(now))

	require.ErrorIs(t, it.Reschedule(time.Time{}, now), errs.ErrValueIsRequired)
}

func TestRestoreOrderItem(t *testing.T) {
	t.Run("should round trip through a snapshot", func(t *testing.T) {
		it := newItem(t, true)
		toProduction(t, it)
		require.NoError(t, it.SetSubstage(item.SubstageFoiling, item.SubstageInProgress, now))

		restored, err := item.RestoreOrderItem(it.Snapshot())

		require.NoError(t, err)
		assert.Equal(t, it.Snapshot(), restored.Snapshot())
	})

	t.Run("should reject substage outside production", func(t *testing.T) {
		s := newItem(t, true).Snapshot()
		s.Substage = item.SubstagePrinting

		_, err := item.RestoreOrderItem(s)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStage_NoReturnToSalesAfterProduction(t *testing.T) {
	stages := []item.Stage{
		item.StageSales, item.StageDesign, item.StagePrepress, item.StageProduction,
		item.StageDispatch, item.StageCompleted, item.StageOutsource,
	}
	for _, from := range []item.Stage{item.StageProduction, item.StageDispatch, item.StageCompleted} {
		for _, origin := range stages {
			assert.False(t, from.CanReach(item.StageSales, false, origin), "%s -> sales", from)
			assert.False(t, from.CanReach(item.StagePrepress, false, origin), "%s -> prepress", from)
		}
	}
	assert.False(t, item.StageOutsource.CanReach(item.StageSales, false, item.StageProduction))
}
