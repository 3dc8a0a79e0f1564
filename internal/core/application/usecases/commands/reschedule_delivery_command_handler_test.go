package commands_test

import (
	"errors"
	"testing"
	"time"

	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/domain/model/timeline"

	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRescheduleDeliveryCommandHandler_Handle(t *testing.T) {
	t.Run("should invalidate the cached priority after commit", func(t *testing.T) {
		ctx := t.Context()
		it := salesItem(t)
		factory, uow, items, events := itemUoW(t)
		items.On("Get", ctx, it.ID()).Return(it, nil).Once()
		items.On("Update", ctx, it).Return(nil).Once()
		events.On("Add", ctx, eventsWithAction(timeline.ActionNoteAdded)).Return(nil).Once()
		cache := new(MockPriorityCache)
		mock.InOrder(
			uow.On("Commit", ctx).Return(nil).Once(),
			cache.On("Invalidate", ctx, it.ID()).Return(nil).Once(),
		)
		logger, _ := logrustest.NewNullLogger()
		newDate := time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC)

		cmd, err := commands.NewRescheduleDeliveryCommand(it.ID(), newDate, testActor(t, "sales", ""))
		require.NoError(t, err)

		got, err := commands.NewRescheduleDeliveryCommandHandler(factory, defaultPolicy(), cache, logger).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, newDate.Equal(got.DeliveryDate()))
		cache.AssertExpectations(t)
	})

	t.Run("a cache failure is logged and ignored", func(t *testing.T) {
		ctx := t.Context()
		it := salesItem(t)
		factory, uow, items, events := itemUoW(t)
		items.On("Get", ctx, it.ID()).Return(it, nil).Once()
		items.On("Update", ctx, it).Return(nil).Once()
		events.On("Add", ctx, mock.Anything).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		cache := new(MockPriorityCache)
		cache.On("Invalidate", ctx, it.ID()).Return(errors.New("redis down")).Once()
		logger, hook := logrustest.NewNullLogger()

		cmd, err := commands.NewRescheduleDeliveryCommand(it.ID(), time.Now().AddDate(0, 1, 0), testActor(t, "sales", ""))
		require.NoError(t, err)

		_, err = commands.NewRescheduleDeliveryCommandHandler(factory, defaultPolicy(), cache, logger).Handle(ctx, cmd)

		require.NoError(t, err)
		require.Len(t, hook.Entries, 1)
		assert.Equal(t, "priority cache invalidation failed", hook.LastEntry().Message)
	})
}
