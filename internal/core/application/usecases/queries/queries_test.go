package queries_test

import (
	"testing"

	"printshop/internal/core/application/usecases/queries"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/priority"
	"printshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueries_NotConstructedViaConstructor(t *testing.T) {
	tests := []struct {
		name     string
		validate func() error
		expected error
	}{
		{"get item", queries.GetOrderItemQuery{}.Validate, queries.ErrGetOrderItemQueryIsNotConstructed},
		{"list items", queries.ListOrderItemsQuery{}.Validate, queries.ErrListOrderItemsQueryIsNotConstructed},
		{"timeline", queries.ListTimelineQuery{}.Validate, queries.ErrListTimelineQueryIsNotConstructed},
		{"allocations", queries.ListAllocationsQuery{}.Validate, queries.ErrListAllocationsQueryIsNotConstructed},
		{"get paper", queries.GetPaperStockQuery{}.Validate, queries.ErrGetPaperStockQueryIsNotConstructed},
		{"list papers", queries.ListPaperStockQuery{}.Validate, queries.ErrListPaperStockQueryIsNotConstructed},
		{"ledger", queries.ListLedgerQuery{}.Validate, queries.ErrListLedgerQueryIsNotConstructed},
		{"verify", queries.VerifyLedgerQuery{}.Validate, queries.ErrVerifyLedgerQueryIsNotConstructed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.validate(), tt.expected)
		})
	}
}

func TestNewListOrderItemsQuery(t *testing.T) {
	t.Run("should accept an empty filter", func(t *testing.T) {
		query, err := queries.NewListOrderItemsQuery(queries.ItemFilter{})
		require.NoError(t, err)
		require.NoError(t, query.Validate())
	})

	t.Run("should reject unknown enum values", func(t *testing.T) {
		_, err := queries.NewListOrderItemsQuery(queries.ItemFilter{
			Department: kernel.Department("warehouse"),
			Priority:   priority.Tier("green"),
		})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewQueries_RequireIDs(t *testing.T) {
	_, err := queries.NewGetOrderItemQuery(kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.NewListTimelineQuery(kernel.UUID{}, true)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.NewListLedgerQuery(kernel.NewUUID(), &kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	query, err := queries.NewVerifyLedgerQuery(nil)
	require.NoError(t, err)
	assert.Nil(t, query.PaperID())
}
