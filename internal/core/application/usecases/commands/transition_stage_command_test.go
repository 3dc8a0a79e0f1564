package commands_test

import (
	"testing"

	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/domain/model/item"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransitionStageCommand(t *testing.T) {
	actor := testActor(t, "sales", "")

	cmd, err := commands.NewTransitionStageCommand(kernel.NewUUID(), "prepress", " pp-1 ", "", false, actor)
	require.NoError(t, err)
	assert.Equal(t, item.StagePrepress, cmd.Target())
	require.NoError(t, cmd.Validate())

	_, err = commands.NewTransitionStageCommand(kernel.NewUUID(), "warehouse", "", "", false, actor)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewTransitionStageCommand(kernel.UUID{}, "design", "", "", false, actor)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
