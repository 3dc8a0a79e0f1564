package commands_test

import (
	"testing"

	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

func TestNewSetSubstageCommand_RejectsUnknownValues(t *testing.T) {
	actor := testActor(t, "production", "")

	_, err := commands.NewSetSubstageCommand(kernel.NewUUID(), "die cutting", "in_progress", actor)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewSetSubstageCommand(kernel.NewUUID(), "printing", "paused", actor)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
