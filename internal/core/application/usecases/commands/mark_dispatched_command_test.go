package commands_test

import (
	"testing"

	"printshop/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
)

func TestMarkDispatchedCommand_NotConstructedViaConstructor(t *testing.T) {
	assert.ErrorIs(t, commands.MarkDispatchedCommand{}.Validate(), commands.ErrMarkDispatchedCommandIsNotConstructed)
}
