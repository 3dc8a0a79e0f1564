package commands_test

import (
	"testing"

	"printshop/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
)

func TestSettleMaterialCommand_NotConstructedViaConstructor(t *testing.T) {
	assert.ErrorIs(t, commands.SettleMaterialCommand{}.Validate(), commands.ErrSettleMaterialCommandIsNotConstructed)
}
