package commands_test

import (
	"testing"
	"time"

	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

func TestNewRescheduleDeliveryCommand_RequiresDate(t *testing.T) {
	_, err := commands.NewRescheduleDeliveryCommand(kernel.NewUUID(), time.Time{}, testActor(t, "sales", ""))
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
