package commands_test

import (
	"testing"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func TestNewSubmitActionCommand_Success(t *testing.T) {
	lineID := kernel.NewUUID()
	actorID := kernel.NewUUID()

	cmd, err := commands.NewSubmitActionCommand(lineID, order.StageCutting, 5, actorID)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	require.Equal(t, lineID, cmd.LineID())
	require.Equal(t, order.StageCutting, cmd.Stage())
	require.Equal(t, 5, cmd.Quantity())
	require.Equal(t, actorID, cmd.ActorID())
}

func TestNewSubmitActionCommand_InvalidStage(t *testing.T) {
	_, err := commands.NewSubmitActionCommand(
		kernel.NewUUID(), order.UnknownStage, 5, kernel.NewUUID())

	require.Error(t, err)
}

func TestNewSubmitActionCommand_InvalidQuantity(t *testing.T) {
	for _, quantity := range []int{0, -1} {
		_, err := commands.NewSubmitActionCommand(
			kernel.NewUUID(), order.StageSewing, quantity, kernel.NewUUID())

		require.ErrorIs(t, err, commands.ErrQuantityIsInvalid)
	}
}

func TestNewSubmitActionCommand_InvalidLineID(t *testing.T) {
	_, err := commands.NewSubmitActionCommand(
		kernel.UUID{}, order.StageSewing, 5, kernel.NewUUID())

	require.Error(t, err)
}

func TestSubmitActionCommand_NotConstructed(t *testing.T) {
	var cmd commands.SubmitActionCommand

	require.ErrorIs(t, cmd.Validate(), commands.ErrSubmitActionCommandIsNotConstructed)
}
