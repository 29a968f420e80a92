package commands_test

import (
	"testing"

	"foodcourt/internal/core/application/usecases/commands"
	"foodcourt/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLines() []commands.CartLine {
	return []commands.CartLine{
		{ItemID: kernel.NewUUID(), Quantity: 2, Modifiers: []string{"extra cheese"}},
		{ItemID: kernel.NewUUID(), Quantity: 1},
	}
}

func TestNewCreateZoneOrderCommand(t *testing.T) {
	cmd, err := commands.NewCreateZoneOrderCommand(
		kernel.NewUUID(), "T12", "Dana", "+77010001122", "card", validLines())
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, "T12", cmd.TableNumber())
	assert.Equal(t, "+77010001122", cmd.CustomerPhone())
	assert.Len(t, cmd.Lines(), 2)
}

func TestNewCreateZoneOrderCommand_Validation(t *testing.T) {
	zoneID := kernel.NewUUID()

	t.Run("requires zone", func(t *testing.T) {
		_, err := commands.NewCreateZoneOrderCommand(
			kernel.UUID{}, "T12", "Dana", "+77010001122", "card", validLines())
		require.Error(t, err)
	})

	t.Run("requires table", func(t *testing.T) {
		_, err := commands.NewCreateZoneOrderCommand(
			zoneID, "", "Dana", "+77010001122", "card", validLines())
		require.ErrorIs(t, err, commands.ErrTableNumberIsRequired)
	})

	t.Run("requires customer name and phone", func(t *testing.T) {
		_, err := commands.NewCreateZoneOrderCommand(
			zoneID, "T12", "", "+77010001122", "card", validLines())
		require.ErrorIs(t, err, commands.ErrCustomerNameIsRequired)

		_, err = commands.NewCreateZoneOrderCommand(
			zoneID, "T12", "Dana", "", "card", validLines())
		require.ErrorIs(t, err, commands.ErrCustomerPhoneIsRequired)
	})

	t.Run("requires a non-empty cart", func(t *testing.T) {
		_, err := commands.NewCreateZoneOrderCommand(
			zoneID, "T12", "Dana", "+77010001122", "card", nil)
		require.ErrorIs(t, err, commands.ErrCartIsEmpty)
	})

	t.Run("rejects non-positive quantities", func(t *testing.T) {
		lines := []commands.CartLine{{ItemID: kernel.NewUUID(), Quantity: 0}}
		_, err := commands.NewCreateZoneOrderCommand(
			zoneID, "T12", "Dana", "+77010001122", "card", lines)
		require.ErrorIs(t, err, commands.ErrCartLineIsInvalid)
	})

	t.Run("zero value fails Validate", func(t *testing.T) {
		var cmd commands.CreateZoneOrderCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateZoneOrderCommandIsNotConstructed)
	})
}
