package commands_test

import (
	"testing"
	"time"

	"github.com/carlsonrocha-octa/softtek-backend/internal/core/application/usecases/commands"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/events"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubmitOrderCommand(t *testing.T) {
	t.Run("should build from an order id", func(t *testing.T) {
		id := kernel.NewUUID()

		cmd, err := commands.NewSubmitOrderCommand(id)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, id.IsEqual(cmd.OrderID()))
	})

	t.Run("should build from an OrderCreated event", func(t *testing.T) {
		evt := events.NewOrderCreated(kernel.NewUUID(), "BR-001", "ITEM-42", 3, time.Now())

		cmd, err := commands.NewSubmitOrderCommandFromEvent(evt)

		require.NoError(t, err)
		assert.True(t, evt.OrderID().IsEqual(cmd.OrderID()))
	})

	t.Run("should reject a zero id", func(t *testing.T) {
		_, err := commands.NewSubmitOrderCommand(kernel.UUID{})

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})

	t.Run("should reject a zero value command", func(t *testing.T) {
		var cmd commands.SubmitOrderCommand

		assert.Equal(t, commands.ErrSubmitOrderCommandIsNotConstructed, cmd.Validate())
	})
}
