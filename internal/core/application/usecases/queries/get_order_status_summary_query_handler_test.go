package queries_test

import (
	"testing"

	"github.com/carlsonrocha-octa/softtek-backend/internal/core/application/usecases/queries"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrderStatusSummaryQueryHandler_Handle(t *testing.T) {
	t.Run("should zero fill missing statuses", func(t *testing.T) {
		ctx := t.Context()
		repo := new(MockOrderRepository)
		repo.On("CountByStatus", ctx).Return(map[order.Status]int{
			order.Pending:   2,
			order.SentToSap: 5,
			order.Failed:    1,
		}, nil).Once()

		resp, err := queries.NewGetOrderStatusSummaryQueryHandler(repo).
			Handle(ctx, queries.NewGetOrderStatusSummaryQuery())

		require.NoError(t, err)
		assert.Equal(t, 8, resp.Total)
		assert.Equal(t, []queries.StatusCount{
			{Status: order.Pending, Count: 2},
			{Status: order.Processing, Count: 0},
			{Status: order.SentToSap, Count: 5},
			{Status: order.Completed, Count: 0},
			{Status: order.Failed, Count: 1},
		}, resp.Counts)
	})

	t.Run("should reject a zero value query", func(t *testing.T) {
		_, err := queries.NewGetOrderStatusSummaryQueryHandler(new(MockOrderRepository)).
			Handle(t.Context(), queries.GetOrderStatusSummaryQuery{})

		require.ErrorIs(t, err, queries.ErrGetOrderStatusSummaryQueryIsNotConstructed)
	})
}
