package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "github.com/carlsonrocha-octa/softtek-backend/internal/adapters/in/http"
	"github.com/carlsonrocha-octa/softtek-backend/internal/adapters/out/memory"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/application/usecases/commands"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/application/usecases/queries"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/events"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/model/kernel"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/model/order"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/ports"
	"github.com/carlsonrocha-octa/softtek-backend/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"}

type recordingPublisher struct {
	published []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) {
	p.published = append(p.published, event)
}

type orderUoWFactory struct {
	create func() ports.UnitOfWork
}

func (f orderUoWFactory) Create() commands.OrderUoW {
	return f.create()
}

type brokenUoW struct{}

func (brokenUoW) Begin(context.Context) error    { return errors.New("database is down") }
func (brokenUoW) Commit(context.Context) error   { return nil }
func (brokenUoW) Rollback(context.Context) error { return nil }
func (brokenUoW) OrderRepository() ports.OrderRepository {
	return nil
}

type brokenRepository struct {
	ports.OrderRepository
}

func (brokenRepository) Get(context.Context, kernel.UUID) (*order.Order, error) {
	return nil, errors.New("database is down")
}

func (brokenRepository) GetAll(context.Context) ([]*order.Order, error) {
	return nil, errors.New("database is down")
}

type fixture struct {
	store     *memory.Store
	publisher *recordingPublisher
	router    *echo.Echo
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	uows := memory.NewUnitOfWorkFactory(store)
	return newFixtureWith(t, store, orderUoWFactory{create: uows.Create}, store.OrderRepository())
}

func newFixtureWith(t *testing.T, store *memory.Store, factory commands.OrderUoWFactory, repo ports.OrderRepository) *fixture {
	t.Helper()

	publisher := &recordingPublisher{}
	create := commands.NewCreateOrderCommandHandler(factory, publisher)
	server := httpadapter.NewServer(
		&create,
		queries.NewGetOrderByIDQueryHandler(repo),
		queries.NewGetAllOrdersQueryHandler(repo),
		discardLogger(),
	)

	router, err := httpadapter.NewRouter(server, httpadapter.RouterConfig{
		AllowedOrigins: allowedOrigins,
		Logger:         discardLogger(),
	})
	require.NoError(t, err)

	return &fixture{store: store, publisher: publisher, router: router}
}

func (f *fixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	rec := newFixture(t).do(t, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestCreateOrder(t *testing.T) {
	t.Run("should accept a valid order as Pending", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, http.MethodPost, "/api/orders", `{"branchId":"BR001","itemId":"ITEM001","quantity":10}`)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		body := decode[servers.OrderEnvelope](t, rec)
		assert.True(t, body.Success)
		assert.Equal(t, "Order created successfully", body.Message)
		require.NotNil(t, body.Data)
		assert.Equal(t, "BR001", body.Data.BranchId)
		assert.Equal(t, "ITEM001", body.Data.ItemId)
		assert.Equal(t, 10, body.Data.Quantity)
		assert.Equal(t, servers.Pending, body.Data.Status)
		assert.WithinDuration(t, time.Now(), body.Data.CreatedAt, time.Minute)
		assert.Equal(t, "/api/orders/"+body.Data.Id.String(), rec.Header().Get(echo.HeaderLocation))

		require.Len(t, f.publisher.published, 1)
		created, ok := f.publisher.published[0].(events.OrderCreated)
		require.True(t, ok)
		assert.Equal(t, body.Data.Id.String(), created.OrderID().String())
	})

	cases := []struct {
		name    string
		body    string
		message string
		errors  []string
	}{
		{
			name:    "blank branch",
			body:    `{"branchId":"","itemId":"ITEM001","quantity":10}`,
			message: "Validation failed",
			errors:  []string{"BranchId is required"},
		},
		{
			name:    "item too long",
			body:    `{"branchId":"BR001","itemId":"` + strings.Repeat("i", 51) + `","quantity":10}`,
			message: "Validation failed",
			errors:  []string{"ItemId must not exceed 50 characters"},
		},
		{
			name:    "zero quantity",
			body:    `{"branchId":"BR001","itemId":"ITEM001","quantity":0}`,
			message: "Validation failed",
			errors:  []string{"Quantity must be greater than zero"},
		},
		{
			name:    "every field invalid",
			body:    `{"branchId":"","itemId":"","quantity":-1}`,
			message: "Validation failed",
			errors: []string{
				"BranchId is required",
				"ItemId is required",
				"Quantity must be greater than zero",
			},
		},
		{
			name:    "malformed body",
			body:    `{"branchId":`,
			message: "Invalid request body",
		},
	}
	for _, tc := range cases {
		t.Run("should reject "+tc.name, func(t *testing.T) {
			f := newFixture(t)

			rec := f.do(t, http.MethodPost, "/api/orders", tc.body)

			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			body := decode[servers.OrderEnvelope](t, rec)
			assert.False(t, body.Success)
			assert.Equal(t, tc.message, body.Message)
			assert.Nil(t, body.Data)
			if tc.errors != nil {
				require.NotNil(t, body.Errors)
				assert.Equal(t, tc.errors, *body.Errors)
			}
			assert.Empty(t, f.publisher.published)

			all, err := f.store.OrderRepository().GetAll(t.Context())
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}

	t.Run("should reject a whitespace-only branch in the core", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, http.MethodPost, "/api/orders", `{"branchId":"   ","itemId":"ITEM001","quantity":1}`)

		require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		body := decode[servers.OrderEnvelope](t, rec)
		assert.Equal(t, "Validation failed", body.Message)
		require.NotNil(t, body.Errors)
		assert.Len(t, *body.Errors, 1)
	})

	t.Run("should hide storage failures behind a generic message", func(t *testing.T) {
		f := newFixtureWith(t, memory.NewStore(),
			orderUoWFactory{create: func() ports.UnitOfWork { return brokenUoW{} }},
			brokenRepository{})

		rec := f.do(t, http.MethodPost, "/api/orders", `{"branchId":"BR001","itemId":"ITEM001","quantity":1}`)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decode[servers.OrderEnvelope](t, rec)
		assert.False(t, body.Success)
		assert.Equal(t, "An error occurred while creating the order", body.Message)
		assert.NotContains(t, rec.Body.String(), "database is down")
		assert.Empty(t, f.publisher.published)
	})
}

func TestGetOrder(t *testing.T) {
	t.Run("should return a stored order", func(t *testing.T) {
		f := newFixture(t)
		stored, err := order.NewOrder(kernel.NewUUID(), "BR001", "ITEM001", 3, time.Now())
		require.NoError(t, err)
		require.NoError(t, f.store.OrderRepository().Add(t.Context(), stored))

		rec := f.do(t, http.MethodGet, "/api/orders/"+stored.ID().String(), "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := decode[servers.OrderEnvelope](t, rec)
		assert.True(t, body.Success)
		require.NotNil(t, body.Data)
		assert.Equal(t, stored.ID().String(), body.Data.Id.String())
		assert.Equal(t, servers.Pending, body.Data.Status)
	})

	t.Run("should answer 404 for an unknown id", func(t *testing.T) {
		rec := newFixture(t).do(t, http.MethodGet, "/api/orders/"+kernel.NewUUID().String(), "")

		require.Equal(t, http.StatusNotFound, rec.Code)
		body := decode[servers.OrderEnvelope](t, rec)
		assert.False(t, body.Success)
		assert.Equal(t, "Order not found", body.Message)
	})

	t.Run("should answer 400 for a malformed id", func(t *testing.T) {
		rec := newFixture(t).do(t, http.MethodGet, "/api/orders/not-a-uuid", "")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode[servers.OrderEnvelope](t, rec)
		assert.False(t, body.Success)
		assert.Contains(t, body.Message, "Invalid format for parameter id")
	})

	t.Run("should answer 400 for the nil id", func(t *testing.T) {
		rec := newFixture(t).do(t, http.MethodGet, "/api/orders/00000000-0000-0000-0000-000000000000", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetOrders(t *testing.T) {
	t.Run("should list orders newest first", func(t *testing.T) {
		f := newFixture(t)
		base := time.Now().Add(-time.Hour)
		for i, branch := range []string{"BR-OLD", "BR-MID", "BR-NEW"} {
			o, err := order.NewOrder(kernel.NewUUID(), branch, "ITEM001", 1, base.Add(time.Duration(i)*time.Minute))
			require.NoError(t, err)
			require.NoError(t, f.store.OrderRepository().Add(t.Context(), o))
		}

		rec := f.do(t, http.MethodGet, "/api/orders", "")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[servers.OrderListEnvelope](t, rec)
		assert.True(t, body.Success)
		require.NotNil(t, body.Data)
		require.Len(t, *body.Data, 3)
		assert.Equal(t, "BR-NEW", (*body.Data)[0].BranchId)
		assert.Equal(t, "BR-MID", (*body.Data)[1].BranchId)
		assert.Equal(t, "BR-OLD", (*body.Data)[2].BranchId)
	})

	t.Run("should return an empty list", func(t *testing.T) {
		rec := newFixture(t).do(t, http.MethodGet, "/api/orders", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"data":[]`)
	})

	t.Run("should hide storage failures", func(t *testing.T) {
		f := newFixtureWith(t, memory.NewStore(),
			orderUoWFactory{create: func() ports.UnitOfWork { return brokenUoW{} }},
			brokenRepository{})

		rec := f.do(t, http.MethodGet, "/api/orders", "")

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "database is down")
	})
}

func TestRouter(t *testing.T) {
	t.Run("should allow configured origins", func(t *testing.T) {
		f := newFixture(t)
		req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
		req.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
		req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
		rec := httptest.NewRecorder()

		f.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	})

	t.Run("should not allow other origins", func(t *testing.T) {
		f := newFixture(t)
		req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
		req.Header.Set(echo.HeaderOrigin, "http://evil.example")
		req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
		rec := httptest.NewRecorder()

		f.router.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	})

	t.Run("should serve the OpenAPI document", func(t *testing.T) {
		rec := newFixture(t).do(t, http.MethodGet, "/swagger/doc.json", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "/api/orders/{id}")
	})

	t.Run("should answer unknown routes with the envelope", func(t *testing.T) {
		rec := newFixture(t).do(t, http.MethodGet, "/api/unknown", "")

		require.Equal(t, http.StatusNotFound, rec.Code)
		body := decode[servers.OrderEnvelope](t, rec)
		assert.False(t, body.Success)
	})
}
