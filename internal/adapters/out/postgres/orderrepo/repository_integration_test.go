package orderrepo_test

import (
	"context"
	"strings"
	"testing"
	"time"

	postgresadapter "github.com/carlsonrocha-octa/softtek-backend/internal/adapters/out/postgres"
	"github.com/carlsonrocha-octa/softtek-backend/internal/adapters/out/postgres/orderrepo"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/model/kernel"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/model/order"
	"github.com/carlsonrocha-octa/softtek-backend/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite runs the GORM order repository against a
// PostgreSQL container migrated with the embedded goose scripts.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := postgresadapter.Connect(ctx, connStr)
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgresadapter.Migrate(ctx, db))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.db != nil {
		suite.Require().NoError(postgresadapter.Close(suite.db))
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("BR-001", "ITEM-001", 5, time.Now())

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_NotConstructedOrder_ReturnsError() {
	err := suite.repository.Add(context.Background(), &order.Order{})

	suite.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
	suite.assertOrderCount(0)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateID_ReturnsPersistenceError() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("BR-001", "ITEM-001", 5, time.Now())
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	err := suite.repository.Add(ctx, testOrder)

	suite.Require().ErrorIs(err, errs.ErrPersistence)
	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RoundTripsFields() {
	ctx := context.Background()
	createdAt := time.Date(2025, 3, 14, 9, 26, 53, 589793000, time.UTC)
	testOrder := suite.createTestOrder("BR-042", strings.Repeat("x", order.MaxReferenceLength), 12, createdAt)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	got, err := suite.repository.Get(ctx, testOrder.ID())

	suite.Require().NoError(err)
	suite.True(got.IsEqual(testOrder))
	suite.Equal("BR-042", got.BranchID())
	suite.Equal(strings.Repeat("x", order.MaxReferenceLength), got.ItemID())
	suite.Equal(12, got.Quantity())
	suite.True(createdAt.Equal(got.CreatedAt()))
	suite.Equal(order.Pending, got.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_MissingOrder_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsStatusTransitions() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("BR-001", "ITEM-001", 5, time.Now())
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.StartProcessing())
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	got, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Processing, got.Status())

	suite.Require().NoError(got.MarkSentToSap())
	suite.Require().NoError(suite.repository.Update(ctx, got))

	got, err = suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.SentToSap, got.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder_ReturnsNotFound() {
	testOrder := suite.createTestOrder("BR-001", "ITEM-001", 5, time.Now())

	err := suite.repository.Update(context.Background(), testOrder)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAll_ReturnsNewestFirst() {
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)
	oldest := suite.createTestOrder("BR-001", "ITEM-001", 1, base)
	middle := suite.createTestOrder("BR-002", "ITEM-002", 2, base.Add(time.Minute))
	newest := suite.createTestOrder("BR-003", "ITEM-003", 3, base.Add(2*time.Minute))
	for _, o := range []*order.Order{middle, oldest, newest} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	got, err := suite.repository.GetAll(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(got, 3)
	suite.True(got[0].IsEqual(newest))
	suite.True(got[1].IsEqual(middle))
	suite.True(got[2].IsEqual(oldest))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAll_EmptyTable_ReturnsEmptySlice() {
	got, err := suite.repository.GetAll(context.Background())

	suite.Require().NoError(err)
	suite.NotNil(got)
	suite.Empty(got)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCountByStatus_GroupsOrders() {
	ctx := context.Background()
	pending := suite.createTestOrder("BR-001", "ITEM-001", 1, time.Now())
	failedA := suite.createTestOrder("BR-002", "ITEM-002", 1, time.Now())
	failedB := suite.createTestOrder("BR-003", "ITEM-003", 1, time.Now())
	for _, o := range []*order.Order{pending, failedA, failedB} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}
	for _, o := range []*order.Order{failedA, failedB} {
		suite.Require().NoError(o.StartProcessing())
		suite.Require().NoError(o.MarkFailed())
		suite.Require().NoError(suite.repository.Update(ctx, o))
	}

	counts, err := suite.repository.CountByStatus(ctx)

	suite.Require().NoError(err)
	suite.Equal(map[order.Status]int{order.Pending: 1, order.Failed: 2}, counts)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestRepository_RespectsCanceledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := suite.repository.GetAll(ctx)

	suite.Require().Error(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(branchID, itemID string, quantity int, createdAt time.Time) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), branchID, itemID, quantity, createdAt)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
