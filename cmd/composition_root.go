package cmd

import (
	"context"
	"errors"
	"log/slog"

	httpin "github.com/carlsonrocha-octa/softtek-backend/internal/adapters/in/http"
	"github.com/carlsonrocha-octa/softtek-backend/internal/adapters/out/eventbus"
	"github.com/carlsonrocha-octa/softtek-backend/internal/adapters/out/sap"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/application/eventhandlers"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/application/usecases/commands"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/application/usecases/queries"
	"github.com/carlsonrocha-octa/softtek-backend/internal/jobs"
	"github.com/carlsonrocha-octa/softtek-backend/internal/pkg/observability"

	"github.com/labstack/echo/v4"
)

type CompositionRoot struct {
	config     Config
	logger     *slog.Logger
	storage    *Storage
	uowFactory commands.OrderUoWFactory
	bus        *eventbus.InMemoryBus
	sapClient  *sap.SimulatedClient
}

// NewCompositionRoot wires the application around an opened and migrated storage.
// instruments may be nil, in which case slog.Default and no-op telemetry are used.
func NewCompositionRoot(cfg Config, storage *Storage, instruments *observability.Instruments) *CompositionRoot {
	logger := slog.Default()
	if instruments != nil && instruments.Logger != nil {
		logger = instruments.Logger
	}

	busOpts := []eventbus.Option{
		eventbus.WithLogger(logger),
		eventbus.WithTracer(instruments.Tracer("event-bus")),
		eventbus.WithMeter(instruments.Meter("event-bus")),
		eventbus.WithMaxConcurrency(cfg.EventBusMaxConcurrency),
	}
	if !cfg.EventBusAsync {
		busOpts = append(busOpts, eventbus.WithSynchronousDispatch())
	}

	c := &CompositionRoot{
		config:  cfg,
		logger:  logger,
		storage: storage,
		uowFactory: FuncOrderUoWFactory(func() commands.OrderUoW {
			return storage.uowFactory()
		}),
		bus: eventbus.NewInMemoryBus(busOpts...),
		sapClient: sap.NewSimulatedClient(
			sap.WithLatency(cfg.SAPLatency),
			sap.WithFailureRate(cfg.SAPFailureRate),
			sap.WithLogger(logger),
		),
	}

	handler := c.CreateOrderCreatedHandler()
	handler.Register(c.bus)

	return c
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uowFactory, c.bus)
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	return commands.NewSubmitOrderCommandHandler(c.uowFactory, c.sapClient, c.logger)
}

func (c *CompositionRoot) CreateGetOrderByIDQueryHandler() queries.GetOrderByIDQueryHandler {
	return queries.NewGetOrderByIDQueryHandler(c.storage.repository)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.storage.repository)
}

func (c *CompositionRoot) CreateGetOrderStatusSummaryQueryHandler() queries.GetOrderStatusSummaryQueryHandler {
	return queries.NewGetOrderStatusSummaryQueryHandler(c.storage.repository)
}

func (c *CompositionRoot) CreateOrderCreatedHandler() *eventhandlers.OrderCreatedHandler {
	submit := c.CreateSubmitOrderCommandHandler()
	return eventhandlers.NewOrderCreatedHandler(&submit, c.logger)
}

func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	create := c.CreateCreateOrderCommandHandler()
	server := httpin.NewServer(
		&create,
		c.CreateGetOrderByIDQueryHandler(),
		c.CreateGetAllOrdersQueryHandler(),
		c.logger,
	)

	return httpin.NewRouter(server, httpin.RouterConfig{
		AllowedOrigins: c.config.CORSAllowedOrigins,
		Logger:         c.logger,
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetOrderStatusSummaryQueryHandler(),
		c.config.StatusReportSchedule,
		c.logger,
	)
}

// Close drains in-flight order processing and then closes the storage.
func (c *CompositionRoot) Close(ctx context.Context) error {
	return errors.Join(c.bus.Close(ctx), c.storage.Close())
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
