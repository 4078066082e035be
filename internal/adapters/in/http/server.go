package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/carlsonrocha-octa/softtek-backend/internal/core/application/usecases/commands"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/application/usecases/queries"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/model/kernel"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/model/order"
	"github.com/carlsonrocha-octa/softtek-backend/internal/generated/servers"
	"github.com/carlsonrocha-octa/softtek-backend/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	msgOrderCreated     = "Order created successfully"
	msgOrderRetrieved   = "Order retrieved successfully"
	msgOrdersRetrieved  = "Orders retrieved successfully"
	msgValidationFailed = "Validation failed"
	msgInvalidBody      = "Invalid request body"
	msgOrderNotFound    = "Order not found"
	msgCreateFailed     = "An error occurred while creating the order"
	msgRetrieveFailed   = "An error occurred while retrieving orders"
)

type (
	orderCreator interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	orderGetter interface {
		Handle(ctx context.Context, query queries.GetOrderByIDQuery) (queries.OrderResponse, error)
	}
	orderLister interface {
		Handle(ctx context.Context, query queries.GetAllOrdersQuery) ([]queries.OrderResponse, error)
	}
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler orderCreator

	// Query handlers
	getOrderByIDHandler orderGetter
	getAllOrdersHandler orderLister

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler orderCreator,
	getOrderByIDHandler orderGetter,
	getAllOrdersHandler orderLister,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		createOrderHandler:  createOrderHandler,
		getOrderByIDHandler: getOrderByIDHandler,
		getAllOrdersHandler: getAllOrdersHandler,
		logger:              logger.With("component", "http-server"),
	}
}

// CreateOrder handles POST /api/orders - accepts a supply order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, failure(msgInvalidBody))
	}

	if err := ctx.Validate(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, failure(msgValidationFailed, validationMessages(err)...))
	}

	cmd, err := commands.NewCreateOrderCommand(body.BranchId, body.ItemId, body.Quantity)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, failure(msgValidationFailed, errorMessages(err)...))
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errs.IsValidation(err) {
			return ctx.JSON(http.StatusBadRequest, failure(msgValidationFailed, errorMessages(err)...))
		}
		s.logger.ErrorContext(ctx.Request().Context(), "error creating order", "error", err)
		return ctx.JSON(http.StatusInternalServerError, failure(msgCreateFailed))
	}

	dto := toOrderDTO(queries.OrderResponse{
		ID:        created.ID(),
		BranchID:  created.BranchID(),
		ItemID:    created.ItemID(),
		Quantity:  created.Quantity(),
		CreatedAt: created.CreatedAt(),
		Status:    created.Status(),
	})
	ctx.Response().Header().Set(echo.HeaderLocation, "/api/orders/"+created.ID().String())
	return ctx.JSON(http.StatusCreated, servers.OrderEnvelope{
		Success: true,
		Message: msgOrderCreated,
		Data:    &dto,
	})
}

// GetOrder handles GET /api/orders/{id} - retrieves one order.
func (s *Server) GetOrder(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, failure(msgValidationFailed, err.Error()))
	}

	query, err := queries.NewGetOrderByIDQuery(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, failure(msgValidationFailed, err.Error()))
	}

	found, err := s.getOrderByIDHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, failure(msgOrderNotFound))
		}
		s.logger.ErrorContext(ctx.Request().Context(), "error retrieving order", "error", err)
		return ctx.JSON(http.StatusInternalServerError, failure(msgRetrieveFailed))
	}

	dto := toOrderDTO(found)
	return ctx.JSON(http.StatusOK, servers.OrderEnvelope{
		Success: true,
		Message: msgOrderRetrieved,
		Data:    &dto,
	})
}

// GetOrders handles GET /api/orders - lists orders, newest first.
func (s *Server) GetOrders(ctx echo.Context) error {
	found, err := s.getAllOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetAllOrdersQuery())
	if err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "error listing orders", "error", err)
		return ctx.JSON(http.StatusInternalServerError, servers.OrderListEnvelope{
			Success: false,
			Message: msgRetrieveFailed,
		})
	}

	response := make([]servers.Order, len(found))
	for i, o := range found {
		response[i] = toOrderDTO(o)
	}

	return ctx.JSON(http.StatusOK, servers.OrderListEnvelope{
		Success: true,
		Message: msgOrdersRetrieved,
		Data:    &response,
	})
}

func toOrderDTO(o queries.OrderResponse) servers.Order {
	return servers.Order{
		Id:        o.ID.Bytes(),
		BranchId:  o.BranchID,
		ItemId:    o.ItemID,
		Quantity:  o.Quantity,
		CreatedAt: o.CreatedAt,
		Status:    servers.OrderStatus(o.Status.String()),
	}
}

func failure(message string, details ...string) servers.OrderEnvelope {
	envelope := servers.OrderEnvelope{
		Success: false,
		Message: message,
	}
	if len(details) > 0 {
		envelope.Errors = &details
	}
	return envelope
}

// errorMessages flattens joined errors into one message per violation.
func errorMessages(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok { //nolint:errorlint // only the top-level join is split
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, errorMessages(e)...)
		}
		return out
	}
	return []string{err.Error()}
}

var _ servers.ServerInterface = (*Server)(nil)
