// Package sap contains the resource-planning (SAP) client adapters.
package sap

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/carlsonrocha-octa/softtek-backend/internal/core/ports"
	"github.com/carlsonrocha-octa/softtek-backend/internal/pkg/errs"
)

const (
	systemName = "sap"

	// DefaultLatency mirrors the response time of the planning sandbox.
	DefaultLatency = 100 * time.Millisecond
)

// ErrSubmissionRejected is the cause reported when a simulated failure is drawn.
var ErrSubmissionRejected = errors.New("submission rejected by planning system")

// SimulatedClient stands in for the real planning system. It waits for the
// configured latency and then accepts the order, or rejects it with the
// configured probability.
type SimulatedClient struct {
	latency     time.Duration
	failureRate float64
	random      func() float64
	logger      *slog.Logger
}

type Option func(*SimulatedClient)

func WithLatency(latency time.Duration) Option {
	return func(c *SimulatedClient) {
		if latency >= 0 {
			c.latency = latency
		}
	}
}

// WithFailureRate sets the probability in [0, 1] that a submission fails.
// Out-of-range values are clamped.
func WithFailureRate(rate float64) Option {
	return func(c *SimulatedClient) {
		c.failureRate = min(max(rate, 0), 1)
	}
}

// WithRandom replaces the source of the failure draw; it must return values in [0, 1).
func WithRandom(random func() float64) Option {
	return func(c *SimulatedClient) {
		if random != nil {
			c.random = random
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *SimulatedClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func NewSimulatedClient(opts ...Option) *SimulatedClient {
	c := &SimulatedClient{
		latency: DefaultLatency,
		random:  rand.Float64,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "sap-client")
	return c
}

// SubmitOrder waits for the simulated latency and reports the outcome.
// Cancelling ctx aborts the wait with an ExternalSubmissionError.
func (c *SimulatedClient) SubmitOrder(ctx context.Context, order ports.ResourcePlanningOrder) error {
	c.logger.InfoContext(ctx, "submitting order to planning system",
		"order_id", order.OrderID.String(),
		"branch_id", order.BranchID,
		"item_id", order.ItemID,
		"quantity", order.Quantity,
	)

	timer := time.NewTimer(c.latency)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		return errs.NewExternalSubmissionError(systemName, order.OrderID.String(), ctx.Err())
	}

	if c.failureRate > 0 && c.random() < c.failureRate {
		return errs.NewExternalSubmissionError(systemName, order.OrderID.String(), ErrSubmissionRejected)
	}

	c.logger.InfoContext(ctx, "order accepted by planning system", "order_id", order.OrderID.String())
	return nil
}

var _ ports.ResourcePlanningClient = (*SimulatedClient)(nil)
