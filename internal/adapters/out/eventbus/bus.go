package eventbus

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/events"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/ports"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"
)

const (
	tracerName = "github.com/carlsonrocha-octa/softtek-backend/internal/adapters/out/eventbus"

	defaultMaxConcurrency = 8
)

// InMemoryBus dispatches events to subscribed handlers inside the process.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[events.Kind][]ports.EventHandler

	// lifecycle guards closed and the errgroup against a Close racing a Publish.
	lifecycle      sync.RWMutex
	closed         bool
	async          bool
	maxConcurrency int
	inflight       *errgroup.Group
	slots          chan struct{}

	logger  *slog.Logger
	tracer  trace.Tracer
	metrics busMetrics
	onFault func(context.Context, HandlerFault)
}

type Option func(*InMemoryBus)

func WithLogger(logger *slog.Logger) Option {
	return func(b *InMemoryBus) {
		b.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(b *InMemoryBus) {
		b.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(b *InMemoryBus) {
		b.metrics = newBusMetrics(m)
	}
}

// WithSynchronousDispatch makes Publish run every handler before returning.
func WithSynchronousDispatch() Option {
	return func(b *InMemoryBus) {
		b.async = false
	}
}

// WithMaxConcurrency bounds how many publishes are dispatched at the same time
// in asynchronous mode. Further publishes queue without blocking the publisher.
// Values below 1 are ignored.
func WithMaxConcurrency(n int) Option {
	return func(b *InMemoryBus) {
		if n > 0 {
			b.maxConcurrency = n
		}
	}
}

// WithFaultHook registers a callback invoked for every HandlerFault, after it was logged.
func WithFaultHook(hook func(context.Context, HandlerFault)) Option {
	return func(b *InMemoryBus) {
		b.onFault = hook
	}
}

// NewInMemoryBus creates an asynchronous bus unless WithSynchronousDispatch is given.
func NewInMemoryBus(opts ...Option) *InMemoryBus {
	b := &InMemoryBus{
		handlers:       make(map[events.Kind][]ports.EventHandler),
		async:          true,
		maxConcurrency: defaultMaxConcurrency,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:         nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics:        newBusMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	if b.logger == nil {
		b.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if b.tracer == nil {
		b.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	b.logger = b.logger.With("component", "event-bus")

	b.inflight = new(errgroup.Group)
	b.slots = make(chan struct{}, b.maxConcurrency)

	return b
}

// Subscribe appends handler to the list for kind. Handlers are expected to be
// registered before the first Publish; a nil handler is ignored.
func (b *InMemoryBus) Subscribe(kind events.Kind, handler ports.EventHandler) {
	if handler == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[kind] = append(b.handlers[kind], handler)
}

// Publish delivers event to every handler subscribed to its kind, in
// registration order. Handlers run with a context detached from ctx
// cancellation, so a finished HTTP request does not cut processing short.
func (b *InMemoryBus) Publish(ctx context.Context, event events.Event) {
	if event == nil {
		b.logger.WarnContext(ctx, "nil event dropped")
		return
	}

	kind := event.Kind()
	if err := kind.Validate(); err != nil {
		b.logger.WarnContext(ctx, "event with unknown kind dropped", "error", err)
		return
	}

	handlers := b.snapshot(kind)
	b.metrics.recordPublished(ctx, kind, len(handlers))
	if len(handlers) == 0 {
		b.logger.WarnContext(ctx, "no handlers registered for event type", "event_kind", kind.String())
		return
	}

	dispatchCtx := context.WithoutCancel(ctx)

	if !b.async {
		b.dispatch(dispatchCtx, event, handlers)
		return
	}

	b.lifecycle.RLock()
	defer b.lifecycle.RUnlock()
	if b.closed {
		b.logger.ErrorContext(ctx, "event bus is closed, event dropped", "event_kind", kind.String())
		return
	}

	b.inflight.Go(func() error {
		b.slots <- struct{}{}
		defer func() { <-b.slots }()

		b.dispatch(dispatchCtx, event, handlers)
		return nil
	})
}

// Close stops accepting asynchronous publishes and waits for in-flight
// dispatches to finish or for ctx to expire.
func (b *InMemoryBus) Close(ctx context.Context) error {
	b.lifecycle.Lock()
	b.closed = true
	b.lifecycle.Unlock()

	done := make(chan struct{})
	go func() {
		_ = b.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("event bus drain interrupted: %w", ctx.Err())
	}
}

func (b *InMemoryBus) snapshot(kind events.Kind) []ports.EventHandler {
	b.mu.RLock()
	defer b.mu.RUnlock()

	handlers := make([]ports.EventHandler, len(b.handlers[kind]))
	copy(handlers, b.handlers[kind])
	return handlers
}

func (b *InMemoryBus) dispatch(ctx context.Context, event events.Event, handlers []ports.EventHandler) {
	for i, handler := range handlers {
		b.invoke(ctx, event, i, handler)
	}
}

func (b *InMemoryBus) invoke(ctx context.Context, event events.Event, index int, handler ports.EventHandler) {
	kind := event.Kind()
	ctx, span := b.tracer.Start(ctx, "eventbus.handle", trace.WithAttributes(
		attribute.String("event.kind", kind.String()),
		attribute.Int("handler.index", index),
	))
	defer span.End()

	var fault *HandlerFault
	func() {
		defer func() {
			if r := recover(); r != nil {
				fault = &HandlerFault{Kind: kind, Index: index, Panicked: true, Cause: fmt.Errorf("%v", r)}
			}
		}()
		if err := handler(ctx, event); err != nil {
			fault = &HandlerFault{Kind: kind, Index: index, Cause: err}
		}
	}()

	if fault == nil {
		return
	}

	span.RecordError(fault)
	span.SetStatus(codes.Error, fault.Error())
	b.metrics.recordFault(ctx, kind, fault.Panicked)
	b.logger.LogAttrs(ctx, slog.LevelError, "event handler failed",
		slog.String("event_kind", kind.String()),
		slog.Int("handler_index", index),
		slog.Bool("panicked", fault.Panicked),
		slog.String("error", fault.Cause.Error()),
	)
	if b.onFault != nil {
		b.onFault(ctx, *fault)
	}
}

type busMetrics struct {
	published metric.Int64Counter
	faults    metric.Int64Counter
}

func newBusMetrics(m metric.Meter) busMetrics {
	if m == nil {
		return busMetrics{}
	}
	published, _ := m.Int64Counter("eventbus.events_published", metric.WithDescription("Number of events published"))
	faults, _ := m.Int64Counter("eventbus.handler_faults", metric.WithDescription("Number of failed handler invocations"))
	return busMetrics{published: published, faults: faults}
}

func (m busMetrics) recordPublished(ctx context.Context, kind events.Kind, handlers int) {
	if m.published != nil {
		m.published.Add(ctx, 1, metric.WithAttributes(
			attribute.String("event.kind", kind.String()),
			attribute.Bool("event.has_handlers", handlers > 0),
		))
	}
}

func (m busMetrics) recordFault(ctx context.Context, kind events.Kind, panicked bool) {
	if m.faults != nil {
		m.faults.Add(ctx, 1, metric.WithAttributes(
			attribute.String("event.kind", kind.String()),
			attribute.Bool("handler.panicked", panicked),
		))
	}
}

var (
	_ ports.EventPublisher  = (*InMemoryBus)(nil)
	_ ports.EventSubscriber = (*InMemoryBus)(nil)
)
