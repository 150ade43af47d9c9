package audit

import (
	"context"
	"log/slog"
	"time"

	id "paperflow/pkg/domain"
)

// Publisher captures structured audit events. Persistence to the store is
// synchronous - compliance events must not be lost even if the process dies
// right after the operation - while fan-out to external sinks happens
// asynchronously through an internal channel drained by worker.Worker.
type Publisher struct {
	store  Store
	outbox chan Event
	logger *slog.Logger
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithLogger sets a logger for drop reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithOutboxSize overrides the fan-out channel capacity.
func WithOutboxSize(n int) Option {
	return func(p *Publisher) {
		p.outbox = make(chan Event, n)
	}
}

func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{
		store:  store,
		outbox: make(chan Event, 256),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit persists the event and enqueues it for sink fan-out. The category is
// always derived from the action so call sites cannot misclassify events.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.Category = AuditEvent(event.Action).Category()

	if err := p.store.Append(ctx, event); err != nil {
		return err
	}

	select {
	case p.outbox <- event:
	default:
		// Sinks are best-effort; the store already has the event.
		p.logger.WarnContext(ctx, "audit outbox full, sink fan-out dropped",
			"action", event.Action,
			"paper_id", event.PaperID,
		)
	}
	return nil
}

// Outbox exposes the fan-out channel for the worker.
func (p *Publisher) Outbox() <-chan Event {
	return p.outbox
}

// List returns the audit trail for one paper.
func (p *Publisher) List(ctx context.Context, paperID id.PaperID) ([]Event, error) {
	return p.store.ListByPaper(ctx, paperID)
}
