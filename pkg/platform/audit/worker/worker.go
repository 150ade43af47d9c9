// Package worker drains the audit publisher's outbox into external sinks.
package worker

import (
	"context"
	"log/slog"
	"time"

	audit "paperflow/pkg/platform/audit"
)

// drainTimeout bounds how long shutdown waits on buffered events.
const drainTimeout = 5 * time.Second

// Sink receives audit events off the hot path. kafka.Publisher implements it.
type Sink interface {
	Publish(ctx context.Context, event audit.Event) error
}

// Worker consumes the publisher outbox and forwards each event to the sink.
// Sink failures are logged and the event is dropped; the durable store
// already holds it.
type Worker struct {
	inbox  <-chan audit.Event
	sink   Sink
	logger *slog.Logger
}

func New(inbox <-chan audit.Event, sink Sink, logger *slog.Logger) *Worker {
	return &Worker{
		inbox:  inbox,
		sink:   sink,
		logger: logger,
	}
}

// Run processes events until the context is cancelled. Intended to be run
// in an errgroup alongside the HTTP server.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return ctx.Err()
		case event := <-w.inbox:
			w.forward(ctx, event)
		}
	}
}

// drain flushes whatever is already buffered during shutdown.
func (w *Worker) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	for {
		select {
		case event := <-w.inbox:
			w.forward(ctx, event)
		default:
			return
		}
	}
}

func (w *Worker) forward(ctx context.Context, event audit.Event) {
	if err := w.sink.Publish(ctx, event); err != nil {
		w.logger.Error("audit sink publish failed",
			"action", event.Action,
			"paper_id", event.PaperID,
			"error", err,
		)
	}
}
