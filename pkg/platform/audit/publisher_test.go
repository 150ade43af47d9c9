package audit_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	id "paperflow/pkg/domain"
	audit "paperflow/pkg/platform/audit"
	auditmemory "paperflow/pkg/platform/audit/store/memory"
	"paperflow/pkg/platform/audit/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisherEmit(t *testing.T) {
	ctx := context.Background()
	store := auditmemory.New()
	publisher := audit.NewPublisher(store, audit.WithLogger(slog.New(slog.DiscardHandler)))

	paperID := id.NewPaperID()

	t.Run("persists event and derives category", func(t *testing.T) {
		err := publisher.Emit(ctx, audit.Event{
			PaperID:  paperID,
			ActorID:  id.NewUserID().String(),
			Action:   string(audit.EventPaperApproved),
			Decision: "approved",
		})
		require.NoError(t, err)

		events, err := publisher.List(ctx, paperID)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, audit.CategoryCompliance, events[0].Category)
		assert.False(t, events[0].Timestamp.IsZero())
	})

	t.Run("call site cannot misclassify", func(t *testing.T) {
		pid := id.NewPaperID()
		err := publisher.Emit(ctx, audit.Event{
			PaperID:  pid,
			Action:   string(audit.EventPaperCreated),
			Category: audit.CategoryCompliance, // ignored
		})
		require.NoError(t, err)

		events, err := publisher.List(ctx, pid)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, audit.CategoryOperations, events[0].Category)
	})

	t.Run("event lands on the outbox", func(t *testing.T) {
		pid := id.NewPaperID()
		require.NoError(t, publisher.Emit(ctx, audit.Event{
			PaperID: pid,
			Action:  string(audit.EventPaperSubmitted),
		}))

		found := false
		for !found {
			select {
			case event := <-publisher.Outbox():
				if event.PaperID == pid {
					found = true
				}
			case <-time.After(time.Second):
				t.Fatal("event never reached the outbox")
			}
		}
	})
}

func TestEventCategories(t *testing.T) {
	assert.Equal(t, audit.CategoryCompliance, audit.EventPaperApproved.Category())
	assert.Equal(t, audit.CategoryCompliance, audit.EventPaperRejected.Category())
	assert.Equal(t, audit.CategoryCompliance, audit.EventPaperDeleted.Category())
	assert.Equal(t, audit.CategorySecurity, audit.EventAccessDenied.Category())
	assert.Equal(t, audit.CategoryOperations, audit.EventPaperCreated.Category())
	assert.Equal(t, audit.CategoryOperations, audit.AuditEvent("something_new").Category())
}

type captureSink struct {
	events chan audit.Event
	err    error
}

func (s *captureSink) Publish(_ context.Context, event audit.Event) error {
	if s.err != nil {
		return s.err
	}
	s.events <- event
	return nil
}

func TestWorkerForwardsToSink(t *testing.T) {
	store := auditmemory.New()
	publisher := audit.NewPublisher(store, audit.WithLogger(slog.New(slog.DiscardHandler)))
	sink := &captureSink{events: make(chan audit.Event, 8)}
	w := worker.New(publisher.Outbox(), sink, slog.New(slog.DiscardHandler))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	pid := id.NewPaperID()
	require.NoError(t, publisher.Emit(ctx, audit.Event{
		PaperID: pid,
		Action:  string(audit.EventPaperDeleted),
	}))

	select {
	case event := <-sink.events:
		assert.Equal(t, pid, event.PaperID)
		assert.Equal(t, audit.CategoryCompliance, event.Category)
	case <-time.After(time.Second):
		t.Fatal("sink never received the event")
	}

	cancel()
	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on cancellation")
	}
}

func TestWorkerSurvivesSinkFailure(t *testing.T) {
	store := auditmemory.New()
	publisher := audit.NewPublisher(store, audit.WithLogger(slog.New(slog.DiscardHandler)))
	sink := &captureSink{err: errors.New("broker unreachable")}
	w := worker.New(publisher.Outbox(), sink, slog.New(slog.DiscardHandler))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	pid := id.NewPaperID()
	require.NoError(t, publisher.Emit(ctx, audit.Event{
		PaperID: pid,
		Action:  string(audit.EventPaperUpdated),
	}))

	// The durable store still has the event even though the sink failed.
	events, err := publisher.List(ctx, pid)
	require.NoError(t, err)
	assert.Len(t, events, 1)

	cancel()
	<-done
}
