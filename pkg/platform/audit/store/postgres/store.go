// Package postgres persists audit events durably before sink fan-out.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	id "paperflow/pkg/domain"
	audit "paperflow/pkg/platform/audit"

	"github.com/google/uuid"
)

// Store implements audit.Store on PostgreSQL. Append is the synchronous
// write path of the publisher, so every event is on disk before the
// operation that produced it returns.
type Store struct {
	db *sql.DB
}

// New creates a PostgreSQL audit store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Append inserts an audit event. Idempotent via ON CONFLICT DO NOTHING.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	// Always derive category from action - eventCategories map is the source of truth
	category := audit.AuditEvent(event.Action).Category()

	query := `
		INSERT INTO audit_events (
			id, category, timestamp, paper_id, actor_id, action,
			decision, comments, request_id, client_ip, user_agent
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING
	`

	var paperID *uuid.UUID
	if !event.PaperID.IsNil() {
		pid := uuid.UUID(event.PaperID)
		paperID = &pid
	}

	timestamp := event.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	_, err := s.db.ExecContext(ctx, query,
		uuid.New(),
		string(category),
		timestamp,
		paperID,
		event.ActorID,
		event.Action,
		event.Decision,
		event.Comments,
		event.RequestID,
		event.ClientIP,
		event.UserAgent,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListByPaper returns events for a specific paper, newest first.
func (s *Store) ListByPaper(ctx context.Context, paperID id.PaperID) ([]audit.Event, error) {
	query := `
		SELECT category, timestamp, paper_id, actor_id, action,
			   decision, comments, request_id, client_ip, user_agent
		FROM audit_events
		WHERE paper_id = $1
		ORDER BY timestamp DESC
	`

	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(paperID))
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	return s.scanEvents(rows)
}

// ListRecent returns the N most recent events across all papers.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]audit.Event, error) {
	query := `
		SELECT category, timestamp, paper_id, actor_id, action,
			   decision, comments, request_id, client_ip, user_agent
		FROM audit_events
		ORDER BY timestamp DESC
		LIMIT $1
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	return s.scanEvents(rows)
}

func (s *Store) scanEvents(rows *sql.Rows) ([]audit.Event, error) {
	var events []audit.Event

	for rows.Next() {
		var (
			category        string
			event           audit.Event
			paperIDNullable *uuid.UUID
		)

		err := rows.Scan(
			&category,
			&event.Timestamp,
			&paperIDNullable,
			&event.ActorID,
			&event.Action,
			&event.Decision,
			&event.Comments,
			&event.RequestID,
			&event.ClientIP,
			&event.UserAgent,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}

		event.Category = audit.EventCategory(category)
		if paperIDNullable != nil {
			event.PaperID = id.PaperID(*paperIDNullable)
		}

		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}

	return events, nil
}
