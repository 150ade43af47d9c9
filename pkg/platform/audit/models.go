// Package audit captures structured events for every state-changing paper
// operation. Events are transport-agnostic so stores and sinks can fan out.
package audit

import (
	"context"
	"time"

	id "paperflow/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies, storage backends, and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with regulatory significance:
	// review verdicts and deletions. These require long retention.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers events relevant to security monitoring,
	// such as authorization denials.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine activity useful for debugging;
	// these can be sampled or aggregated with shorter retention.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions on a paper.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	PaperID   id.PaperID
	// ActorID is the identity that performed the action. The placeholder
	// identity appears as the nil UUID.
	ActorID   string
	Action    string
	Decision  string
	Comments  string
	RequestID string
	ClientIP  string
	UserAgent string
}

// AuditEvent names the actions recorded on the paper lifecycle.
type AuditEvent string

const (
	EventPaperCreated   AuditEvent = "paper_created"
	EventPaperUpdated   AuditEvent = "paper_updated"
	EventPaperSubmitted AuditEvent = "paper_submitted"
	EventPaperApproved  AuditEvent = "paper_approved"
	EventPaperRejected  AuditEvent = "paper_rejected"
	EventPaperDeleted   AuditEvent = "paper_deleted"
	EventAccessDenied   AuditEvent = "access_denied"
)

// eventCategories maps each audit event to its category.
var eventCategories = map[AuditEvent]EventCategory{
	// Compliance events - reviewer verdicts and destruction of records.
	EventPaperApproved: CategoryCompliance,
	EventPaperRejected: CategoryCompliance,
	EventPaperDeleted:  CategoryCompliance,

	// Security events.
	EventAccessDenied: CategorySecurity,

	// Operations events - routine authoring activity.
	EventPaperCreated:   CategoryOperations,
	EventPaperUpdated:   CategoryOperations,
	EventPaperSubmitted: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events. Implementations must be append-only.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByPaper(ctx context.Context, paperID id.PaperID) ([]Event, error)
}
