// Package service orchestrates the paper lifecycle: creation, content
// edits, submission, review verdicts and deletion. Handlers stay thin and
// domain logic lives on the aggregate; this layer wires identity,
// authorization, persistence, caching and audit together.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"paperflow/internal/identity"
	"paperflow/internal/paper/authz"
	"paperflow/internal/paper/models"
	"paperflow/internal/platform/metrics"
	id "paperflow/pkg/domain"
	dErrors "paperflow/pkg/domain-errors"
	"paperflow/pkg/platform/audit"
	"paperflow/pkg/platform/sentinel"
	"paperflow/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// PaperStore persists paper aggregates with optimistic concurrency.
type PaperStore interface {
	Create(ctx context.Context, paper *models.Paper) error
	Get(ctx context.Context, paperID id.PaperID) (*models.Paper, error)
	Update(ctx context.Context, paper *models.Paper) error
	Delete(ctx context.Context, paperID id.PaperID) error
	ListByStatus(ctx context.Context, status models.Status) ([]*models.Paper, error)
	ListByOwner(ctx context.Context, ownerID id.UserID) ([]*models.Paper, error)
}

// AuditPublisher records lifecycle events and serves the per-paper trail.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
	List(ctx context.Context, paperID id.PaperID) ([]audit.Event, error)
}

// NameResolver attaches display names to papers at creation time.
type NameResolver interface {
	DisplayName(ctx context.Context, userID id.UserID) string
}

// PendingCache accelerates the pending-approvals listing.
type PendingCache interface {
	Get(ctx context.Context) ([]*models.Paper, error)
	Set(ctx context.Context, papers []*models.Paper)
	Invalidate(ctx context.Context)
}

// Service is the paper lifecycle engine.
type Service struct {
	store          PaperStore
	guard          *authz.Guard
	names          NameResolver
	pending        PendingCache
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithNameResolver(names NameResolver) Option {
	return func(s *Service) {
		s.names = names
	}
}

func WithPendingCache(cache PendingCache) Option {
	return func(s *Service) {
		s.pending = cache
	}
}

// New constructs a Service.
func New(store PaperStore, guard *authz.Guard, opts ...Option) *Service {
	s := &Service{store: store, guard: guard}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateInput carries the authoring payload.
type CreateInput struct {
	Title     string
	Course    string
	Subject   string
	Questions []models.Question
}

// UpdateInput carries a content edit. Empty fields leave the current value
// in place; a non-empty Questions slice replaces the content wholesale.
type UpdateInput struct {
	Title     string
	Course    string
	Subject   string
	Questions []models.Question
}

// Decision is a reviewer verdict.
type Decision struct {
	Approve  bool
	Comments string
}

// Create authors a new Draft paper owned by the caller.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Paper, error) {
	ident := identity.FromContext(ctx)
	if err := s.authorize(ctx, ident, nil, authz.OpCreate); err != nil {
		return nil, err
	}

	creatorName := ""
	if s.names != nil {
		creatorName = s.names.DisplayName(ctx, ident.ID)
	}

	paper, err := models.NewPaper(id.NewPaperID(), strings.TrimSpace(in.Title),
		in.Course, in.Subject, in.Questions, ident.ID, creatorName, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, dErrors.MessageOf(err))
		}
		return nil, err
	}

	if err := s.store.Create(ctx, paper); err != nil {
		return nil, s.storeError(err, "create paper")
	}

	s.logAudit(ctx, ident, paper.ID, audit.EventPaperCreated, "", "",
		"title", paper.Title)
	s.metrics.IncrementPapersCreated()
	return paper, nil
}

// Get loads a paper the caller is allowed to read.
func (s *Service) Get(ctx context.Context, paperID id.PaperID) (*models.Paper, error) {
	ident := identity.FromContext(ctx)
	paper, err := s.store.Get(ctx, paperID)
	if err != nil {
		return nil, s.storeError(err, "load paper")
	}
	if err := s.authorize(ctx, ident, paper, authz.OpRead); err != nil {
		return nil, err
	}
	return paper, nil
}

// UpdateContent replaces paper content. The lifecycle status is never
// touched here: editing a rejected paper keeps it rejected until the author
// explicitly resubmits.
func (s *Service) UpdateContent(ctx context.Context, paperID id.PaperID, in UpdateInput) (*models.Paper, error) {
	ident := identity.FromContext(ctx)
	paper, err := s.store.Get(ctx, paperID)
	if err != nil {
		return nil, s.storeError(err, "load paper")
	}
	if err := s.authorize(ctx, ident, paper, authz.OpUpdate); err != nil {
		return nil, err
	}
	if !s.guard.Bypassed(ident) {
		if err := paper.CanEditContent(); err != nil {
			s.metrics.ObserveTransition("update", "blocked")
			return nil, err
		}
	}
	if len(in.Questions) > 0 {
		if err := models.ValidateQuestions(in.Questions); err != nil {
			return nil, dErrors.New(dErrors.CodeValidation, dErrors.MessageOf(err))
		}
	}

	paper.ApplyContentEdit(strings.TrimSpace(in.Title), in.Course, in.Subject,
		in.Questions, requestcontext.Now(ctx))

	if err := s.store.Update(ctx, paper); err != nil {
		return nil, s.storeError(err, "update paper")
	}

	s.logAudit(ctx, ident, paper.ID, audit.EventPaperUpdated, "", "",
		"status", paper.Status.Lower())
	s.metrics.ObserveTransition("update", "ok")
	return paper, nil
}

// Delete removes a paper. Draft and rejected papers can be deleted by their
// owner; approved papers only by elevated roles.
func (s *Service) Delete(ctx context.Context, paperID id.PaperID) error {
	ident := identity.FromContext(ctx)
	paper, err := s.store.Get(ctx, paperID)
	if err != nil {
		return s.storeError(err, "load paper")
	}
	if err := s.authorize(ctx, ident, paper, authz.OpDelete); err != nil {
		return err
	}
	if !s.guard.Bypassed(ident) {
		if err := paper.CanDelete(ident.IsElevated()); err != nil {
			s.metrics.ObserveTransition("delete", "blocked")
			return err
		}
	}

	// The compliance record lands before the destructive write; a failed
	// delete leaves a surplus event rather than a missing one.
	if err := s.emitCompliance(ctx, ident, paper.ID, audit.EventPaperDeleted, "", "",
		"status", paper.Status.Lower()); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, paperID); err != nil {
		return s.storeError(err, "delete paper")
	}
	if models.StatusEqual(string(paper.Status), string(models.StatusSubmitted)) {
		s.invalidatePending(ctx)
	}

	s.metrics.ObserveTransition("delete", "ok")
	return nil
}

// Submit moves a paper into review. Resubmitting a rejected paper clears
// the previous verdict.
func (s *Service) Submit(ctx context.Context, paperID id.PaperID, comments string) (*models.Paper, error) {
	ident := identity.FromContext(ctx)
	paper, err := s.store.Get(ctx, paperID)
	if err != nil {
		return nil, s.storeError(err, "load paper")
	}
	if err := s.authorize(ctx, ident, paper, authz.OpSubmit); err != nil {
		return nil, err
	}
	// Transition legality is universal: nobody submits an approved paper.
	if err := paper.CanSubmit(); err != nil {
		s.metrics.ObserveTransition("submit", "blocked")
		return nil, err
	}

	paper.ApplySubmit(ident.ID, comments, requestcontext.Now(ctx))

	if err := s.store.Update(ctx, paper); err != nil {
		return nil, s.storeError(err, "submit paper")
	}
	s.invalidatePending(ctx)

	s.logAudit(ctx, ident, paper.ID, audit.EventPaperSubmitted, "", comments)
	s.metrics.ObserveTransition("submit", "ok")
	return paper, nil
}

// ProcessApproval applies a reviewer verdict to a submitted paper.
func (s *Service) ProcessApproval(ctx context.Context, paperID id.PaperID, decision Decision) (*models.Paper, error) {
	ident := identity.FromContext(ctx)
	op := authz.OpApprove
	event := audit.EventPaperApproved
	outcome := "approved"
	if !decision.Approve {
		op = authz.OpReject
		event = audit.EventPaperRejected
		outcome = "rejected"
	}

	paper, err := s.store.Get(ctx, paperID)
	if err != nil {
		return nil, s.storeError(err, "load paper")
	}
	if err := s.authorize(ctx, ident, paper, op); err != nil {
		return nil, err
	}
	if err := paper.CanReview(); err != nil {
		s.metrics.ObserveTransition(string(op), "blocked")
		return nil, err
	}

	now := requestcontext.Now(ctx)
	if decision.Approve {
		paper.ApplyApproval(ident.ID, decision.Comments, now)
	} else {
		paper.ApplyRejection(ident.ID, decision.Comments, now)
	}

	if err := s.emitCompliance(ctx, ident, paper.ID, event, outcome, decision.Comments); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, paper); err != nil {
		return nil, s.storeError(err, "record verdict")
	}
	s.invalidatePending(ctx)

	s.metrics.ObserveTransition(string(op), "ok")
	return paper, nil
}

// ListPendingApprovals returns the reviewers' work queue, cached briefly.
func (s *Service) ListPendingApprovals(ctx context.Context) ([]*models.Paper, error) {
	ident := identity.FromContext(ctx)
	if err := s.authorize(ctx, ident, nil, authz.OpListPending); err != nil {
		return nil, err
	}

	if s.pending != nil {
		if papers, err := s.pending.Get(ctx); err == nil {
			s.metrics.ObservePendingCache("hit")
			return papers, nil
		}
		s.metrics.ObservePendingCache("miss")
	}

	papers, err := s.store.ListByStatus(ctx, models.StatusSubmitted)
	if err != nil {
		return nil, s.storeError(err, "list pending papers")
	}
	if s.pending != nil {
		s.pending.Set(ctx, papers)
	}
	return papers, nil
}

// ListByOwner returns the papers a user has authored. Callers may list
// their own papers; elevated roles may list anyone's.
func (s *Service) ListByOwner(ctx context.Context, ownerID id.UserID) ([]*models.Paper, error) {
	ident := identity.FromContext(ctx)
	if ownerID != ident.ID && !ident.IsElevated() {
		s.denied(ctx, ident, nil, authz.OpRead)
		return nil, dErrors.New(dErrors.CodeForbidden, "may not list another user's papers")
	}

	papers, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, s.storeError(err, "list papers by owner")
	}
	return papers, nil
}

// AuditTrail returns the recorded events for a paper the caller can read.
func (s *Service) AuditTrail(ctx context.Context, paperID id.PaperID) ([]audit.Event, error) {
	if _, err := s.Get(ctx, paperID); err != nil {
		return nil, err
	}
	if s.auditPublisher == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "audit trail not available")
	}
	return s.auditPublisher.List(ctx, paperID)
}

// authorize runs the guard and records denials.
func (s *Service) authorize(ctx context.Context, ident identity.Identity, paper *models.Paper, op authz.Operation) error {
	if err := s.guard.Authorize(ident, paper, op); err != nil {
		s.denied(ctx, ident, paper, op)
		return err
	}
	return nil
}

func (s *Service) denied(ctx context.Context, ident identity.Identity, paper *models.Paper, op authz.Operation) {
	var paperID id.PaperID
	if paper != nil {
		paperID = paper.ID
	}
	s.logAudit(ctx, ident, paperID, audit.EventAccessDenied, string(op), "")
	s.metrics.IncrementAuthzDenial(string(op))
}

// storeError translates sentinel persistence errors into domain errors.
func (s *Service) storeError(err error, action string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "paper not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, "paper was modified concurrently, reload and retry")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, action)
	}
}

func (s *Service) invalidatePending(ctx context.Context) {
	if s.pending != nil {
		s.pending.Invalidate(ctx)
	}
}

// logAudit records operations- and security-category events. A failed emit
// is logged with the event and actor and never fails the operation.
func (s *Service) logAudit(ctx context.Context, ident identity.Identity, paperID id.PaperID, event audit.AuditEvent, decision, comments string, attributes ...any) {
	s.auditLogLine(ctx, ident, event, attributes...)
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, s.auditEvent(ctx, ident, paperID, event, decision, comments)); err != nil {
		s.logEmitFailure(ctx, ident, paperID, event, err)
	}
}

// emitCompliance records a compliance-category event before the state change
// commits. A failed emit aborts the operation: verdicts and deletions never
// take effect without a durable audit record.
func (s *Service) emitCompliance(ctx context.Context, ident identity.Identity, paperID id.PaperID, event audit.AuditEvent, decision, comments string, attributes ...any) error {
	s.auditLogLine(ctx, ident, event, attributes...)
	if s.auditPublisher == nil {
		return nil
	}
	if err := s.auditPublisher.Emit(ctx, s.auditEvent(ctx, ident, paperID, event, decision, comments)); err != nil {
		s.logEmitFailure(ctx, ident, paperID, event, err)
		return dErrors.Wrap(err, dErrors.CodeInternal, "record audit event")
	}
	return nil
}

func (s *Service) auditLogLine(ctx context.Context, ident identity.Identity, event audit.AuditEvent, attributes ...any) {
	if s.logger == nil {
		return
	}
	args := append(attributes,
		"event", string(event),
		"actor_id", ident.ID.String(),
		"role", string(ident.Role),
		"log_type", "audit",
	)
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		args = append(args, "request_id", requestID)
	}
	s.logger.InfoContext(ctx, string(event), args...)
}

func (s *Service) auditEvent(ctx context.Context, ident identity.Identity, paperID id.PaperID, event audit.AuditEvent, decision, comments string) audit.Event {
	return audit.Event{
		PaperID:   paperID,
		ActorID:   ident.ID.String(),
		Action:    string(event),
		Decision:  decision,
		Comments:  comments,
		RequestID: requestcontext.RequestID(ctx),
		ClientIP:  requestcontext.ClientIP(ctx),
		UserAgent: requestcontext.UserAgent(ctx),
	}
}

func (s *Service) logEmitFailure(ctx context.Context, ident identity.Identity, paperID id.PaperID, event audit.AuditEvent, err error) {
	if s.logger == nil {
		return
	}
	s.logger.ErrorContext(ctx, "audit emit failed",
		"error", err.Error(),
		"event", string(event),
		"actor_id", ident.ID.String(),
		"paper_id", paperID.String(),
	)
}
