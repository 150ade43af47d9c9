// Package handler exposes the paper lifecycle over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"paperflow/internal/identity"
	"paperflow/internal/paper/models"
	"paperflow/internal/paper/service"
	"paperflow/internal/platform/metrics"
	"paperflow/internal/platform/middleware"
	id "paperflow/pkg/domain"
	dErrors "paperflow/pkg/domain-errors"
	"paperflow/pkg/platform/audit"
	"paperflow/pkg/platform/httputil"
)

// Service defines the lifecycle operations the handler needs.
type Service interface {
	Create(ctx context.Context, in service.CreateInput) (*models.Paper, error)
	Get(ctx context.Context, paperID id.PaperID) (*models.Paper, error)
	UpdateContent(ctx context.Context, paperID id.PaperID, in service.UpdateInput) (*models.Paper, error)
	Delete(ctx context.Context, paperID id.PaperID) error
	Submit(ctx context.Context, paperID id.PaperID, comments string) (*models.Paper, error)
	ProcessApproval(ctx context.Context, paperID id.PaperID, decision service.Decision) (*models.Paper, error)
	ListPendingApprovals(ctx context.Context) ([]*models.Paper, error)
	ListByOwner(ctx context.Context, ownerID id.UserID) ([]*models.Paper, error)
	AuditTrail(ctx context.Context, paperID id.PaperID) ([]audit.Event, error)
}

// Handler handles paper endpoints.
type Handler struct {
	logger   *slog.Logger
	papers   Service
	metrics  *metrics.Metrics
	resolver *identity.Resolver
}

// New creates a paper Handler.
func New(papers Service, resolver *identity.Resolver, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		logger:   logger,
		papers:   papers,
		metrics:  m,
		resolver: resolver,
	}
}

// Register mounts the paper routes with their middleware chain.
func (h *Handler) Register(r chi.Router) {
	papersRouter := chi.NewRouter()
	// RequestID first so recovered panics log a correlatable request_id.
	papersRouter.Use(middleware.RequestID)
	papersRouter.Use(middleware.Recovery(h.logger))
	papersRouter.Use(middleware.RequestTime)
	papersRouter.Use(middleware.ClientMetadata)
	papersRouter.Use(middleware.Logger(h.logger))
	papersRouter.Use(middleware.Timeout(30 * time.Second))
	papersRouter.Use(middleware.Latency(h.metrics))
	papersRouter.Use(h.resolver.Middleware)

	papersRouter.Get("/papers", h.handleListPapers)
	papersRouter.With(middleware.ContentTypeJSON).Post("/papers", h.handleCreatePaper)
	papersRouter.Get("/papers/pending", h.handleListPending)
	papersRouter.Get("/papers/{paperID}", h.handleGetPaper)
	papersRouter.With(middleware.ContentTypeJSON).Put("/papers/{paperID}", h.handleUpdatePaper)
	papersRouter.Delete("/papers/{paperID}", h.handleDeletePaper)
	papersRouter.With(middleware.ContentTypeJSON).Post("/papers/{paperID}/submit", h.handleSubmitPaper)
	papersRouter.With(middleware.ContentTypeJSON).Post("/papers/{paperID}/approval", h.handleApproval)
	papersRouter.Get("/papers/{paperID}/audit", h.handleAuditTrail)

	r.Mount("/", papersRouter)
}

type paperRequest struct {
	Title     string            `json:"title"`
	Course    string            `json:"course"`
	Subject   string            `json:"subject"`
	Questions []models.Question `json:"questions"`
}

type submitRequest struct {
	Comments string `json:"comments"`
}

type approvalRequest struct {
	Action   string `json:"action"`
	Comments string `json:"comments"`
}

type auditEventResponse struct {
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
	ActorID   string    `json:"actorId"`
	Action    string    `json:"action"`
	Decision  string    `json:"decision,omitempty"`
	Comments  string    `json:"comments,omitempty"`
	RequestID string    `json:"requestId,omitempty"`
}

func (h *Handler) handleCreatePaper(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req paperRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.warn(ctx, "invalid create paper request", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	paper, err := h.papers.Create(ctx, service.CreateInput{
		Title:     req.Title,
		Course:    req.Course,
		Subject:   req.Subject,
		Questions: req.Questions,
	})
	if err != nil {
		h.writeServiceError(ctx, w, "create paper", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, paper.Document())
}

func (h *Handler) handleGetPaper(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	paperID, ok := h.paperID(w, r)
	if !ok {
		return
	}

	paper, err := h.papers.Get(ctx, paperID)
	if err != nil {
		h.writeServiceError(ctx, w, "get paper", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, paper.Document())
}

func (h *Handler) handleUpdatePaper(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	paperID, ok := h.paperID(w, r)
	if !ok {
		return
	}

	var req paperRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.warn(ctx, "invalid update paper request", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	paper, err := h.papers.UpdateContent(ctx, paperID, service.UpdateInput{
		Title:     req.Title,
		Course:    req.Course,
		Subject:   req.Subject,
		Questions: req.Questions,
	})
	if err != nil {
		h.writeServiceError(ctx, w, "update paper", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, paper.Document())
}

func (h *Handler) handleDeletePaper(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	paperID, ok := h.paperID(w, r)
	if !ok {
		return
	}

	if err := h.papers.Delete(ctx, paperID); err != nil {
		h.writeServiceError(ctx, w, "delete paper", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSubmitPaper(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	paperID, ok := h.paperID(w, r)
	if !ok {
		return
	}

	// The body is optional; chunked requests report ContentLength -1, so
	// decode unconditionally and treat an empty body as no comments.
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.warn(ctx, "invalid submit request", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	paper, err := h.papers.Submit(ctx, paperID, req.Comments)
	if err != nil {
		h.writeServiceError(ctx, w, "submit paper", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, paper.Document())
}

func (h *Handler) handleApproval(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	paperID, ok := h.paperID(w, r)
	if !ok {
		return
	}

	var req approvalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.warn(ctx, "invalid approval request", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	var approve bool
	switch req.Action {
	case "approve":
		approve = true
	case "reject":
		approve = false
	default:
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "action must be approve or reject"))
		return
	}

	paper, err := h.papers.ProcessApproval(ctx, paperID, service.Decision{
		Approve:  approve,
		Comments: req.Comments,
	})
	if err != nil {
		h.writeServiceError(ctx, w, "process approval", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, paper.Document())
}

func (h *Handler) handleListPending(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	papers, err := h.papers.ListPendingApprovals(ctx)
	if err != nil {
		h.writeServiceError(ctx, w, "list pending papers", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toDocuments(papers))
}

// handleListPapers lists the caller's papers, or another owner's for
// elevated roles via the owner query parameter.
func (h *Handler) handleListPapers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ownerID := identity.FromContext(ctx).ID
	if raw := r.URL.Query().Get("owner"); raw != "" {
		parsed, err := id.ParseUserID(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		ownerID = parsed
	}

	papers, err := h.papers.ListByOwner(ctx, ownerID)
	if err != nil {
		h.writeServiceError(ctx, w, "list papers", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toDocuments(papers))
}

func (h *Handler) handleAuditTrail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	paperID, ok := h.paperID(w, r)
	if !ok {
		return
	}

	trail, err := h.papers.AuditTrail(ctx, paperID)
	if err != nil {
		h.writeServiceError(ctx, w, "load audit trail", err)
		return
	}

	events := make([]auditEventResponse, 0, len(trail))
	for _, event := range trail {
		events = append(events, auditEventResponse{
			Category:  string(event.Category),
			Timestamp: event.Timestamp,
			ActorID:   event.ActorID,
			Action:    event.Action,
			Decision:  event.Decision,
			Comments:  event.Comments,
			RequestID: event.RequestID,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, events)
}

func (h *Handler) paperID(w http.ResponseWriter, r *http.Request) (id.PaperID, bool) {
	paperID, err := id.ParsePaperID(chi.URLParam(r, "paperID"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.PaperID{}, false
	}
	return paperID, true
}

func toDocuments(papers []*models.Paper) []models.Document {
	docs := make([]models.Document, 0, len(papers))
	for _, paper := range papers {
		docs = append(docs, paper.Document())
	}
	return docs
}

// writeServiceError logs at a severity matching the error class and writes
// the translated HTTP response.
func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, action string, err error) {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeInternal, dErrors.CodeInvariantViolation:
		h.logger.ErrorContext(ctx, "failed to "+action,
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
	default:
		h.warn(ctx, action+" refused", err)
	}
	httputil.WriteError(w, err)
}

func (h *Handler) warn(ctx context.Context, msg string, err error) {
	h.logger.WarnContext(ctx, msg,
		"request_id", middleware.GetRequestID(ctx),
		"error", err.Error(),
	)
}
