// Package store defines persistence for paper aggregates.
package store

import (
	"context"

	"paperflow/internal/paper/models"
	id "paperflow/pkg/domain"
)

// PaperStore persists paper aggregates.
//
// Update performs an optimistic-concurrency write: the paper's Version must
// match the stored row, and the stored version is incremented on success.
// A mismatch returns sentinel.ErrConflict; a missing paper returns
// sentinel.ErrNotFound. Callers re-read and retry on conflict.
type PaperStore interface {
	Create(ctx context.Context, paper *models.Paper) error
	Get(ctx context.Context, paperID id.PaperID) (*models.Paper, error)
	Update(ctx context.Context, paper *models.Paper) error
	Delete(ctx context.Context, paperID id.PaperID) error
	ListByStatus(ctx context.Context, status models.Status) ([]*models.Paper, error)
	ListByOwner(ctx context.Context, ownerID id.UserID) ([]*models.Paper, error)
}
