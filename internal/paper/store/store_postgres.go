package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"paperflow/internal/paper/models"
	id "paperflow/pkg/domain"
	"paperflow/pkg/platform/sentinel"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists papers in PostgreSQL. The aggregate is stored as a
// normalized JSONB document alongside indexed columns for the query paths.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed paper store.
func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Create(ctx context.Context, paper *models.Paper) error {
	doc, err := marshalDocument(paper)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO papers (id, created_by, status, document, created_at, updated_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.pool.Exec(ctx, query,
		uuid.UUID(paper.ID),
		uuid.UUID(paper.CreatedBy),
		paper.Status.Lower(),
		doc,
		paper.CreatedAt,
		paper.UpdatedAt,
		paper.Version,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert paper: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, paperID id.PaperID) (*models.Paper, error) {
	query := `SELECT document FROM papers WHERE id = $1`

	var doc []byte
	err := s.pool.QueryRow(ctx, query, uuid.UUID(paperID)).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get paper: %w", err)
	}
	return unmarshalDocument(doc)
}

// Update writes the paper if its version still matches the stored row.
// The version column guards concurrent writers; a stale paper loses.
func (s *PostgresStore) Update(ctx context.Context, paper *models.Paper) error {
	next := *paper
	next.Version = paper.Version + 1
	doc, err := marshalDocument(&next)
	if err != nil {
		return err
	}

	query := `
		UPDATE papers
		SET status = $1, document = $2, updated_at = $3, version = version + 1
		WHERE id = $4 AND version = $5
	`
	tag, err := s.pool.Exec(ctx, query,
		next.Status.Lower(),
		doc,
		next.UpdatedAt,
		uuid.UUID(next.ID),
		paper.Version,
	)
	if err != nil {
		return fmt.Errorf("update paper: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a stale version from a missing row.
		var exists bool
		if err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM papers WHERE id = $1)`,
			uuid.UUID(next.ID)).Scan(&exists); err != nil {
			return fmt.Errorf("check paper existence: %w", err)
		}
		if !exists {
			return sentinel.ErrNotFound
		}
		return sentinel.ErrConflict
	}
	paper.Version = next.Version
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, paperID id.PaperID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM papers WHERE id = $1`, uuid.UUID(paperID))
	if err != nil {
		return fmt.Errorf("delete paper: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListByStatus(ctx context.Context, status models.Status) ([]*models.Paper, error) {
	query := `SELECT document FROM papers WHERE status = $1 ORDER BY updated_at DESC`

	rows, err := s.pool.Query(ctx, query, status.Lower())
	if err != nil {
		return nil, fmt.Errorf("list papers by status: %w", err)
	}
	defer rows.Close()

	return scanPapers(rows)
}

func (s *PostgresStore) ListByOwner(ctx context.Context, ownerID id.UserID) ([]*models.Paper, error) {
	query := `SELECT document FROM papers WHERE created_by = $1 ORDER BY updated_at DESC`

	rows, err := s.pool.Query(ctx, query, uuid.UUID(ownerID))
	if err != nil {
		return nil, fmt.Errorf("list papers by owner: %w", err)
	}
	defer rows.Close()

	return scanPapers(rows)
}

func scanPapers(rows pgx.Rows) ([]*models.Paper, error) {
	var papers []*models.Paper
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan paper: %w", err)
		}
		paper, err := unmarshalDocument(doc)
		if err != nil {
			return nil, err
		}
		papers = append(papers, paper)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate papers: %w", err)
	}
	return papers, nil
}

// marshalDocument serializes the aggregate through its document form,
// normalizing the status projections on the way out.
func marshalDocument(paper *models.Paper) ([]byte, error) {
	doc := models.Normalize(paper.Document())
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal paper document: %w", err)
	}
	return payload, nil
}

func unmarshalDocument(payload []byte) (*models.Paper, error) {
	var doc models.Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal paper document: %w", err)
	}
	return models.FromDocument(doc)
}
