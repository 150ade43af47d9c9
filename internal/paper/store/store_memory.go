package store

import (
	"context"
	"sync"

	"paperflow/internal/paper/models"
	id "paperflow/pkg/domain"
	"paperflow/pkg/platform/sentinel"
)

// MemoryStore keeps papers in a map. Used in development and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	papers map[id.PaperID]*models.Paper
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{papers: make(map[id.PaperID]*models.Paper)}
}

func (s *MemoryStore) Create(_ context.Context, paper *models.Paper) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.papers[paper.ID]; exists {
		return sentinel.ErrConflict
	}
	s.papers[paper.ID] = clone(paper)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, paperID id.PaperID) (*models.Paper, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	paper, ok := s.papers[paperID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(paper), nil
}

func (s *MemoryStore) Update(_ context.Context, paper *models.Paper) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.papers[paper.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if stored.Version != paper.Version {
		return sentinel.ErrConflict
	}
	next := clone(paper)
	next.Version++
	s.papers[paper.ID] = next
	paper.Version = next.Version
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, paperID id.PaperID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.papers[paperID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.papers, paperID)
	return nil
}

func (s *MemoryStore) ListByStatus(_ context.Context, status models.Status) ([]*models.Paper, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var papers []*models.Paper
	for _, paper := range s.papers {
		if models.StatusEqual(string(paper.Status), string(status)) {
			papers = append(papers, clone(paper))
		}
	}
	return papers, nil
}

func (s *MemoryStore) ListByOwner(_ context.Context, ownerID id.UserID) ([]*models.Paper, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var papers []*models.Paper
	for _, paper := range s.papers {
		if paper.CreatedBy == ownerID {
			papers = append(papers, clone(paper))
		}
	}
	return papers, nil
}

// clone copies the aggregate so callers cannot mutate stored state.
func clone(p *models.Paper) *models.Paper {
	c := *p
	c.Questions = append([]models.Question{}, p.Questions...)
	c.History = append([]models.ApprovalHistoryEntry{}, p.History...)
	if p.SubmittedAt != nil {
		t := *p.SubmittedAt
		c.SubmittedAt = &t
	}
	if p.ApprovedAt != nil {
		t := *p.ApprovedAt
		c.ApprovedAt = &t
	}
	if p.Review.ReviewedBy != nil {
		rb := *p.Review.ReviewedBy
		c.Review.ReviewedBy = &rb
	}
	if p.Review.ReviewedOn != nil {
		ro := *p.Review.ReviewedOn
		c.Review.ReviewedOn = &ro
	}
	return &c
}
