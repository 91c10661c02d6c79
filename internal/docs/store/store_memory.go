package store

import (
	"context"
	"sort"
	"sync"

	"appealboard/internal/docs/models"
	id "appealboard/pkg/domain"
	"appealboard/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu    sync.RWMutex
	docs  map[id.DocumentID]*models.Document
	signs map[id.SignID]*models.Sign
}

func NewMemory() *InMemoryStore {
	return &InMemoryStore{
		docs:  make(map[id.DocumentID]*models.Document),
		signs: make(map[id.SignID]*models.Sign),
	}
}

func (s *InMemoryStore) CreateDocument(ctx context.Context, doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[doc.ID]; ok {
		return sentinel.ErrConflict
	}
	copied := *doc
	s.docs[doc.ID] = &copied
	return nil
}

func (s *InMemoryStore) GetDocument(ctx context.Context, docID id.DocumentID) (*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[docID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *doc
	return &copied, nil
}

func (s *InMemoryStore) ListForCase(ctx context.Context, caseID id.CaseID, claimID id.ClaimID) ([]models.DocumentWithSigns, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.DocumentWithSigns
	for _, doc := range s.docs {
		if doc.Deleted {
			continue
		}
		belongs := (doc.CaseID != nil && *doc.CaseID == caseID) ||
			(doc.ClaimID != nil && *doc.ClaimID == claimID)
		if !belongs {
			continue
		}
		out = append(out, models.DocumentWithSigns{Document: *doc, Signs: s.signsForLocked(doc.ID)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStore) signsForLocked(docID id.DocumentID) []models.Sign {
	var out []models.Sign
	for _, sign := range s.signs {
		if sign.DocumentID == docID {
			out = append(out, *sign)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *InMemoryStore) CreateSign(ctx context.Context, sign *models.Sign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.signs[sign.ID]; ok {
		return sentinel.ErrConflict
	}
	if _, ok := s.docs[sign.DocumentID]; !ok {
		return sentinel.ErrNotFound
	}
	copied := *sign
	s.signs[sign.ID] = &copied
	return nil
}

func (s *InMemoryStore) GetSign(ctx context.Context, signID id.SignID) (*models.Sign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sign, ok := s.signs[signID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *sign
	return &copied, nil
}

func (s *InMemoryStore) UpdateSign(ctx context.Context, sign *models.Sign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.signs[sign.ID]; !ok {
		return sentinel.ErrNotFound
	}
	copied := *sign
	s.signs[sign.ID] = &copied
	return nil
}

func (s *InMemoryStore) SignsForDocument(ctx context.Context, docID id.DocumentID) ([]models.Sign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.signsForLocked(docID), nil
}

func (s *InMemoryStore) CountDocumentsInYear(ctx context.Context, year int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, doc := range s.docs {
		if doc.CreatedAt.Year() == year {
			count++
		}
	}
	return count, nil
}
