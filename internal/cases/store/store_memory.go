package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"appealboard/internal/cases/models"
	id "appealboard/pkg/domain"
	"appealboard/pkg/platform/sentinel"
	"appealboard/pkg/requestcontext"
)

// InMemoryStore is the development and test backend. A coarse transaction
// mutex serializes RunInTx blocks; individual operations take the data lock.
type InMemoryStore struct {
	mu      sync.RWMutex
	txMu    sync.Mutex
	claims  map[id.ClaimID]*models.Claim
	cases   map[id.CaseID]*models.Case
	members map[id.CaseID][]models.CollegiumMembership
	history map[id.CaseID][]models.HistoryEntry
}

func NewMemory() *InMemoryStore {
	return &InMemoryStore{
		claims:  make(map[id.ClaimID]*models.Claim),
		cases:   make(map[id.CaseID]*models.Case),
		members: make(map[id.CaseID][]models.CollegiumMembership),
		history: make(map[id.CaseID][]models.HistoryEntry),
	}
}

func (s *InMemoryStore) CreateClaim(ctx context.Context, claim *models.Claim) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.claims[claim.ID]; ok {
		return sentinel.ErrConflict
	}
	copied := *claim
	s.claims[claim.ID] = &copied
	return nil
}

func (s *InMemoryStore) GetClaim(ctx context.Context, claimID id.ClaimID) (*models.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	claim, ok := s.claims[claimID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *claim
	return &copied, nil
}

func (s *InMemoryStore) UpdateClaim(ctx context.Context, claim *models.Claim) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.claims[claim.ID]; !ok {
		return sentinel.ErrNotFound
	}
	copied := *claim
	s.claims[claim.ID] = &copied
	return nil
}

func (s *InMemoryStore) CreateCase(ctx context.Context, c *models.Case) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cases[c.ID]; ok {
		return sentinel.ErrConflict
	}
	copied := *c
	s.cases[c.ID] = &copied
	return nil
}

func (s *InMemoryStore) GetCase(ctx context.Context, caseID id.CaseID) (*models.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cases[caseID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (s *InMemoryStore) UpdateCase(ctx context.Context, c *models.Case) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cases[c.ID]; !ok {
		return sentinel.ErrNotFound
	}
	copied := *c
	copied.UpdatedAt = requestcontext.Now(ctx)
	s.cases[c.ID] = &copied
	return nil
}

func (s *InMemoryStore) SetStage(ctx context.Context, caseID id.CaseID, stageCode int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cases[caseID]
	if !ok {
		return sentinel.ErrNotFound
	}
	c.StageCode = stageCode
	c.UpdatedAt = requestcontext.Now(ctx)
	return nil
}

func (s *InMemoryStore) ListCases(ctx context.Context) ([]*models.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Case, 0, len(s.cases))
	for _, c := range s.cases {
		copied := *c
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStore) CountCasesInYear(ctx context.Context, year int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, c := range s.cases {
		if c.CreatedAt.Year() == year {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryStore) AddCollegiumMember(ctx context.Context, m *models.CollegiumMembership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.members[m.CaseID] {
		if existing.PersonID == m.PersonID {
			return sentinel.ErrConflict
		}
		if existing.IsHead && m.IsHead {
			return sentinel.ErrConflict
		}
	}
	s.members[m.CaseID] = append(s.members[m.CaseID], *m)
	return nil
}

func (s *InMemoryStore) CollegiumFor(ctx context.Context, caseID id.CaseID) ([]models.CollegiumMembership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.CollegiumMembership, len(s.members[caseID]))
	copy(out, s.members[caseID])
	return out, nil
}

func (s *InMemoryStore) AddHistory(ctx context.Context, entry *models.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *entry
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now()
	}
	s.history[entry.CaseID] = append(s.history[entry.CaseID], copied)
	return nil
}

func (s *InMemoryStore) HistoryFor(ctx context.Context, caseID id.CaseID) ([]models.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.HistoryEntry, len(s.history[caseID]))
	copy(out, s.history[caseID])
	return out, nil
}

func (s *InMemoryStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(ctx)
}
