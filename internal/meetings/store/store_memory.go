package store

import (
	"context"
	"sort"
	"sync"

	"appealboard/internal/meetings/models"
	id "appealboard/pkg/domain"
	"appealboard/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu          sync.RWMutex
	meetings    map[id.MeetingID]*models.Meeting
	invitations map[id.InvitationID]*models.Invitation
}

func NewMemory() *InMemoryStore {
	return &InMemoryStore{
		meetings:    make(map[id.MeetingID]*models.Meeting),
		invitations: make(map[id.InvitationID]*models.Invitation),
	}
}

func (s *InMemoryStore) CreateMeeting(ctx context.Context, meeting *models.Meeting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.meetings[meeting.ID]; ok {
		return sentinel.ErrConflict
	}
	copied := *meeting
	s.meetings[meeting.ID] = &copied
	return nil
}

func (s *InMemoryStore) GetMeeting(ctx context.Context, meetingID id.MeetingID) (*models.Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	meeting, ok := s.meetings[meetingID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *meeting
	return &copied, nil
}

func (s *InMemoryStore) UpdateMeeting(ctx context.Context, meeting *models.Meeting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.meetings[meeting.ID]; !ok {
		return sentinel.ErrNotFound
	}
	copied := *meeting
	s.meetings[meeting.ID] = &copied
	return nil
}

func (s *InMemoryStore) LatestForCase(ctx context.Context, caseID id.CaseID) (*models.MeetingWithInvitations, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var candidates []*models.Meeting
	for _, meeting := range s.meetings {
		if meeting.CaseID == caseID {
			candidates = append(candidates, meeting)
		}
	}
	if len(candidates) == 0 {
		return nil, sentinel.ErrNotFound
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].CreatedAt.After(candidates[j].CreatedAt)
	})
	latest := *candidates[0]

	out := &models.MeetingWithInvitations{Meeting: latest}
	for _, inv := range s.invitations {
		if inv.MeetingID == latest.ID {
			out.Invitations = append(out.Invitations, *inv)
		}
	}
	sort.Slice(out.Invitations, func(i, j int) bool {
		return out.Invitations[i].CreatedAt.Before(out.Invitations[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemoryStore) CreateInvitation(ctx context.Context, inv *models.Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.invitations[inv.ID]; ok {
		return sentinel.ErrConflict
	}
	if _, ok := s.meetings[inv.MeetingID]; !ok {
		return sentinel.ErrNotFound
	}
	copied := *inv
	s.invitations[inv.ID] = &copied
	return nil
}

func (s *InMemoryStore) GetInvitation(ctx context.Context, invID id.InvitationID) (*models.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv, ok := s.invitations[invID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *inv
	return &copied, nil
}

func (s *InMemoryStore) UpdateInvitation(ctx context.Context, inv *models.Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.invitations[inv.ID]; !ok {
		return sentinel.ErrNotFound
	}
	copied := *inv
	s.invitations[inv.ID] = &copied
	return nil
}
