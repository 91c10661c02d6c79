package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	casemodels "appealboard/internal/cases/models"
	casestore "appealboard/internal/cases/store"
	"appealboard/internal/meetings/models"
	meetingstore "appealboard/internal/meetings/store"
	"appealboard/internal/stage/catalog"
	id "appealboard/pkg/domain"
	dErrors "appealboard/pkg/domain-errors"
	"appealboard/pkg/platform/sentinel"
	"appealboard/pkg/requestcontext"
)

// terminalStageCode is set directly by the outcome flow; no qualifier
// predicate leads here.
const terminalStageCode = 4000

// Service owns meeting scheduling, invitation responses, and the terminal
// outcome flow that closes a case.
type Service struct {
	store   meetingstore.Store
	cases   casestore.Store
	catalog *catalog.Catalog
	logger  *slog.Logger
}

func New(store meetingstore.Store, cases casestore.Store, cat *catalog.Catalog, logger *slog.Logger) *Service {
	return &Service{store: store, cases: cases, catalog: cat, logger: logger}
}

// Create schedules a meeting and invites every collegium member. The stage
// engine reacts to the invitations, not to this call directly.
func (s *Service) Create(ctx context.Context, caseID id.CaseID, scheduledAt time.Time) (*models.Meeting, error) {
	c, err := s.cases.GetCase(ctx, caseID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "case not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load case")
	}
	if c.Archived {
		return nil, dErrors.New(dErrors.CodeInvalidState, "case is archived")
	}

	collegium, err := s.cases.CollegiumFor(ctx, caseID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load collegium")
	}
	if len(collegium) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidState, "case has no collegium to invite")
	}

	now := requestcontext.Now(ctx)
	meeting := &models.Meeting{
		ID:          id.NewMeetingID(),
		CaseID:      caseID,
		ScheduledAt: scheduledAt,
		CreatedAt:   now,
	}
	if err := s.store.CreateMeeting(ctx, meeting); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create meeting")
	}
	for _, member := range collegium {
		inv := &models.Invitation{
			ID:        id.NewInvitationID(),
			MeetingID: meeting.ID,
			PersonID:  member.PersonID,
			CreatedAt: now,
		}
		if err := s.store.CreateInvitation(ctx, inv); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create invitation")
		}
	}

	s.logger.InfoContext(ctx, "meeting created",
		"meeting_id", meeting.ID, "case_id", caseID, "invitations", len(collegium))
	return meeting, nil
}

// AcceptInvitation records the invitee's confirmation. Only the invitee may
// accept, and only once.
func (s *Service) AcceptInvitation(ctx context.Context, invID id.InvitationID, actingUser id.UserID) (*models.Invitation, error) {
	inv, err := s.store.GetInvitation(ctx, invID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "invitation not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load invitation")
	}
	if inv.PersonID != actingUser {
		return nil, dErrors.New(dErrors.CodeForbidden, "invitation belongs to another user")
	}
	if inv.Accepted() {
		return nil, dErrors.New(dErrors.CodeConflict, "invitation already accepted")
	}

	now := requestcontext.Now(ctx)
	inv.AcceptedAt = &now
	if err := s.store.UpdateInvitation(ctx, inv); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to accept invitation")
	}
	return inv, nil
}

// MeetingCase resolves the case a meeting belongs to.
func (s *Service) MeetingCase(ctx context.Context, meetingID id.MeetingID) (id.CaseID, error) {
	meeting, err := s.store.GetMeeting(ctx, meetingID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return id.CaseID{}, dErrors.New(dErrors.CodeNotFound, "meeting not found")
		}
		return id.CaseID{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load meeting")
	}
	return meeting.CaseID, nil
}

// InvitationCase resolves the case an invitation's meeting belongs to.
func (s *Service) InvitationCase(ctx context.Context, invID id.InvitationID) (id.CaseID, error) {
	inv, err := s.store.GetInvitation(ctx, invID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return id.CaseID{}, dErrors.New(dErrors.CodeNotFound, "invitation not found")
		}
		return id.CaseID{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load invitation")
	}
	return s.MeetingCase(ctx, inv.MeetingID)
}

// RecordOutcome marks the meeting held, records the decision, moves the case
// to the terminal bookkeeping step, and archives it. The terminal step is the
// one stage change that bypasses the qualifier: it is driven by the decision,
// not by document or invitation state.
func (s *Service) RecordOutcome(ctx context.Context, meetingID id.MeetingID, decisionType string) (*casemodels.Case, error) {
	if decisionType == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "decision type is required")
	}

	meeting, err := s.store.GetMeeting(ctx, meetingID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "meeting not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load meeting")
	}
	if meeting.Held {
		return nil, dErrors.New(dErrors.CodeConflict, "meeting outcome already recorded")
	}

	c, err := s.cases.GetCase(ctx, meeting.CaseID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load case")
	}
	if c.Archived {
		return nil, dErrors.New(dErrors.CodeInvalidState, "case is archived")
	}

	step, ok := s.catalog.Step(terminalStageCode)
	if !ok {
		return nil, dErrors.New(dErrors.CodeInternal, "terminal stage missing from catalog")
	}

	now := requestcontext.Now(ctx)
	err = s.cases.RunInTx(ctx, func(ctx context.Context) error {
		meeting.Held = true
		if err := s.store.UpdateMeeting(ctx, meeting); err != nil {
			return err
		}

		c.StageCode = terminalStageCode
		c.DecisionType = decisionType
		c.DecisionDate = &now
		c.Archived = true
		c.UpdatedAt = now
		if err := s.cases.UpdateCase(ctx, c); err != nil {
			return err
		}

		return s.cases.AddHistory(ctx, &casemodels.HistoryEntry{
			CaseID:    c.ID,
			Action:    fmt.Sprintf("Case stage changed to %q (code %d)", step.Title, step.Code),
			UserID:    requestcontext.UserID(ctx),
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record meeting outcome")
	}

	s.logger.InfoContext(ctx, "meeting outcome recorded",
		"meeting_id", meetingID, "case_id", c.ID, "decision_type", decisionType)
	return c, nil
}
