package store

import (
	"context"

	"appealboard/internal/meetings/models"
	id "appealboard/pkg/domain"
)

// Store persists meetings and invitations. The qualifier only ever looks at
// the latest meeting of a case.
type Store interface {
	CreateMeeting(ctx context.Context, meeting *models.Meeting) error
	GetMeeting(ctx context.Context, meetingID id.MeetingID) (*models.Meeting, error)
	UpdateMeeting(ctx context.Context, meeting *models.Meeting) error
	LatestForCase(ctx context.Context, caseID id.CaseID) (*models.MeetingWithInvitations, error)

	CreateInvitation(ctx context.Context, inv *models.Invitation) error
	GetInvitation(ctx context.Context, invID id.InvitationID) (*models.Invitation, error)
	UpdateInvitation(ctx context.Context, inv *models.Invitation) error
}
