package models

import (
	"time"

	id "appealboard/pkg/domain"
)

// Meeting is one scheduled appeal-board session for a case.
type Meeting struct {
	ID          id.MeetingID
	CaseID      id.CaseID
	ScheduledAt time.Time
	Held        bool
	CreatedAt   time.Time
}

// Invitation tracks one collegium member's response to a meeting.
type Invitation struct {
	ID         id.InvitationID
	MeetingID  id.MeetingID
	PersonID   id.UserID
	AcceptedAt *time.Time
	CreatedAt  time.Time
}

func (i Invitation) Accepted() bool { return i.AcceptedAt != nil }

// MeetingWithInvitations is the qualifier's view of the latest meeting.
type MeetingWithInvitations struct {
	Meeting
	Invitations []Invitation
}

// AllAccepted reports whether every invited member has accepted. A meeting
// with no invitations has nothing outstanding and counts as accepted.
func (m MeetingWithInvitations) AllAccepted() bool {
	for _, inv := range m.Invitations {
		if !inv.Accepted() {
			return false
		}
	}
	return true
}

// NoneAccepted reports whether no invitation has been accepted yet.
func (m MeetingWithInvitations) NoneAccepted() bool {
	for _, inv := range m.Invitations {
		if inv.Accepted() {
			return false
		}
	}
	return true
}
