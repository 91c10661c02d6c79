// Package domain defines typed identifiers shared across features. Wrapping
// uuid.UUID keeps a case ID from being passed where a user ID is expected.
package domain

import "github.com/google/uuid"

type (
	UserID         uuid.UUID
	ClaimID        uuid.UUID
	CaseID         uuid.UUID
	DocumentID     uuid.UUID
	SignID         uuid.UUID
	MeetingID      uuid.UUID
	InvitationID   uuid.UUID
	NotificationID uuid.UUID
)

func NewUserID() UserID                 { return UserID(uuid.New()) }
func NewClaimID() ClaimID               { return ClaimID(uuid.New()) }
func NewCaseID() CaseID                 { return CaseID(uuid.New()) }
func NewDocumentID() DocumentID         { return DocumentID(uuid.New()) }
func NewSignID() SignID                 { return SignID(uuid.New()) }
func NewMeetingID() MeetingID           { return MeetingID(uuid.New()) }
func NewInvitationID() InvitationID     { return InvitationID(uuid.New()) }
func NewNotificationID() NotificationID { return NotificationID(uuid.New()) }

func (id UserID) String() string         { return uuid.UUID(id).String() }
func (id ClaimID) String() string        { return uuid.UUID(id).String() }
func (id CaseID) String() string         { return uuid.UUID(id).String() }
func (id DocumentID) String() string     { return uuid.UUID(id).String() }
func (id SignID) String() string         { return uuid.UUID(id).String() }
func (id MeetingID) String() string      { return uuid.UUID(id).String() }
func (id InvitationID) String() string   { return uuid.UUID(id).String() }
func (id NotificationID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id CaseID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id ClaimID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id DocumentID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

func ParseUserID(s string) (UserID, error) {
	u, err := uuid.Parse(s)
	return UserID(u), err
}

func ParseClaimID(s string) (ClaimID, error) {
	u, err := uuid.Parse(s)
	return ClaimID(u), err
}

func ParseCaseID(s string) (CaseID, error) {
	u, err := uuid.Parse(s)
	return CaseID(u), err
}

func ParseDocumentID(s string) (DocumentID, error) {
	u, err := uuid.Parse(s)
	return DocumentID(u), err
}

func ParseSignID(s string) (SignID, error) {
	u, err := uuid.Parse(s)
	return SignID(u), err
}

func ParseMeetingID(s string) (MeetingID, error) {
	u, err := uuid.Parse(s)
	return MeetingID(u), err
}

func ParseInvitationID(s string) (InvitationID, error) {
	u, err := uuid.Parse(s)
	return InvitationID(u), err
}
