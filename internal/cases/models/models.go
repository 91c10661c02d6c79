package models

import (
	"time"

	id "appealboard/pkg/domain"
)

// Claim statuses mirror the intake workflow: a claim must be accepted before
// a case can be opened from it, and opening the case consumes it.
const (
	ClaimStatusDraft    = 1
	ClaimStatusAccepted = 2
	ClaimStatusCaseOpen = 3
)

// Claim is the citizen submission a case originates from.
type Claim struct {
	ID          id.ClaimID
	ClaimKindID string
	ApplicantID id.UserID
	Status      int
	SubmittedAt *time.Time
	CreatedAt   time.Time
}

// Case is an appeal proceeding. StageCode moves only through the transition
// orchestrator and only forward; the Stopped/Paused/Archived flags suspend
// action eligibility without touching the stage code.
type Case struct {
	ID            id.CaseID
	ClaimID       id.ClaimID
	ClaimKindID   string
	CaseNumber    string
	StageCode     int
	SecretaryID   *id.UserID
	ExpertID      *id.UserID
	PapersOwnerID *id.UserID
	Deadline      *time.Time
	HearingDate   *time.Time
	Stopped       bool
	Paused        bool
	Archived      bool
	DecisionType  string
	DecisionDate  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DossierComplete reports whether the secretary has filled the case dossier;
// stage 2001 is gated on it.
func (c *Case) DossierComplete() bool {
	return c.Deadline != nil && c.PapersOwnerID != nil
}

// Suspended reports whether stage transitions are currently ineligible.
func (c *Case) Suspended() bool {
	return c.Stopped || c.Paused || c.Archived
}

// CollegiumMembership joins a case with a reviewer; exactly one membership
// per case carries IsHead once the collegium is formed.
type CollegiumMembership struct {
	CaseID   id.CaseID
	PersonID id.UserID
	IsHead   bool
}

// HistoryEntry is one line of the append-only case audit trail.
type HistoryEntry struct {
	CaseID    id.CaseID
	Action    string
	UserID    id.UserID
	CreatedAt time.Time
}
