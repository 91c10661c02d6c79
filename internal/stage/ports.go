// Package stage implements the case stage-transition engine: the qualifier
// that computes the highest reachable step from current facts, the action
// registry with per-step side effects, and the orchestrator that ties both to
// persistence, history, and notifications.
package stage

import (
	"context"

	casemodels "appealboard/internal/cases/models"
	docmodels "appealboard/internal/docs/models"
	meetingmodels "appealboard/internal/meetings/models"
	usermodels "appealboard/internal/users/models"
	id "appealboard/pkg/domain"
)

//go:generate mockgen -source=ports.go -destination=../../mocks/stage_ports.go -package=mocks

// CaseStore is the slice of case persistence the engine needs.
type CaseStore interface {
	GetCase(ctx context.Context, caseID id.CaseID) (*casemodels.Case, error)
	UpdateCase(ctx context.Context, c *casemodels.Case) error
	SetStage(ctx context.Context, caseID id.CaseID, stageCode int) error
	CollegiumFor(ctx context.Context, caseID id.CaseID) ([]casemodels.CollegiumMembership, error)
	AddHistory(ctx context.Context, entry *casemodels.HistoryEntry) error
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// DocumentSource feeds the qualifier the case's documents with sign state.
type DocumentSource interface {
	ListForCase(ctx context.Context, caseID id.CaseID, claimID id.ClaimID) ([]docmodels.DocumentWithSigns, error)
}

// MeetingSource resolves the latest meeting of a case, or sentinel.ErrNotFound
// when none has been created yet.
type MeetingSource interface {
	LatestForCase(ctx context.Context, caseID id.CaseID) (*meetingmodels.MeetingWithInvitations, error)
}

// UserDirectory resolves board members for sign-role checks and broadcast
// audiences.
type UserDirectory interface {
	FindByID(ctx context.Context, userID id.UserID) (*usermodels.User, error)
	ListByRoles(ctx context.Context, roles ...usermodels.Role) ([]*usermodels.User, error)
}

// DocumentCreator generates a document with pending signs; the 3002 action
// uses it for the meeting notice.
type DocumentCreator interface {
	CreateGenerated(ctx context.Context, caseID id.CaseID, typeCode string, group docmodels.SignerGroup, signers []id.UserID) (*docmodels.Document, error)
}

// Locker serializes transitions per case. Acquire blocks until the case lock
// is held or the context ends; the returned func releases it.
type Locker interface {
	Acquire(ctx context.Context, caseID id.CaseID) (func(), error)
}
