package store

import (
	"context"

	"appealboard/internal/cases/models"
	id "appealboard/pkg/domain"
)

// Store persists claims, cases, collegium memberships, and the case history.
// History is append-only; nothing in this interface can rewrite it.
type Store interface {
	CreateClaim(ctx context.Context, claim *models.Claim) error
	GetClaim(ctx context.Context, claimID id.ClaimID) (*models.Claim, error)
	UpdateClaim(ctx context.Context, claim *models.Claim) error

	CreateCase(ctx context.Context, c *models.Case) error
	GetCase(ctx context.Context, caseID id.CaseID) (*models.Case, error)
	UpdateCase(ctx context.Context, c *models.Case) error
	SetStage(ctx context.Context, caseID id.CaseID, stageCode int) error
	ListCases(ctx context.Context) ([]*models.Case, error)
	CountCasesInYear(ctx context.Context, year int) (int, error)

	AddCollegiumMember(ctx context.Context, m *models.CollegiumMembership) error
	CollegiumFor(ctx context.Context, caseID id.CaseID) ([]models.CollegiumMembership, error)

	AddHistory(ctx context.Context, entry *models.HistoryEntry) error
	HistoryFor(ctx context.Context, caseID id.CaseID) ([]models.HistoryEntry, error)

	// RunInTx runs fn atomically with respect to other transitions on the
	// same store. The postgres store carries a sql.Tx in the context so
	// sibling stores join the same transaction.
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
