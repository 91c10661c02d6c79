//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"appealboard/internal/cases/models"
	usermodels "appealboard/internal/users/models"
	userstore "appealboard/internal/users/store"
	id "appealboard/pkg/domain"
	"appealboard/pkg/platform/sentinel"
	"appealboard/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *PostgresStore
	users *userstore.PostgresStore
	ctx   context.Context
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = NewPostgres(s.pg.DB)
	s.users = userstore.NewPostgres(s.pg.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate(s.ctx))
}

func (s *PostgresStoreSuite) newUser(role usermodels.Role) id.UserID {
	userID := id.NewUserID()
	u := &usermodels.User{
		ID:       userID,
		FullName: "Test User",
		Email:    userID.String() + "@example.test",
		Role:     role,
	}
	s.Require().NoError(s.users.Create(s.ctx, u))
	return u.ID
}

func (s *PostgresStoreSuite) newClaim() *models.Claim {
	claim := &models.Claim{
		ID:          id.NewClaimID(),
		ClaimKindID: "trademark",
		ApplicantID: s.newUser(usermodels.RoleApplicant),
		Status:      models.ClaimStatusAccepted,
		CreatedAt:   time.Now().UTC(),
	}
	s.Require().NoError(s.store.CreateClaim(s.ctx, claim))
	return claim
}

func (s *PostgresStoreSuite) newCase(number string, stageCode int) *models.Case {
	claim := s.newClaim()
	c := &models.Case{
		ID:          id.NewCaseID(),
		ClaimID:     claim.ID,
		ClaimKindID: claim.ClaimKindID,
		CaseNumber:  number,
		StageCode:   stageCode,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	s.Require().NoError(s.store.CreateCase(s.ctx, c))
	return c
}

func (s *PostgresStoreSuite) TestCaseRoundTrip() {
	secretary := s.newUser(usermodels.RoleSecretary)
	c := s.newCase("0001/2026", 1000)
	c.SecretaryID = &secretary
	s.Require().NoError(s.store.UpdateCase(s.ctx, c))

	got, err := s.store.GetCase(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal("0001/2026", got.CaseNumber)
	s.Equal(1000, got.StageCode)
	s.Require().NotNil(got.SecretaryID)
	s.Equal(secretary, *got.SecretaryID)
	s.Nil(got.ExpertID)

	_, err = s.store.GetCase(s.ctx, id.NewCaseID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestCaseNumberIsUnique() {
	s.newCase("0001/2026", 1000)

	claim := s.newClaim()
	dup := &models.Case{
		ID:          id.NewCaseID(),
		ClaimID:     claim.ID,
		ClaimKindID: claim.ClaimKindID,
		CaseNumber:  "0001/2026",
		StageCode:   1000,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	s.ErrorIs(s.store.CreateCase(s.ctx, dup), sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestSetStage() {
	c := s.newCase("0002/2026", 2000)

	s.Require().NoError(s.store.SetStage(s.ctx, c.ID, 2001))

	got, err := s.store.GetCase(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(2001, got.StageCode)
}

func (s *PostgresStoreSuite) TestCountCasesInYear() {
	s.newCase("0001/2026", 1000)
	s.newCase("0002/2026", 1000)

	count, err := s.store.CountCasesInYear(s.ctx, time.Now().UTC().Year())
	s.Require().NoError(err)
	s.Equal(2, count)

	count, err = s.store.CountCasesInYear(s.ctx, 1999)
	s.Require().NoError(err)
	s.Zero(count)
}

func (s *PostgresStoreSuite) TestCollegiumMembershipKeys() {
	c := s.newCase("0003/2026", 2001)
	member := s.newUser(usermodels.RoleMember)

	s.Require().NoError(s.store.AddCollegiumMember(s.ctx, &models.CollegiumMembership{
		CaseID: c.ID, PersonID: member, IsHead: true,
	}))
	s.ErrorIs(s.store.AddCollegiumMember(s.ctx, &models.CollegiumMembership{
		CaseID: c.ID, PersonID: member,
	}), sentinel.ErrConflict)

	members, err := s.store.CollegiumFor(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Require().Len(members, 1)
	s.True(members[0].IsHead)
}

func (s *PostgresStoreSuite) TestHistoryOrdering() {
	c := s.newCase("0004/2026", 2000)
	actor := s.newUser(usermodels.RoleSecretary)

	for _, action := range []string{"first", "second", "third"} {
		s.Require().NoError(s.store.AddHistory(s.ctx, &models.HistoryEntry{
			CaseID: c.ID, Action: action, UserID: actor,
		}))
	}

	entries, err := s.store.HistoryFor(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Equal("first", entries[0].Action)
	s.Equal("third", entries[2].Action)
}

func (s *PostgresStoreSuite) TestRunInTxRollsBackOnError() {
	c := s.newCase("0005/2026", 2000)

	err := s.store.RunInTx(s.ctx, func(ctx context.Context) error {
		if err := s.store.SetStage(ctx, c.ID, 2001); err != nil {
			return err
		}
		return sentinel.ErrInvalidState
	})
	s.ErrorIs(err, sentinel.ErrInvalidState)

	got, err := s.store.GetCase(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(2000, got.StageCode)
}

func (s *PostgresStoreSuite) TestRunInTxJoinsExistingTransaction() {
	c := s.newCase("0006/2026", 2000)

	err := s.store.RunInTx(s.ctx, func(ctx context.Context) error {
		return s.store.RunInTx(ctx, func(ctx context.Context) error {
			return s.store.SetStage(ctx, c.ID, 2001)
		})
	})
	s.Require().NoError(err)

	got, err := s.store.GetCase(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(2001, got.StageCode)
}
