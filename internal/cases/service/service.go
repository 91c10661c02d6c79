package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"appealboard/internal/cases/models"
	casestore "appealboard/internal/cases/store"
	docmodels "appealboard/internal/docs/models"
	docservice "appealboard/internal/docs/service"
	"appealboard/internal/stage/catalog"
	userstore "appealboard/internal/users/store"
	id "appealboard/pkg/domain"
	dErrors "appealboard/pkg/domain-errors"
	"appealboard/pkg/platform/sentinel"
	"appealboard/pkg/requestcontext"
)

const collegiumHistoryLine = "Collegium created for case consideration."

// Service owns the case lifecycle mutations that happen before the stage
// engine runs: opening a case from a claim, dossier edits, collegium
// formation, and the acceptance document set.
type Service struct {
	store   casestore.Store
	docs    *docservice.Service
	users   userstore.Store
	catalog *catalog.Catalog
	logger  *slog.Logger
}

func New(store casestore.Store, docs *docservice.Service, users userstore.Store, cat *catalog.Catalog, logger *slog.Logger) *Service {
	return &Service{store: store, docs: docs, users: users, catalog: cat, logger: logger}
}

// CreateFromClaim opens a case from an accepted claim. The claim is consumed:
// its status flips so a second case can never be opened from it.
func (s *Service) CreateFromClaim(ctx context.Context, claimID id.ClaimID) (*models.Case, error) {
	claim, err := s.store.GetClaim(ctx, claimID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "claim not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load claim")
	}
	if claim.Status != models.ClaimStatusAccepted {
		return nil, dErrors.New(dErrors.CodeInvalidState, "claim is not accepted")
	}
	if _, ok := s.catalog.Step(catalog.InitialStageCode); !ok {
		return nil, dErrors.New(dErrors.CodeInternal, "initial stage missing from catalog")
	}

	now := requestcontext.Now(ctx)
	var c *models.Case
	err = s.store.RunInTx(ctx, func(ctx context.Context) error {
		number, err := s.nextCaseNumber(ctx, now.Year())
		if err != nil {
			return err
		}
		c = &models.Case{
			ID:          id.NewCaseID(),
			ClaimID:     claim.ID,
			ClaimKindID: claim.ClaimKindID,
			CaseNumber:  number,
			StageCode:   catalog.InitialStageCode,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.store.CreateCase(ctx, c); err != nil {
			return err
		}
		claim.Status = models.ClaimStatusCaseOpen
		return s.store.UpdateClaim(ctx, claim)
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to open case")
	}

	s.logger.InfoContext(ctx, "case opened from claim",
		"case_id", c.ID, "claim_id", claim.ID, "case_number", c.CaseNumber)
	return c, nil
}

// Take marks the case as taken into work by the acting secretary. The stage
// engine completes the hand-off: entering 2000 confirms the assignment and
// notifies the new secretary.
func (s *Service) Take(ctx context.Context, caseID id.CaseID) (*models.Case, error) {
	c, err := s.Get(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if c.Suspended() {
		return nil, dErrors.New(dErrors.CodeInvalidState, "case is suspended")
	}
	if c.SecretaryID != nil {
		return nil, dErrors.New(dErrors.CodeConflict, "case already taken into work")
	}

	actingUser := requestcontext.UserID(ctx)
	c.SecretaryID = &actingUser
	c.UpdatedAt = requestcontext.Now(ctx)
	if err := s.store.UpdateCase(ctx, c); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to take case into work")
	}
	return c, nil
}

// DossierInput carries the editable dossier fields. Nil leaves a field as is.
type DossierInput struct {
	Deadline      *time.Time
	HearingDate   *time.Time
	PapersOwnerID *id.UserID
	ExpertID      *id.UserID
}

// SaveDossier applies dossier edits. Stage advancement is the caller's call.
func (s *Service) SaveDossier(ctx context.Context, caseID id.CaseID, input DossierInput) (*models.Case, error) {
	c, err := s.Get(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if c.Archived {
		return nil, dErrors.New(dErrors.CodeInvalidState, "case is archived")
	}

	if input.Deadline != nil {
		c.Deadline = input.Deadline
	}
	if input.HearingDate != nil {
		c.HearingDate = input.HearingDate
	}
	if input.PapersOwnerID != nil {
		c.PapersOwnerID = input.PapersOwnerID
	}
	if input.ExpertID != nil {
		c.ExpertID = input.ExpertID
	}
	c.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.UpdateCase(ctx, c); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save case")
	}
	return c, nil
}

// CreateCollegium records the collegium (one head plus two or four members),
// generates the formation order with a pending sign for the signing board
// leader, and writes the dedicated history entry. The stage engine picks the
// memberships up afterwards.
func (s *Service) CreateCollegium(ctx context.Context, caseID id.CaseID, headID id.UserID, memberIDs []id.UserID, signerID id.UserID) error {
	c, err := s.Get(ctx, caseID)
	if err != nil {
		return err
	}
	if existing, err := s.store.CollegiumFor(ctx, caseID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load collegium")
	} else if len(existing) > 0 {
		return dErrors.New(dErrors.CodeConflict, "collegium already created")
	}

	if len(memberIDs) != 2 && len(memberIDs) != 4 {
		return dErrors.New(dErrors.CodeBadRequest, "collegium requires two or four members besides the head")
	}
	seen := map[id.UserID]bool{headID: true}
	for _, memberID := range memberIDs {
		if seen[memberID] {
			return dErrors.New(dErrors.CodeBadRequest, "collegium members must be distinct")
		}
		seen[memberID] = true
	}

	signer, err := s.users.FindByID(ctx, signerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "signing board leader not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load signer")
	}
	if !signer.Role.BoardLeadership() {
		return dErrors.New(dErrors.CodeBadRequest, "formation order must be signed by board leadership")
	}

	err = s.store.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.AddCollegiumMember(ctx, &models.CollegiumMembership{
			CaseID: caseID, PersonID: headID, IsHead: true,
		}); err != nil {
			return err
		}
		for _, memberID := range memberIDs {
			if err := s.store.AddCollegiumMember(ctx, &models.CollegiumMembership{
				CaseID: caseID, PersonID: memberID,
			}); err != nil {
				return err
			}
		}

		if _, err := s.docs.CreateGenerated(ctx, caseID, catalog.DocTypeFormationOrder,
			docmodels.SignerGroupDirector, []id.UserID{signerID}); err != nil {
			return err
		}

		return s.store.AddHistory(ctx, &models.HistoryEntry{
			CaseID:    caseID,
			Action:    collegiumHistoryLine,
			UserID:    requestcontext.UserID(ctx),
			CreatedAt: requestcontext.Now(ctx),
		})
	})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create collegium")
	}

	s.logger.InfoContext(ctx, "collegium created",
		"case_id", c.ID, "head_id", headID, "members", len(memberIDs))
	return nil
}

// Accept generates the consideration document set for the case's claim kind,
// each with a pending sign for the accepting board leader. Types that already
// have a live document are skipped.
func (s *Service) Accept(ctx context.Context, caseID id.CaseID, signerID id.UserID) error {
	c, err := s.Get(ctx, caseID)
	if err != nil {
		return err
	}

	required := s.catalog.DocTypesForConsideration(c.ClaimKindID)
	if len(required) == 0 {
		return dErrors.New(dErrors.CodeInvalidState, "no consideration documents defined for claim kind")
	}

	signer, err := s.users.FindByID(ctx, signerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "signing board leader not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load signer")
	}
	if !signer.Role.BoardLeadership() {
		return dErrors.New(dErrors.CodeBadRequest, "acceptance documents must be signed by board leadership")
	}

	present, err := s.presentDocTypes(ctx, c)
	if err != nil {
		return err
	}
	for _, typeCode := range required {
		if present[typeCode] {
			continue
		}
		if _, err := s.docs.CreateGenerated(ctx, caseID, typeCode,
			docmodels.SignerGroupDirector, []id.UserID{signerID}); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) presentDocTypes(ctx context.Context, c *models.Case) (map[string]bool, error) {
	docs, err := s.docs.ListForCase(ctx, c.ID, c.ClaimID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load case documents")
	}
	present := make(map[string]bool, len(docs))
	for _, d := range docs {
		present[d.TypeCode] = true
	}
	return present, nil
}

// Get loads one case.
func (s *Service) Get(ctx context.Context, caseID id.CaseID) (*models.Case, error) {
	c, err := s.store.GetCase(ctx, caseID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "case not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load case")
	}
	return c, nil
}

// List returns all cases.
func (s *Service) List(ctx context.Context) ([]*models.Case, error) {
	cases, err := s.store.ListCases(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list cases")
	}
	return cases, nil
}

// History returns the case audit trail, oldest first.
func (s *Service) History(ctx context.Context, caseID id.CaseID) ([]models.HistoryEntry, error) {
	if _, err := s.Get(ctx, caseID); err != nil {
		return nil, err
	}
	entries, err := s.store.HistoryFor(ctx, caseID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load case history")
	}
	return entries, nil
}

// Collegium returns the case's collegium memberships.
func (s *Service) Collegium(ctx context.Context, caseID id.CaseID) ([]models.CollegiumMembership, error) {
	members, err := s.store.CollegiumFor(ctx, caseID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load collegium")
	}
	return members, nil
}

// Case numbers restart every year.
func (s *Service) nextCaseNumber(ctx context.Context, year int) (string, error) {
	count, err := s.store.CountCasesInYear(ctx, year)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d/%d", count+1, year), nil
}
