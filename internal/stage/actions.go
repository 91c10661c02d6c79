package stage

import (
	"context"
	"log/slog"

	docmodels "appealboard/internal/docs/models"
	"appealboard/internal/stage/catalog"
	id "appealboard/pkg/domain"
	"appealboard/pkg/requestcontext"
)

// ActionResult is what an entry action reports back: the users a role-specific
// message should reach, and that message. An empty addressee list means the
// step has no role message and only the generic broadcast goes out.
type ActionResult struct {
	Addressees []id.UserID
	Message    string
}

// ActionDeps are the write-side collaborators entry actions may use. Actions
// run inside the transition's storage transaction.
type ActionDeps struct {
	Cases  CaseStore
	Docs   DocumentCreator
	Logger *slog.Logger
}

// ActionFunc runs the side effects of entering a step. It must not re-qualify
// or trigger further transitions.
type ActionFunc func(ctx context.Context, deps ActionDeps, f *Facts) (ActionResult, error)

// NewRegistry maps step codes to their entry actions. A qualified code with no
// entry here is a logged no-op: the orchestrator leaves the case untouched so
// the condition stays visible.
func NewRegistry() map[int]ActionFunc {
	return map[int]ActionFunc{
		2000: actionTakeIntoWork,
		2001: actionDossierCompleted,
		2002: actionCollegiumAssigned,
		2003: actionBroadcastOnly,
		2004: actionBroadcastOnly,
		3000: actionBroadcastOnly,
		3001: actionMeetingCreated,
		3002: actionMeetingConfirmed,
	}
}

// actionTakeIntoWork pins the acting user as the case secretary.
func actionTakeIntoWork(ctx context.Context, deps ActionDeps, f *Facts) (ActionResult, error) {
	secretary := requestcontext.UserID(ctx)
	f.Case.SecretaryID = &secretary
	if err := deps.Cases.UpdateCase(ctx, f.Case); err != nil {
		return ActionResult{}, err
	}
	return ActionResult{
		Addressees: []id.UserID{secretary},
		Message:    secretaryAssignedMessage(f.Case),
	}, nil
}

// actionDossierCompleted addresses the expert, when one has been set on the
// dossier.
func actionDossierCompleted(ctx context.Context, deps ActionDeps, f *Facts) (ActionResult, error) {
	if f.Case.ExpertID == nil {
		return ActionResult{}, nil
	}
	return ActionResult{
		Addressees: []id.UserID{*f.Case.ExpertID},
		Message:    expertInvitedMessage(f.Case),
	}, nil
}

func actionCollegiumAssigned(ctx context.Context, deps ActionDeps, f *Facts) (ActionResult, error) {
	return ActionResult{
		Addressees: f.CollegiumIDs(),
		Message:    collegiumMemberMessage(f.Case),
	}, nil
}

// actionBroadcastOnly covers the steps whose entry needs history and the
// generic broadcast and nothing else.
func actionBroadcastOnly(ctx context.Context, deps ActionDeps, f *Facts) (ActionResult, error) {
	return ActionResult{}, nil
}

func actionMeetingCreated(ctx context.Context, deps ActionDeps, f *Facts) (ActionResult, error) {
	return ActionResult{
		Addressees: f.CollegiumIDs(),
		Message:    meetingInvitationMessage(f.Case),
	}, nil
}

// actionMeetingConfirmed generates the meeting notice with a pending sign per
// collegium member; those signatures are what stage 3002 waits on.
func actionMeetingConfirmed(ctx context.Context, deps ActionDeps, f *Facts) (ActionResult, error) {
	_, err := deps.Docs.CreateGenerated(ctx, f.Case.ID, catalog.DocTypeMeetingNotice,
		docmodels.SignerGroupCollegium, f.CollegiumIDs())
	if err != nil {
		return ActionResult{}, err
	}
	return ActionResult{}, nil
}
