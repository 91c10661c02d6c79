package stage

import (
	"context"
	"errors"

	casemodels "appealboard/internal/cases/models"
	docmodels "appealboard/internal/docs/models"
	meetingmodels "appealboard/internal/meetings/models"
	usermodels "appealboard/internal/users/models"
	id "appealboard/pkg/domain"
	"appealboard/pkg/platform/sentinel"
)

// Facts is the complete read snapshot a qualification runs against. The
// orchestrator gathers it once before qualifying and again after persisting
// the stage, so action handlers see their own writes.
type Facts struct {
	Case      *casemodels.Case
	Collegium []casemodels.CollegiumMembership
	Documents []docmodels.DocumentWithSigns
	Meeting   *meetingmodels.MeetingWithInvitations

	// Heads is the board leadership set; a document is head-signed when a
	// completed sign belongs to one of these users.
	Heads map[id.UserID]bool

	// RequiredDocTypes are the consideration document types for the case's
	// claim kind.
	RequiredDocTypes []string
}

// HasCollegium reports whether at least one collegium membership exists.
func (f *Facts) HasCollegium() bool { return len(f.Collegium) > 0 }

// PresentDocTypes returns the type codes of all live documents.
func (f *Facts) PresentDocTypes() map[string]bool {
	out := make(map[string]bool, len(f.Documents))
	for _, d := range f.Documents {
		out[d.TypeCode] = true
	}
	return out
}

// HeadSignedDocTypes returns the type codes of documents carrying a completed
// board-leadership signature.
func (f *Facts) HeadSignedDocTypes() map[string]bool {
	out := make(map[string]bool)
	for _, d := range f.Documents {
		if d.SignedByHead(f.Heads) {
			out[d.TypeCode] = true
		}
	}
	return out
}

// HasHeadSignedDoc reports whether a live document of the given type carries a
// board-leadership signature.
func (f *Facts) HasHeadSignedDoc(typeCode string) bool {
	for _, d := range f.Documents {
		if d.TypeCode == typeCode && d.SignedByHead(f.Heads) {
			return true
		}
	}
	return false
}

// CollegiumIDs returns the member user IDs, head first.
func (f *Facts) CollegiumIDs() []id.UserID {
	out := make([]id.UserID, 0, len(f.Collegium))
	for _, m := range f.Collegium {
		if m.IsHead {
			out = append(out, m.PersonID)
		}
	}
	for _, m := range f.Collegium {
		if !m.IsHead {
			out = append(out, m.PersonID)
		}
	}
	return out
}

// gatherer assembles Facts from the engine's read ports.
type gatherer struct {
	cases    CaseStore
	docs     DocumentSource
	meetings MeetingSource
	users    UserDirectory
	required func(claimKindID string) []string
}

func (g *gatherer) gather(ctx context.Context, c *casemodels.Case) (*Facts, error) {
	f := &Facts{Case: c, RequiredDocTypes: g.required(c.ClaimKindID)}

	var err error
	if f.Collegium, err = g.cases.CollegiumFor(ctx, c.ID); err != nil {
		return nil, err
	}
	if f.Documents, err = g.docs.ListForCase(ctx, c.ID, c.ClaimID); err != nil {
		return nil, err
	}
	meeting, err := g.meetings.LatestForCase(ctx, c.ID)
	switch {
	case err == nil:
		f.Meeting = meeting
	case errors.Is(err, sentinel.ErrNotFound):
		// no meeting yet
	default:
		return nil, err
	}

	leadership, err := g.users.ListByRoles(ctx, usermodels.RoleHead, usermodels.RoleDeputyHead)
	if err != nil {
		return nil, err
	}
	f.Heads = make(map[id.UserID]bool, len(leadership))
	for _, u := range leadership {
		f.Heads[u.ID] = true
	}
	return f, nil
}
