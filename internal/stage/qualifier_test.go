package stage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	casemodels "appealboard/internal/cases/models"
	docmodels "appealboard/internal/docs/models"
	meetingmodels "appealboard/internal/meetings/models"
	"appealboard/internal/stage/catalog"
	id "appealboard/pkg/domain"
)

var (
	headUser      = id.NewUserID()
	secretaryUser = id.NewUserID()
	memberOne     = id.NewUserID()
	memberTwo     = id.NewUserID()
)

func caseAt(stageCode int) *casemodels.Case {
	return &casemodels.Case{
		ID:          id.NewCaseID(),
		ClaimID:     id.NewClaimID(),
		ClaimKindID: "trademark",
		CaseNumber:  "0001/2026",
		StageCode:   stageCode,
	}
}

func factsFor(c *casemodels.Case) *Facts {
	return &Facts{
		Case:             c,
		Heads:            map[id.UserID]bool{headUser: true},
		RequiredDocTypes: catalog.MustLoad().DocTypesForConsideration(c.ClaimKindID),
	}
}

func withCollegium(f *Facts) *Facts {
	f.Collegium = []casemodels.CollegiumMembership{
		{CaseID: f.Case.ID, PersonID: memberOne, IsHead: true},
		{CaseID: f.Case.ID, PersonID: memberTwo},
	}
	return f
}

func signedDoc(typeCode string, signer id.UserID, signedAt *time.Time) docmodels.DocumentWithSigns {
	return docmodels.DocumentWithSigns{
		Document: docmodels.Document{ID: id.NewDocumentID(), TypeCode: typeCode},
		Signs: []docmodels.Sign{
			{ID: id.NewSignID(), UserID: signer, SignedAt: signedAt},
		},
	}
}

func TestQualifier_DescendingFirstMatch(t *testing.T) {
	q := NewQualifier()

	t.Run("fresh case satisfies its own initial step", func(t *testing.T) {
		// Nobody has taken the case into work yet, so nothing changes.
		f := factsFor(caseAt(1000))
		assert.Equal(t, 1000, q.Qualify(f))
	})

	t.Run("taken case qualifies for 2000", func(t *testing.T) {
		c := caseAt(1000)
		c.SecretaryID = &secretaryUser
		assert.Equal(t, 2000, q.Qualify(factsFor(c)))
	})

	t.Run("incomplete dossier keeps the case waiting", func(t *testing.T) {
		c := caseAt(2000)
		c.SecretaryID = &secretaryUser
		assert.Equal(t, catalog.BaseStageCode, q.Qualify(factsFor(c)))
	})

	t.Run("complete dossier qualifies for 2001", func(t *testing.T) {
		c := caseAt(2000)
		c.SecretaryID = &secretaryUser
		deadline := time.Now().Add(30 * 24 * time.Hour)
		c.Deadline = &deadline
		c.PapersOwnerID = &secretaryUser
		assert.Equal(t, 2001, q.Qualify(factsFor(c)))
	})

	t.Run("collegium membership qualifies for 2002", func(t *testing.T) {
		f := withCollegium(factsFor(caseAt(2001)))
		assert.Equal(t, 2002, q.Qualify(f))
	})

	t.Run("head-signed formation order qualifies for 2003", func(t *testing.T) {
		f := factsFor(caseAt(2002))
		now := time.Now()
		f.Documents = []docmodels.DocumentWithSigns{
			signedDoc(catalog.DocTypeFormationOrder, headUser, &now),
		}
		assert.Equal(t, 2003, q.Qualify(f))
	})

	t.Run("formation order signed by a non-head does not qualify", func(t *testing.T) {
		f := factsFor(caseAt(2002))
		now := time.Now()
		f.Documents = []docmodels.DocumentWithSigns{
			signedDoc(catalog.DocTypeFormationOrder, memberOne, &now),
		}
		assert.Equal(t, catalog.BaseStageCode, q.Qualify(f))
	})

	t.Run("empty sign set never counts as signed", func(t *testing.T) {
		f := factsFor(caseAt(2002))
		f.Documents = []docmodels.DocumentWithSigns{
			{Document: docmodels.Document{ID: id.NewDocumentID(), TypeCode: catalog.DocTypeFormationOrder}},
		}
		assert.False(t, f.Documents[0].FullySigned())
		assert.False(t, f.Documents[0].SignedByHead(f.Heads))
		assert.Equal(t, catalog.BaseStageCode, q.Qualify(f))
	})

	t.Run("all required doc types present qualifies for 2004", func(t *testing.T) {
		f := factsFor(caseAt(2003))
		require.NotEmpty(t, f.RequiredDocTypes)
		for _, typeCode := range f.RequiredDocTypes {
			f.Documents = append(f.Documents, docmodels.DocumentWithSigns{
				Document: docmodels.Document{ID: id.NewDocumentID(), TypeCode: typeCode},
			})
		}
		assert.Equal(t, 2004, q.Qualify(f))
	})

	t.Run("a missing required doc type keeps 2003 waiting", func(t *testing.T) {
		f := factsFor(caseAt(2003))
		require.Greater(t, len(f.RequiredDocTypes), 1)
		f.Documents = []docmodels.DocumentWithSigns{
			{Document: docmodels.Document{ID: id.NewDocumentID(), TypeCode: f.RequiredDocTypes[0]}},
		}
		assert.Equal(t, catalog.BaseStageCode, q.Qualify(f))
	})

	t.Run("head-signed required docs qualify for 3000", func(t *testing.T) {
		f := factsFor(caseAt(2004))
		now := time.Now()
		for _, typeCode := range f.RequiredDocTypes {
			f.Documents = append(f.Documents, signedDoc(typeCode, headUser, &now))
		}
		assert.Equal(t, 3000, q.Qualify(f))
	})

	t.Run("pending signs keep 2004 waiting", func(t *testing.T) {
		f := factsFor(caseAt(2004))
		for _, typeCode := range f.RequiredDocTypes {
			f.Documents = append(f.Documents, signedDoc(typeCode, headUser, nil))
		}
		assert.Equal(t, catalog.BaseStageCode, q.Qualify(f))
	})

	t.Run("meeting with no accepted invitations qualifies for 3001", func(t *testing.T) {
		f := factsFor(caseAt(3000))
		f.Meeting = &meetingmodels.MeetingWithInvitations{
			Invitations: []meetingmodels.Invitation{
				{PersonID: memberOne},
				{PersonID: memberTwo},
			},
		}
		assert.Equal(t, 3001, q.Qualify(f))
	})

	t.Run("partially accepted invitations keep 3001 waiting", func(t *testing.T) {
		now := time.Now()
		f := factsFor(caseAt(3001))
		f.Meeting = &meetingmodels.MeetingWithInvitations{
			Invitations: []meetingmodels.Invitation{
				{PersonID: memberOne, AcceptedAt: &now},
				{PersonID: memberTwo},
			},
		}
		assert.Equal(t, catalog.BaseStageCode, q.Qualify(f))
	})

	t.Run("all invitations accepted qualifies for 3002", func(t *testing.T) {
		now := time.Now()
		f := factsFor(caseAt(3001))
		f.Meeting = &meetingmodels.MeetingWithInvitations{
			Invitations: []meetingmodels.Invitation{
				{PersonID: memberOne, AcceptedAt: &now},
				{PersonID: memberTwo, AcceptedAt: &now},
			},
		}
		assert.Equal(t, 3002, q.Qualify(f))
	})

	t.Run("stored stage above every target returns base", func(t *testing.T) {
		f := factsFor(caseAt(4000))
		assert.Equal(t, catalog.BaseStageCode, q.Qualify(f))
		assert.Greater(t, f.Case.StageCode, q.MaxTarget())
	})
}

func TestQualifier_Deterministic(t *testing.T) {
	q := NewQualifier()
	f := withCollegium(factsFor(caseAt(2001)))

	first := q.Qualify(f)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, q.Qualify(f))
	}
	assert.Equal(t, 2002, first)
}

func TestQualifier_ChecksAreDescending(t *testing.T) {
	q := NewQualifier()
	for i := 1; i < len(q.checks); i++ {
		assert.Greater(t, q.checks[i-1].target, q.checks[i].target,
			"predicate order must run from highest step to lowest")
	}
	assert.Equal(t, 3002, q.MaxTarget())
}
