package httptransport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	caseshandler "appealboard/internal/cases/handler"
	casemodels "appealboard/internal/cases/models"
	casesservice "appealboard/internal/cases/service"
	casestore "appealboard/internal/cases/store"
	docshandler "appealboard/internal/docs/handler"
	"appealboard/internal/docs/generator"
	docsservice "appealboard/internal/docs/service"
	docstore "appealboard/internal/docs/store"
	meetingshandler "appealboard/internal/meetings/handler"
	meetingsservice "appealboard/internal/meetings/service"
	meetingstore "appealboard/internal/meetings/store"
	"appealboard/internal/notify"
	notifyhandler "appealboard/internal/notify/handler"
	"appealboard/internal/platform/middleware"
	"appealboard/internal/stage"
	"appealboard/internal/stage/catalog"
	"appealboard/internal/stage/locks"
	stagemetrics "appealboard/internal/stage/metrics"
	usermodels "appealboard/internal/users/models"
	userstore "appealboard/internal/users/store"
	id "appealboard/pkg/domain"
	"appealboard/pkg/testutil"
)

const signingKey = "lifecycle-test-key"

// One metrics instance for the package; promauto registers on the default
// registry.
var lifecycleMetrics = stagemetrics.New()

type world struct {
	router        http.Handler
	cases         *casestore.InMemoryStore
	docsSvc       *docsservice.Service
	meetings      *meetingstore.InMemoryStore
	notifications *notify.InMemoryStore

	secretary id.UserID
	boardHead id.UserID
	expert    id.UserID
	collegium [3]id.UserID
	tokens    map[id.UserID]string
}

func newWorld(t *testing.T) *world {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cat := catalog.MustLoad()

	cases := casestore.NewMemory()
	docs := docstore.NewMemory()
	meetings := meetingstore.NewMemory()
	users := userstore.NewMemory()
	notifications := notify.NewMemoryStore()

	docsSvc := docsservice.New(docs, generator.NewStub(), cat, logger)
	orchestrator := stage.New(stage.Deps{
		Cases:        cases,
		Docs:         docs,
		Meetings:     meetings,
		Users:        users,
		DocCreator:   docsSvc,
		UserNotifier: notify.NewDBUserNotifier(notifications, nil),
		Broadcasters: func() []notify.BroadcastNotifier {
			return []notify.BroadcastNotifier{notify.NewDBBroadcastNotifier(notifications, nil)}
		},
		Locker:       locks.NewSharded(),
		Catalog:      cat,
		Metrics:      lifecycleMetrics,
		Logger:       logger,
	})
	casesSvc := casesservice.New(cases, docsSvc, users, cat, logger)
	meetingsSvc := meetingsservice.New(meetings, cases, cat, logger)

	w := &world{
		router: NewRouter(Deps{
			Logger:        logger,
			JWTSigningKey: signingKey,
			Features: []Registrar{
				caseshandler.New(casesSvc, orchestrator, cat, logger),
				docshandler.New(docsSvc, orchestrator, logger),
				meetingshandler.New(meetingsSvc, orchestrator, logger),
				notifyhandler.New(notifications, logger),
			},
		}),
		cases:         cases,
		docsSvc:       docsSvc,
		meetings:      meetings,
		notifications: notifications,
		tokens:        make(map[id.UserID]string),
	}

	addUser := func(role usermodels.Role) id.UserID {
		u := &usermodels.User{ID: id.NewUserID(), Role: role}
		require.NoError(t, users.Create(context.Background(), u))
		token, err := middleware.IssueToken(signingKey, u.ID, string(role))
		require.NoError(t, err)
		w.tokens[u.ID] = token
		return u.ID
	}
	w.secretary = addUser(usermodels.RoleSecretary)
	w.boardHead = addUser(usermodels.RoleHead)
	w.expert = addUser(usermodels.RoleExpert)
	for i := range w.collegium {
		w.collegium[i] = addUser(usermodels.RoleMember)
	}
	return w
}

func (w *world) do(t *testing.T, asUser id.UserID, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = testutil.NewJSONRequest(t, method, path, body)
	} else {
		req = testutil.NewRequest(t, method, path)
	}
	req.Header.Set("Authorization", "Bearer "+w.tokens[asUser])
	return testutil.DoRequest(w.router, req)
}

// signAll completes every pending sign the user holds on the case's documents,
// returning the transition reported by the final signature.
func (w *world) signAll(t *testing.T, c caseshandler.CaseResponse, signer id.UserID) *docshandler.TransitionResponse {
	t.Helper()
	caseID, err := id.ParseCaseID(c.ID)
	require.NoError(t, err)
	claimID, err := id.ParseClaimID(c.ClaimID)
	require.NoError(t, err)

	docs, err := w.docsSvc.ListForCase(context.Background(), caseID, claimID)
	require.NoError(t, err)

	var last *docshandler.TransitionResponse
	for _, doc := range docs {
		for _, sign := range doc.Signs {
			if sign.UserID != signer || sign.SignedAt != nil {
				continue
			}
			rr := w.do(t, signer, http.MethodPost,
				fmt.Sprintf("/documents/%s/signs/%s", doc.ID, sign.ID),
				docshandler.CompleteSignRequest{Subject: "CN=Board Leadership"})
			testutil.AssertStatus(t, rr, http.StatusOK)
			resp := testutil.UnmarshalResponse[docshandler.SignResponse](t, rr)
			if resp.Transition != nil {
				last = resp.Transition
			}
		}
	}
	return last
}

func TestCaseLifecycle(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	claim := &casemodels.Claim{
		ID:          id.NewClaimID(),
		ClaimKindID: "trademark",
		ApplicantID: id.NewUserID(),
		Status:      casemodels.ClaimStatusAccepted,
	}
	require.NoError(t, w.cases.CreateClaim(ctx, claim))

	// Open the case from the accepted claim.
	rr := w.do(t, w.secretary, http.MethodPost, "/claims/"+claim.ID.String()+"/case", nil)
	testutil.AssertStatus(t, rr, http.StatusCreated)
	c := testutil.UnmarshalResponse[caseshandler.CaseResponse](t, rr)
	require.Equal(t, 1000, c.StageCode)
	casePath := "/cases/" + c.ID

	// Taking the case into work moves it to 2000.
	rr = w.do(t, w.secretary, http.MethodPost, casePath+"/take", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	taken := testutil.UnmarshalResponse[caseshandler.CaseWithTransitionResponse](t, rr)
	require.NotNil(t, taken.Transition)
	assert.Equal(t, 1000, taken.Transition.From)
	assert.Equal(t, 2000, taken.Transition.To)
	require.NotNil(t, taken.Case.SecretaryID)
	assert.Equal(t, w.secretary.String(), *taken.Case.SecretaryID)

	// Completing the dossier moves it to 2001.
	deadline := time.Now().AddDate(0, 2, 0).UTC()
	papersOwner := w.secretary.String()
	expertID := w.expert.String()
	rr = w.do(t, w.secretary, http.MethodPut, casePath, caseshandler.SaveCaseRequest{
		Deadline:      &deadline,
		PapersOwnerID: &papersOwner,
		ExpertID:      &expertID,
		AdvanceStage:  true,
	})
	testutil.AssertStatus(t, rr, http.StatusOK)
	saved := testutil.UnmarshalResponse[caseshandler.CaseWithTransitionResponse](t, rr)
	require.NotNil(t, saved.Transition)
	assert.Equal(t, 2001, saved.Transition.To)

	// Collegium formation moves it to 2002 and creates the formation order.
	rr = w.do(t, w.secretary, http.MethodPost, casePath+"/collegium", caseshandler.CreateCollegiumRequest{
		HeadID:    w.collegium[0].String(),
		MemberIDs: []string{w.collegium[1].String(), w.collegium[2].String()},
		SignerID:  w.boardHead.String(),
	})
	testutil.AssertStatus(t, rr, http.StatusOK)
	formed := testutil.UnmarshalResponse[caseshandler.CaseWithTransitionResponse](t, rr)
	require.NotNil(t, formed.Transition)
	assert.Equal(t, 2002, formed.Transition.To)

	// The board head signs the formation order: 2003.
	transition := w.signAll(t, formed.Case, w.boardHead)
	require.NotNil(t, transition)
	assert.Equal(t, 2003, transition.To)

	// Acceptance generates the consideration set; its presence is 2004.
	rr = w.do(t, w.secretary, http.MethodPost, casePath+"/accept", caseshandler.AcceptCaseRequest{
		SignerID: w.boardHead.String(),
	})
	testutil.AssertStatus(t, rr, http.StatusOK)
	accepted := testutil.UnmarshalResponse[caseshandler.CaseWithTransitionResponse](t, rr)
	require.NotNil(t, accepted.Transition)
	assert.Equal(t, 2004, accepted.Transition.To)

	// Head-signing the whole set is 3000.
	transition = w.signAll(t, accepted.Case, w.boardHead)
	require.NotNil(t, transition)
	assert.Equal(t, 3000, transition.To)

	// Scheduling the meeting is 3001.
	rr = w.do(t, w.secretary, http.MethodPost, casePath+"/meetings", meetingshandler.CreateMeetingRequest{
		ScheduledAt: time.Now().AddDate(0, 0, 14).UTC(),
	})
	testutil.AssertStatus(t, rr, http.StatusCreated)
	meeting := testutil.UnmarshalResponse[meetingshandler.MeetingResponse](t, rr)
	require.NotNil(t, meeting.Transition)
	assert.Equal(t, 3001, meeting.Transition.To)

	// Each collegium member confirms; the final confirmation is 3002.
	caseID, err := id.ParseCaseID(c.ID)
	require.NoError(t, err)
	latest, err := w.meetings.LatestForCase(ctx, caseID)
	require.NoError(t, err)
	require.Len(t, latest.Invitations, 3)

	for i, inv := range latest.Invitations {
		rr = w.do(t, inv.PersonID, http.MethodPost, "/invitations/"+inv.ID.String()+"/accept", struct{}{})
		testutil.AssertStatus(t, rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[meetingshandler.InvitationResponse](t, rr)
		if i < len(latest.Invitations)-1 {
			assert.Nil(t, resp.Transition)
		} else {
			require.NotNil(t, resp.Transition)
			assert.Equal(t, 3002, resp.Transition.To)
		}
	}

	// Entering 3002 generated the meeting notice with pending collegium signs.
	claimID, err := id.ParseClaimID(c.ClaimID)
	require.NoError(t, err)
	docs, err := w.docsSvc.ListForCase(ctx, caseID, claimID)
	require.NoError(t, err)
	noticeFound := false
	for _, doc := range docs {
		if doc.TypeCode == catalog.DocTypeMeetingNotice {
			noticeFound = true
			assert.Len(t, doc.Signs, 3)
		}
	}
	assert.True(t, noticeFound, "meeting notice was not generated")

	// Recording the outcome closes and archives the case at 4000.
	rr = w.do(t, w.secretary, http.MethodPost, "/meetings/"+meeting.ID+"/outcome", meetingshandler.OutcomeRequest{
		DecisionType: "satisfied",
	})
	testutil.AssertStatus(t, rr, http.StatusOK)
	outcome := testutil.UnmarshalResponse[meetingshandler.OutcomeResponse](t, rr)
	assert.Equal(t, 4000, outcome.StageCode)
	assert.True(t, outcome.Archived)

	// The audit trail carries one pinned line per committed stage change.
	rr = w.do(t, w.secretary, http.MethodGet, casePath+"/history", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	history := testutil.UnmarshalResponse[[]caseshandler.HistoryEntryResponse](t, rr)

	var lines []string
	for _, entry := range *history {
		lines = append(lines, entry.Action)
	}
	assert.Contains(t, lines, `Case stage changed to "Taken into work, awaiting dossier completion" (code 2000)`)
	assert.Contains(t, lines, `Case stage changed to "Dossier completed, awaiting collegium assignment" (code 2001)`)
	assert.Contains(t, lines, "Collegium created for case consideration.")
	assert.Contains(t, lines, `Case stage changed to "Collegium assigned, awaiting formation-order signature" (code 2002)`)
	assert.Contains(t, lines, `Case stage changed to "Meeting held, decision recorded" (code 4000)`)

	// Everyone involved got persisted notifications along the way.
	rr = w.do(t, w.secretary, http.MethodGet, "/users/"+w.secretary.String()+"/notifications", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	feed := testutil.UnmarshalResponse[[]notifyhandler.NotificationResponse](t, rr)
	assert.NotEmpty(t, *feed)

	// And the feed is private.
	rr = w.do(t, w.boardHead, http.MethodGet, "/users/"+w.secretary.String()+"/notifications", nil)
	testutil.AssertStatus(t, rr, http.StatusForbidden)
}

func TestUnauthenticatedRequestsAreRejected(t *testing.T) {
	w := newWorld(t)

	req := testutil.NewRequest(t, http.MethodGet, "/cases")
	rr := testutil.DoRequest(w.router, req)
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	testutil.AssertErrorCode(t, rr, "unauthorized")
}

func TestRoleGating(t *testing.T) {
	w := newWorld(t)

	// A collegium member cannot take a case into work.
	rr := w.do(t, w.collegium[0], http.MethodPost, "/cases/"+id.NewCaseID().String()+"/take", nil)
	testutil.AssertStatus(t, rr, http.StatusForbidden)
	testutil.AssertErrorCode(t, rr, "forbidden")
}
