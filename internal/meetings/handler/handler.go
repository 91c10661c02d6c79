package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"appealboard/internal/meetings/service"
	"appealboard/internal/platform/middleware"
	"appealboard/internal/stage"
	usermodels "appealboard/internal/users/models"
	id "appealboard/pkg/domain"
	dErrors "appealboard/pkg/domain-errors"
	"appealboard/pkg/platform/httputil"
	"appealboard/pkg/requestcontext"
)

// Advancer runs one stage transition attempt for a case.
type Advancer interface {
	Advance(ctx context.Context, caseID id.CaseID) (*stage.Transition, error)
}

// Handler wires meeting scheduling, invitation responses, and the outcome
// flow.
type Handler struct {
	service  *service.Service
	advancer Advancer
	logger   *slog.Logger
}

func New(svc *service.Service, advancer Advancer, logger *slog.Logger) *Handler {
	return &Handler{service: svc, advancer: advancer, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	secretary := middleware.RequireRole(usermodels.RoleSecretary)

	r.With(secretary).Post("/cases/{caseID}/meetings", h.HandleCreate)
	r.Post("/invitations/{invitationID}/accept", h.HandleAcceptInvitation)
	r.With(secretary).Post("/meetings/{meetingID}/outcome", h.HandleRecordOutcome)
}

// CreateMeetingRequest schedules the session.
type CreateMeetingRequest struct {
	ScheduledAt time.Time `json:"scheduled_at"`
}

// OutcomeRequest records the board's decision.
type OutcomeRequest struct {
	DecisionType string `json:"decision_type"`
}

type MeetingResponse struct {
	ID          string              `json:"id"`
	CaseID      string              `json:"case_id"`
	ScheduledAt time.Time           `json:"scheduled_at"`
	Transition  *TransitionResponse `json:"transition,omitempty"`
}

type InvitationResponse struct {
	ID         string              `json:"id"`
	MeetingID  string              `json:"meeting_id"`
	AcceptedAt *time.Time          `json:"accepted_at,omitempty"`
	Transition *TransitionResponse `json:"transition,omitempty"`
}

type OutcomeResponse struct {
	CaseID       string `json:"case_id"`
	StageCode    int    `json:"stage_code"`
	DecisionType string `json:"decision_type"`
	Archived     bool   `json:"archived"`
}

type TransitionResponse struct {
	From  int    `json:"from"`
	To    int    `json:"to"`
	Title string `json:"title"`
}

func fromTransition(t *stage.Transition) *TransitionResponse {
	if t == nil {
		return nil
	}
	return &TransitionResponse{From: t.From, To: t.To, Title: t.Title}
}

// HandleCreate handles POST /cases/{caseID}/meetings.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caseID, err := id.ParseCaseID(chi.URLParam(r, "caseID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid case id"))
		return
	}
	req, ok := httputil.Decode[CreateMeetingRequest](w, r, h.logger)
	if !ok {
		return
	}
	if req.ScheduledAt.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "scheduled_at is required"))
		return
	}

	meeting, err := h.service.Create(ctx, caseID, req.ScheduledAt)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	transition, err := h.advancer.Advance(ctx, caseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, MeetingResponse{
		ID:          meeting.ID.String(),
		CaseID:      meeting.CaseID.String(),
		ScheduledAt: meeting.ScheduledAt,
		Transition:  fromTransition(transition),
	})
}

// HandleAcceptInvitation handles POST /invitations/{invitationID}/accept.
// Any authenticated user may call it; the service enforces that only the
// invitee can accept.
func (h *Handler) HandleAcceptInvitation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	invID, err := id.ParseInvitationID(chi.URLParam(r, "invitationID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid invitation id"))
		return
	}

	inv, err := h.service.AcceptInvitation(ctx, invID, requestcontext.UserID(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	caseID, err := h.service.InvitationCase(ctx, invID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	transition, err := h.advancer.Advance(ctx, caseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, InvitationResponse{
		ID:         inv.ID.String(),
		MeetingID:  inv.MeetingID.String(),
		AcceptedAt: inv.AcceptedAt,
		Transition: fromTransition(transition),
	})
}

// HandleRecordOutcome handles POST /meetings/{meetingID}/outcome. The outcome
// flow sets the terminal step itself; the engine is not involved.
func (h *Handler) HandleRecordOutcome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	meetingID, err := id.ParseMeetingID(chi.URLParam(r, "meetingID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid meeting id"))
		return
	}
	req, ok := httputil.Decode[OutcomeRequest](w, r, h.logger)
	if !ok {
		return
	}

	c, err := h.service.RecordOutcome(ctx, meetingID, req.DecisionType)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, OutcomeResponse{
		CaseID:       c.ID.String(),
		StageCode:    c.StageCode,
		DecisionType: c.DecisionType,
		Archived:     c.Archived,
	})
}
