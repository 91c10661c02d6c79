package handler

import (
	"time"

	"appealboard/internal/cases/models"
	"appealboard/internal/stage"
)

type CaseResponse struct {
	ID            string     `json:"id"`
	ClaimID       string     `json:"claim_id"`
	ClaimKindID   string     `json:"claim_kind_id"`
	CaseNumber    string     `json:"case_number"`
	StageCode     int        `json:"stage_code"`
	StageTitle    string     `json:"stage_title,omitempty"`
	SecretaryID   *string    `json:"secretary_id,omitempty"`
	ExpertID      *string    `json:"expert_id,omitempty"`
	PapersOwnerID *string    `json:"papers_owner_id,omitempty"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	HearingDate   *time.Time `json:"hearing_date,omitempty"`
	Stopped       bool       `json:"stopped"`
	Paused        bool       `json:"paused"`
	Archived      bool       `json:"archived"`
	DecisionType  string     `json:"decision_type,omitempty"`
	DecisionDate  *time.Time `json:"decision_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type TransitionResponse struct {
	From  int    `json:"from"`
	To    int    `json:"to"`
	Title string `json:"title"`
}

// CaseWithTransitionResponse is the shape of every trigger endpoint: the
// case after the mutation, plus the transition when one happened.
type CaseWithTransitionResponse struct {
	Case       CaseResponse        `json:"case"`
	Transition *TransitionResponse `json:"transition,omitempty"`
}

type HistoryEntryResponse struct {
	Action    string    `json:"action"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func fromCase(c *models.Case, title string) CaseResponse {
	resp := CaseResponse{
		ID:           c.ID.String(),
		ClaimID:      c.ClaimID.String(),
		ClaimKindID:  c.ClaimKindID,
		CaseNumber:   c.CaseNumber,
		StageCode:    c.StageCode,
		StageTitle:   title,
		Deadline:     c.Deadline,
		HearingDate:  c.HearingDate,
		Stopped:      c.Stopped,
		Paused:       c.Paused,
		Archived:     c.Archived,
		DecisionType: c.DecisionType,
		DecisionDate: c.DecisionDate,
		CreatedAt:    c.CreatedAt,
	}
	if c.SecretaryID != nil {
		s := c.SecretaryID.String()
		resp.SecretaryID = &s
	}
	if c.ExpertID != nil {
		s := c.ExpertID.String()
		resp.ExpertID = &s
	}
	if c.PapersOwnerID != nil {
		s := c.PapersOwnerID.String()
		resp.PapersOwnerID = &s
	}
	return resp
}

func fromTransition(t *stage.Transition) *TransitionResponse {
	if t == nil {
		return nil
	}
	return &TransitionResponse{From: t.From, To: t.To, Title: t.Title}
}

func fromHistory(entries []models.HistoryEntry) []HistoryEntryResponse {
	out := make([]HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, HistoryEntryResponse{
			Action:    e.Action,
			UserID:    e.UserID.String(),
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}
