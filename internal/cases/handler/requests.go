package handler

import (
	"time"

	"appealboard/internal/cases/service"
	id "appealboard/pkg/domain"
	dErrors "appealboard/pkg/domain-errors"
)

// SaveCaseRequest carries dossier edits. AdvanceStage controls whether the
// stage engine runs after the save.
type SaveCaseRequest struct {
	Deadline      *time.Time `json:"deadline,omitempty"`
	HearingDate   *time.Time `json:"hearing_date,omitempty"`
	PapersOwnerID *string    `json:"papers_owner_id,omitempty"`
	ExpertID      *string    `json:"expert_id,omitempty"`
	AdvanceStage  bool       `json:"advance_stage"`
}

func (r SaveCaseRequest) ToInput() (service.DossierInput, error) {
	input := service.DossierInput{
		Deadline:    r.Deadline,
		HearingDate: r.HearingDate,
	}
	if r.PapersOwnerID != nil {
		ownerID, err := id.ParseUserID(*r.PapersOwnerID)
		if err != nil {
			return input, dErrors.New(dErrors.CodeBadRequest, "invalid papers_owner_id")
		}
		input.PapersOwnerID = &ownerID
	}
	if r.ExpertID != nil {
		expertID, err := id.ParseUserID(*r.ExpertID)
		if err != nil {
			return input, dErrors.New(dErrors.CodeBadRequest, "invalid expert_id")
		}
		input.ExpertID = &expertID
	}
	return input, nil
}

// CreateCollegiumRequest names the head, the remaining members, and the board
// leader who signs the formation order.
type CreateCollegiumRequest struct {
	HeadID    string   `json:"head_id"`
	MemberIDs []string `json:"member_ids"`
	SignerID  string   `json:"signer_id"`
}

func (r CreateCollegiumRequest) Parse() (head id.UserID, members []id.UserID, signer id.UserID, err error) {
	if head, err = id.ParseUserID(r.HeadID); err != nil {
		return head, nil, signer, dErrors.New(dErrors.CodeBadRequest, "invalid head_id")
	}
	members = make([]id.UserID, 0, len(r.MemberIDs))
	for _, raw := range r.MemberIDs {
		memberID, parseErr := id.ParseUserID(raw)
		if parseErr != nil {
			return head, nil, signer, dErrors.New(dErrors.CodeBadRequest, "invalid member id")
		}
		members = append(members, memberID)
	}
	if signer, err = id.ParseUserID(r.SignerID); err != nil {
		return head, members, signer, dErrors.New(dErrors.CodeBadRequest, "invalid signer_id")
	}
	return head, members, signer, nil
}

// AcceptCaseRequest names the board leader who signs the acceptance set.
type AcceptCaseRequest struct {
	SignerID string `json:"signer_id"`
}
