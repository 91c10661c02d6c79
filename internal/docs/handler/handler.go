package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"appealboard/internal/docs/service"
	"appealboard/internal/stage"
	id "appealboard/pkg/domain"
	dErrors "appealboard/pkg/domain-errors"
	"appealboard/pkg/platform/httputil"
	"appealboard/pkg/requestcontext"
)

// Advancer runs one stage transition attempt for a case.
type Advancer interface {
	Advance(ctx context.Context, caseID id.CaseID) (*stage.Transition, error)
}

// Handler exposes the signature completion callback. This is the endpoint the
// signing flow (internal or an external signature provider) lands on.
type Handler struct {
	service  *service.Service
	advancer Advancer
	logger   *slog.Logger
}

func New(svc *service.Service, advancer Advancer, logger *slog.Logger) *Handler {
	return &Handler{service: svc, advancer: advancer, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/documents/{documentID}/signs/{signID}", h.HandleCompleteSign)
}

// CompleteSignRequest carries the optional signature subject line.
type CompleteSignRequest struct {
	Subject string `json:"subject"`
}

type SignResponse struct {
	ID         string              `json:"id"`
	DocumentID string              `json:"document_id"`
	UserID     string              `json:"user_id"`
	Subject    string              `json:"subject,omitempty"`
	SignedAt   *time.Time          `json:"signed_at,omitempty"`
	Transition *TransitionResponse `json:"transition,omitempty"`
}

type TransitionResponse struct {
	From  int    `json:"from"`
	To    int    `json:"to"`
	Title string `json:"title"`
}

// HandleCompleteSign handles POST /documents/{documentID}/signs/{signID}.
// Only the sign's owner may complete it; the owning case is orchestrated
// afterwards, so a completed signature set moves the case on immediately.
func (h *Handler) HandleCompleteSign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	docID, err := id.ParseDocumentID(chi.URLParam(r, "documentID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid document id"))
		return
	}
	signID, err := id.ParseSignID(chi.URLParam(r, "signID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid sign id"))
		return
	}
	req, ok := httputil.Decode[CompleteSignRequest](w, r, h.logger)
	if !ok {
		return
	}

	signer := requestcontext.UserID(ctx)
	sign, err := h.service.CompleteSign(ctx, docID, signID, signer, req.Subject)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	resp := SignResponse{
		ID:         sign.ID.String(),
		DocumentID: sign.DocumentID.String(),
		UserID:     sign.UserID.String(),
		Subject:    sign.Subject,
		SignedAt:   sign.SignedAt,
	}

	caseID, err := h.service.DocumentCase(ctx, docID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if caseID != nil {
		transition, err := h.advancer.Advance(ctx, *caseID)
		if err != nil {
			h.logger.ErrorContext(ctx, "transition after signature failed",
				"case_id", caseID, "sign_id", signID, "error", err)
			httputil.WriteError(w, err)
			return
		}
		if transition != nil {
			resp.Transition = &TransitionResponse{
				From: transition.From, To: transition.To, Title: transition.Title,
			}
		}
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}
