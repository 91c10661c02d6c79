package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"appealboard/internal/cases/service"
	"appealboard/internal/platform/middleware"
	"appealboard/internal/stage"
	"appealboard/internal/stage/catalog"
	usermodels "appealboard/internal/users/models"
	id "appealboard/pkg/domain"
	dErrors "appealboard/pkg/domain-errors"
	"appealboard/pkg/platform/httputil"
)

// Advancer runs one stage transition attempt for a case.
type Advancer interface {
	Advance(ctx context.Context, caseID id.CaseID) (*stage.Transition, error)
}

// Handler wires the case lifecycle endpoints: creation, dossier, collegium,
// acceptance, and reads. Every mutation ends with a transition attempt.
type Handler struct {
	service  *service.Service
	advancer Advancer
	catalog  *catalog.Catalog
	logger   *slog.Logger
}

func New(svc *service.Service, advancer Advancer, cat *catalog.Catalog, logger *slog.Logger) *Handler {
	return &Handler{service: svc, advancer: advancer, catalog: cat, logger: logger}
}

// Register mounts the case endpoints. Mutations are secretary-only.
func (h *Handler) Register(r chi.Router) {
	secretary := middleware.RequireRole(usermodels.RoleSecretary)

	r.With(secretary).Post("/claims/{claimID}/case", h.HandleCreateFromClaim)
	r.With(secretary).Post("/cases/{caseID}/take", h.HandleTake)
	r.With(secretary).Put("/cases/{caseID}", h.HandleSave)
	r.With(secretary).Post("/cases/{caseID}/collegium", h.HandleCreateCollegium)
	r.With(secretary).Post("/cases/{caseID}/accept", h.HandleAccept)

	r.Get("/cases", h.HandleList)
	r.Get("/cases/{caseID}", h.HandleGet)
	r.Get("/cases/{caseID}/history", h.HandleHistory)
}

// HandleCreateFromClaim handles POST /claims/{claimID}/case.
func (h *Handler) HandleCreateFromClaim(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claimID, err := id.ParseClaimID(chi.URLParam(r, "claimID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid claim id"))
		return
	}

	c, err := h.service.CreateFromClaim(ctx, claimID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, fromCase(c, h.catalog.TitleFor(c.StageCode)))
}

// HandleTake handles POST /cases/{caseID}/take.
func (h *Handler) HandleTake(w http.ResponseWriter, r *http.Request) {
	caseID, ok := h.caseID(w, r)
	if !ok {
		return
	}
	if _, err := h.service.Take(r.Context(), caseID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.advanceAndRespond(w, r, true)
}

// HandleSave handles PUT /cases/{caseID}.
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caseID, ok := h.caseID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.Decode[SaveCaseRequest](w, r, h.logger)
	if !ok {
		return
	}
	input, err := req.ToInput()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if _, err := h.service.SaveDossier(ctx, caseID, input); err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.advanceAndRespond(w, r, req.AdvanceStage)
}

// HandleCreateCollegium handles POST /cases/{caseID}/collegium.
func (h *Handler) HandleCreateCollegium(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caseID, ok := h.caseID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.Decode[CreateCollegiumRequest](w, r, h.logger)
	if !ok {
		return
	}
	head, members, signer, err := req.Parse()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.CreateCollegium(ctx, caseID, head, members, signer); err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.advanceAndRespond(w, r, true)
}

// HandleAccept handles POST /cases/{caseID}/accept.
func (h *Handler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caseID, ok := h.caseID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.Decode[AcceptCaseRequest](w, r, h.logger)
	if !ok {
		return
	}
	signerID, err := id.ParseUserID(req.SignerID)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid signer_id"))
		return
	}

	if err := h.service.Accept(ctx, caseID, signerID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.advanceAndRespond(w, r, true)
}

// HandleGet handles GET /cases/{caseID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	caseID, ok := h.caseID(w, r)
	if !ok {
		return
	}
	c, err := h.service.Get(r.Context(), caseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromCase(c, h.catalog.TitleFor(c.StageCode)))
}

// HandleList handles GET /cases.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	cases, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out := make([]CaseResponse, 0, len(cases))
	for _, c := range cases {
		out = append(out, fromCase(c, h.catalog.TitleFor(c.StageCode)))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// HandleHistory handles GET /cases/{caseID}/history.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	caseID, ok := h.caseID(w, r)
	if !ok {
		return
	}
	entries, err := h.service.History(r.Context(), caseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromHistory(entries))
}

func (h *Handler) caseID(w http.ResponseWriter, r *http.Request) (id.CaseID, bool) {
	caseID, err := id.ParseCaseID(chi.URLParam(r, "caseID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid case id"))
		return id.CaseID{}, false
	}
	return caseID, true
}

// advanceAndRespond runs the stage engine when asked and answers with the
// fresh case state plus the transition, if any.
func (h *Handler) advanceAndRespond(w http.ResponseWriter, r *http.Request, runEngine bool) {
	ctx := r.Context()
	caseID, ok := h.caseID(w, r)
	if !ok {
		return
	}

	var transition *stage.Transition
	if runEngine {
		var err error
		transition, err = h.advancer.Advance(ctx, caseID)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
	}

	c, err := h.service.Get(ctx, caseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, CaseWithTransitionResponse{
		Case:       fromCase(c, h.catalog.TitleFor(c.StageCode)),
		Transition: fromTransition(transition),
	})
}
