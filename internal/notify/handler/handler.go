package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"appealboard/internal/notify"
	id "appealboard/pkg/domain"
	dErrors "appealboard/pkg/domain-errors"
	"appealboard/pkg/platform/httputil"
	"appealboard/pkg/requestcontext"
)

// Handler exposes the persisted notification feed. Users read their own feed.
type Handler struct {
	store  notify.Store
	logger *slog.Logger
}

func New(store notify.Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/users/{userID}/notifications", h.HandleList)
}

type NotificationResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Level     string    `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}

// HandleList handles GET /users/{userID}/notifications.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid user id"))
		return
	}
	if requestcontext.UserID(ctx) != userID {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "notifications are private to their addressee"))
		return
	}

	notifications, err := h.store.ListByAddressee(ctx, userID)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list notifications"))
		return
	}

	out := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, NotificationResponse{
			ID:        n.ID.String(),
			Message:   n.Message,
			Level:     string(n.Level),
			CreatedAt: n.CreatedAt,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}
