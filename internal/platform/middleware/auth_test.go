package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usermodels "appealboard/internal/users/models"
	id "appealboard/pkg/domain"
	"appealboard/pkg/requestcontext"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

const signingKey = "test-signing-key"

func protected(t *testing.T, captured *struct {
	userID id.UserID
	role   string
}) http.Handler {
	t.Helper()
	return RequireAuth(signingKey, testLogger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.userID = requestcontext.UserID(r.Context())
		captured.role = requestcontext.UserRole(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestRequireAuth(t *testing.T) {
	t.Run("valid token resolves user and role", func(t *testing.T) {
		userID := id.NewUserID()
		token, err := IssueToken(signingKey, userID, string(usermodels.RoleSecretary))
		require.NoError(t, err)

		var captured struct {
			userID id.UserID
			role   string
		}
		req := httptest.NewRequest(http.MethodGet, "/cases", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		protected(t, &captured).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, userID, captured.userID)
		assert.Equal(t, string(usermodels.RoleSecretary), captured.role)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		var captured struct {
			userID id.UserID
			role   string
		}
		req := httptest.NewRequest(http.MethodGet, "/cases", nil)
		rec := httptest.NewRecorder()
		protected(t, &captured).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another key is rejected", func(t *testing.T) {
		token, err := IssueToken("wrong-key", id.NewUserID(), "secretary")
		require.NoError(t, err)

		var captured struct {
			userID id.UserID
			role   string
		}
		req := httptest.NewRequest(http.MethodGet, "/cases", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		protected(t, &captured).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(usermodels.RoleSecretary)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("matching role passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/cases/x/take", nil)
		ctx := requestcontext.WithUserRole(req.Context(), string(usermodels.RoleSecretary))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req.WithContext(ctx))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("other roles are forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/cases/x/take", nil)
		ctx := requestcontext.WithUserRole(req.Context(), string(usermodels.RoleMember))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req.WithContext(ctx))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
