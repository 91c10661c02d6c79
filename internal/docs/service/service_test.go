package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appealboard/internal/docs/generator"
	"appealboard/internal/docs/models"
	docstore "appealboard/internal/docs/store"
	"appealboard/internal/stage/catalog"
	id "appealboard/pkg/domain"
	dErrors "appealboard/pkg/domain-errors"
	"appealboard/pkg/requestcontext"
)

func newService(t *testing.T) *Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(docstore.NewMemory(), generator.NewStub(), catalog.MustLoad(), logger)
}

func testCtx() context.Context {
	ctx := requestcontext.WithUserID(context.Background(), id.NewUserID())
	return requestcontext.WithTime(ctx, time.Date(2026, 5, 4, 11, 0, 0, 0, time.UTC))
}

func TestCreateGenerated(t *testing.T) {
	svc := newService(t)
	ctx := testCtx()
	caseID := id.NewCaseID()
	signers := []id.UserID{id.NewUserID(), id.NewUserID()}

	doc, err := svc.CreateGenerated(ctx, caseID, catalog.DocTypeFormationOrder,
		models.SignerGroupDirector, signers)
	require.NoError(t, err)
	assert.True(t, doc.AutoGenerated)
	assert.Equal(t, "0001/2026", doc.RegistrationNumber)
	assert.NotEmpty(t, doc.FileRef)

	// Registration numbers are a per-year sequence.
	second, err := svc.CreateGenerated(ctx, caseID, catalog.DocTypeMeetingNotice,
		models.SignerGroupCollegium, nil)
	require.NoError(t, err)
	assert.Equal(t, "0002/2026", second.RegistrationNumber)

	docs, err := svc.ListForCase(ctx, caseID, id.NewClaimID())
	require.NoError(t, err)
	require.Len(t, docs, 2)
	require.Len(t, docs[0].Signs, 2)
	for _, sign := range docs[0].Signs {
		assert.Nil(t, sign.SignedAt)
	}
	assert.False(t, docs[0].FullySigned())
}

func TestCompleteSign(t *testing.T) {
	setup := func(t *testing.T) (*Service, context.Context, *models.Document, models.Sign) {
		svc := newService(t)
		ctx := testCtx()
		doc, err := svc.CreateGenerated(ctx, id.NewCaseID(), catalog.DocTypeFormationOrder,
			models.SignerGroupDirector, []id.UserID{id.NewUserID()})
		require.NoError(t, err)
		docs, err := svc.ListForCase(ctx, *doc.CaseID, id.NewClaimID())
		require.NoError(t, err)
		require.Len(t, docs, 1)
		return svc, ctx, doc, docs[0].Signs[0]
	}

	t.Run("records the signature", func(t *testing.T) {
		svc, ctx, doc, sign := setup(t)

		completed, err := svc.CompleteSign(ctx, doc.ID, sign.ID, sign.UserID, "CN=Board Head")
		require.NoError(t, err)
		require.NotNil(t, completed.SignedAt)
		assert.Equal(t, "CN=Board Head", completed.Subject)

		docs, err := svc.ListForCase(ctx, *doc.CaseID, id.NewClaimID())
		require.NoError(t, err)
		assert.True(t, docs[0].FullySigned())
	})

	t.Run("sign must belong to the named document", func(t *testing.T) {
		svc, ctx, _, sign := setup(t)

		_, err := svc.CompleteSign(ctx, id.NewDocumentID(), sign.ID, sign.UserID, "")
		assert.Equal(t, dErrors.CodeBadRequest, dErrors.CodeOf(err))
	})

	t.Run("only the named signer may sign", func(t *testing.T) {
		svc, ctx, doc, sign := setup(t)

		_, err := svc.CompleteSign(ctx, doc.ID, sign.ID, id.NewUserID(), "")
		assert.Equal(t, dErrors.CodeForbidden, dErrors.CodeOf(err))
	})

	t.Run("signing twice is a conflict", func(t *testing.T) {
		svc, ctx, doc, sign := setup(t)

		_, err := svc.CompleteSign(ctx, doc.ID, sign.ID, sign.UserID, "")
		require.NoError(t, err)

		_, err = svc.CompleteSign(ctx, doc.ID, sign.ID, sign.UserID, "")
		assert.Equal(t, dErrors.CodeConflict, dErrors.CodeOf(err))
	})

	t.Run("unknown sign record", func(t *testing.T) {
		svc, ctx, doc, _ := setup(t)

		_, err := svc.CompleteSign(ctx, doc.ID, id.NewSignID(), id.NewUserID(), "")
		assert.Equal(t, dErrors.CodeNotFound, dErrors.CodeOf(err))
	})
}

func TestDocumentCase(t *testing.T) {
	svc := newService(t)
	ctx := testCtx()
	caseID := id.NewCaseID()

	doc, err := svc.CreateGenerated(ctx, caseID, catalog.DocTypeMeetingNotice,
		models.SignerGroupCollegium, nil)
	require.NoError(t, err)

	owner, err := svc.DocumentCase(ctx, doc.ID)
	require.NoError(t, err)
	require.NotNil(t, owner)
	assert.Equal(t, caseID, *owner)

	_, err = svc.DocumentCase(ctx, id.NewDocumentID())
	assert.Equal(t, dErrors.CodeNotFound, dErrors.CodeOf(err))
}
