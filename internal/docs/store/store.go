package store

import (
	"context"

	"appealboard/internal/docs/models"
	id "appealboard/pkg/domain"
)

// Store persists documents and their sign records.
type Store interface {
	CreateDocument(ctx context.Context, doc *models.Document) error
	GetDocument(ctx context.Context, docID id.DocumentID) (*models.Document, error)

	// ListForCase returns the case's documents with their signs, including
	// documents still attached to the originating claim. Soft-deleted
	// documents are excluded.
	ListForCase(ctx context.Context, caseID id.CaseID, claimID id.ClaimID) ([]models.DocumentWithSigns, error)

	CreateSign(ctx context.Context, sign *models.Sign) error
	GetSign(ctx context.Context, signID id.SignID) (*models.Sign, error)
	UpdateSign(ctx context.Context, sign *models.Sign) error
	SignsForDocument(ctx context.Context, docID id.DocumentID) ([]models.Sign, error)

	CountDocumentsInYear(ctx context.Context, year int) (int, error)
}
