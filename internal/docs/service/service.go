package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"appealboard/internal/docs/generator"
	"appealboard/internal/docs/models"
	docstore "appealboard/internal/docs/store"
	"appealboard/internal/stage/catalog"
	id "appealboard/pkg/domain"
	dErrors "appealboard/pkg/domain-errors"
	"appealboard/pkg/platform/sentinel"
	"appealboard/pkg/requestcontext"
)

// Service owns document creation and signature completion. Stage
// qualification reads documents through the store directly; this service is
// the write side.
type Service struct {
	store   docstore.Store
	gen     generator.Generator
	catalog *catalog.Catalog
	logger  *slog.Logger
}

func New(store docstore.Store, gen generator.Generator, cat *catalog.Catalog, logger *slog.Logger) *Service {
	return &Service{store: store, gen: gen, catalog: cat, logger: logger}
}

// CreateGenerated renders a document from its template, registers it, and
// creates one pending sign per signer. Mirrors the flow used for the
// collegium formation order and the acceptance document set.
func (s *Service) CreateGenerated(ctx context.Context, caseID id.CaseID, typeCode string, group models.SignerGroup, signers []id.UserID) (*models.Document, error) {
	fileRef, err := s.gen.Generate(ctx, typeCode, caseID, map[string]string{
		"document_title": s.catalog.DocTypeTitle(typeCode),
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "document generation failed")
	}

	now := requestcontext.Now(ctx)
	regNumber, err := s.nextRegistrationNumber(ctx, now.Year())
	if err != nil {
		return nil, err
	}

	doc := &models.Document{
		ID:                 id.NewDocumentID(),
		CaseID:             &caseID,
		TypeCode:           typeCode,
		SignerGroup:        group,
		AutoGenerated:      true,
		FileRef:            fileRef,
		RegistrationNumber: regNumber,
		CreatedAt:          now,
	}
	if err := s.store.CreateDocument(ctx, doc); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store document")
	}

	for _, signer := range signers {
		sign := &models.Sign{
			ID:         id.NewSignID(),
			DocumentID: doc.ID,
			UserID:     signer,
			CreatedAt:  now,
		}
		if err := s.store.CreateSign(ctx, sign); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create pending sign")
		}
	}

	s.logger.InfoContext(ctx, "document generated",
		"case_id", caseID,
		"type_code", typeCode,
		"registration_number", regNumber,
		"pending_signs", len(signers),
	)
	return doc, nil
}

// CompleteSign records a signature on a pending sign record. The record must
// belong to the named document and to the signer; completing an
// already-signed record is a conflict.
func (s *Service) CompleteSign(ctx context.Context, docID id.DocumentID, signID id.SignID, signer id.UserID, subject string) (*models.Sign, error) {
	sign, err := s.store.GetSign(ctx, signID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "sign record not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load sign record")
	}
	if sign.DocumentID != docID {
		return nil, dErrors.New(dErrors.CodeBadRequest, "sign does not belong to document")
	}
	if sign.UserID != signer {
		return nil, dErrors.New(dErrors.CodeForbidden, "sign record belongs to another user")
	}
	if sign.Completed() {
		return nil, dErrors.New(dErrors.CodeConflict, "document already signed by this user")
	}

	now := requestcontext.Now(ctx)
	sign.SignedAt = &now
	sign.Subject = subject
	if err := s.store.UpdateSign(ctx, sign); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record signature")
	}
	return sign, nil
}

// ListForCase returns the case's live documents with their sign state.
func (s *Service) ListForCase(ctx context.Context, caseID id.CaseID, claimID id.ClaimID) ([]models.DocumentWithSigns, error) {
	docs, err := s.store.ListForCase(ctx, caseID, claimID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list case documents")
	}
	return docs, nil
}

// DocumentCase resolves the case a sign's document belongs to, or nil when
// the document is still attached to the claim only.
func (s *Service) DocumentCase(ctx context.Context, docID id.DocumentID) (*id.CaseID, error) {
	doc, err := s.store.GetDocument(ctx, docID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "document not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load document")
	}
	return doc.CaseID, nil
}

// Registration numbers restart every year, like case numbers.
func (s *Service) nextRegistrationNumber(ctx context.Context, year int) (string, error) {
	count, err := s.store.CountDocumentsInYear(ctx, year)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to number document")
	}
	return fmt.Sprintf("%04d/%d", count+1, year), nil
}
