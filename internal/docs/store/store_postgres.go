package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"appealboard/internal/docs/models"
	id "appealboard/pkg/domain"
	"appealboard/pkg/platform/sentinel"
	"appealboard/pkg/platform/tx"
)

// PostgresStore persists documents and signs in PostgreSQL. It honors a
// context transaction so document writes during a stage transition commit
// atomically with the stage change.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const docColumns = `id, case_id, claim_id, type_code, signer_group,
	auto_generated, pdf_converted, deleted, file_ref, registration_number, created_at`

func (s *PostgresStore) CreateDocument(ctx context.Context, doc *models.Document) error {
	q := tx.QuerierFrom(ctx, s.db)
	_, err := q.ExecContext(ctx, `
		INSERT INTO documents (id, case_id, claim_id, type_code, signer_group,
			auto_generated, pdf_converted, deleted, file_ref, registration_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, doc.ID.String(), optCaseID(doc.CaseID), optClaimID(doc.ClaimID), doc.TypeCode,
		string(doc.SignerGroup), doc.AutoGenerated, doc.PDFConverted, doc.Deleted,
		doc.FileRef, doc.RegistrationNumber, doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetDocument(ctx context.Context, docID id.DocumentID) (*models.Document, error) {
	q := tx.QuerierFrom(ctx, s.db)
	row := q.QueryRowContext(ctx, `SELECT `+docColumns+` FROM documents WHERE id = $1`, docID.String())
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

func (s *PostgresStore) ListForCase(ctx context.Context, caseID id.CaseID, claimID id.ClaimID) ([]models.DocumentWithSigns, error) {
	q := tx.QuerierFrom(ctx, s.db)
	rows, err := q.QueryContext(ctx, `
		SELECT `+docColumns+` FROM documents
		WHERE deleted = FALSE AND (case_id = $1 OR claim_id = $2)
		ORDER BY created_at
	`, caseID.String(), claimID.String())
	if err != nil {
		return nil, fmt.Errorf("list documents for case: %w", err)
	}
	defer rows.Close()

	var out []models.DocumentWithSigns
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, models.DocumentWithSigns{Document: *doc})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		signs, err := s.SignsForDocument(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Signs = signs
	}
	return out, nil
}

func (s *PostgresStore) CreateSign(ctx context.Context, sign *models.Sign) error {
	q := tx.QuerierFrom(ctx, s.db)
	_, err := q.ExecContext(ctx, `
		INSERT INTO signs (id, document_id, user_id, subject, signed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, sign.ID.String(), sign.DocumentID.String(), sign.UserID.String(),
		sign.Subject, sign.SignedAt, sign.CreatedAt)
	if err != nil {
		return fmt.Errorf("create sign: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetSign(ctx context.Context, signID id.SignID) (*models.Sign, error) {
	q := tx.QuerierFrom(ctx, s.db)
	row := q.QueryRowContext(ctx, `
		SELECT id, document_id, user_id, subject, signed_at, created_at
		FROM signs WHERE id = $1
	`, signID.String())
	sign, err := scanSign(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get sign: %w", err)
	}
	return sign, nil
}

func (s *PostgresStore) UpdateSign(ctx context.Context, sign *models.Sign) error {
	q := tx.QuerierFrom(ctx, s.db)
	res, err := q.ExecContext(ctx, `
		UPDATE signs SET subject = $2, signed_at = $3 WHERE id = $1
	`, sign.ID.String(), sign.Subject, sign.SignedAt)
	if err != nil {
		return fmt.Errorf("update sign: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) SignsForDocument(ctx context.Context, docID id.DocumentID) ([]models.Sign, error) {
	q := tx.QuerierFrom(ctx, s.db)
	rows, err := q.QueryContext(ctx, `
		SELECT id, document_id, user_id, subject, signed_at, created_at
		FROM signs WHERE document_id = $1 ORDER BY created_at
	`, docID.String())
	if err != nil {
		return nil, fmt.Errorf("signs for document: %w", err)
	}
	defer rows.Close()

	var out []models.Sign
	for rows.Next() {
		sign, err := scanSign(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sign: %w", err)
		}
		out = append(out, *sign)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CountDocumentsInYear(ctx context.Context, year int) (int, error) {
	q := tx.QuerierFrom(ctx, s.db)
	var count int
	err := q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM documents WHERE date_part('year', created_at) = $1
	`, year).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count documents in year: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*models.Document, error) {
	var (
		doc               models.Document
		rawID             string
		rawCase, rawClaim sql.NullString
		rawGroup          string
	)
	err := row.Scan(&rawID, &rawCase, &rawClaim, &doc.TypeCode, &rawGroup,
		&doc.AutoGenerated, &doc.PDFConverted, &doc.Deleted,
		&doc.FileRef, &doc.RegistrationNumber, &doc.CreatedAt)
	if err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(rawID)
	if err != nil {
		return nil, err
	}
	doc.ID = id.DocumentID(parsed)
	doc.SignerGroup = models.SignerGroup(rawGroup)
	if rawCase.Valid {
		caseUUID, err := uuid.Parse(rawCase.String)
		if err != nil {
			return nil, err
		}
		caseID := id.CaseID(caseUUID)
		doc.CaseID = &caseID
	}
	if rawClaim.Valid {
		claimUUID, err := uuid.Parse(rawClaim.String)
		if err != nil {
			return nil, err
		}
		claimID := id.ClaimID(claimUUID)
		doc.ClaimID = &claimID
	}
	return &doc, nil
}

func scanSign(row rowScanner) (*models.Sign, error) {
	var (
		sign                     models.Sign
		rawID, rawDoc, rawSigner string
	)
	err := row.Scan(&rawID, &rawDoc, &rawSigner, &sign.Subject, &sign.SignedAt, &sign.CreatedAt)
	if err != nil {
		return nil, err
	}
	sid, err := uuid.Parse(rawID)
	if err != nil {
		return nil, err
	}
	did, err := uuid.Parse(rawDoc)
	if err != nil {
		return nil, err
	}
	uid, err := uuid.Parse(rawSigner)
	if err != nil {
		return nil, err
	}
	sign.ID = id.SignID(sid)
	sign.DocumentID = id.DocumentID(did)
	sign.UserID = id.UserID(uid)
	return &sign, nil
}

func optCaseID(caseID *id.CaseID) any {
	if caseID == nil {
		return nil
	}
	return caseID.String()
}

func optClaimID(claimID *id.ClaimID) any {
	if claimID == nil {
		return nil
	}
	return claimID.String()
}
