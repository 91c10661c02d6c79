package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"appealboard/internal/cases/models"
	id "appealboard/pkg/domain"
	"appealboard/pkg/platform/sentinel"
	"appealboard/pkg/platform/tx"
)

// PostgresStore persists cases in PostgreSQL. RunInTx opens a serializable
// transaction and carries it in the context so the document and meeting
// stores join the same unit of work during a stage transition.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateClaim(ctx context.Context, claim *models.Claim) error {
	q := tx.QuerierFrom(ctx, s.db)
	_, err := q.ExecContext(ctx, `
		INSERT INTO claims (id, claim_kind_id, applicant_id, status, submitted_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, claim.ID.String(), claim.ClaimKindID, claim.ApplicantID.String(), claim.Status,
		claim.SubmittedAt, claim.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create claim: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetClaim(ctx context.Context, claimID id.ClaimID) (*models.Claim, error) {
	q := tx.QuerierFrom(ctx, s.db)
	row := q.QueryRowContext(ctx, `
		SELECT id, claim_kind_id, applicant_id, status, submitted_at, created_at
		FROM claims WHERE id = $1
	`, claimID.String())

	var (
		claim        models.Claim
		rawID, rawAp string
	)
	err := row.Scan(&rawID, &claim.ClaimKindID, &rawAp, &claim.Status, &claim.SubmittedAt, &claim.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get claim: %w", err)
	}
	cid, err := uuid.Parse(rawID)
	if err != nil {
		return nil, err
	}
	aid, err := uuid.Parse(rawAp)
	if err != nil {
		return nil, err
	}
	claim.ID = id.ClaimID(cid)
	claim.ApplicantID = id.UserID(aid)
	return &claim, nil
}

func (s *PostgresStore) UpdateClaim(ctx context.Context, claim *models.Claim) error {
	q := tx.QuerierFrom(ctx, s.db)
	res, err := q.ExecContext(ctx, `
		UPDATE claims SET status = $2, submitted_at = $3 WHERE id = $1
	`, claim.ID.String(), claim.Status, claim.SubmittedAt)
	if err != nil {
		return fmt.Errorf("update claim: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) CreateCase(ctx context.Context, c *models.Case) error {
	q := tx.QuerierFrom(ctx, s.db)
	_, err := q.ExecContext(ctx, `
		INSERT INTO cases (id, claim_id, claim_kind_id, case_number, stage_code,
			secretary_id, expert_id, papers_owner_id, deadline, hearing_date,
			stopped, paused, archived, decision_type, decision_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`, c.ID.String(), c.ClaimID.String(), c.ClaimKindID, c.CaseNumber, c.StageCode,
		optID(c.SecretaryID), optID(c.ExpertID), optID(c.PapersOwnerID), c.Deadline, c.HearingDate,
		c.Stopped, c.Paused, c.Archived, c.DecisionType, c.DecisionDate, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create case: %w", err)
	}
	return nil
}

const caseColumns = `id, claim_id, claim_kind_id, case_number, stage_code,
	secretary_id, expert_id, papers_owner_id, deadline, hearing_date,
	stopped, paused, archived, decision_type, decision_date, created_at, updated_at`

func (s *PostgresStore) GetCase(ctx context.Context, caseID id.CaseID) (*models.Case, error) {
	q := tx.QuerierFrom(ctx, s.db)
	row := q.QueryRowContext(ctx, `SELECT `+caseColumns+` FROM cases WHERE id = $1`, caseID.String())
	c, err := scanCase(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get case: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) UpdateCase(ctx context.Context, c *models.Case) error {
	q := tx.QuerierFrom(ctx, s.db)
	res, err := q.ExecContext(ctx, `
		UPDATE cases SET
			secretary_id = $2, expert_id = $3, papers_owner_id = $4,
			deadline = $5, hearing_date = $6,
			stopped = $7, paused = $8, archived = $9,
			decision_type = $10, decision_date = $11,
			updated_at = now()
		WHERE id = $1
	`, c.ID.String(), optID(c.SecretaryID), optID(c.ExpertID), optID(c.PapersOwnerID),
		c.Deadline, c.HearingDate, c.Stopped, c.Paused, c.Archived,
		c.DecisionType, c.DecisionDate)
	if err != nil {
		return fmt.Errorf("update case: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) SetStage(ctx context.Context, caseID id.CaseID, stageCode int) error {
	q := tx.QuerierFrom(ctx, s.db)
	res, err := q.ExecContext(ctx, `
		UPDATE cases SET stage_code = $2, updated_at = now() WHERE id = $1
	`, caseID.String(), stageCode)
	if err != nil {
		return fmt.Errorf("set stage: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) ListCases(ctx context.Context) ([]*models.Case, error) {
	q := tx.QuerierFrom(ctx, s.db)
	rows, err := q.QueryContext(ctx, `SELECT `+caseColumns+` FROM cases ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	defer rows.Close()

	var out []*models.Case
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan case: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CountCasesInYear(ctx context.Context, year int) (int, error) {
	q := tx.QuerierFrom(ctx, s.db)
	var count int
	err := q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM cases WHERE date_part('year', created_at) = $1
	`, year).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count cases in year: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) AddCollegiumMember(ctx context.Context, m *models.CollegiumMembership) error {
	q := tx.QuerierFrom(ctx, s.db)
	_, err := q.ExecContext(ctx, `
		INSERT INTO collegium_memberships (case_id, person_id, is_head)
		VALUES ($1, $2, $3)
	`, m.CaseID.String(), m.PersonID.String(), m.IsHead)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("add collegium member: %w", err)
	}
	return nil
}

func (s *PostgresStore) CollegiumFor(ctx context.Context, caseID id.CaseID) ([]models.CollegiumMembership, error) {
	q := tx.QuerierFrom(ctx, s.db)
	rows, err := q.QueryContext(ctx, `
		SELECT case_id, person_id, is_head FROM collegium_memberships WHERE case_id = $1
	`, caseID.String())
	if err != nil {
		return nil, fmt.Errorf("collegium for case: %w", err)
	}
	defer rows.Close()

	var out []models.CollegiumMembership
	for rows.Next() {
		var (
			m            models.CollegiumMembership
			rawCase, raw string
		)
		if err := rows.Scan(&rawCase, &raw, &m.IsHead); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		cid, err := uuid.Parse(rawCase)
		if err != nil {
			return nil, err
		}
		pid, err := uuid.Parse(raw)
		if err != nil {
			return nil, err
		}
		m.CaseID = id.CaseID(cid)
		m.PersonID = id.UserID(pid)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *PostgresStore) AddHistory(ctx context.Context, entry *models.HistoryEntry) error {
	q := tx.QuerierFrom(ctx, s.db)
	_, err := q.ExecContext(ctx, `
		INSERT INTO case_history (case_id, action, user_id)
		VALUES ($1, $2, $3)
	`, entry.CaseID.String(), entry.Action, entry.UserID.String())
	if err != nil {
		return fmt.Errorf("add history: %w", err)
	}
	return nil
}

func (s *PostgresStore) HistoryFor(ctx context.Context, caseID id.CaseID) ([]models.HistoryEntry, error) {
	q := tx.QuerierFrom(ctx, s.db)
	rows, err := q.QueryContext(ctx, `
		SELECT case_id, action, user_id, created_at
		FROM case_history WHERE case_id = $1 ORDER BY created_at, id
	`, caseID.String())
	if err != nil {
		return nil, fmt.Errorf("history for case: %w", err)
	}
	defer rows.Close()

	var out []models.HistoryEntry
	for rows.Next() {
		var (
			entry        models.HistoryEntry
			rawCase, raw string
		)
		if err := rows.Scan(&rawCase, &entry.Action, &raw, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		cid, err := uuid.Parse(rawCase)
		if err != nil {
			return nil, err
		}
		uid, err := uuid.Parse(raw)
		if err != nil {
			return nil, err
		}
		entry.CaseID = id.CaseID(cid)
		entry.UserID = id.UserID(uid)
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (s *PostgresStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := tx.From(ctx); ok {
		// Already inside a transaction; join it.
		return fn(ctx)
	}
	sqlTx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx.WithTx(ctx, sqlTx)); err != nil {
		_ = sqlTx.Rollback()
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func scanCase(row interface{ Scan(dest ...any) error }) (*models.Case, error) {
	var (
		c                             models.Case
		rawID, rawClaim               string
		rawSecretary, rawExpert, rawOwner sql.NullString
	)
	err := row.Scan(&rawID, &rawClaim, &c.ClaimKindID, &c.CaseNumber, &c.StageCode,
		&rawSecretary, &rawExpert, &rawOwner, &c.Deadline, &c.HearingDate,
		&c.Stopped, &c.Paused, &c.Archived, &c.DecisionType, &c.DecisionDate,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	cid, err := uuid.Parse(rawID)
	if err != nil {
		return nil, err
	}
	clid, err := uuid.Parse(rawClaim)
	if err != nil {
		return nil, err
	}
	c.ID = id.CaseID(cid)
	c.ClaimID = id.ClaimID(clid)
	if c.SecretaryID, err = parseOptUser(rawSecretary); err != nil {
		return nil, err
	}
	if c.ExpertID, err = parseOptUser(rawExpert); err != nil {
		return nil, err
	}
	if c.PapersOwnerID, err = parseOptUser(rawOwner); err != nil {
		return nil, err
	}
	return &c, nil
}

func parseOptUser(raw sql.NullString) (*id.UserID, error) {
	if !raw.Valid {
		return nil, nil
	}
	parsed, err := uuid.Parse(raw.String)
	if err != nil {
		return nil, err
	}
	userID := id.UserID(parsed)
	return &userID, nil
}

func optID(userID *id.UserID) any {
	if userID == nil {
		return nil
	}
	return userID.String()
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation"
}
