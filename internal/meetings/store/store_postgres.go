package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"appealboard/internal/meetings/models"
	id "appealboard/pkg/domain"
	"appealboard/pkg/platform/sentinel"
	"appealboard/pkg/platform/tx"
)

// PostgresStore persists meetings in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateMeeting(ctx context.Context, meeting *models.Meeting) error {
	q := tx.QuerierFrom(ctx, s.db)
	_, err := q.ExecContext(ctx, `
		INSERT INTO meetings (id, case_id, scheduled_at, held, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, meeting.ID.String(), meeting.CaseID.String(), meeting.ScheduledAt, meeting.Held, meeting.CreatedAt)
	if err != nil {
		return fmt.Errorf("create meeting: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetMeeting(ctx context.Context, meetingID id.MeetingID) (*models.Meeting, error) {
	q := tx.QuerierFrom(ctx, s.db)
	row := q.QueryRowContext(ctx, `
		SELECT id, case_id, scheduled_at, held, created_at FROM meetings WHERE id = $1
	`, meetingID.String())
	meeting, err := scanMeeting(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get meeting: %w", err)
	}
	return meeting, nil
}

func (s *PostgresStore) UpdateMeeting(ctx context.Context, meeting *models.Meeting) error {
	q := tx.QuerierFrom(ctx, s.db)
	res, err := q.ExecContext(ctx, `
		UPDATE meetings SET scheduled_at = $2, held = $3 WHERE id = $1
	`, meeting.ID.String(), meeting.ScheduledAt, meeting.Held)
	if err != nil {
		return fmt.Errorf("update meeting: %w", err)
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

func (s *PostgresStore) LatestForCase(ctx context.Context, caseID id.CaseID) (*models.MeetingWithInvitations, error) {
	q := tx.QuerierFrom(ctx, s.db)
	row := q.QueryRowContext(ctx, `
		SELECT id, case_id, scheduled_at, held, created_at
		FROM meetings WHERE case_id = $1 ORDER BY created_at DESC LIMIT 1
	`, caseID.String())
	meeting, err := scanMeeting(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("latest meeting for case: %w", err)
	}

	rows, err := q.QueryContext(ctx, `
		SELECT id, meeting_id, person_id, accepted_at, created_at
		FROM invitations WHERE meeting_id = $1 ORDER BY created_at
	`, meeting.ID.String())
	if err != nil {
		return nil, fmt.Errorf("invitations for meeting: %w", err)
	}
	defer rows.Close()

	out := &models.MeetingWithInvitations{Meeting: *meeting}
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invitation: %w", err)
		}
		out.Invitations = append(out.Invitations, *inv)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CreateInvitation(ctx context.Context, inv *models.Invitation) error {
	q := tx.QuerierFrom(ctx, s.db)
	_, err := q.ExecContext(ctx, `
		INSERT INTO invitations (id, meeting_id, person_id, accepted_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, inv.ID.String(), inv.MeetingID.String(), inv.PersonID.String(), inv.AcceptedAt, inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("create invitation: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetInvitation(ctx context.Context, invID id.InvitationID) (*models.Invitation, error) {
	q := tx.QuerierFrom(ctx, s.db)
	row := q.QueryRowContext(ctx, `
		SELECT id, meeting_id, person_id, accepted_at, created_at
		FROM invitations WHERE id = $1
	`, invID.String())
	inv, err := scanInvitation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	return inv, nil
}

func (s *PostgresStore) UpdateInvitation(ctx context.Context, inv *models.Invitation) error {
	q := tx.QuerierFrom(ctx, s.db)
	res, err := q.ExecContext(ctx, `
		UPDATE invitations SET accepted_at = $2 WHERE id = $1
	`, inv.ID.String(), inv.AcceptedAt)
	if err != nil {
		return fmt.Errorf("update invitation: %w", err)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeeting(row rowScanner) (*models.Meeting, error) {
	var (
		meeting       models.Meeting
		rawID, rawCase string
	)
	if err := row.Scan(&rawID, &rawCase, &meeting.ScheduledAt, &meeting.Held, &meeting.CreatedAt); err != nil {
		return nil, err
	}
	mid, err := uuid.Parse(rawID)
	if err != nil {
		return nil, err
	}
	cid, err := uuid.Parse(rawCase)
	if err != nil {
		return nil, err
	}
	meeting.ID = id.MeetingID(mid)
	meeting.CaseID = id.CaseID(cid)
	return &meeting, nil
}

func scanInvitation(row rowScanner) (*models.Invitation, error) {
	var (
		inv                        models.Invitation
		rawID, rawMeeting, rawUser string
	)
	if err := row.Scan(&rawID, &rawMeeting, &rawUser, &inv.AcceptedAt, &inv.CreatedAt); err != nil {
		return nil, err
	}
	iid, err := uuid.Parse(rawID)
	if err != nil {
		return nil, err
	}
	mid, err := uuid.Parse(rawMeeting)
	if err != nil {
		return nil, err
	}
	uid, err := uuid.Parse(rawUser)
	if err != nil {
		return nil, err
	}
	inv.ID = id.InvitationID(iid)
	inv.MeetingID = id.MeetingID(mid)
	inv.PersonID = id.UserID(uid)
	return &inv, nil
}
