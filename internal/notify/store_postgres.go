package notify

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	id "appealboard/pkg/domain"
)

// PostgresStore persists notifications in PostgreSQL. Notification writes
// happen after the stage transition commits, so this store deliberately
// ignores any context transaction.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, n *Notification) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (id, addressee_id, message, level, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, n.ID.String(), n.AddresseeID.String(), n.Message, string(n.Level), n.CreatedAt)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByAddressee(ctx context.Context, userID id.UserID) ([]Notification, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, addressee_id, message, level, created_at
		FROM notifications WHERE addressee_id = $1 ORDER BY created_at
	`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var (
			n              Notification
			rawID, rawUser string
			rawLevel       string
		)
		if err := rows.Scan(&rawID, &rawUser, &n.Message, &rawLevel, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		nid, err := uuid.Parse(rawID)
		if err != nil {
			return nil, err
		}
		uid, err := uuid.Parse(rawUser)
		if err != nil {
			return nil, err
		}
		n.ID = id.NotificationID(nid)
		n.AddresseeID = id.UserID(uid)
		n.Level = Level(rawLevel)
		out = append(out, n)
	}
	return out, rows.Err()
}
