package notify

import (
	"context"

	id "appealboard/pkg/domain"
)

// Store is the persistence sink of the database-backed notifier.
type Store interface {
	Create(ctx context.Context, n *Notification) error
	ListByAddressee(ctx context.Context, userID id.UserID) ([]Notification, error)
}
