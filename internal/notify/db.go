package notify

import (
	"context"
	"fmt"
	"time"

	id "appealboard/pkg/domain"
)

// DBUserNotifier persists a single informational record for one user.
type DBUserNotifier struct {
	store Store
	now   func() time.Time
}

func NewDBUserNotifier(store Store, now func() time.Time) *DBUserNotifier {
	if now == nil {
		now = time.Now
	}
	return &DBUserNotifier{store: store, now: now}
}

func (n *DBUserNotifier) Notify(ctx context.Context, message string, userID id.UserID) error {
	rec := Notification{
		ID:          id.NewNotificationID(),
		AddresseeID: userID,
		Message:     message,
		Level:       LevelInfo,
		CreatedAt:   n.now().UTC(),
	}
	if err := n.store.Create(ctx, &rec); err != nil {
		return fmt.Errorf("notify user %s: %w", userID, err)
	}
	return nil
}

// DBBroadcastNotifier persists one record per addressee. SetAddressees must be
// called before Notify; instances hold that list as state, so each delivery
// gets its own instance.
type DBBroadcastNotifier struct {
	store      Store
	now        func() time.Time
	addressees []id.UserID
}

func NewDBBroadcastNotifier(store Store, now func() time.Time) *DBBroadcastNotifier {
	if now == nil {
		now = time.Now
	}
	return &DBBroadcastNotifier{store: store, now: now}
}

func (n *DBBroadcastNotifier) SetAddressees(addressees []id.UserID) {
	n.addressees = addressees
}

func (n *DBBroadcastNotifier) Notify(ctx context.Context, message string, level Level) error {
	at := n.now().UTC()
	for _, userID := range n.addressees {
		rec := Notification{
			ID:          id.NewNotificationID(),
			AddresseeID: userID,
			Message:     message,
			Level:       level,
			CreatedAt:   at,
		}
		if err := n.store.Create(ctx, &rec); err != nil {
			return fmt.Errorf("notify user %s: %w", userID, err)
		}
	}
	return nil
}
