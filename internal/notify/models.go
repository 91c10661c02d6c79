package notify

import (
	"time"

	id "appealboard/pkg/domain"
)

// Notification is one persisted message for one addressee.
type Notification struct {
	ID          id.NotificationID
	AddresseeID id.UserID
	Message     string
	Level       Level
	CreatedAt   time.Time
}
