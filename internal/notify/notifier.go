// Package notify decouples the transition orchestrator from delivery
// mechanics. The orchestrator talks to two capabilities: a current-user
// notifier with an implicit fixed target, and broadcast notifiers that take
// an addressee list before each send.
package notify

import (
	"context"

	id "appealboard/pkg/domain"
)

// Level grades a notification; the persisted channel stores it verbatim.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// UserNotifier delivers a message to one explicit user, typically the acting
// user of the current request.
type UserNotifier interface {
	Notify(ctx context.Context, message string, userID id.UserID) error
}

// BroadcastNotifier delivers a message to a previously set addressee list.
// Implementations carry per-delivery state and are not safe for concurrent
// reuse: construct a fresh instance per delivery, never share one across
// requests.
type BroadcastNotifier interface {
	SetAddressees(addressees []id.UserID)
	Notify(ctx context.Context, message string, level Level) error
}
