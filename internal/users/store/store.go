package store

import (
	"context"

	"appealboard/internal/users/models"
	id "appealboard/pkg/domain"
)

// Store is the user directory. Reads dominate: the stage engine resolves
// signer roles and the board leadership for every broadcast.
type Store interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	ListByRoles(ctx context.Context, roles ...models.Role) ([]*models.User, error)
}
