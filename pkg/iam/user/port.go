package user

import (
	"context"

	"github.com/Abraxas-365/internhub/pkg/kernel"
)

type Repository interface {
	// Create inserts a user, returning ErrEmailTaken on a duplicate email
	Create(ctx context.Context, u *User) error

	// Update persists profile fields
	Update(ctx context.Context, u *User) error

	GetByID(ctx context.Context, id kernel.UserID) (*User, error)

	GetByEmail(ctx context.Context, email kernel.Email) (*User, error)

	// ListByRole returns users with the given role ordered by name
	ListByRole(ctx context.Context, role kernel.Role) ([]*User, error)
}
