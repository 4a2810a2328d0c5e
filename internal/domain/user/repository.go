package user

import "context"

// Repository defines data access for users.
type Repository interface {
	// Create inserts a new user and returns it with generated fields.
	Create(ctx context.Context, u User) (User, error)

	// GetByID retrieves a user by id.
	GetByID(ctx context.Context, id string) (User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (User, error)

	// List returns users ordered by name. When includeSuperAdmin is false,
	// superAdmin users are excluded (the absentee job and admin views never
	// see them).
	List(ctx context.Context, includeSuperAdmin bool) ([]User, error)
}
