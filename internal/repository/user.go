package repository

import (
	"context"

	"dataroom/internal/model"
)

// UserRepository defines data access for user accounts.
type UserRepository interface {
	// Create inserts a new user record and returns the stored row.
	Create(ctx context.Context, user *model.User) (*model.User, error)

	// FindByID returns a user by ID.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail returns a user by email, or (nil, nil) if none exists.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}
