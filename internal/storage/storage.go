package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/hospcare-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ErrNotAcknowledged indicates the store did not confirm a write.
var ErrNotAcknowledged = errors.New("write not acknowledged")

// UserStore captures persistence operations needed by the workflows. Every
// call is scoped to one category partition; the same email may exist in
// different partitions.
type UserStore interface {
	// CreateUser inserts user into its category partition and returns it with ID set.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindByEmail fetches the user with email in the category partition.
	FindByEmail(ctx context.Context, category models.Category, email string) (models.User, error)
	// ListByCategory returns every user in the category partition.
	ListByCategory(ctx context.Context, category models.Category) ([]models.User, error)
}
