package repository

import (
	"context"

	"github.com/nkiryanov/billboard/internal/models"
)

type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash string
}

// Nil fields are not updated
type UpdateUserParams struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

// User repository interface
type UserRepo interface {
	// Create user
	// If user with the name or email exists already has to return apperrors.ErrUserAlreadyExists
	CreateUser(ctx context.Context, arg CreateUserParams) (models.User, error)

	// Get user by id
	// If user not found must return apperrors.ErrUserNotFound
	GetUserByID(ctx context.Context, id int64) (models.User, error)

	// Update the provided fields and return the stored user
	// Has to return apperrors.ErrUserNotFound or apperrors.ErrUserAlreadyExists the same way as above
	UpdateUser(ctx context.Context, id int64, arg UpdateUserParams) (models.User, error)

	// Delete user and (by foreign key cascade) all its billboards
	// If user not found must return apperrors.ErrUserNotFound
	DeleteUser(ctx context.Context, id int64) error
}

type CreateBillboardParams struct {
	Topic       string
	Description string
	UserID      int64
}

// Billboard repository interface
type BillboardRepo interface {
	// Create billboard
	// If topic or description is taken must return apperrors.ErrArticleAlreadyExists
	// If owner does not exist must return apperrors.ErrUserNotFound
	CreateBillboard(ctx context.Context, arg CreateBillboardParams) (models.Billboard, error)

	// If billboard not found must return apperrors.ErrArticleNotFound
	GetBillboardByID(ctx context.Context, id int64) (models.Billboard, error)

	// If billboard not found must return apperrors.ErrArticleNotFound
	DeleteBillboard(ctx context.Context, id int64) error
}

// Storage is a database session: repositories bound to one connection (or transaction)
type Storage interface {
	User() UserRepo
	Billboard() BillboardRepo

	// Run fn in transaction: commit if fn returns nil, rollback otherwise
	// Nested calls create savepoints
	InTx(ctx context.Context, fn func(Storage) error) error
}
