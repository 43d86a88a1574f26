package user

import (
	"context"
	"fmt"

	"github.com/nkiryanov/billboard/internal/models"
	"github.com/nkiryanov/billboard/internal/repository"
	"github.com/nkiryanov/billboard/internal/service/password"
)

// UserService holds no storage: every call works on the session passed by the caller
type UserService struct {
	hasher password.Hasher
}

func NewService(hasher password.Hasher) *UserService {
	if hasher == nil {
		hasher = password.DefaultHasher
	}

	return &UserService{hasher: hasher}
}

// GetUser returns apperrors.ErrUserNotFound if there is no user with the id
func (s *UserService) GetUser(ctx context.Context, storage repository.Storage, id int64) (models.User, error) {
	return storage.User().GetUserByID(ctx, id)
}

// CreateUser validates and hashes the password before anything is stored
func (s *UserService) CreateUser(ctx context.Context, storage repository.Storage, u models.NewUser) (models.User, error) {
	hash, err := s.hashPassword(u.Password)
	if err != nil {
		return models.User{}, err
	}

	var user models.User
	err = storage.InTx(ctx, func(storage repository.Storage) error {
		var err error
		user, err = storage.User().CreateUser(ctx, repository.CreateUserParams{
			Name:         u.Name,
			Email:        u.Email,
			PasswordHash: hash,
		})
		return err
	})
	if err != nil {
		return user, fmt.Errorf("can't create user. Err: %w", err)
	}

	return user, nil
}

// UpdateUser applies all patch fields in one transaction
// Fields not set in patch remain unchanged; a missing user is reported before the patch is validated
func (s *UserService) UpdateUser(ctx context.Context, storage repository.Storage, id int64, patch models.UserPatch) (models.User, error) {
	var user models.User
	err := storage.InTx(ctx, func(storage repository.Storage) error {
		var err error
		user, err = s.GetUser(ctx, storage, id)
		if err != nil || patch.IsEmpty() {
			return err
		}

		params := repository.UpdateUserParams{
			Name:  patch.Name,
			Email: patch.Email,
		}
		if patch.Password != nil {
			hash, err := s.hashPassword(*patch.Password)
			if err != nil {
				return err
			}
			params.PasswordHash = &hash
		}

		user, err = storage.User().UpdateUser(ctx, id, params)
		return err
	})
	if err != nil {
		return user, fmt.Errorf("can't update user. Err: %w", err)
	}

	return user, nil
}

// DeleteUser deletes the user with all its billboards
func (s *UserService) DeleteUser(ctx context.Context, storage repository.Storage, id int64) error {
	err := storage.InTx(ctx, func(storage repository.Storage) error {
		if _, err := s.GetUser(ctx, storage, id); err != nil {
			return err
		}
		return storage.User().DeleteUser(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("can't delete user. Err: %w", err)
	}

	return nil
}

func (s *UserService) hashPassword(raw string) (string, error) {
	raw, err := password.Validate(raw)
	if err != nil {
		return "", err
	}

	hash, err := s.hasher.Hash(raw)
	if err != nil {
		return "", fmt.Errorf("can't use this as password, Err: %w", err)
	}

	return hash, nil
}
