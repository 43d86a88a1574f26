package billboard

import (
	"context"
	"fmt"

	"github.com/nkiryanov/billboard/internal/models"
	"github.com/nkiryanov/billboard/internal/repository"
)

// Accessor to look up billboard owners
type userGetter interface {
	GetUser(ctx context.Context, storage repository.Storage, id int64) (models.User, error)
}

type BillboardService struct {
	users userGetter
}

func NewService(users userGetter) *BillboardService {
	return &BillboardService{users: users}
}

// GetArticle returns apperrors.ErrArticleNotFound if there is no billboard with the id
func (s *BillboardService) GetArticle(ctx context.Context, storage repository.Storage, id int64) (models.Billboard, error) {
	return storage.Billboard().GetBillboardByID(ctx, id)
}

// CreateArticle creates billboard owned by existing user
// Returns apperrors.ErrUserNotFound if owner does not exist
func (s *BillboardService) CreateArticle(ctx context.Context, storage repository.Storage, b models.NewBillboard) (models.Billboard, error) {
	var created models.Billboard

	err := storage.InTx(ctx, func(storage repository.Storage) error {
		if _, err := s.users.GetUser(ctx, storage, b.UserID); err != nil {
			return err
		}

		var err error
		created, err = storage.Billboard().CreateBillboard(ctx, repository.CreateBillboardParams{
			Topic:       b.Topic,
			Description: b.Description,
			UserID:      b.UserID,
		})
		return err
	})
	if err != nil {
		return created, fmt.Errorf("can't create article. Err: %w", err)
	}

	return created, nil
}

func (s *BillboardService) DeleteArticle(ctx context.Context, storage repository.Storage, id int64) error {
	err := storage.InTx(ctx, func(storage repository.Storage) error {
		if _, err := s.GetArticle(ctx, storage, id); err != nil {
			return err
		}
		return storage.Billboard().DeleteBillboard(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("can't delete article. Err: %w", err)
	}

	return nil
}
