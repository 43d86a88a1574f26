package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nkiryanov/billboard/internal/apperrors"
	"github.com/nkiryanov/billboard/internal/models"
	"github.com/nkiryanov/billboard/internal/repository"
)

type BillboardRepo struct {
	DB DBTX
}

const createBillboard = `-- name: CreateBillboard
INSERT INTO billboards (topic, description, user_id)
VALUES ($1, $2, $3)
RETURNING id, topic, description, user_id, creation_time
`

func (r *BillboardRepo) CreateBillboard(ctx context.Context, arg repository.CreateBillboardParams) (models.Billboard, error) {
	rows, _ := r.DB.Query(ctx, createBillboard, arg.Topic, arg.Description, arg.UserID)
	b, err := pgx.CollectOneRow(rows, rowToBillboard)

	var pgErr *pgconn.PgError
	switch {
	case err == nil:
		return b, nil
	case errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation:
		return b, apperrors.ErrArticleAlreadyExists
	case errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation:
		// The owner has gone between lookup and insert
		return b, apperrors.ErrUserNotFound
	default:
		return b, fmt.Errorf("db error: %w", err)
	}
}

const getBillboardByID = `-- name: GetBillboardByID
SELECT id, topic, description, user_id, creation_time FROM billboards
WHERE id = $1
`

func (r *BillboardRepo) GetBillboardByID(ctx context.Context, id int64) (models.Billboard, error) {
	rows, _ := r.DB.Query(ctx, getBillboardByID, id)
	b, err := pgx.CollectOneRow(rows, rowToBillboard)

	switch {
	case err == nil:
		return b, nil
	case errors.Is(err, pgx.ErrNoRows):
		return b, apperrors.ErrArticleNotFound
	default:
		return b, fmt.Errorf("db error: %w", err)
	}
}

const deleteBillboard = `-- name: DeleteBillboard
DELETE FROM billboards
WHERE id = $1
`

func (r *BillboardRepo) DeleteBillboard(ctx context.Context, id int64) error {
	tag, err := r.DB.Exec(ctx, deleteBillboard, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrArticleNotFound
	}

	return nil
}

func rowToBillboard(row pgx.CollectableRow) (models.Billboard, error) {
	var b models.Billboard
	err := row.Scan(&b.ID, &b.Topic, &b.Description, &b.UserID, &b.CreatedAt)
	return b, err
}
