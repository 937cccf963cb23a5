package db

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/vidora/backend/internal/dto"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

// UpdateAccount modifies only the fields present in the request.
func (r *Repository) UpdateAccount(
	ctx context.Context,
	userID uuid.UUID,
	req *dto.UpdateAccountRequest,
) error {
	const op = "users.UpdateAccount.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	query := sq.Update("users").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": userID}).
		PlaceholderFormat(sq.Dollar)

	if req.FullName != "" {
		query = query.Set("full_name", req.FullName)
	}

	if req.Email != "" {
		query = query.Set("email", req.Email)
	}

	updateSql, args, err := query.ToSql()
	if err != nil {
		zap.L().Error("failed to build update query", zap.String("op", op), zap.Error(err))
		return err
	}

	return r.execForUser(ctx, updateSql, args...)
}
