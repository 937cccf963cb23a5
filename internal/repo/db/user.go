package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vidora/backend/internal/dto"
	md "github.com/vidora/backend/internal/models"
	"github.com/vidora/backend/internal/repo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

const uniqueViolation = "23505"

func (r *Repository) GetUserByID(ctx context.Context, userID uuid.UUID) (*md.User, error) {
	const op = "users.GetUserByID.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res := &md.User{}
	err := r.conn.GetContext(ctx, res, userGetByIDQ, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}

	return res, nil
}

// GetUserByLogin matches the row by email or username, whichever is set.
func (r *Repository) GetUserByLogin(ctx context.Context, email, username string) (*md.User, error) {
	const op = "users.GetUserByLogin.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res := &md.User{}
	err := r.conn.GetContext(ctx, res, userGetByLoginQ, email, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}

	return res, nil
}

func (r *Repository) CreateUser(
	ctx context.Context,
	req *dto.CreateUserRequest,
	avatar, coverImage string,
) (*md.User, error) {
	const op = "users.CreateUser.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res := &md.User{}
	err := r.conn.GetContext(
		ctx,
		res,
		userCreateQ,
		req.Username,
		req.Email,
		req.FullName,
		req.Password,
		avatar,
		coverImage,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, repo.ErrAlreadyExists
		}

		zap.L().Error("failed to create user", zap.String("op", op), zap.Error(err))
		return nil, err
	}

	return res, nil
}

// SetRefreshToken overwrites the single live refresh token for the user.
// Rotation is complete only after this returns nil.
func (r *Repository) SetRefreshToken(ctx context.Context, userID uuid.UUID, token string) error {
	const op = "users.SetRefreshToken.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	return r.execForUser(ctx, userSetRefreshTokenQ, token, userID)
}

func (r *Repository) GetRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	const op = "users.GetRefreshToken.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	var token sql.NullString
	err := r.conn.GetContext(ctx, &token, userGetRefreshTokenQ, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", repo.ErrNotFound
		}
		return "", err
	}

	// NULL means logged out; the caller treats "" as matching nothing.
	return token.String, nil
}

func (r *Repository) ClearRefreshToken(ctx context.Context, userID uuid.UUID) error {
	const op = "users.ClearRefreshToken.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	return r.execForUser(ctx, userClearRefreshTokenQ, userID)
}

func (r *Repository) UpdatePassword(ctx context.Context, userID uuid.UUID, hashed string) error {
	const op = "users.UpdatePassword.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	return r.execForUser(ctx, userUpdatePasswordQ, hashed, userID)
}

func (r *Repository) UpdateAvatar(ctx context.Context, userID uuid.UUID, url string) error {
	const op = "users.UpdateAvatar.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	return r.execForUser(ctx, userUpdateAvatarQ, url, userID)
}

func (r *Repository) UpdateCover(ctx context.Context, userID uuid.UUID, url string) error {
	const op = "users.UpdateCover.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	return r.execForUser(ctx, userUpdateCoverQ, url, userID)
}

func (r *Repository) execForUser(ctx context.Context, query string, args ...any) error {
	res, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repo.ErrAlreadyExists
		}
		return err
	}

	aff, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if aff == 0 {
		return repo.ErrNotFound
	}

	return nil
}
