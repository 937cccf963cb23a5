package ctrl

import (
	"context"
	"errors"
	"strings"

	"github.com/vidora/backend/internal/auth"
	"github.com/vidora/backend/internal/dto"
	"github.com/vidora/backend/internal/repo"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

// GenPair issues both tokens and durably records the refresh token as the
// only live one for the user. The tokens are valid only once this returns
// nil: the write is awaited, never fired and forgotten. Two concurrent
// rotations for one user race and the last persisted write wins; the losing
// refresh token is rejected on its next use.
func (c *Controller) GenPair(ctx context.Context, uid uuid.UUID) (dto.TokenPair, error) {
	const op = "auth.GenPair.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	var res dto.TokenPair
	access, err := c.au.NewAccess(ctx, uid)
	if err != nil {
		return res, err
	}

	refresh, err := c.au.NewRefresh(ctx, uid)
	if err != nil {
		return res, err
	}

	err = c.repo.SetRefreshToken(ctx, uid, refresh)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return res, ErrNotFound
		}
		return res, err
	}

	res.Access = access
	res.Refresh = refresh

	return res, nil
}

func (c *Controller) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	const op = "auth.Login.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	user, err := c.repo.GetUserByLogin(
		ctx,
		strings.ToLower(req.Email),
		strings.ToLower(req.Username),
	)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	err = c.au.ComparePasswords([]byte(user.Password), []byte(req.Password))
	if err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	pair, err := c.GenPair(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		User:         user,
		AccessToken:  pair.Access,
		RefreshToken: pair.Refresh,
	}, nil
}

// Refresh rotates the token pair. The presented token must both carry a
// valid signature and structurally equal the stored refresh token; a
// mismatch means it was already rotated away or cleared, so it is treated
// as reuse and rejected.
func (c *Controller) Refresh(ctx context.Context, presented string) (*dto.TokenPair, error) {
	const op = "auth.Refresh.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	claims, err := c.au.ParseRefresh(ctx, presented)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}

	stored, err := c.repo.GetRefreshToken(ctx, claims.UID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if stored == "" || stored != presented {
		zap.L().Info(
			"stale refresh token presented",
			zap.String("op", op),
			zap.String("uid", claims.UID.String()),
		)

		return nil, auth.ErrTokenRevoked
	}

	pair, err := c.GenPair(ctx, claims.UID)
	if err != nil {
		return nil, err
	}

	return &pair, nil
}

// Logout unsets the stored refresh token so no presented token can compare
// equal afterwards.
func (c *Controller) Logout(ctx context.Context, uid uuid.UUID) error {
	const op = "auth.Logout.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	err := c.repo.ClearRefreshToken(ctx, uid)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	return nil
}

func (c *Controller) ChangePassword(
	ctx context.Context,
	uid uuid.UUID,
	req *dto.ChangePasswordRequest,
) error {
	const op = "auth.ChangePassword.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	user, err := c.repo.GetUserByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	err = c.au.ComparePasswords([]byte(user.Password), []byte(req.OldPassword))
	if err != nil {
		return auth.ErrInvalidCredentials
	}

	hashed, err := c.au.Hash(req.NewPassword)
	if err != nil {
		return err
	}

	err = c.repo.UpdatePassword(ctx, uid, hashed)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	return nil
}
