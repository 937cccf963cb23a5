package ctrl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vidora/backend/internal/config"
	"github.com/vidora/backend/internal/dto"
	md "github.com/vidora/backend/internal/models"
	"github.com/vidora/backend/internal/repo"
	"github.com/vidora/backend/internal/repo/s3"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

const (
	userCacheKey   = "user:%v"
	channelKey     = "channel:%s:req:%s"
	channelPattern = "channel:%s:*"
)

// CreateUser registers a new account. Media uploads happen after the
// uniqueness check; if the persist step fails afterwards, the uploaded
// objects are deleted best-effort so no orphaned remote assets remain.
func (c *Controller) CreateUser(
	ctx context.Context,
	req *dto.CreateUserRequest,
	avatar, cover *s3.UploadFileRequest,
) (*md.User, error) {
	const op = "users.CreateUser.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	req.Username = strings.ToLower(req.Username)
	req.Email = strings.ToLower(req.Email)

	_, err := c.repo.GetUserByLogin(ctx, req.Email, req.Username)
	if err == nil {
		return nil, ErrAlreadyExists
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	req.Password, err = c.au.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	uploadedAvatar, err := c.media.UploadFile(ctx, avatar)
	if err != nil {
		return nil, err
	}

	var uploadedCover s3.UploadedFile
	if cover != nil {
		uploadedCover, err = c.media.UploadFile(ctx, cover)
		if err != nil {
			c.deleteMedia(ctx, uploadedAvatar.ObjectID)
			return nil, err
		}
	}

	user, err := c.repo.CreateUser(ctx, req, uploadedAvatar.URL, uploadedCover.URL)
	if err != nil {
		c.deleteMedia(ctx, uploadedAvatar.ObjectID)
		if uploadedCover.ObjectID != "" {
			c.deleteMedia(ctx, uploadedCover.ObjectID)
		}

		if errors.Is(err, repo.ErrAlreadyExists) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}

	if c.smtp != nil {
		go func() {
			if err := c.smtp.SendWelcome(user.Email, user.FullName); err != nil {
				zap.L().Debug("failed to send welcome email", zap.Error(err))
			}
		}()
	}

	return user, nil
}

// deleteMedia is the compensating action for a failed persist: best-effort,
// not retried, errors logged only so the original failure reaches the caller.
func (c *Controller) deleteMedia(ctx context.Context, objectID string) {
	if err := c.media.Delete(ctx, objectID); err != nil {
		zap.L().Error(
			"failed to delete uploaded media during compensation",
			zap.String("object", objectID),
			zap.Error(err),
		)
	}
}

// GetUserByID returns the public profile, cache-aside. Secrets never enter
// the cache: password and refresh token are dropped by serialization.
func (c *Controller) GetUserByID(ctx context.Context, uid uuid.UUID) (*md.User, error) {
	const op = "users.GetUserByID.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	cached := &md.User{}
	cacheKey := fmt.Sprintf(userCacheKey, uid)
	if err := c.cache.GetToStruct(ctx, cacheKey, cached); err == nil {
		return cached, nil
	}

	res, err := c.repo.GetUserByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	bytes, err := json.Marshal(res)
	if err == nil {
		c.cache.Set(ctx, config.DefaultCacheTime, cacheKey, bytes)
	}

	return res, nil
}

func (c *Controller) UpdateAccount(
	ctx context.Context,
	uid uuid.UUID,
	req *dto.UpdateAccountRequest,
) (*md.User, error) {
	const op = "users.UpdateAccount.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	req.Email = strings.ToLower(req.Email)

	err := c.repo.UpdateAccount(ctx, uid, req)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		if errors.Is(err, repo.ErrAlreadyExists) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}

	res, err := c.repo.GetUserByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	c.invalidateUser(ctx, res)
	return res, nil
}

// UpdateAvatar uploads the replacement first, then persists the reference.
// The previous object is intentionally left in place: it may still be served
// from caches, and purging is a separate garbage-collection concern.
func (c *Controller) UpdateAvatar(
	ctx context.Context,
	uid uuid.UUID,
	file *s3.UploadFileRequest,
) (string, error) {
	const op = "users.UpdateAvatar.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	return c.updateMedia(ctx, uid, file, c.repo.UpdateAvatar)
}

func (c *Controller) UpdateCover(
	ctx context.Context,
	uid uuid.UUID,
	file *s3.UploadFileRequest,
) (string, error) {
	const op = "users.UpdateCover.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	return c.updateMedia(ctx, uid, file, c.repo.UpdateCover)
}

func (c *Controller) updateMedia(
	ctx context.Context,
	uid uuid.UUID,
	file *s3.UploadFileRequest,
	persist func(ctx context.Context, userID uuid.UUID, url string) error,
) (string, error) {
	uploaded, err := c.media.UploadFile(ctx, file)
	if err != nil {
		return "", err
	}

	err = persist(ctx, uid, uploaded.URL)
	if err != nil {
		c.deleteMedia(ctx, uploaded.ObjectID)
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}

	user, err := c.repo.GetUserByID(ctx, uid)
	if err == nil {
		c.invalidateUser(ctx, user)
	}

	return uploaded.URL, nil
}

func (c *Controller) invalidateUser(ctx context.Context, user *md.User) {
	c.cache.Delete(ctx, fmt.Sprintf(userCacheKey, user.ID))
	go c.cache.InvalidateKeysByPattern(ctx, fmt.Sprintf(channelPattern, user.Username))
}
