package ctrl

import (
	"context"
	"errors"
	"fmt"

	"github.com/vidora/backend/internal/config"
	md "github.com/vidora/backend/internal/models"
	"github.com/vidora/backend/internal/repo"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
)

// GetChannelProfile builds the derived channel view. The result depends on
// the requesting identity (isSubscribed), so the cache key carries both
// sides; entries are short-lived because subscription edges are written by
// another service.
func (c *Controller) GetChannelProfile(
	ctx context.Context,
	username string,
	requesterID uuid.UUID,
) (*md.ChannelProfile, error) {
	const op = "channels.GetChannelProfile.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	cached := &md.ChannelProfile{}
	cacheKey := fmt.Sprintf(channelKey, username, requesterID)
	if err := c.cache.GetToStruct(ctx, cacheKey, cached); err == nil {
		return cached, nil
	}

	res, err := c.repo.GetChannelProfile(ctx, username, requesterID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	bytes, err := json.Marshal(res)
	if err == nil {
		c.cache.Set(ctx, config.MinCacheTime, cacheKey, bytes)
	}

	return res, nil
}

// GetWatchHistory returns the requesting user's history in stored order,
// each entry's owner flattened into a single object.
func (c *Controller) GetWatchHistory(
	ctx context.Context,
	uid uuid.UUID,
) ([]*md.HistoryVideo, error) {
	const op = "channels.GetWatchHistory.ctrl"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res, err := c.repo.GetWatchHistory(ctx, uid)
	if err != nil {
		return nil, err
	}

	return res, nil
}
