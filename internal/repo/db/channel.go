package db

import (
	"context"
	"database/sql"
	"errors"

	md "github.com/vidora/backend/internal/models"
	"github.com/vidora/backend/internal/repo"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
)

// GetChannelProfile computes the derived channel view: both subscription
// counts plus whether the requester subscribes to the channel.
func (r *Repository) GetChannelProfile(
	ctx context.Context,
	username string,
	requesterID uuid.UUID,
) (*md.ChannelProfile, error) {
	const op = "channels.GetChannelProfile.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res := &md.ChannelProfile{}
	err := r.conn.GetContext(ctx, res, channelProfileQ, username, requesterID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}

	return res, nil
}

// GetWatchHistory resolves the user's history in stored order, each video
// joined with its owner's public profile.
func (r *Repository) GetWatchHistory(
	ctx context.Context,
	userID uuid.UUID,
) ([]*md.HistoryVideo, error) {
	const op = "channels.GetWatchHistory.repo"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	res := make([]*md.HistoryVideo, 0, 16)
	err := r.conn.SelectContext(ctx, &res, watchHistoryQ, userID)
	if err != nil {
		return nil, err
	}

	return res, nil
}
