package db

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/vidora/backend/internal/repo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetChannelProfile(t *testing.T) {
	r, mock := newTestRepo(t)
	ctx := context.Background()

	channelID := uuid.New()
	requesterID := uuid.New()

	profileColumns := []string{
		"id", "username", "email", "full_name", "avatar", "cover_image",
		"subscribers_count", "channels_subscribed_count", "is_subscribed",
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(channelProfileQ)).
			WithArgs("somechannel", requesterID).
			WillReturnRows(
				sqlmock.NewRows(profileColumns).
					AddRow(
						channelID, "somechannel", "chan@example.com", "Some Channel",
						"http://cdn/a.png", "http://cdn/c.png", int64(42), int64(3), true,
					),
			)

		res, err := r.GetChannelProfile(ctx, "somechannel", requesterID)
		require.NoError(t, err)
		assert.Equal(t, channelID, res.ID)
		assert.Equal(t, int64(42), res.SubscribersCount)
		assert.Equal(t, int64(3), res.ChannelsSubscribedCount)
		assert.True(t, res.IsSubscribed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(channelProfileQ)).
			WithArgs("ghost", requesterID).
			WillReturnError(sql.ErrNoRows)

		_, err := r.GetChannelProfile(ctx, "ghost", requesterID)
		assert.ErrorIs(t, err, repo.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("QueryError", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(channelProfileQ)).
			WithArgs("somechannel", requesterID).
			WillReturnError(errors.New("db error"))

		_, err := r.GetChannelProfile(ctx, "somechannel", requesterID)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_GetWatchHistory(t *testing.T) {
	r, mock := newTestRepo(t)
	ctx := context.Background()

	testUserID := uuid.New()
	firstID := uuid.New()
	secondID := uuid.New()
	ownerID := uuid.New()

	historyColumns := []string{
		"id", "video_file", "thumbnail", "title", "description", "duration", "views",
		"owner.id", "owner.username", "owner.full_name", "owner.avatar",
	}

	t.Run("SuccessKeepsOrder", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(watchHistoryQ)).
			WithArgs(testUserID).
			WillReturnRows(
				sqlmock.NewRows(historyColumns).
					AddRow(
						firstID, "http://cdn/v1.mp4", "http://cdn/t1.png",
						"first watched", "desc", 120.5, int64(10),
						ownerID, "alice", "Alice A", "http://cdn/alice.png",
					).
					AddRow(
						secondID, "http://cdn/v2.mp4", "http://cdn/t2.png",
						"second watched", "desc", 42.0, int64(5),
						ownerID, "alice", "Alice A", "http://cdn/alice.png",
					),
			)

		res, err := r.GetWatchHistory(ctx, testUserID)
		require.NoError(t, err)
		require.Len(t, res, 2)

		assert.Equal(t, firstID, res[0].ID)
		assert.Equal(t, "first watched", res[0].Title)
		assert.Equal(t, secondID, res[1].ID)

		assert.Equal(t, ownerID, res[0].Owner.ID)
		assert.Equal(t, "alice", res[0].Owner.Username)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("EmptyHistory", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(watchHistoryQ)).
			WithArgs(testUserID).
			WillReturnRows(sqlmock.NewRows(historyColumns))

		res, err := r.GetWatchHistory(ctx, testUserID)
		require.NoError(t, err)
		assert.Empty(t, res)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("QueryError", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(watchHistoryQ)).
			WithArgs(testUserID).
			WillReturnError(errors.New("db error"))

		_, err := r.GetWatchHistory(ctx, testUserID)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
