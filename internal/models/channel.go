package models

import (
	"github.com/google/uuid"
)

// ChannelProfile is a derived read model, not a stored row. IsSubscribed is
// computed against the requesting identity.
type ChannelProfile struct {
	ID                      uuid.UUID `db:"id"                          json:"id"`
	Username                string    `db:"username"                    json:"username"`
	Email                   string    `db:"email"                       json:"email"`
	FullName                string    `db:"full_name"                   json:"fullName"`
	Avatar                  string    `db:"avatar"                      json:"avatar"`
	CoverImage              string    `db:"cover_image"                 json:"coverImage"`
	SubscribersCount        int64     `db:"subscribers_count"           json:"subscribersCount"`
	ChannelsSubscribedCount int64     `db:"channels_subscribed_count"   json:"channelsSubscribedToCount"`
	IsSubscribed            bool      `db:"is_subscribed"               json:"isSubscribed"`
}

// VideoOwner is the public subset of a video owner's profile.
type VideoOwner struct {
	ID       uuid.UUID `db:"id"        json:"id"`
	Username string    `db:"username"  json:"username"`
	FullName string    `db:"full_name" json:"fullName"`
	Avatar   string    `db:"avatar"    json:"avatar"`
}

// HistoryVideo is one watch-history entry with its owner flattened into a
// single object.
type HistoryVideo struct {
	ID          uuid.UUID  `db:"id"           json:"id"`
	VideoFile   string     `db:"video_file"   json:"videoFile"`
	Thumbnail   string     `db:"thumbnail"    json:"thumbnail"`
	Title       string     `db:"title"        json:"title"`
	Description string     `db:"description"  json:"description"`
	Duration    float64    `db:"duration"     json:"duration"`
	Views       int64      `db:"views"        json:"views"`
	Owner       VideoOwner `db:"owner"        json:"owner"`
}
