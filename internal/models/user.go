package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// User is the credential-store row. Password and the currently live refresh
// token never serialize into responses.
type User struct {
	ID           uuid.UUID      `db:"id"            json:"id"`
	Username     string         `db:"username"      json:"username"`
	Email        string         `db:"email"         json:"email"`
	FullName     string         `db:"full_name"     json:"fullName"`
	Password     string         `db:"password"      json:"-"`
	Avatar       string         `db:"avatar"        json:"avatar"`
	CoverImage   string         `db:"cover_image"   json:"coverImage"`
	RefreshToken sql.NullString `db:"refresh_token" json:"-"`
	CreatedAt    time.Time      `db:"created_at"    json:"createdAt"`
	UpdatedAt    time.Time      `db:"updated_at"    json:"updatedAt"`
}

type Video struct {
	ID          uuid.UUID `db:"id"           json:"id"`
	OwnerID     uuid.UUID `db:"owner_id"     json:"ownerId"`
	VideoFile   string    `db:"video_file"   json:"videoFile"`
	Thumbnail   string    `db:"thumbnail"    json:"thumbnail"`
	Title       string    `db:"title"        json:"title"`
	Description string    `db:"description"  json:"description"`
	Duration    float64   `db:"duration"     json:"duration"`
	Views       int64     `db:"views"        json:"views"`
	IsPublished bool      `db:"is_published" json:"isPublished"`
	CreatedAt   time.Time `db:"created_at"   json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at"   json:"updatedAt"`
}

// Subscription is the "subscriber follows channel" edge. The pair is unique
// at the schema level so derived counts stay correct.
type Subscription struct {
	ID           uint64    `db:"id"            json:"id"`
	SubscriberID uuid.UUID `db:"subscriber_id" json:"subscriberId"`
	ChannelID    uuid.UUID `db:"channel_id"    json:"channelId"`
	CreatedAt    time.Time `db:"created_at"    json:"createdAt"`
}
