package config

import "time"

type ctxKey string

// UserKey holds the authenticated user attached by the auth middleware.
const UserKey ctxKey = "user"

const (
	DefaultCacheTime = time.Hour
	MinCacheTime     = time.Minute * 5
	MaxMemory        = 10 << 20 // 10 MB
)

const (
	AccessCookieName     = "accessToken"
	RefreshCookieName    = "refreshToken"
	AccessTokenDuration  = time.Minute * 30
	RefreshTokenDuration = time.Hour * 24 * 7
)
