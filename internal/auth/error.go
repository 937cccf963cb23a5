package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	// ErrTokenRevoked indicates a refresh token that no longer matches the
	// stored one, i.e. it was rotated away or cleared on logout.
	ErrTokenRevoked = errors.New("token revoked")

	ErrWhileCreatingToken   = errors.New("error while creating token")
	ErrUnexpectedSignMethod = errors.New("unexpected signing method")
)
