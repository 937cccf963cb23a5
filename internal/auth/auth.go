package auth

import (
	"context"
	"time"

	"github.com/vidora/backend/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Port interface {
	NewAccess(ctx context.Context, uid uuid.UUID) (string, error)
	NewRefresh(ctx context.Context, uid uuid.UUID) (string, error)
	ParseAccess(ctx context.Context, tokenStr string) (Claims, error)
	ParseRefresh(ctx context.Context, tokenStr string) (Claims, error)
	Hash(pswd string) (string, error)
	ComparePasswords(hashed, pswd []byte) error
}

// Core signs and verifies both token classes. Access and refresh tokens use
// independent secrets so one class never validates as the other.
type Core struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
}

type Claims struct {
	UID uuid.UUID `json:"uid"`
	jwt.RegisteredClaims
}

func New(conf config.AuthConfig) *Core {
	return &Core{
		accessSecret:  []byte(conf.AccessSecret),
		refreshSecret: []byte(conf.RefreshSecret),
		issuer:        conf.Issuer,
	}
}

func (c *Core) Hash(pswd string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(pswd), bcrypt.DefaultCost)
	return string(bytes), err
}

func (c *Core) ComparePasswords(hashed, pswd []byte) error {
	if err := bcrypt.CompareHashAndPassword(hashed, pswd); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func (c *Core) NewAccess(ctx context.Context, uid uuid.UUID) (string, error) {
	const op = "auth.NewAccess.jwt"
	span, _ := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	return c.newToken(uid, c.accessSecret, config.AccessTokenDuration)
}

func (c *Core) NewRefresh(ctx context.Context, uid uuid.UUID) (string, error) {
	const op = "auth.NewRefresh.jwt"
	span, _ := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	return c.newToken(uid, c.refreshSecret, config.RefreshTokenDuration)
}

func (c *Core) newToken(uid uuid.UUID, secret []byte, d time.Duration) (string, error) {
	signed, err := jwt.NewWithClaims(
		jwt.SigningMethodHS256, &Claims{
			UID: uid,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(d)),
				IssuedAt:  jwt.NewNumericDate(time.Now()),
				Issuer:    c.issuer,
			},
		},
	).SignedString(secret)
	if err != nil {
		zap.L().Error(
			ErrWhileCreatingToken.Error(),
			zap.Error(err),
		)

		return "", ErrWhileCreatingToken
	}

	return signed, nil
}

func (c *Core) ParseAccess(ctx context.Context, tokenStr string) (Claims, error) {
	const op = "auth.ParseAccess.jwt"
	span, _ := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	return c.parseClaims(tokenStr, c.accessSecret)
}

func (c *Core) ParseRefresh(ctx context.Context, tokenStr string) (Claims, error) {
	const op = "auth.ParseRefresh.jwt"
	span, _ := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	return c.parseClaims(tokenStr, c.refreshSecret)
}

func (c *Core) parseClaims(tokenStr string, secret []byte) (Claims, error) {
	claims := Claims{}
	token, err := jwt.ParseWithClaims(
		tokenStr, &claims, func(token *jwt.Token) (any, error) {
			if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, ErrUnexpectedSignMethod
			}

			return secret, nil
		},
	)
	if err != nil {
		zap.L().Debug(
			"Failed to parse claims",
			zap.Error(err),
		)

		return claims, ErrInvalidToken
	}

	if !token.Valid {
		return claims, ErrInvalidToken
	}

	return claims, nil
}
