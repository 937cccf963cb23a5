package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vidora/backend/internal/auth"
	"github.com/vidora/backend/internal/config"
	"github.com/vidora/backend/internal/ctrl"
	"github.com/vidora/backend/internal/hdl"
	"github.com/vidora/backend/internal/hdl/http/utils"
	md "github.com/vidora/backend/internal/models"
	metrics "github.com/vidora/backend/internal/observability/metrics/prometheus"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

type identityLoader interface {
	GetUserByID(ctx context.Context, uid uuid.UUID) (*md.User, error)
}

// Auth gates protected routes. The bearer credential comes from the access
// cookie first, then the Authorization header; on success the user's public
// profile is attached to the request context.
func Auth(au auth.Port, users identityLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				token := extractToken(r)
				if token == "" {
					utils.ErrResponse(w, http.StatusUnauthorized, hdl.ErrMissingToken)
					return
				}

				claims, err := au.ParseAccess(r.Context(), token)
				if err != nil {
					utils.ErrResponse(w, http.StatusUnauthorized, auth.ErrInvalidToken)
					return
				}

				user, err := users.GetUserByID(r.Context(), claims.UID)
				if err != nil {
					if errors.Is(err, ctrl.ErrNotFound) {
						utils.ErrResponse(w, http.StatusUnauthorized, auth.ErrInvalidToken)
						return
					}

					zap.L().Error("failed to load identity", zap.Error(err))
					utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
					return
				}

				ctx := context.WithValue(r.Context(), config.UserKey, user)
				next.ServeHTTP(w, r.WithContext(ctx))
			},
		)
	}
}

func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(config.AccessCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return ""
}

// UserFromCtx returns the identity attached by Auth.
func UserFromCtx(ctx context.Context) (*md.User, bool) {
	user, ok := ctx.Value(config.UserKey).(*md.User)
	return user, ok
}

type LoggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func NewLoggingResponseWriter(w http.ResponseWriter) *LoggingResponseWriter {
	return &LoggingResponseWriter{w, http.StatusOK}
}

func (lrw *LoggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func Prometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			s := time.Now()
			op := fmt.Sprintf("%s %s", r.Method, r.RequestURI)

			lrw := NewLoggingResponseWriter(w)
			next.ServeHTTP(lrw, r)
			metrics.ObserveRequest(time.Since(s), lrw.statusCode, op)
		},
	)
}

func Logger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				start := time.Now()
				lrw := NewLoggingResponseWriter(w)
				logger.Debug(
					"-->",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("remote", r.RemoteAddr),
				)

				next.ServeHTTP(lrw, r)

				logger.Info(
					"<--",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", lrw.statusCode),
					zap.Duration("duration", time.Since(start)),
					zap.String("remote", r.RemoteAddr),
				)
			},
		)
	}
}

func OT(next http.Handler) http.Handler {
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			span, ctx := opentracing.StartSpanFromContext(r.Context(), fmt.Sprintf("%s %s", r.Method, r.RequestURI))
			defer span.Finish()

			next.ServeHTTP(w, r.WithContext(ctx))
		},
	)
}
