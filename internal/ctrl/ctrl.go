package ctrl

import (
	"context"
	"io"
	"time"

	"github.com/vidora/backend/internal/auth"
	"github.com/vidora/backend/internal/dto"
	md "github.com/vidora/backend/internal/models"
	"github.com/vidora/backend/internal/repo/s3"
	"github.com/google/uuid"
)

type AppRepo interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (*md.User, error)
	GetUserByLogin(ctx context.Context, email, username string) (*md.User, error)
	CreateUser(ctx context.Context, req *dto.CreateUserRequest, avatar, coverImage string) (*md.User, error)
	UpdateAccount(ctx context.Context, userID uuid.UUID, req *dto.UpdateAccountRequest) error
	UpdateAvatar(ctx context.Context, userID uuid.UUID, url string) error
	UpdateCover(ctx context.Context, userID uuid.UUID, url string) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, hashed string) error
	SetRefreshToken(ctx context.Context, userID uuid.UUID, token string) error
	GetRefreshToken(ctx context.Context, userID uuid.UUID) (string, error)
	ClearRefreshToken(ctx context.Context, userID uuid.UUID) error
	GetChannelProfile(ctx context.Context, username string, requesterID uuid.UUID) (*md.ChannelProfile, error)
	GetWatchHistory(ctx context.Context, userID uuid.UUID) ([]*md.HistoryVideo, error)
}

type AppCtrl interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest, avatar, cover *s3.UploadFileRequest) (*md.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, presented string) (*dto.TokenPair, error)
	Logout(ctx context.Context, uid uuid.UUID) error
	ChangePassword(ctx context.Context, uid uuid.UUID, req *dto.ChangePasswordRequest) error
	GetUserByID(ctx context.Context, uid uuid.UUID) (*md.User, error)
	UpdateAccount(ctx context.Context, uid uuid.UUID, req *dto.UpdateAccountRequest) (*md.User, error)
	UpdateAvatar(ctx context.Context, uid uuid.UUID, file *s3.UploadFileRequest) (string, error)
	UpdateCover(ctx context.Context, uid uuid.UUID, file *s3.UploadFileRequest) (string, error)
	GetChannelProfile(ctx context.Context, username string, requesterID uuid.UUID) (*md.ChannelProfile, error)
	GetWatchHistory(ctx context.Context, uid uuid.UUID) ([]*md.HistoryVideo, error)
}

type CacheService interface {
	io.Closer
	GetToStruct(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, t time.Duration, key string, val any)
	Delete(ctx context.Context, key string)
	InvalidateKeysByPattern(ctx context.Context, pattern string)
}

type MediaStore interface {
	UploadFile(ctx context.Context, req *s3.UploadFileRequest) (s3.UploadedFile, error)
	Delete(ctx context.Context, objectID string) error
}

type EmailService interface {
	SendWelcome(email, name string) error
}

type Controller struct {
	au    auth.Port
	repo  AppRepo
	cache CacheService
	media MediaStore
	smtp  EmailService
}

func New(
	au auth.Port,
	repo AppRepo,
	cache CacheService,
	media MediaStore,
	smtp EmailService,
) *Controller {
	return &Controller{
		au:    au,
		repo:  repo,
		cache: cache,
		media: media,
		smtp:  smtp,
	}
}
