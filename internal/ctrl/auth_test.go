package ctrl

import (
	"context"
	"errors"
	"testing"

	"github.com/vidora/backend/internal/auth"
	"github.com/vidora/backend/internal/dto"
	"github.com/vidora/backend/internal/models"
	"github.com/vidora/backend/internal/repo"
	"github.com/vidora/backend/tests/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestController_GenPair(t *testing.T) {
	ctrlMock := gomock.NewController(t)
	defer ctrlMock.Finish()

	mockAuth := mocks.NewMockPort(ctrlMock)
	mockRepo := mocks.NewMockAppRepo(ctrlMock)
	mockCache := mocks.NewMockCacheService(ctrlMock)
	mockMedia := mocks.NewMockMediaStore(ctrlMock)

	ctx := context.Background()
	ctrl := New(mockAuth, mockRepo, mockCache, mockMedia, nil)

	testUserID := uuid.New()

	tests := []struct {
		name     string
		setup    func()
		expected dto.TokenPair
		wantErr  bool
		err      error
	}{
		{
			name: "Success",
			setup: func() {
				mockAuth.EXPECT().
					NewAccess(gomock.Any(), testUserID).
					Return("access-token", nil)
				mockAuth.EXPECT().
					NewRefresh(gomock.Any(), testUserID).
					Return("refresh-token", nil)
				mockRepo.EXPECT().
					SetRefreshToken(gomock.Any(), testUserID, "refresh-token").
					Return(nil)
			},
			expected: dto.TokenPair{Access: "access-token", Refresh: "refresh-token"},
			wantErr:  false,
		},
		{
			name: "AccessTokenError",
			setup: func() {
				mockAuth.EXPECT().
					NewAccess(gomock.Any(), testUserID).
					Return("", auth.ErrWhileCreatingToken)
			},
			wantErr: true,
			err:     auth.ErrWhileCreatingToken,
		},
		{
			name: "RefreshTokenError",
			setup: func() {
				mockAuth.EXPECT().
					NewAccess(gomock.Any(), testUserID).
					Return("access-token", nil)
				mockAuth.EXPECT().
					NewRefresh(gomock.Any(), testUserID).
					Return("", auth.ErrWhileCreatingToken)
			},
			wantErr: true,
			err:     auth.ErrWhileCreatingToken,
		},
		{
			name: "PersistNotFound",
			setup: func() {
				mockAuth.EXPECT().
					NewAccess(gomock.Any(), testUserID).
					Return("access-token", nil)
				mockAuth.EXPECT().
					NewRefresh(gomock.Any(), testUserID).
					Return("refresh-token", nil)
				mockRepo.EXPECT().
					SetRefreshToken(gomock.Any(), testUserID, "refresh-token").
					Return(repo.ErrNotFound)
			},
			wantErr: true,
			err:     ErrNotFound,
		},
		{
			name: "PersistError",
			setup: func() {
				mockAuth.EXPECT().
					NewAccess(gomock.Any(), testUserID).
					Return("access-token", nil)
				mockAuth.EXPECT().
					NewRefresh(gomock.Any(), testUserID).
					Return("refresh-token", nil)
				mockRepo.EXPECT().
					SetRefreshToken(gomock.Any(), testUserID, "refresh-token").
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup()
			}

			result, err := ctrl.GenPair(ctx, testUserID)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.err != nil {
					assert.ErrorIs(t, err, tt.err)
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestController_Login(t *testing.T) {
	ctrlMock := gomock.NewController(t)
	defer ctrlMock.Finish()

	mockAuth := mocks.NewMockPort(ctrlMock)
	mockRepo := mocks.NewMockAppRepo(ctrlMock)
	mockCache := mocks.NewMockCacheService(ctrlMock)
	mockMedia := mocks.NewMockMediaStore(ctrlMock)

	ctx := context.Background()
	ctrl := New(mockAuth, mockRepo, mockCache, mockMedia, nil)

	testUserID := uuid.New()
	testUser := &models.User{
		ID:       testUserID,
		Email:    "test@example.com",
		Username: "tester",
		Password: "$2a$10$hashedpassword",
	}

	testRequest := &dto.LoginRequest{
		Email:    "Test@Example.com",
		Password: "validpassword123!",
	}

	tests := []struct {
		name    string
		setup   func()
		input   *dto.LoginRequest
		wantErr bool
		err     error
	}{
		{
			name: "Success",
			setup: func() {
				mockRepo.EXPECT().
					GetUserByLogin(gomock.Any(), "test@example.com", "").
					Return(testUser, nil)
				mockAuth.EXPECT().
					ComparePasswords([]byte(testUser.Password), []byte(testRequest.Password)).
					Return(nil)
				mockAuth.EXPECT().
					NewAccess(gomock.Any(), testUserID).
					Return("access-token", nil)
				mockAuth.EXPECT().
					NewRefresh(gomock.Any(), testUserID).
					Return("refresh-token", nil)
				mockRepo.EXPECT().
					SetRefreshToken(gomock.Any(), testUserID, "refresh-token").
					Return(nil)
			},
			input:   testRequest,
			wantErr: false,
		},
		{
			name: "UserNotFound",
			setup: func() {
				mockRepo.EXPECT().
					GetUserByLogin(gomock.Any(), "test@example.com", "").
					Return(nil, repo.ErrNotFound)
			},
			input:   testRequest,
			wantErr: true,
			err:     ErrNotFound,
		},
		{
			name: "RepositoryError",
			setup: func() {
				mockRepo.EXPECT().
					GetUserByLogin(gomock.Any(), "test@example.com", "").
					Return(nil, errors.New("db error"))
			},
			input:   testRequest,
			wantErr: true,
		},
		{
			name: "InvalidCredentials",
			setup: func() {
				mockRepo.EXPECT().
					GetUserByLogin(gomock.Any(), "test@example.com", "").
					Return(testUser, nil)
				mockAuth.EXPECT().
					ComparePasswords([]byte(testUser.Password), []byte(testRequest.Password)).
					Return(auth.ErrInvalidCredentials)
			},
			input:   testRequest,
			wantErr: true,
			err:     auth.ErrInvalidCredentials,
		},
		{
			name: "TokenGenerationError",
			setup: func() {
				mockRepo.EXPECT().
					GetUserByLogin(gomock.Any(), "test@example.com", "").
					Return(testUser, nil)
				mockAuth.EXPECT().
					ComparePasswords([]byte(testUser.Password), []byte(testRequest.Password)).
					Return(nil)
				mockAuth.EXPECT().
					NewAccess(gomock.Any(), testUserID).
					Return("", errors.New("token error"))
			},
			input:   testRequest,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup()
			}

			result, err := ctrl.Login(ctx, tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.err != nil {
					assert.ErrorIs(t, err, tt.err)
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, testUser, result.User)
				assert.Equal(t, "access-token", result.AccessToken)
				assert.Equal(t, "refresh-token", result.RefreshToken)
			}
		})
	}
}

func TestController_Refresh(t *testing.T) {
	ctrlMock := gomock.NewController(t)
	defer ctrlMock.Finish()

	mockAuth := mocks.NewMockPort(ctrlMock)
	mockRepo := mocks.NewMockAppRepo(ctrlMock)
	mockCache := mocks.NewMockCacheService(ctrlMock)
	mockMedia := mocks.NewMockMediaStore(ctrlMock)

	ctx := context.Background()
	ctrl := New(mockAuth, mockRepo, mockCache, mockMedia, nil)

	testUserID := uuid.New()
	presented := "presented-refresh-token"
	testClaims := auth.Claims{UID: testUserID}

	tests := []struct {
		name     string
		setup    func()
		expected *dto.TokenPair
		wantErr  bool
		err      error
	}{
		{
			name: "Success",
			setup: func() {
				mockAuth.EXPECT().
					ParseRefresh(gomock.Any(), presented).
					Return(testClaims, nil)
				mockRepo.EXPECT().
					GetRefreshToken(gomock.Any(), testUserID).
					Return(presented, nil)
				mockAuth.EXPECT().
					NewAccess(gomock.Any(), testUserID).
					Return("new-access-token", nil)
				mockAuth.EXPECT().
					NewRefresh(gomock.Any(), testUserID).
					Return("new-refresh-token", nil)
				mockRepo.EXPECT().
					SetRefreshToken(gomock.Any(), testUserID, "new-refresh-token").
					Return(nil)
			},
			expected: &dto.TokenPair{Access: "new-access-token", Refresh: "new-refresh-token"},
			wantErr:  false,
		},
		{
			name: "InvalidToken",
			setup: func() {
				mockAuth.EXPECT().
					ParseRefresh(gomock.Any(), presented).
					Return(auth.Claims{}, auth.ErrInvalidToken)
			},
			wantErr: true,
			err:     auth.ErrInvalidToken,
		},
		{
			name: "LoggedOut",
			setup: func() {
				mockAuth.EXPECT().
					ParseRefresh(gomock.Any(), presented).
					Return(testClaims, nil)
				mockRepo.EXPECT().
					GetRefreshToken(gomock.Any(), testUserID).
					Return("", nil)
			},
			wantErr: true,
			err:     auth.ErrTokenRevoked,
		},
		{
			name: "RotatedAway",
			setup: func() {
				mockAuth.EXPECT().
					ParseRefresh(gomock.Any(), presented).
					Return(testClaims, nil)
				mockRepo.EXPECT().
					GetRefreshToken(gomock.Any(), testUserID).
					Return("some-newer-refresh-token", nil)
			},
			wantErr: true,
			err:     auth.ErrTokenRevoked,
		},
		{
			name: "UserNotFound",
			setup: func() {
				mockAuth.EXPECT().
					ParseRefresh(gomock.Any(), presented).
					Return(testClaims, nil)
				mockRepo.EXPECT().
					GetRefreshToken(gomock.Any(), testUserID).
					Return("", repo.ErrNotFound)
			},
			wantErr: true,
			err:     ErrNotFound,
		},
		{
			name: "RepositoryError",
			setup: func() {
				mockAuth.EXPECT().
					ParseRefresh(gomock.Any(), presented).
					Return(testClaims, nil)
				mockRepo.EXPECT().
					GetRefreshToken(gomock.Any(), testUserID).
					Return("", errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup()
			}

			result, err := ctrl.Refresh(ctx, presented)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.err != nil {
					assert.ErrorIs(t, err, tt.err)
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestController_Logout(t *testing.T) {
	ctrlMock := gomock.NewController(t)
	defer ctrlMock.Finish()

	mockAuth := mocks.NewMockPort(ctrlMock)
	mockRepo := mocks.NewMockAppRepo(ctrlMock)
	mockCache := mocks.NewMockCacheService(ctrlMock)
	mockMedia := mocks.NewMockMediaStore(ctrlMock)

	ctx := context.Background()
	ctrl := New(mockAuth, mockRepo, mockCache, mockMedia, nil)

	testUserID := uuid.New()

	tests := []struct {
		name    string
		setup   func()
		wantErr bool
		err     error
	}{
		{
			name: "Success",
			setup: func() {
				mockRepo.EXPECT().
					ClearRefreshToken(gomock.Any(), testUserID).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "UserNotFound",
			setup: func() {
				mockRepo.EXPECT().
					ClearRefreshToken(gomock.Any(), testUserID).
					Return(repo.ErrNotFound)
			},
			wantErr: true,
			err:     ErrNotFound,
		},
		{
			name: "RepositoryError",
			setup: func() {
				mockRepo.EXPECT().
					ClearRefreshToken(gomock.Any(), testUserID).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup()
			}

			err := ctrl.Logout(ctx, testUserID)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.err != nil {
					assert.ErrorIs(t, err, tt.err)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestController_ChangePassword(t *testing.T) {
	ctrlMock := gomock.NewController(t)
	defer ctrlMock.Finish()

	mockAuth := mocks.NewMockPort(ctrlMock)
	mockRepo := mocks.NewMockAppRepo(ctrlMock)
	mockCache := mocks.NewMockCacheService(ctrlMock)
	mockMedia := mocks.NewMockMediaStore(ctrlMock)

	ctx := context.Background()
	ctrl := New(mockAuth, mockRepo, mockCache, mockMedia, nil)

	testUserID := uuid.New()
	testUser := &models.User{
		ID:       testUserID,
		Password: "$2a$10$hashedpassword",
	}
	testRequest := &dto.ChangePasswordRequest{
		OldPassword: "old-password",
		NewPassword: "new-password",
	}

	tests := []struct {
		name    string
		setup   func()
		wantErr bool
		err     error
	}{
		{
			name: "Success",
			setup: func() {
				mockRepo.EXPECT().
					GetUserByID(gomock.Any(), testUserID).
					Return(testUser, nil)
				mockAuth.EXPECT().
					ComparePasswords([]byte(testUser.Password), []byte(testRequest.OldPassword)).
					Return(nil)
				mockAuth.EXPECT().
					Hash(testRequest.NewPassword).
					Return("$2a$10$newhashedpassword", nil)
				mockRepo.EXPECT().
					UpdatePassword(gomock.Any(), testUserID, "$2a$10$newhashedpassword").
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "UserNotFound",
			setup: func() {
				mockRepo.EXPECT().
					GetUserByID(gomock.Any(), testUserID).
					Return(nil, repo.ErrNotFound)
			},
			wantErr: true,
			err:     ErrNotFound,
		},
		{
			name: "WrongOldPassword",
			setup: func() {
				mockRepo.EXPECT().
					GetUserByID(gomock.Any(), testUserID).
					Return(testUser, nil)
				mockAuth.EXPECT().
					ComparePasswords([]byte(testUser.Password), []byte(testRequest.OldPassword)).
					Return(auth.ErrInvalidCredentials)
			},
			wantErr: true,
			err:     auth.ErrInvalidCredentials,
		},
		{
			name: "UpdateError",
			setup: func() {
				mockRepo.EXPECT().
					GetUserByID(gomock.Any(), testUserID).
					Return(testUser, nil)
				mockAuth.EXPECT().
					ComparePasswords([]byte(testUser.Password), []byte(testRequest.OldPassword)).
					Return(nil)
				mockAuth.EXPECT().
					Hash(testRequest.NewPassword).
					Return("$2a$10$newhashedpassword", nil)
				mockRepo.EXPECT().
					UpdatePassword(gomock.Any(), testUserID, "$2a$10$newhashedpassword").
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup()
			}

			err := ctrl.ChangePassword(ctx, testUserID, testRequest)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.err != nil {
					assert.ErrorIs(t, err, tt.err)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
