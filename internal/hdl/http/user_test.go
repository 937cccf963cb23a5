package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vidora/backend/internal/config"
	"github.com/vidora/backend/internal/ctrl"
	"github.com/vidora/backend/internal/hdl"
	"github.com/vidora/backend/internal/hdl/http/utils"
	"github.com/vidora/backend/internal/hdl/validation"
	md "github.com/vidora/backend/internal/models"
	"github.com/vidora/backend/internal/repo/s3"
	"github.com/vidora/backend/tests/mocks"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type multipartSpec struct {
	fields map[string]string
	files  map[string][]byte
}

func buildMultipart(t *testing.T, spec multipartSpec) (io.Reader, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for name, value := range spec.fields {
		require.NoError(t, w.WriteField(name, value))
	}

	for name, content := range spec.files {
		part, err := w.CreateFormFile(name, name+".png")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func TestHandler_RegisterUser(t *testing.T) {
	const uri = "/api/v1/users/register"
	mock := gomock.NewController(t)
	defer mock.Finish()

	testErr := errors.New("testErr")
	mctrl := mocks.NewMockAppCtrl(mock)
	mauth := mocks.NewMockPort(mock)
	h := New(mauth, mctrl, "test")

	validFields := map[string]string{
		"fullName": "Test User",
		"email":    "example@mail.com",
		"username": "tester",
		"password": "password",
	}

	testUser := &md.User{ID: uuid.New(), Username: "tester", Email: "example@mail.com"}

	tests := []struct {
		name       string
		status     int
		spec       multipartSpec
		expect     func()
		assertions func(r *httptest.ResponseRecorder)
	}{
		{
			name:   "ErrMissingFullName",
			status: http.StatusBadRequest,
			spec: multipartSpec{
				fields: map[string]string{
					"email":    "example@mail.com",
					"username": "tester",
					"password": "password",
				},
				files: map[string][]byte{"avatar": []byte("img")},
			},
			expect: func() {},
			assertions: func(r *httptest.ResponseRecorder) {
				res := &utils.ErrorsResponse{}
				err := json.NewDecoder(r.Result().Body).Decode(res)
				assert.Nil(t, err)
				assert.Equal(t, validation.ErrFullNameIsRequired.Error(), res.Errors[0])
			},
		},
		{
			name:   "ErrMissingAvatar",
			status: http.StatusBadRequest,
			spec: multipartSpec{
				fields: validFields,
			},
			expect: func() {},
			assertions: func(r *httptest.ResponseRecorder) {
				res := &utils.ErrorsResponse{}
				err := json.NewDecoder(r.Result().Body).Decode(res)
				assert.Nil(t, err)
				assert.Equal(t, ErrAvatarFileIsRequired.Error(), res.Errors[0])
			},
		},
		{
			name:   "StatusConflict",
			status: http.StatusConflict,
			spec: multipartSpec{
				fields: validFields,
				files:  map[string][]byte{"avatar": []byte("img")},
			},
			expect: func() {
				mctrl.EXPECT().
					CreateUser(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Nil()).
					Return(nil, ctrl.ErrAlreadyExists)
			},
			assertions: func(r *httptest.ResponseRecorder) {
				res := &utils.ErrorsResponse{}
				err := json.NewDecoder(r.Result().Body).Decode(res)
				assert.Nil(t, err)
				assert.Equal(t, ctrl.ErrAlreadyExists.Error(), res.Errors[0])
			},
		},
		{
			name:   "InternalError",
			status: http.StatusInternalServerError,
			spec: multipartSpec{
				fields: validFields,
				files:  map[string][]byte{"avatar": []byte("img")},
			},
			expect: func() {
				mctrl.EXPECT().
					CreateUser(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Nil()).
					Return(nil, testErr)
			},
			assertions: func(r *httptest.ResponseRecorder) {
				res := &utils.ErrorsResponse{}
				err := json.NewDecoder(r.Result().Body).Decode(res)
				assert.Nil(t, err)
				assert.Equal(t, hdl.ErrInternal.Error(), res.Errors[0])
			},
		},
		{
			name:   "Success",
			status: http.StatusCreated,
			spec: multipartSpec{
				fields: validFields,
				files:  map[string][]byte{"avatar": []byte("img")},
			},
			expect: func() {
				mctrl.EXPECT().
					CreateUser(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Nil()).
					DoAndReturn(
						func(_ context.Context, req any, avatar *s3.UploadFileRequest, _ *s3.UploadFileRequest) (*md.User, error) {
							assert.Equal(t, []byte("img"), avatar.File)
							return testUser, nil
						},
					)
			},
			assertions: func(r *httptest.ResponseRecorder) {
				res := &utils.Response{}
				err := json.NewDecoder(r.Result().Body).Decode(res)
				assert.Nil(t, err)
				assert.True(t, res.Success)
				assert.Equal(t, http.StatusCreated, res.StatusCode)
			},
		},
		{
			name:   "SuccessWithCover",
			status: http.StatusCreated,
			spec: multipartSpec{
				fields: validFields,
				files: map[string][]byte{
					"avatar":     []byte("img"),
					"coverImage": []byte("cover"),
				},
			},
			expect: func() {
				mctrl.EXPECT().
					CreateUser(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(
						func(_ context.Context, req any, avatar, cover *s3.UploadFileRequest) (*md.User, error) {
							require.NotNil(t, cover)
							assert.Equal(t, []byte("cover"), cover.File)
							return testUser, nil
						},
					)
			},
			assertions: func(r *httptest.ResponseRecorder) {
				res := &utils.Response{}
				err := json.NewDecoder(r.Result().Body).Decode(res)
				assert.Nil(t, err)
				assert.True(t, res.Success)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.expect()

			body, contentType := buildMultipart(t, tt.spec)
			req := httptest.NewRequest(http.MethodPost, uri, body)
			req.Header.Set("Content-Type", contentType)

			w := httptest.NewRecorder()
			h.registerUser(w, req)

			assert.Equal(t, tt.status, w.Result().StatusCode)
			tt.assertions(w)
		})
	}
}

func TestHandler_CurrentUser(t *testing.T) {
	const uri = "/api/v1/users/current-user"
	mock := gomock.NewController(t)
	defer mock.Finish()

	mctrl := mocks.NewMockAppCtrl(mock)
	mauth := mocks.NewMockPort(mock)
	h := New(mauth, mctrl, "test")

	testUser := &md.User{ID: uuid.New(), Username: "tester", Email: "example@mail.com"}

	t.Run("NoIdentity", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, uri, nil)
		w := httptest.NewRecorder()
		h.currentUser(w, req)
		assert.Equal(t, http.StatusInternalServerError, w.Result().StatusCode)
	})

	t.Run("Success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, uri, nil)
		req = req.WithContext(context.WithValue(req.Context(), config.UserKey, testUser))

		w := httptest.NewRecorder()
		h.currentUser(w, req)

		assert.Equal(t, http.StatusOK, w.Result().StatusCode)

		res := &utils.Response{}
		require.NoError(t, json.NewDecoder(w.Result().Body).Decode(res))
		assert.True(t, res.Success)

		data, ok := res.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, testUser.Username, data["username"])

		// Secrets must never serialize.
		_, hasPassword := data["password"]
		assert.False(t, hasPassword)
		_, hasRefresh := data["refreshToken"]
		assert.False(t, hasRefresh)
	})
}

func TestHandler_UpdateAccount(t *testing.T) {
	const uri = "/api/v1/users/update-account"
	mock := gomock.NewController(t)
	defer mock.Finish()

	mctrl := mocks.NewMockAppCtrl(mock)
	mauth := mocks.NewMockPort(mock)
	h := New(mauth, mctrl, "test")

	testUser := &md.User{ID: uuid.New(), Username: "tester"}
	updated := &md.User{ID: testUser.ID, Username: "tester", FullName: "New Name"}

	tests := []struct {
		name       string
		status     int
		payload    map[string]any
		expect     func()
		assertions func(r *httptest.ResponseRecorder)
	}{
		{
			name:    "ErrDecodeRequest",
			status:  http.StatusBadRequest,
			payload: map[string]any{"fullName": 0},
			expect:  func() {},
			assertions: func(r *httptest.ResponseRecorder) {
				res := &utils.ErrorsResponse{}
				err := json.NewDecoder(r.Result().Body).Decode(res)
				assert.Nil(t, err)
				assert.Equal(t, hdl.ErrDecodeRequest.Error(), res.Errors[0])
			},
		},
		{
			name:    "ErrInvalidEmail",
			status:  http.StatusBadRequest,
			payload: map[string]any{"email": "not-an-email"},
			expect:  func() {},
			assertions: func(r *httptest.ResponseRecorder) {
				res := &utils.ErrorsResponse{}
				err := json.NewDecoder(r.Result().Body).Decode(res)
				assert.Nil(t, err)
				assert.NotEmpty(t, res.Errors)
			},
		},
		{
			name:    "StatusNotFound",
			status:  http.StatusNotFound,
			payload: map[string]any{"fullName": "New Name"},
			expect: func() {
				mctrl.EXPECT().
					UpdateAccount(gomock.Any(), testUser.ID, gomock.Any()).
					Return(nil, ctrl.ErrNotFound)
			},
			assertions: func(r *httptest.ResponseRecorder) {},
		},
		{
			name:    "StatusConflict",
			status:  http.StatusConflict,
			payload: map[string]any{"email": "taken@mail.com"},
			expect: func() {
				mctrl.EXPECT().
					UpdateAccount(gomock.Any(), testUser.ID, gomock.Any()).
					Return(nil, ctrl.ErrAlreadyExists)
			},
			assertions: func(r *httptest.ResponseRecorder) {},
		},
		{
			name:    "Success",
			status:  http.StatusOK,
			payload: map[string]any{"fullName": "New Name"},
			expect: func() {
				mctrl.EXPECT().
					UpdateAccount(gomock.Any(), testUser.ID, gomock.Any()).
					Return(updated, nil)
			},
			assertions: func(r *httptest.ResponseRecorder) {
				res := &utils.Response{}
				err := json.NewDecoder(r.Result().Body).Decode(res)
				assert.Nil(t, err)
				assert.True(t, res.Success)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.expect()

			body, err := json.Marshal(tt.payload)
			require.Nil(t, err)

			req := httptest.NewRequest(http.MethodPatch, uri, bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(context.WithValue(req.Context(), config.UserKey, testUser))

			w := httptest.NewRecorder()
			h.updateAccount(w, req)

			assert.Equal(t, tt.status, w.Result().StatusCode)
			tt.assertions(w)
		})
	}
}

func TestHandler_UpdateAvatar(t *testing.T) {
	const uri = "/api/v1/users/avatar"
	mock := gomock.NewController(t)
	defer mock.Finish()

	testErr := errors.New("testErr")
	mctrl := mocks.NewMockAppCtrl(mock)
	mauth := mocks.NewMockPort(mock)
	h := New(mauth, mctrl, "test")

	testUser := &md.User{ID: uuid.New(), Username: "tester"}

	tests := []struct {
		name       string
		status     int
		spec       multipartSpec
		expect     func()
		assertions func(r *httptest.ResponseRecorder)
	}{
		{
			name:   "ErrMissingFile",
			status: http.StatusBadRequest,
			spec:   multipartSpec{fields: map[string]string{"unused": "x"}},
			expect: func() {},
			assertions: func(r *httptest.ResponseRecorder) {
				res := &utils.ErrorsResponse{}
				err := json.NewDecoder(r.Result().Body).Decode(res)
				assert.Nil(t, err)
				assert.Equal(t, ErrFileIsRequired.Error(), res.Errors[0])
			},
		},
		{
			name:   "StatusNotFound",
			status: http.StatusNotFound,
			spec:   multipartSpec{files: map[string][]byte{"avatar": []byte("img")}},
			expect: func() {
				mctrl.EXPECT().
					UpdateAvatar(gomock.Any(), testUser.ID, gomock.Any()).
					Return("", ctrl.ErrNotFound)
			},
			assertions: func(r *httptest.ResponseRecorder) {},
		},
		{
			name:   "UploadFailure",
			status: http.StatusBadRequest,
			spec:   multipartSpec{files: map[string][]byte{"avatar": []byte("img")}},
			expect: func() {
				mctrl.EXPECT().
					UpdateAvatar(gomock.Any(), testUser.ID, gomock.Any()).
					Return("", testErr)
			},
			assertions: func(r *httptest.ResponseRecorder) {},
		},
		{
			name:   "Success",
			status: http.StatusOK,
			spec:   multipartSpec{files: map[string][]byte{"avatar": []byte("img")}},
			expect: func() {
				mctrl.EXPECT().
					UpdateAvatar(gomock.Any(), testUser.ID, gomock.Any()).
					Return("http://cdn/new-avatar.png", nil)
			},
			assertions: func(r *httptest.ResponseRecorder) {
				res := &utils.Response{}
				err := json.NewDecoder(r.Result().Body).Decode(res)
				assert.Nil(t, err)
				assert.True(t, res.Success)

				data, ok := res.Data.(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "http://cdn/new-avatar.png", data["url"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.expect()

			body, contentType := buildMultipart(t, tt.spec)
			req := httptest.NewRequest(http.MethodPatch, uri, body)
			req.Header.Set("Content-Type", contentType)
			req = req.WithContext(context.WithValue(req.Context(), config.UserKey, testUser))

			w := httptest.NewRecorder()
			h.updateAvatar(w, req)

			assert.Equal(t, tt.status, w.Result().StatusCode)
			tt.assertions(w)
		})
	}
}

func TestHandler_UpdateCover(t *testing.T) {
	const uri = "/api/v1/users/cover-image"
	mock := gomock.NewController(t)
	defer mock.Finish()

	mctrl := mocks.NewMockAppCtrl(mock)
	mauth := mocks.NewMockPort(mock)
	h := New(mauth, mctrl, "test")

	testUser := &md.User{ID: uuid.New(), Username: "tester"}

	mctrl.EXPECT().
		UpdateCover(gomock.Any(), testUser.ID, gomock.Any()).
		Return("http://cdn/new-cover.png", nil)

	body, contentType := buildMultipart(
		t, multipartSpec{files: map[string][]byte{"coverImage": []byte("cover")}},
	)
	req := httptest.NewRequest(http.MethodPatch, uri, body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(context.WithValue(req.Context(), config.UserKey, testUser))

	w := httptest.NewRecorder()
	h.updateCover(w, req)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}
