package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/vidora/backend/internal/config"
	"github.com/vidora/backend/internal/ctrl"
	"github.com/vidora/backend/internal/dto"
	"github.com/vidora/backend/internal/hdl"
	mid "github.com/vidora/backend/internal/hdl/http/middleware"
	"github.com/vidora/backend/internal/hdl/http/utils"
	"github.com/vidora/backend/internal/hdl/validation"
	"github.com/vidora/backend/internal/repo/s3"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (h *Handler) RegisterUserRoutes() {
	authed := mid.Auth(h.au, h.ctrl)

	h.Router.Route(
		"/api/v1/users", func(r chi.Router) {
			r.Post("/register", h.registerUser)
			r.Post("/login", h.login)
			r.Post("/refresh-token", h.refresh)

			r.With(authed).Get("/logout", h.logout)
			r.With(authed).Post("/change-password", h.changePassword)
			r.With(authed).Get("/current-user", h.currentUser)
			r.With(authed).Patch("/update-account", h.updateAccount)
			r.With(authed).Patch("/avatar", h.updateAvatar)
			r.With(authed).Patch("/cover-image", h.updateCover)
			r.With(authed).Get("/c/{username}", h.channelProfile)
			r.With(authed).Get("/history", h.watchHistory)
		},
	)
}

// registerUser godoc
//
//	@Summary		Register a new user
//	@Description	Multipart form with profile fields, a mandatory avatar and an optional cover image
//	@Tags			User
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			fullName	formData	string	true	"Full name"
//	@Param			email		formData	string	true	"Email"
//	@Param			username	formData	string	true	"Username"
//	@Param			password	formData	string	true	"Password"
//	@Param			avatar		formData	file	true	"Avatar image"
//	@Param			coverImage	formData	file	false	"Cover image"
//	@Success		201	{object}	utils.Response
//	@Failure		400	{object}	utils.ErrorsResponse	"missing field or avatar"
//	@Failure		409	{object}	utils.ErrorsResponse	"email or username taken"
//	@Failure		500	{object}	utils.ErrorsResponse	"media upload failure"
//	@Router			/api/v1/users/register [post]
func (h *Handler) registerUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(config.MaxMemory); err != nil {
		zap.L().Debug("failed to parse multipart form", zap.Error(err))
		utils.ErrResponse(w, http.StatusBadRequest, hdl.ErrDecodeRequest)
		return
	}

	req := &dto.CreateUserRequest{
		FullName: r.FormValue("fullName"),
		Email:    r.FormValue("email"),
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}

	if err := validation.CreateUserRequest(req); err != nil {
		utils.ErrResponse(w, http.StatusBadRequest, err)
		return
	}

	avatar, err := utils.ParseFileField(r, "avatar")
	if err != nil {
		h.fileFieldError(w, err)
		return
	}

	if avatar == nil {
		utils.ErrResponse(w, http.StatusBadRequest, ErrAvatarFileIsRequired)
		return
	}

	cover, err := utils.ParseFileField(r, "coverImage")
	if err != nil {
		h.fileFieldError(w, err)
		return
	}

	res, err := h.ctrl.CreateUser(r.Context(), req, avatar, cover)
	if err != nil {
		if errors.Is(err, ctrl.ErrAlreadyExists) {
			utils.ErrResponse(w, http.StatusConflict, err)
			return
		}

		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusCreated, "User registered successfully", res)
}

func (h *Handler) fileFieldError(w http.ResponseWriter, err error) {
	if errors.Is(err, hdl.ErrInternal) {
		utils.ErrResponse(w, http.StatusInternalServerError, err)
		return
	}

	utils.ErrResponse(w, http.StatusBadRequest, err)
}

// currentUser godoc
//
//	@Summary	Retrieve the authenticated user's profile
//	@Tags		User
//	@Produce	json
//	@Success	200	{object}	utils.Response
//	@Failure	401	{object}	utils.ErrorsResponse
//	@Router		/api/v1/users/current-user [get]
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := mid.UserFromCtx(r.Context())
	if !ok {
		zap.L().Error(hdl.ErrFailedToGetUser.Error())
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, "Current user fetched successfully", user)
}

// updateAccount godoc
//
//	@Summary		Update account details
//	@Description	Partial update: only supplied fields are modified
//	@Tags			User
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.UpdateAccountRequest	true	"Fields to update"
//	@Success		200		{object}	utils.Response
//	@Failure		400		{object}	utils.ErrorsResponse
//	@Failure		409		{object}	utils.ErrorsResponse
//	@Router			/api/v1/users/update-account [patch]
func (h *Handler) updateAccount(w http.ResponseWriter, r *http.Request) {
	user, ok := mid.UserFromCtx(r.Context())
	if !ok {
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	req := &dto.UpdateAccountRequest{}
	if ok := utils.ParseAndValidate(w, r, req); !ok {
		return
	}

	res, err := h.ctrl.UpdateAccount(r.Context(), user.ID, req)
	if err != nil {
		if errors.Is(err, ctrl.ErrNotFound) {
			utils.ErrResponse(w, http.StatusNotFound, err)
			return
		}
		if errors.Is(err, ctrl.ErrAlreadyExists) {
			utils.ErrResponse(w, http.StatusConflict, err)
			return
		}

		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, "Account updated successfully", res)
}

// updateAvatar godoc
//
//	@Summary	Replace the user's avatar
//	@Tags		User
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		avatar	formData	file	true	"Avatar image"
//	@Success	200		{object}	utils.Response
//	@Failure	400		{object}	utils.ErrorsResponse	"missing file or upload failure"
//	@Router		/api/v1/users/avatar [patch]
func (h *Handler) updateAvatar(w http.ResponseWriter, r *http.Request) {
	h.updateMedia(w, r, "avatar", h.ctrl.UpdateAvatar)
}

// updateCover godoc
//
//	@Summary	Replace the user's cover image
//	@Tags		User
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		coverImage	formData	file	true	"Cover image"
//	@Success	200			{object}	utils.Response
//	@Failure	400			{object}	utils.ErrorsResponse	"missing file or upload failure"
//	@Router		/api/v1/users/cover-image [patch]
func (h *Handler) updateCover(w http.ResponseWriter, r *http.Request) {
	h.updateMedia(w, r, "coverImage", h.ctrl.UpdateCover)
}

func (h *Handler) updateMedia(
	w http.ResponseWriter,
	r *http.Request,
	field string,
	update func(ctx context.Context, uid uuid.UUID, file *s3.UploadFileRequest) (string, error),
) {
	user, ok := mid.UserFromCtx(r.Context())
	if !ok {
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	if err := r.ParseMultipartForm(config.MaxMemory); err != nil {
		zap.L().Debug("failed to parse multipart form", zap.Error(err))
		utils.ErrResponse(w, http.StatusBadRequest, hdl.ErrDecodeRequest)
		return
	}

	file, err := utils.ParseFileField(r, field)
	if err != nil {
		h.fileFieldError(w, err)
		return
	}

	if file == nil {
		utils.ErrResponse(w, http.StatusBadRequest, ErrFileIsRequired)
		return
	}

	url, err := update(r.Context(), user.ID, file)
	if err != nil {
		if errors.Is(err, ctrl.ErrNotFound) {
			utils.ErrResponse(w, http.StatusNotFound, err)
			return
		}

		utils.ErrResponse(w, http.StatusBadRequest, err)
		return
	}

	utils.SuccessResponse(
		w, http.StatusOK, "Image updated successfully",
		&dto.UpdateMediaResponse{URL: url},
	)
}
