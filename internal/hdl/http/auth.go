package http

import (
	"errors"
	"net/http"

	"github.com/vidora/backend/internal/auth"
	"github.com/vidora/backend/internal/config"
	"github.com/vidora/backend/internal/ctrl"
	"github.com/vidora/backend/internal/dto"
	"github.com/vidora/backend/internal/hdl"
	mid "github.com/vidora/backend/internal/hdl/http/middleware"
	"github.com/vidora/backend/internal/hdl/http/utils"
	"github.com/vidora/backend/internal/hdl/validation"
	"github.com/goccy/go-json"
)

// login godoc
//
//	@Summary		Authenticate with email or username plus password
//	@Description	Sets httpOnly token cookies and echoes both tokens in the body
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.LoginRequest	true	"Login credentials"
//	@Success		200		{object}	utils.Response
//	@Failure		400		{object}	utils.ErrorsResponse	"missing field or bad credential"
//	@Failure		404		{object}	utils.ErrorsResponse	"user not found"
//	@Router			/api/v1/users/login [post]
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	req := &dto.LoginRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utils.ErrResponse(w, http.StatusBadRequest, hdl.ErrDecodeRequest)
		return
	}

	if err := validation.LoginRequest(req); err != nil {
		utils.ErrResponse(w, http.StatusBadRequest, err)
		return
	}

	res, err := h.ctrl.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, ctrl.ErrNotFound) {
			utils.ErrResponse(w, http.StatusNotFound, err)
			return
		}

		if errors.Is(err, auth.ErrInvalidCredentials) {
			utils.ErrResponse(w, http.StatusBadRequest, err)
			return
		}

		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.SetAuthCookies(w, res.AccessToken, res.RefreshToken)
	utils.SuccessResponse(w, http.StatusOK, "User logged in successfully", res)
}

// refresh godoc
//
//	@Summary		Rotate the token pair
//	@Description	Accepts the refresh token from its cookie or the body; a reused token is rejected
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	utils.Response
//	@Failure		401	{object}	utils.ErrorsResponse	"missing, invalid or reused token"
//	@Router			/api/v1/users/refresh-token [post]
func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	presented := ""
	if cookie, err := r.Cookie(config.RefreshCookieName); err == nil {
		presented = cookie.Value
	} else {
		req := &dto.RefreshRequest{}
		if err := json.NewDecoder(r.Body).Decode(req); err == nil {
			presented = req.Refresh
		}
	}

	if presented == "" {
		utils.ErrResponse(w, http.StatusUnauthorized, hdl.ErrMissingToken)
		return
	}

	res, err := h.ctrl.Refresh(r.Context(), presented)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) ||
			errors.Is(err, auth.ErrTokenRevoked) ||
			errors.Is(err, ctrl.ErrNotFound) {
			utils.ErrResponse(w, http.StatusUnauthorized, err)
			return
		}

		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.SetAuthCookies(w, res.Access, res.Refresh)
	utils.SuccessResponse(w, http.StatusOK, "Tokens refreshed successfully", res)
}

// logout godoc
//
//	@Summary	Log out the authenticated user
//	@Tags		Authentication
//	@Produce	json
//	@Success	200	{object}	utils.Response
//	@Failure	401	{object}	utils.ErrorsResponse
//	@Router		/api/v1/users/logout [get]
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	user, ok := mid.UserFromCtx(r.Context())
	if !ok {
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	err := h.ctrl.Logout(r.Context(), user.ID)
	if err != nil && !errors.Is(err, ctrl.ErrNotFound) {
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.ClearAuthCookies(w)
	utils.SuccessResponse(w, http.StatusOK, "User logged out successfully", nil)
}

// changePassword godoc
//
//	@Summary	Change the current password
//	@Tags		Authentication
//	@Accept		json
//	@Produce	json
//	@Param		body	body		dto.ChangePasswordRequest	true	"Old and new password"
//	@Success	200		{object}	utils.Response
//	@Failure	400		{object}	utils.ErrorsResponse	"missing field or wrong old password"
//	@Failure	404		{object}	utils.ErrorsResponse
//	@Router		/api/v1/users/change-password [post]
func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := mid.UserFromCtx(r.Context())
	if !ok {
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	req := &dto.ChangePasswordRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utils.ErrResponse(w, http.StatusBadRequest, hdl.ErrDecodeRequest)
		return
	}

	if err := validation.ChangePasswordRequest(req); err != nil {
		utils.ErrResponse(w, http.StatusBadRequest, err)
		return
	}

	err := h.ctrl.ChangePassword(r.Context(), user.ID, req)
	if err != nil {
		if errors.Is(err, ctrl.ErrNotFound) {
			utils.ErrResponse(w, http.StatusNotFound, err)
			return
		}

		if errors.Is(err, auth.ErrInvalidCredentials) {
			utils.ErrResponse(w, http.StatusBadRequest, err)
			return
		}

		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, "Password changed successfully", nil)
}
