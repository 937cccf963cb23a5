package http

import (
	"errors"
	"net/http"

	"github.com/vidora/backend/internal/ctrl"
	"github.com/vidora/backend/internal/hdl"
	mid "github.com/vidora/backend/internal/hdl/http/middleware"
	"github.com/vidora/backend/internal/hdl/http/utils"
	"github.com/go-chi/chi/v5"
)

// channelProfile godoc
//
//	@Summary		Get a channel profile by username
//	@Description	Includes subscriber counts and whether the requester subscribes to the channel
//	@Tags			Channel
//	@Produce		json
//	@Param			username	path		string	true	"Channel username"
//	@Success		200			{object}	utils.Response
//	@Failure		400			{object}	utils.ErrorsResponse	"missing username"
//	@Failure		404			{object}	utils.ErrorsResponse
//	@Router			/api/v1/users/c/{username} [get]
func (h *Handler) channelProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := mid.UserFromCtx(r.Context())
	if !ok {
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	username := chi.URLParam(r, "username")
	if username == "" {
		utils.ErrResponse(w, http.StatusBadRequest, ErrUsernameIsMissing)
		return
	}

	res, err := h.ctrl.GetChannelProfile(r.Context(), username, user.ID)
	if err != nil {
		if errors.Is(err, ctrl.ErrNotFound) {
			utils.ErrResponse(w, http.StatusNotFound, err)
			return
		}

		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, "Channel profile fetched successfully", res)
}

// watchHistory godoc
//
//	@Summary		Get the authenticated user's watch history
//	@Description	Videos in history order, each with its owner's public profile
//	@Tags			Channel
//	@Produce		json
//	@Success		200	{object}	utils.Response
//	@Failure		401	{object}	utils.ErrorsResponse
//	@Router			/api/v1/users/history [get]
func (h *Handler) watchHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := mid.UserFromCtx(r.Context())
	if !ok {
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	res, err := h.ctrl.GetWatchHistory(r.Context(), user.ID)
	if err != nil {
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, "Watch history fetched successfully", res)
}
