package handlers

import (
	"listener-api/helper"
	"listener-api/middleware"
	"listener-api/models"
	"listener-api/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService services.UserService
	songService services.SongService
	Helper      *helper.HTTPHelper
}

func NewUserHandler(userService services.UserService, songService services.SongService, h *helper.HTTPHelper) *UserHandler {
	return &UserHandler{userService: userService, songService: songService, Helper: h}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	h.Helper.SendSuccess(c, "Profile loaded", middleware.CurrentUser(c))
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	user, err := h.userService.UpdateMe(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Profile updated", user)
}

func (h *UserHandler) GetUsers(c *gin.Context) {
	skip, limit, err := h.Helper.GetSkipLimit(c, helper.DefaultLimit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	users, err := h.userService.GetUsers(c.Request.Context(), skip, limit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", users)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := h.Helper.GetIDParam(c, "user_id")
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", user)
}

func (h *UserHandler) GetRecentlyPlayed(c *gin.Context) {
	skip, limit, err := h.Helper.GetSkipLimit(c, 10)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	songs, err := h.songService.GetRecentlyPlayed(c.Request.Context(), middleware.CurrentUser(c), skip, limit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", songs)
}
