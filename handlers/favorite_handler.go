package handlers

import (
	"listener-api/helper"
	"listener-api/middleware"
	"listener-api/models"
	"listener-api/services"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	favoriteService services.FavoriteService
	Helper          *helper.HTTPHelper
}

func NewFavoriteHandler(favoriteService services.FavoriteService, h *helper.HTTPHelper) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService, Helper: h}
}

func (h *FavoriteHandler) GetFavorites(c *gin.Context) {
	skip, limit, err := h.Helper.GetSkipLimit(c, helper.DefaultLimit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	favorites, err := h.favoriteService.GetFavorites(c.Request.Context(), middleware.CurrentUser(c), skip, limit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", favorites)
}

func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	var req models.AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	userSong, err := h.favoriteService.AddFavorite(c.Request.Context(), middleware.CurrentUser(c), req.SongID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Song added to favorites", userSong)
}

func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	songID, err := h.Helper.GetIDParam(c, "song_id")
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	if err := h.favoriteService.RemoveFavorite(c.Request.Context(), middleware.CurrentUser(c), songID); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendNoContent(c)
}

func (h *FavoriteHandler) CheckFavorite(c *gin.Context) {
	songID, err := h.Helper.GetIDParam(c, "song_id")
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	ok, err := h.favoriteService.IsFavorite(c.Request.Context(), middleware.CurrentUser(c), songID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", ok)
}
