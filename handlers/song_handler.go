package handlers

import (
	"listener-api/helper"
	"listener-api/middleware"
	"listener-api/models"
	"listener-api/services"

	"github.com/gin-gonic/gin"
)

const defaultSongLimit = 10

type SongHandler struct {
	songService services.SongService
	Helper      *helper.HTTPHelper
}

func NewSongHandler(songService services.SongService, h *helper.HTTPHelper) *SongHandler {
	return &SongHandler{songService: songService, Helper: h}
}

func (h *SongHandler) CreateSong(c *gin.Context) {
	var req models.CreateSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	song, err := h.songService.CreateSong(c.Request.Context(), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Song created successfully", song)
}

func (h *SongHandler) GetSongs(c *gin.Context) {
	skip, limit, err := h.Helper.GetSkipLimit(c, defaultSongLimit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	songs, err := h.songService.GetSongs(c.Request.Context(), skip, limit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", songs)
}

func (h *SongHandler) SearchSongs(c *gin.Context) {
	var params models.SongSearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	songs, err := h.songService.SearchSongs(c.Request.Context(), params)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", songs)
}

func (h *SongHandler) GetPopularSongs(c *gin.Context) {
	var params models.PopularSongsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	songs, err := h.songService.GetPopularSongs(c.Request.Context(), params)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", songs)
}

func (h *SongHandler) GetFeed(c *gin.Context) {
	skip, limit, err := h.Helper.GetSkipLimit(c, defaultSongLimit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	songs, err := h.songService.GetFeed(c.Request.Context(), middleware.CurrentUser(c), skip, limit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", songs)
}

func (h *SongHandler) GetSong(c *gin.Context) {
	id, err := h.Helper.GetIDParam(c, "song_id")
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	song, err := h.songService.GetSong(c.Request.Context(), id, middleware.CurrentUser(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", song)
}

func (h *SongHandler) GetSimilarSongs(c *gin.Context) {
	id, err := h.Helper.GetIDParam(c, "song_id")
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	songs, err := h.songService.GetSimilarSongs(c.Request.Context(), id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", songs)
}

func (h *SongHandler) PlaySong(c *gin.Context) {
	id, err := h.Helper.GetIDParam(c, "song_id")
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	userSong, err := h.songService.PlaySong(c.Request.Context(), id, middleware.CurrentUser(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Play recorded", userSong)
}

func (h *SongHandler) UpdateSong(c *gin.Context) {
	id, err := h.Helper.GetIDParam(c, "song_id")
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	var req models.UpdateSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	song, err := h.songService.UpdateSong(c.Request.Context(), id, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Song updated successfully", song)
}

func (h *SongHandler) DeleteSong(c *gin.Context) {
	id, err := h.Helper.GetIDParam(c, "song_id")
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	if err := h.songService.DeleteSong(c.Request.Context(), id); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendNoContent(c)
}
