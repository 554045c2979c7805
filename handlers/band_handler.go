package handlers

import (
	"listener-api/helper"
	"listener-api/models"
	"listener-api/services"

	"github.com/gin-gonic/gin"
)

type BandHandler struct {
	bandService services.BandService
	Helper      *helper.HTTPHelper
}

func NewBandHandler(bandService services.BandService, h *helper.HTTPHelper) *BandHandler {
	return &BandHandler{bandService: bandService, Helper: h}
}

func (h *BandHandler) CreateBand(c *gin.Context) {
	var req models.CreateBandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	band, err := h.bandService.CreateBand(c.Request.Context(), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Band created successfully", band)
}

func (h *BandHandler) GetBands(c *gin.Context) {
	skip, limit, err := h.Helper.GetSkipLimit(c, helper.DefaultLimit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	bands, err := h.bandService.GetBands(c.Request.Context(), skip, limit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", bands)
}

func (h *BandHandler) GetBand(c *gin.Context) {
	id, err := h.Helper.GetIDParam(c, "band_id")
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	band, err := h.bandService.GetBand(c.Request.Context(), id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", band)
}

func (h *BandHandler) UpdateBand(c *gin.Context) {
	id, err := h.Helper.GetIDParam(c, "band_id")
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	var req models.UpdateBandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	band, err := h.bandService.UpdateBand(c.Request.Context(), id, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Band updated successfully", band)
}

func (h *BandHandler) DeleteBand(c *gin.Context) {
	id, err := h.Helper.GetIDParam(c, "band_id")
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	if err := h.bandService.DeleteBand(c.Request.Context(), id); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendNoContent(c)
}

func (h *BandHandler) GetBandSongs(c *gin.Context) {
	id, err := h.Helper.GetIDParam(c, "band_id")
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	skip, limit, err := h.Helper.GetSkipLimit(c, helper.DefaultLimit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	songs, err := h.bandService.GetBandSongs(c.Request.Context(), id, skip, limit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", songs)
}
