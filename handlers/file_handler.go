package handlers

import (
	"net/http"
	"time"

	"listener-api/helper"
	"listener-api/models"
	"listener-api/services"

	"github.com/gin-gonic/gin"
)

type FileHandler struct {
	fileService services.FileService
	Helper      *helper.HTTPHelper
}

func NewFileHandler(fileService services.FileService, h *helper.HTTPHelper) *FileHandler {
	return &FileHandler{fileService: fileService, Helper: h}
}

func (h *FileHandler) UploadAudio(c *gin.Context) {
	h.upload(c, services.FileAudio)
}

func (h *FileHandler) UploadImage(c *gin.Context) {
	h.upload(c, services.FileImage)
}

func (h *FileHandler) upload(c *gin.Context, kind services.FileKind) {
	header, err := c.FormFile("file")
	if err != nil {
		h.Helper.SendError(c, "file is required", h.Helper.EmptyJsonMap(), http.StatusUnprocessableEntity, `validationError`)
		return
	}

	file, err := header.Open()
	if err != nil {
		h.Helper.SendBadRequest(c, "Could not read uploaded file", h.Helper.EmptyJsonMap())
		return
	}
	defer file.Close()

	response, err := h.fileService.Upload(c.Request.Context(), kind, services.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "File uploaded successfully", response)
}

func (h *FileHandler) GetPresignedURL(c *gin.Context) {
	var params models.PresignedURLParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	url, err := h.fileService.PresignedURL(c.Request.Context(), c.Param("file_path"), time.Duration(params.Expires)*time.Second)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", gin.H{"url": url})
}
