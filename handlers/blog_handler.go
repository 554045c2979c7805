package handlers

import (
	"listener-api/helper"
	"listener-api/models"
	"listener-api/services"

	"github.com/gin-gonic/gin"
)

type BlogHandler struct {
	blogService services.BlogService
	Helper      *helper.HTTPHelper
}

func NewBlogHandler(blogService services.BlogService, h *helper.HTTPHelper) *BlogHandler {
	return &BlogHandler{blogService: blogService, Helper: h}
}

func (h *BlogHandler) CreateBlog(c *gin.Context) {
	var req models.CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	blog, err := h.blogService.CreateBlog(c.Request.Context(), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Blog created successfully", blog)
}

func (h *BlogHandler) GetBlogs(c *gin.Context) {
	skip, limit, err := h.Helper.GetSkipLimit(c, helper.DefaultLimit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	blogs, err := h.blogService.GetBlogs(c.Request.Context(), skip, limit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", blogs)
}

func (h *BlogHandler) GetActiveBlogs(c *gin.Context) {
	skip, limit, err := h.Helper.GetSkipLimit(c, helper.DefaultLimit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	blogs, err := h.blogService.GetActiveBlogs(c.Request.Context(), skip, limit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", blogs)
}

func (h *BlogHandler) GetBlog(c *gin.Context) {
	id, err := h.Helper.GetIDParam(c, "blog_id")
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	blog, err := h.blogService.GetBlog(c.Request.Context(), id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", blog)
}

func (h *BlogHandler) UpdateBlog(c *gin.Context) {
	id, err := h.Helper.GetIDParam(c, "blog_id")
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	var req models.UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	blog, err := h.blogService.UpdateBlog(c.Request.Context(), id, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Blog updated successfully", blog)
}

func (h *BlogHandler) DeleteBlog(c *gin.Context) {
	id, err := h.Helper.GetIDParam(c, "blog_id")
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	if err := h.blogService.DeleteBlog(c.Request.Context(), id); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendNoContent(c)
}
