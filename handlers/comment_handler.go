package handlers

import (
	"listener-api/helper"
	"listener-api/middleware"
	"listener-api/models"
	"listener-api/services"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService services.CommentService
	Helper         *helper.HTTPHelper
}

func NewCommentHandler(commentService services.CommentService, h *helper.HTTPHelper) *CommentHandler {
	return &CommentHandler{commentService: commentService, Helper: h}
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Comment created successfully", comment)
}

func (h *CommentHandler) GetComments(c *gin.Context) {
	var params models.CommentListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	comments, err := h.commentService.GetComments(c.Request.Context(), params)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", comments)
}

func (h *CommentHandler) GetCommentsByTarget(c *gin.Context) {
	targetType := models.CommentTargetType(c.Param("target_type"))
	targetID, err := h.Helper.GetIDParam(c, "target_id")
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	skip, limit, err := h.Helper.GetSkipLimit(c, helper.DefaultLimit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	comments, err := h.commentService.GetCommentsByTarget(c.Request.Context(), targetType, targetID, skip, limit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", comments)
}

func (h *CommentHandler) GetCommentsByUser(c *gin.Context) {
	userID, err := h.Helper.GetIDParam(c, "user_id")
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	skip, limit, err := h.Helper.GetSkipLimit(c, helper.DefaultLimit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	comments, err := h.commentService.GetCommentsByUser(c.Request.Context(), userID, skip, limit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", comments)
}

func (h *CommentHandler) GetComment(c *gin.Context) {
	id, err := h.Helper.GetIDParam(c, "comment_id")
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	comment, err := h.commentService.GetComment(c.Request.Context(), id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", comment)
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	id, err := h.Helper.GetIDParam(c, "comment_id")
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	var req models.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	comment, err := h.commentService.UpdateComment(c.Request.Context(), middleware.CurrentUser(c), id, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Comment updated successfully", comment)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, err := h.Helper.GetIDParam(c, "comment_id")
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendNoContent(c)
}
