package handlers

import (
	"listener-api/helper"
	"listener-api/middleware"
	"listener-api/services"

	"github.com/gin-gonic/gin"
)

// FollowHandler serves the follow endpoints of users, bands and blogs.
type FollowHandler struct {
	followService services.FollowService
	Helper        *helper.HTTPHelper
}

func NewFollowHandler(followService services.FollowService, h *helper.HTTPHelper) *FollowHandler {
	return &FollowHandler{followService: followService, Helper: h}
}

func (h *FollowHandler) FollowUser(c *gin.Context) {
	id, err := h.Helper.GetIDParam(c, "user_id")
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	follow, err := h.followService.FollowUser(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "User followed", follow)
}

func (h *FollowHandler) UnfollowUser(c *gin.Context) {
	id, err := h.Helper.GetIDParam(c, "user_id")
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	if err := h.followService.UnfollowUser(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendNoContent(c)
}

func (h *FollowHandler) IsFollowingUser(c *gin.Context) {
	id, err := h.Helper.GetIDParam(c, "user_id")
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	ok, err := h.followService.IsFollowingUser(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", ok)
}

func (h *FollowHandler) GetUserFollowers(c *gin.Context) {
	id, err := h.Helper.GetIDParam(c, "user_id")
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	skip, limit, err := h.Helper.GetSkipLimit(c, helper.DefaultLimit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	users, err := h.followService.GetUserFollowers(c.Request.Context(), id, skip, limit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", users)
}

func (h *FollowHandler) GetFollowingUsers(c *gin.Context) {
	skip, limit, err := h.Helper.GetSkipLimit(c, helper.DefaultLimit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	users, err := h.followService.GetFollowingUsers(c.Request.Context(), middleware.CurrentUser(c), skip, limit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", users)
}

func (h *FollowHandler) FollowBand(c *gin.Context) {
	id, err := h.Helper.GetIDParam(c, "band_id")
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	follow, err := h.followService.FollowBand(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Band followed", follow)
}

func (h *FollowHandler) UnfollowBand(c *gin.Context) {
	id, err := h.Helper.GetIDParam(c, "band_id")
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	if err := h.followService.UnfollowBand(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendNoContent(c)
}

func (h *FollowHandler) IsFollowingBand(c *gin.Context) {
	id, err := h.Helper.GetIDParam(c, "band_id")
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	ok, err := h.followService.IsFollowingBand(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", ok)
}

func (h *FollowHandler) GetBandFollowers(c *gin.Context) {
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

	users, err := h.followService.GetBandFollowers(c.Request.Context(), id, skip, limit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", users)
}

func (h *FollowHandler) GetFollowedBands(c *gin.Context) {
	skip, limit, err := h.Helper.GetSkipLimit(c, helper.DefaultLimit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	bands, err := h.followService.GetFollowedBands(c.Request.Context(), middleware.CurrentUser(c), skip, limit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", bands)
}

func (h *FollowHandler) FollowBlog(c *gin.Context) {
	id, err := h.Helper.GetIDParam(c, "blog_id")
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	follow, err := h.followService.FollowBlog(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Blog followed", follow)
}

func (h *FollowHandler) UnfollowBlog(c *gin.Context) {
	id, err := h.Helper.GetIDParam(c, "blog_id")
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	if err := h.followService.UnfollowBlog(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendNoContent(c)
}

func (h *FollowHandler) IsFollowingBlog(c *gin.Context) {
	id, err := h.Helper.GetIDParam(c, "blog_id")
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	ok, err := h.followService.IsFollowingBlog(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", ok)
}

func (h *FollowHandler) GetBlogFollowers(c *gin.Context) {
	id, err := h.Helper.GetIDParam(c, "blog_id")
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	skip, limit, err := h.Helper.GetSkipLimit(c, helper.DefaultLimit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	users, err := h.followService.GetBlogFollowers(c.Request.Context(), id, skip, limit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", users)
}

func (h *FollowHandler) GetFollowedBlogs(c *gin.Context) {
	skip, limit, err := h.Helper.GetSkipLimit(c, helper.DefaultLimit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	blogs, err := h.followService.GetFollowedBlogs(c.Request.Context(), middleware.CurrentUser(c), skip, limit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", blogs)
}
