package helper

import (
	"strconv"

	"listener-api/models"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// GetSkipLimit reads the skip/limit query pair. defaultLimit applies when
// limit is absent.
func (u *HTTPHelper) GetSkipLimit(c *gin.Context, defaultLimit int) (int, int, error) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		return 0, 0, models.ErrorValidation{Message: "skip must be a non-negative integer"}
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 || limit > MaxLimit {
		return 0, 0, models.ErrorValidation{Message: "limit must be between 1 and " + strconv.Itoa(MaxLimit)}
	}

	return skip, limit, nil
}

// GetIDParam parses a positive numeric path parameter.
func (u *HTTPHelper) GetIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, models.ErrorValidation{Message: "invalid " + name}
	}
	return uint(id), nil
}
