package middleware

import (
	"strings"

	"listener-api/helper"
	"listener-api/models"
	"listener-api/services"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserKey  = "user"
	ContextTokenKey = "token"
)

// AuthMiddleware resolves the bearer token to a user and stores both on the
// context.
func AuthMiddleware(authService services.AuthService, h *helper.HTTPHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			h.SendUnauthorizedError(c, "Not authenticated", h.EmptyJsonMap())
			c.Abort()
			return
		}

		tokenString, ok := bearerToken(authHeader)
		if !ok {
			h.SendUnauthorizedError(c, "Bearer token required", h.EmptyJsonMap())
			c.Abort()
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			h.SendServiceError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextTokenKey, tokenString)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RequireActive rejects deactivated accounts. It must run after
// AuthMiddleware.
func RequireActive(h *helper.HTTPHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			h.SendUnauthorizedError(c, "Not authenticated", h.EmptyJsonMap())
			c.Abort()
			return
		}
		if !user.IsActive {
			h.SendBadRequest(c, "Inactive user", h.EmptyJsonMap())
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSuperuser rejects everyone but active superusers. It must run after
// AuthMiddleware.
func RequireSuperuser(h *helper.HTTPHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			h.SendUnauthorizedError(c, "Not authenticated", h.EmptyJsonMap())
			c.Abort()
			return
		}
		if !user.IsActive {
			h.SendBadRequest(c, "Inactive user", h.EmptyJsonMap())
			c.Abort()
			return
		}
		if !user.IsSuperuser {
			h.SendForbiddenError(c, "The user doesn't have enough privileges", h.EmptyJsonMap())
			c.Abort()
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

func CurrentToken(c *gin.Context) string {
	return c.GetString(ContextTokenKey)
}
