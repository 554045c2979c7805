package handlers

import (
	"net/http"

	"listener-api/config"
	"listener-api/models"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok", Version: config.Version})
}
