package handler

import (
	"net/http"

	"clientbook/internal/model"
	"clientbook/internal/version"

	"github.com/gin-gonic/gin"
)

// Health handles GET /health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": version.Get(),
	})
}

// Timezones handles GET /api/timezones
func Timezones(c *gin.Context) {
	c.JSON(http.StatusOK, model.Timezones)
}

// Interests handles GET /api/interests
func Interests(c *gin.Context) {
	c.JSON(http.StatusOK, model.Interests)
}
