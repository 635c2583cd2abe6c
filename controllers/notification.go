package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"readerspace-backend/services"
)

// NotificationController exposes recent SMS attempts to the operator
type NotificationController struct {
	History *services.NotificationHistory
}

// GetNotifications lists recent notification attempts, newest first
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, nc.History.Recent())
}
