package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetAlerts(c *gin.Context) {
	ws := workspace(c)
	c.JSON(http.StatusOK, gin.H{"notifications": ws.Notifications, "unread": ws.UnreadCount()})
}

// ToggleAlert switches one notification type on or off.
func (h *Handler) ToggleAlert(c *gin.Context) {
	ws := workspace(c)
	if !ws.ToggleNotification(c.Param("type")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown alert type"})
		return
	}
	if !h.saveWorkspace(c, ws) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": ws.Notifications, "unread": ws.UnreadCount()})
}

func (h *Handler) MarkAlertsRead(c *gin.Context) {
	ws := workspace(c)
	ws.MarkAllRead()
	if !h.saveWorkspace(c, ws) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": ws.Notifications, "unread": 0})
}
