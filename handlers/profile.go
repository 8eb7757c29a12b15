package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fund-insights/models"
)

type ProfileInput struct {
	Name   string `json:"name"`
	Email  string `json:"email" binding:"omitempty,email"`
	Mobile string `json:"mobile" binding:"omitempty,numeric,min=10,max=15"`
}

type RoleInput struct {
	Role models.Role `json:"role" binding:"required"`
}

func (h *Handler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, workspace(c))
}

// UpdateProfile changes the contact fields that are present in the body.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var input ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ws := workspace(c)
	if name := strings.TrimSpace(input.Name); name != "" {
		ws.Name = name
	}
	if input.Email != "" {
		ws.Email = input.Email
	}
	if input.Mobile != "" {
		ws.Mobile = input.Mobile
	}
	if !h.saveWorkspace(c, ws) {
		return
	}
	c.JSON(http.StatusOK, ws)
}

// SwitchRole moves the session to another role.
func (h *Handler) SwitchRole(c *gin.Context) {
	var input RoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !input.Role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role", "roles": models.Roles})
		return
	}

	ws := workspace(c)
	ws.Role = input.Role
	if !h.saveWorkspace(c, ws) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": ws.Role})
}
