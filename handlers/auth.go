package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"fund-insights/middleware"
	"fund-insights/models"
	"fund-insights/store"
)

// LoginInput is accepted as-is; any email and password sign in.
type LoginInput struct {
	Email    string      `json:"email" binding:"required"`
	Password string      `json:"password" binding:"required"`
	Role     models.Role `json:"role"`
}

type RefreshInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *Handler) signToken(sessionID, kind string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"session_id": sessionID,
		"typ":        kind,
		"jti":        uuid.NewString(),
		"exp":        time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.secret))
}

// issueTokens signs an access/refresh pair for sessionID and remembers the
// refresh token.
func (h *Handler) issueTokens(c *gin.Context, sessionID string) (gin.H, bool) {
	accessToken, err := h.signToken(sessionID, middleware.AccessToken, h.sessionTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating token", "details": err.Error()})
		return nil, false
	}

	refreshToken, err := h.signToken(sessionID, middleware.RefreshToken, h.refreshTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating refresh token", "details": err.Error()})
		return nil, false
	}

	if err := h.sessions.SaveRefresh(c.Request.Context(), refreshToken, sessionID, h.refreshTTL); err != nil {
		h.log.Error().Err(err).Msg("failed to store refresh token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error storing refresh token"})
		return nil, false
	}

	return gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	}, true
}

// Login opens a session for any credentials and returns its tokens.
func (h *Handler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Role != "" && !input.Role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role", "roles": models.Roles})
		return
	}

	ws := models.NewWorkspace(uuid.NewString(), input.Email, input.Role)
	if !h.saveWorkspace(c, ws) {
		return
	}

	tokens, ok := h.issueTokens(c, ws.SessionID)
	if !ok {
		return
	}
	tokens["role"] = ws.Role

	h.log.Info().Str("session_id", ws.SessionID).Str("role", string(ws.Role)).Msg("session opened")
	c.JSON(http.StatusOK, tokens)
}

// Refresh trades a refresh token for a new token pair on the same session.
func (h *Handler) Refresh(c *gin.Context) {
	var input RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, kind, err := middleware.ParseToken(input.RefreshToken, h.secret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token", "details": err.Error()})
		return
	}
	if kind != middleware.RefreshToken {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token required"})
		return
	}

	ctx := c.Request.Context()
	sessionID, err := h.sessions.ConsumeRefresh(ctx, input.RefreshToken)
	if errors.Is(err, store.ErrSessionNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token expired or already used"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read refresh token"})
		return
	}

	ws, err := h.sessions.Load(ctx, sessionID)
	if errors.Is(err, store.ErrSessionNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
		return
	}
	if !h.saveWorkspace(c, ws) {
		return
	}

	tokens, ok := h.issueTokens(c, sessionID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, tokens)
}

// Logout drops the caller's session.
func (h *Handler) Logout(c *gin.Context) {
	sessionID := c.GetString(middleware.SessionIDKey)
	if err := h.sessions.Delete(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to end session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
