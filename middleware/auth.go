package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"fund-insights/models"
	"fund-insights/store"
)

// Context keys set by JWTAuth.
const (
	SessionIDKey = "session_id"
	WorkspaceKey = "workspace"
)

// Token kinds carried in the "typ" claim.
const (
	AccessToken  = "access"
	RefreshToken = "refresh"
)

// ParseToken verifies an HS256 token and returns the session it was issued
// for and its kind. Tokens without a "typ" claim are treated as access tokens.
func ParseToken(tokenString, secret string) (sessionID, kind string, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return "", "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid token claims")
	}
	sessionID, ok = claims["session_id"].(string)
	if !ok || sessionID == "" {
		return "", "", errors.New("token has no session")
	}
	kind, _ = claims["typ"].(string)
	if kind == "" {
		kind = AccessToken
	}
	return sessionID, kind, nil
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// JWTAuth requires a valid access token and loads the caller's workspace.
func JWTAuth(secret string, sessions store.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		sessionID, kind, err := ParseToken(tokenString, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid token",
				"details": err.Error(),
			})
			return
		}
		if kind != AccessToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}

		ws, err := sessions.Load(c.Request.Context(), sessionID)
		if errors.Is(err, store.ErrSessionNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
			return
		}

		c.Set(SessionIDKey, sessionID)
		c.Set(WorkspaceKey, ws)
		c.Next()
	}
}

// RequireRole lets the request through only when the workspace role is one of roles.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws := CurrentWorkspace(c)
		if ws == nil || !slices.Contains(roles, ws.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Not available for this role"})
			return
		}
		c.Next()
	}
}

// CurrentWorkspace returns the workspace loaded by JWTAuth, or nil.
func CurrentWorkspace(c *gin.Context) *models.Workspace {
	v, ok := c.Get(WorkspaceKey)
	if !ok {
		return nil
	}
	ws, _ := v.(*models.Workspace)
	return ws
}
