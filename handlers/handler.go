package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"fund-insights/middleware"
	"fund-insights/models"
	"fund-insights/store"
)

const version = "0.3.0"

// Deps are the collaborators a Handler needs.
type Deps struct {
	Catalog    store.Catalog
	Posts      store.Posts
	Moderation store.Moderation
	Sessions   store.Sessions
	Log        zerolog.Logger
	JWTSecret  string
	SessionTTL time.Duration
	RefreshTTL time.Duration
}

// Handler serves the HTTP API. It keeps no per-user state of its own; every
// request works on the workspace loaded for its session.
type Handler struct {
	catalog    store.Catalog
	posts      store.Posts
	moderation store.Moderation
	sessions   store.Sessions
	log        zerolog.Logger
	secret     string
	sessionTTL time.Duration
	refreshTTL time.Duration
}

func New(d Deps) *Handler {
	return &Handler{
		catalog:    d.Catalog,
		posts:      d.Posts,
		moderation: d.Moderation,
		sessions:   d.Sessions,
		log:        d.Log,
		secret:     d.JWTSecret,
		sessionTTL: d.SessionTTL,
		refreshTTL: d.RefreshTTL,
	}
}

// saveWorkspace persists ws and extends the session. It writes the error
// response itself and reports whether the caller may continue.
func (h *Handler) saveWorkspace(c *gin.Context, ws *models.Workspace) bool {
	err := h.sessions.Save(c.Request.Context(), ws, h.sessionTTL)
	switch {
	case err == nil:
		return true
	case errors.Is(err, store.ErrStaleWorkspace):
		c.JSON(http.StatusConflict, gin.H{"error": "Session was updated by another request, retry"})
		return false
	case errors.Is(err, store.ErrSessionNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
		return false
	default:
		h.log.Error().Err(err).Str("session_id", ws.SessionID).Msg("failed to save workspace")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return false
	}
}

// catalogFunds loads the catalog, writing a 500 on failure.
func (h *Handler) catalogFunds(c *gin.Context) ([]models.Fund, bool) {
	funds, err := h.catalog.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list funds")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load fund catalog"})
		return nil, false
	}
	return funds, true
}

func workspace(c *gin.Context) *models.Workspace {
	return middleware.CurrentWorkspace(c)
}

// HealthCheck returns service health status
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "version": version})
}
