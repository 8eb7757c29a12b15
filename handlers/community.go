package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fund-insights/models"
	"fund-insights/store"
)

type PostInput struct {
	Title   string `json:"title" binding:"required"`
	Type    string `json:"type" binding:"omitempty,oneof=Article Video 'Market Analysis' 'Risk Guide'"`
	Summary string `json:"summary"`
}

type CommentInput struct {
	Text string `json:"text" binding:"required"`
}

// communityError maps a posts or moderation store error to a response.
func (h *Handler) communityError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, store.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
	case errors.Is(err, store.ErrCaseNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Moderation case not found"})
	case errors.Is(err, store.ErrInvalidPost):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("action", action).Msg("community store failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// ListPosts returns the education hub, newest first.
func (h *Handler) ListPosts(c *gin.Context) {
	posts, err := h.posts.List(c.Request.Context())
	if err != nil {
		h.communityError(c, err, "load posts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts)})
}

// CreatePost publishes an advisor post at the top of the hub.
func (h *Handler) CreatePost(c *gin.Context) {
	var input PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.posts.Create(c.Request.Context(), models.Post{
		Title:   input.Title,
		Type:    input.Type,
		Summary: input.Summary,
	})
	if err != nil {
		h.communityError(c, err, "publish post")
		return
	}
	h.log.Info().Int("post_id", post.ID).Str("type", post.Type).Msg("post published")
	c.JSON(http.StatusCreated, gin.H{"post": post})
}

func (h *Handler) LikePost(c *gin.Context) {
	id, ok := pathID(c, "post")
	if !ok {
		return
	}
	post, err := h.posts.Like(c.Request.Context(), id)
	if err != nil {
		h.communityError(c, err, "like post")
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

func (h *Handler) CommentPost(c *gin.Context) {
	id, ok := pathID(c, "post")
	if !ok {
		return
	}
	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	post, err := h.posts.Comment(c.Request.Context(), id, input.Text)
	if err != nil {
		h.communityError(c, err, "add comment")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// ModerationQueue shows the advisors, complaints and flagged users on the
// admin desk.
func (h *Handler) ModerationQueue(c *gin.Context) {
	q, err := h.moderation.Queue(c.Request.Context())
	if err != nil {
		h.communityError(c, err, "load moderation queue")
		return
	}
	c.JSON(http.StatusOK, q)
}

func (h *Handler) ApproveAdvisor(c *gin.Context) {
	id, ok := pathID(c, "advisor")
	if !ok {
		return
	}
	advisor, err := h.moderation.ApproveAdvisor(c.Request.Context(), id)
	if err != nil {
		h.communityError(c, err, "approve advisor")
		return
	}
	h.log.Info().Int("advisor_id", id).Msg("advisor approved")
	c.JSON(http.StatusOK, gin.H{"advisor": advisor})
}

func (h *Handler) CloseComplaint(c *gin.Context) {
	id, ok := pathID(c, "complaint")
	if !ok {
		return
	}
	complaint, err := h.moderation.CloseComplaint(c.Request.Context(), id)
	if err != nil {
		h.communityError(c, err, "close complaint")
		return
	}
	h.log.Info().Int("complaint_id", id).Msg("complaint closed")
	c.JSON(http.StatusOK, gin.H{"complaint": complaint})
}

func (h *Handler) RemoveUser(c *gin.Context) {
	id, ok := pathID(c, "user")
	if !ok {
		return
	}
	user, err := h.moderation.RemoveUser(c.Request.Context(), id)
	if err != nil {
		h.communityError(c, err, "remove user")
		return
	}
	h.log.Warn().Int("user_id", id).Msg("flagged user removed")
	c.JSON(http.StatusOK, gin.H{"user": user})
}
