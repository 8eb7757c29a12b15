// Package store keeps the fund catalog and the per-session workspaces.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"fund-insights/models"
)

var (
	ErrFundNotFound    = errors.New("fund not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrStaleWorkspace  = errors.New("workspace changed since it was loaded")
	ErrInvalidFund     = errors.New("invalid fund")
	ErrPostNotFound    = errors.New("post not found")
	ErrInvalidPost     = errors.New("invalid post")
	ErrCaseNotFound    = errors.New("moderation case not found")
)

// Catalog is the append-only list of funds. Implementations return copies,
// so callers may freely modify the slices they get.
type Catalog interface {
	List(ctx context.Context) ([]models.Fund, error)
	Get(ctx context.Context, id int) (models.Fund, error)
	// Append stores f under the next free ID (max existing + 1) and returns
	// the stored record. Any ID already set on f is ignored.
	Append(ctx context.Context, f models.Fund) (models.Fund, error)
}

// Sessions stores workspaces and refresh tokens with an expiry.
type Sessions interface {
	// Save stores ws if the stored copy is still at ws.Version, then bumps
	// ws.Version. It returns ErrStaleWorkspace when another save got there
	// first and ErrSessionNotFound when a loaded session has since expired.
	// A workspace at version 0 opens a new session.
	Save(ctx context.Context, ws *models.Workspace, ttl time.Duration) error
	Load(ctx context.Context, sessionID string) (*models.Workspace, error)
	Delete(ctx context.Context, sessionID string) error
	SaveRefresh(ctx context.Context, token, sessionID string, ttl time.Duration) error
	// ConsumeRefresh returns the session bound to token and forgets the token.
	ConsumeRefresh(ctx context.Context, token string) (string, error)
}

// Posts is the shared education hub. List returns newest posts first.
type Posts interface {
	List(ctx context.Context) ([]models.Post, error)
	// Create stores p under the next free ID with no likes or comments.
	Create(ctx context.Context, p models.Post) (models.Post, error)
	Like(ctx context.Context, id int) (models.Post, error)
	// Comment appends the trimmed text to the post's comments.
	Comment(ctx context.Context, id int, text string) (models.Post, error)
}

// Moderation is the admin desk over seeded advisors, complaints and flagged
// users. Every action is idempotent.
type Moderation interface {
	Queue(ctx context.Context) (models.ModerationQueue, error)
	ApproveAdvisor(ctx context.Context, id int) (models.AdvisorApplication, error)
	CloseComplaint(ctx context.Context, id int) (models.Complaint, error)
	RemoveUser(ctx context.Context, id int) (models.FlaggedUser, error)
}

func nextID(funds []models.Fund) int {
	maxID := 0
	for _, f := range funds {
		maxID = max(maxID, f.ID)
	}
	return maxID + 1
}

func validate(f models.Fund) error {
	if f.Name == "" {
		return errors.Join(ErrInvalidFund, errors.New("name is required"))
	}
	return nil
}

func validatePost(p models.Post) error {
	if p.Title == "" {
		return errors.Join(ErrInvalidPost, errors.New("title is required"))
	}
	if !slices.Contains(models.PostTypes, p.Type) {
		return errors.Join(ErrInvalidPost, fmt.Errorf("unknown post type %q", p.Type))
	}
	return nil
}

func validateComment(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.Join(ErrInvalidPost, errors.New("comment is empty"))
	}
	return text, nil
}
