package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"fund-insights/models"
)

// MemoryPosts keeps education posts in process memory, newest first.
type MemoryPosts struct {
	mu    sync.RWMutex
	posts []models.Post
	now   func() time.Time
}

func NewMemoryPosts(seed []models.Post) *MemoryPosts {
	posts := make([]models.Post, len(seed))
	for i, p := range seed {
		posts[i] = clonePost(p)
	}
	return &MemoryPosts{posts: posts, now: time.Now}
}

func clonePost(p models.Post) models.Post {
	p.Comments = slices.Clone(p.Comments)
	if p.Comments == nil {
		p.Comments = []string{}
	}
	return p
}

func (m *MemoryPosts) List(_ context.Context) ([]models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Post, len(m.posts))
	for i, p := range m.posts {
		out[i] = clonePost(p)
	}
	return out, nil
}

func (m *MemoryPosts) Create(_ context.Context, p models.Post) (models.Post, error) {
	p.Normalize()
	if err := validatePost(p); err != nil {
		return models.Post{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	maxID := 0
	for _, existing := range m.posts {
		maxID = max(maxID, existing.ID)
	}
	p.ID = maxID + 1
	p.Likes = 0
	p.Comments = []string{}
	p.CreatedAt = m.now()
	m.posts = append([]models.Post{p}, m.posts...)
	return clonePost(p), nil
}

// update applies fn to the post with id under the write lock.
func (m *MemoryPosts) update(id int, fn func(*models.Post)) (models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.posts {
		if m.posts[i].ID == id {
			fn(&m.posts[i])
			return clonePost(m.posts[i]), nil
		}
	}
	return models.Post{}, ErrPostNotFound
}

func (m *MemoryPosts) Like(_ context.Context, id int) (models.Post, error) {
	return m.update(id, func(p *models.Post) { p.Likes++ })
}

func (m *MemoryPosts) Comment(_ context.Context, id int, text string) (models.Post, error) {
	text, err := validateComment(text)
	if err != nil {
		return models.Post{}, err
	}
	return m.update(id, func(p *models.Post) { p.Comments = append(p.Comments, text) })
}

// MemoryModeration keeps the moderation desk in process memory.
type MemoryModeration struct {
	mu sync.Mutex
	q  models.ModerationQueue
}

func NewMemoryModeration(seed models.ModerationQueue) *MemoryModeration {
	return &MemoryModeration{q: cloneQueue(seed)}
}

func cloneQueue(q models.ModerationQueue) models.ModerationQueue {
	return models.ModerationQueue{
		Advisors:     slices.Clone(q.Advisors),
		Complaints:   slices.Clone(q.Complaints),
		FlaggedUsers: slices.Clone(q.FlaggedUsers),
	}
}

func (m *MemoryModeration) Queue(_ context.Context) (models.ModerationQueue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneQueue(m.q), nil
}

func (m *MemoryModeration) ApproveAdvisor(_ context.Context, id int) (models.AdvisorApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := slices.IndexFunc(m.q.Advisors, func(a models.AdvisorApplication) bool { return a.ID == id })
	if i < 0 {
		return models.AdvisorApplication{}, ErrCaseNotFound
	}
	m.q.Advisors[i].Status = models.AdvisorApproved
	return m.q.Advisors[i], nil
}

func (m *MemoryModeration) CloseComplaint(_ context.Context, id int) (models.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := slices.IndexFunc(m.q.Complaints, func(c models.Complaint) bool { return c.ID == id })
	if i < 0 {
		return models.Complaint{}, ErrCaseNotFound
	}
	m.q.Complaints[i].Status = models.ComplaintClosed
	return m.q.Complaints[i], nil
}

func (m *MemoryModeration) RemoveUser(_ context.Context, id int) (models.FlaggedUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := slices.IndexFunc(m.q.FlaggedUsers, func(u models.FlaggedUser) bool { return u.ID == id })
	if i < 0 {
		return models.FlaggedUser{}, ErrCaseNotFound
	}
	m.q.FlaggedUsers[i].Removed = true
	return m.q.FlaggedUsers[i], nil
}
