package store

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"fund-insights/models"
)

// MemoryCatalog keeps the catalog in process memory. Readers get a copy of
// the funds present at the time of the call.
type MemoryCatalog struct {
	mu    sync.RWMutex
	funds []models.Fund
	now   func() time.Time
}

func NewMemoryCatalog(seed []models.Fund) *MemoryCatalog {
	funds := make([]models.Fund, len(seed))
	for i, f := range seed {
		funds[i] = cloneFund(f)
	}
	return &MemoryCatalog{funds: funds, now: time.Now}
}

func cloneFund(f models.Fund) models.Fund {
	f.SectorAllocation = maps.Clone(f.SectorAllocation)
	return f
}

func (m *MemoryCatalog) List(_ context.Context) ([]models.Fund, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Fund, len(m.funds))
	for i, f := range m.funds {
		out[i] = cloneFund(f)
	}
	return out, nil
}

func (m *MemoryCatalog) Get(_ context.Context, id int) (models.Fund, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, f := range m.funds {
		if f.ID == id {
			return cloneFund(f), nil
		}
	}
	return models.Fund{}, ErrFundNotFound
}

func (m *MemoryCatalog) Append(_ context.Context, f models.Fund) (models.Fund, error) {
	if err := validate(f); err != nil {
		return models.Fund{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	f = cloneFund(f)
	f.ID = nextID(m.funds)
	if f.CreatedAt.IsZero() {
		f.CreatedAt = m.now()
	}
	m.funds = append(m.funds, f)
	return f, nil
}

type memorySession struct {
	data    *models.Workspace
	expires time.Time
}

type memoryRefresh struct {
	sessionID string
	expires   time.Time
}

// MemorySessions is a Sessions implementation for tests and single-process
// runs without Redis.
type MemorySessions struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	refresh  map[string]memoryRefresh
	now      func() time.Time
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{
		sessions: make(map[string]memorySession),
		refresh:  make(map[string]memoryRefresh),
		now:      time.Now,
	}
}

func cloneWorkspace(ws *models.Workspace) *models.Workspace {
	c := *ws
	c.CompareIDs = slices.Clone(ws.CompareIDs)
	c.EnrolledFundIDs = slices.Clone(ws.EnrolledFundIDs)
	c.Notifications = slices.Clone(ws.Notifications)
	c.AdvisorOutbox = slices.Clone(ws.AdvisorOutbox)
	return &c
}

func (m *MemorySessions) Save(_ context.Context, ws *models.Workspace, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[ws.SessionID]
	live := ok && m.now().Before(s.expires)
	switch {
	case !live && ws.Version != 0:
		return ErrSessionNotFound
	case live && s.data.Version != ws.Version:
		return ErrStaleWorkspace
	}

	stored := cloneWorkspace(ws)
	stored.Version++
	m.sessions[ws.SessionID] = memorySession{data: stored, expires: m.now().Add(ttl)}
	ws.Version = stored.Version
	return nil
}

func (m *MemorySessions) Load(_ context.Context, sessionID string) (*models.Workspace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok || !m.now().Before(s.expires) {
		delete(m.sessions, sessionID)
		return nil, ErrSessionNotFound
	}
	return cloneWorkspace(s.data), nil
}

func (m *MemorySessions) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

func (m *MemorySessions) SaveRefresh(_ context.Context, token, sessionID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refresh[token] = memoryRefresh{sessionID: sessionID, expires: m.now().Add(ttl)}
	return nil
}

func (m *MemorySessions) ConsumeRefresh(_ context.Context, token string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.refresh[token]
	delete(m.refresh, token)
	if !ok || !m.now().Before(r.expires) {
		return "", ErrSessionNotFound
	}
	return r.sessionID, nil
}
