package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fund-insights/models"
	"fund-insights/seed"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestMemoryCatalog_Append(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCatalog(seed.MustFunds())

	stored, err := c.Append(ctx, models.Fund{ID: 42, Name: "Nifty Index Fund", FundType: models.FundTypeIndex})
	require.NoError(t, err)
	assert.Equal(t, 7, stored.ID, "ids continue from the current maximum")
	assert.False(t, stored.CreatedAt.IsZero())

	got, err := c.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Nifty Index Fund", got.Name)

	all, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 7)
	assert.Equal(t, 1, all[0].ID)
}

func TestMemoryCatalog_AppendRejectsUnnamed(t *testing.T) {
	c := NewMemoryCatalog(nil)
	_, err := c.Append(context.Background(), models.Fund{})
	assert.ErrorIs(t, err, ErrInvalidFund)
}

func TestMemoryCatalog_EmptyStartsAtOne(t *testing.T) {
	c := NewMemoryCatalog(nil)
	f, err := c.Append(context.Background(), models.Fund{Name: "First"})
	require.NoError(t, err)
	assert.Equal(t, 1, f.ID)
}

func TestMemoryCatalog_ListIsSnapshot(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCatalog(seed.MustFunds())

	snapshot, err := c.List(ctx)
	require.NoError(t, err)
	snapshot[0].Name = "mutated"

	_, err = c.Append(ctx, models.Fund{Name: "Late"})
	require.NoError(t, err)
	assert.Len(t, snapshot, 6)

	f, err := c.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Axis Bluechip Fund", f.Name)
}

func TestMemoryCatalog_ConcurrentAppendsGetUniqueIDs(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCatalog(seed.MustFunds())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Append(ctx, models.Fund{Name: "Parallel"})
			assert.NoError(t, err)
			_, err = c.List(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	all, err := c.List(ctx)
	require.NoError(t, err)
	seen := make(map[int]bool)
	for _, f := range all {
		assert.False(t, seen[f.ID], "duplicate id %d", f.ID)
		seen[f.ID] = true
	}
	assert.Len(t, all, 26)
}

func TestMemoryCatalog_GetMissing(t *testing.T) {
	_, err := NewMemoryCatalog(seed.MustFunds()).Get(context.Background(), 99)
	assert.ErrorIs(t, err, ErrFundNotFound)
}

func TestMemorySessions(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySessions()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	ws := models.NewWorkspace("sid-1", "a@b.c", models.RoleInvestor)
	require.NoError(t, s.Save(ctx, ws, time.Hour))

	ws.EnrolledFundIDs[0] = 99
	loaded, err := s.Load(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 4}, loaded.EnrolledFundIDs, "stored copy is isolated from the caller")

	now = now.Add(2 * time.Hour)
	_, err = s.Load(ctx, "sid-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessions_Refresh(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySessions()

	require.NoError(t, s.SaveRefresh(ctx, "tok", "sid-1", time.Hour))
	sid, err := s.ConsumeRefresh(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "sid-1", sid)

	_, err = s.ConsumeRefresh(ctx, "tok")
	assert.ErrorIs(t, err, ErrSessionNotFound, "refresh tokens are single use")
}

func TestRedisSessions(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newRedis(t)
	s := NewRedisSessions(rdb)

	ws := models.NewWorkspace("sid-1", "a@b.c", models.RoleAnalyst)
	ws.RiskProfile = models.Aggressive
	require.NoError(t, s.Save(ctx, ws, time.Hour))
	assert.True(t, mr.Exists("session:sid-1"))

	loaded, err := s.Load(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, ws, loaded)

	mr.FastForward(2 * time.Hour)
	_, err = s.Load(ctx, "sid-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisSessions_DeleteAndRefresh(t *testing.T) {
	ctx := context.Background()
	_, rdb := newRedis(t)
	s := NewRedisSessions(rdb)

	ws := models.NewWorkspace("sid-2", "a@b.c", models.RoleInvestor)
	require.NoError(t, s.Save(ctx, ws, time.Hour))
	require.NoError(t, s.Delete(ctx, "sid-2"))
	_, err := s.Load(ctx, "sid-2")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, s.SaveRefresh(ctx, "tok", "sid-2", time.Hour))
	sid, err := s.ConsumeRefresh(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "sid-2", sid)
	_, err = s.ConsumeRefresh(ctx, "tok")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

type countingCatalog struct {
	Catalog
	lists int
}

func (c *countingCatalog) List(ctx context.Context) ([]models.Fund, error) {
	c.lists++
	return c.Catalog.List(ctx)
}

func TestCachedCatalog(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newRedis(t)
	inner := &countingCatalog{Catalog: NewMemoryCatalog(seed.MustFunds())}
	c := NewCachedCatalog(inner, rdb, 5*time.Minute, zerolog.Nop())

	first, err := c.List(ctx)
	require.NoError(t, err)
	second, err := c.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.lists, "second read served from redis")

	f, err := c.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "SBI Small Cap Fund", f.Name)
	assert.Equal(t, 1, inner.lists)

	_, err = c.Append(ctx, models.Fund{Name: "Nifty Index Fund"})
	require.NoError(t, err)
	assert.False(t, mr.Exists(catalogCacheKey), "append drops the cached list")

	all, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 7)
	assert.Equal(t, 2, inner.lists)

	_, err = c.Get(ctx, 99)
	assert.ErrorIs(t, err, ErrFundNotFound)
}

func TestCachedCatalog_RedisDown(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newRedis(t)
	mr.Close()

	c := NewCachedCatalog(NewMemoryCatalog(seed.MustFunds()), rdb, time.Minute, zerolog.Nop())
	funds, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, funds, 6)
}

func TestMemoryCatalog_ReadsDoNotShareSectorMaps(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCatalog(seed.MustFunds())

	listed, err := c.List(ctx)
	require.NoError(t, err)
	before := listed[0].SectorAllocation["Banking"]
	listed[0].SectorAllocation["Banking"] = 999

	got, err := c.Get(ctx, 1)
	require.NoError(t, err)
	got.SectorAllocation["Banking"] = 998

	again, err := c.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, again[0].SectorAllocation["Banking"])

	fresh, err := c.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, before, fresh.SectorAllocation["Banking"])
}

// appendDuringList appends through the cache while the first inner List is
// in flight and still returns the list as it was before the append.
type appendDuringList struct {
	Catalog
	cache *CachedCatalog
	fired bool
}

func (a *appendDuringList) List(ctx context.Context) ([]models.Fund, error) {
	before, err := a.Catalog.List(ctx)
	if err != nil || a.fired {
		return before, err
	}
	a.fired = true
	if _, err := a.cache.Append(ctx, models.Fund{Name: "Late Fund"}); err != nil {
		return nil, err
	}
	return before, nil
}

func TestCachedCatalog_AppendDuringListIsNotMasked(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newRedis(t)
	inner := &appendDuringList{Catalog: NewMemoryCatalog(seed.MustFunds())}
	c := NewCachedCatalog(inner, rdb, 5*time.Minute, zerolog.Nop())
	inner.cache = c

	first, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, first, 6, "the in-flight read predates the append")
	assert.False(t, mr.Exists(catalogCacheKey), "an outdated list is not cached")

	second, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, second, 7)
	assert.True(t, mr.Exists(catalogCacheKey))

	f, err := c.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Late Fund", f.Name)
}

func TestSessions_SaveIsCheckAndSet(t *testing.T) {
	_, rdb := newRedis(t)
	backends := map[string]Sessions{
		"memory": NewMemorySessions(),
		"redis":  NewRedisSessions(rdb),
	}

	for name, s := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Save(ctx, models.NewWorkspace("sid-cas", "a@b.c", models.RoleInvestor), time.Hour))

			first, err := s.Load(ctx, "sid-cas")
			require.NoError(t, err)
			second, err := s.Load(ctx, "sid-cas")
			require.NoError(t, err)

			first.EnrolledFundIDs = append(first.EnrolledFundIDs, 5)
			require.NoError(t, s.Save(ctx, first, time.Hour))
			assert.Equal(t, 2, first.Version)

			second.EnrolledFundIDs = append(second.EnrolledFundIDs, 6)
			assert.ErrorIs(t, s.Save(ctx, second, time.Hour), ErrStaleWorkspace)

			stored, err := s.Load(ctx, "sid-cas")
			require.NoError(t, err)
			assert.Equal(t, []int{1, 2, 4, 5}, stored.EnrolledFundIDs, "the first write survives")

			require.NoError(t, s.Save(ctx, stored, time.Hour), "a fresh load can save again")

			require.NoError(t, s.Delete(ctx, "sid-cas"))
			assert.ErrorIs(t, s.Save(ctx, stored, time.Hour), ErrSessionNotFound, "saves do not revive a closed session")
		})
	}
}

func TestMemoryPosts(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryPosts(seed.MustCommunity().Posts)

	created, err := p.Create(ctx, models.Post{ID: 40, Title: " Index Funds ", Likes: 7, Comments: []string{"x"}})
	require.NoError(t, err)
	assert.Equal(t, 4, created.ID)
	assert.Equal(t, "Index Funds", created.Title)
	assert.Equal(t, models.PostArticle, created.Type)
	assert.Zero(t, created.Likes)
	assert.Empty(t, created.Comments)

	all, err := p.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, 4, all[0].ID, "newest first")

	liked, err := p.Like(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 15, liked.Likes)

	commented, err := p.Comment(ctx, 4, "  thanks ")
	require.NoError(t, err)
	assert.Equal(t, []string{"thanks"}, commented.Comments)

	commented.Comments[0] = "changed"
	all, err = p.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"thanks"}, all[0].Comments, "callers get copies")

	_, err = p.Like(ctx, 99)
	assert.ErrorIs(t, err, ErrPostNotFound)
	_, err = p.Comment(ctx, 99, "hi")
	assert.ErrorIs(t, err, ErrPostNotFound)

	invalid := []struct {
		name string
		run  func() error
	}{
		{"blank title", func() error { _, err := p.Create(ctx, models.Post{Title: "  "}); return err }},
		{"unknown type", func() error { _, err := p.Create(ctx, models.Post{Title: "A", Type: "Podcast"}); return err }},
		{"blank comment", func() error { _, err := p.Comment(ctx, 1, " \t"); return err }},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.run(), ErrInvalidPost)
		})
	}
}

func TestMemoryPosts_ConcurrentLikes(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryPosts([]models.Post{{ID: 1, Title: "A", Type: models.PostArticle}})

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = p.Like(ctx, 1)
		}()
	}
	wg.Wait()

	all, err := p.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, all[0].Likes)
}

func TestMemoryModeration(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryModeration(seed.MustCommunity().Moderation)

	a, err := m.ApproveAdvisor(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.AdvisorApproved, a.Status)

	c, err := m.CloseComplaint(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintClosed, c.Status)

	u, err := m.RemoveUser(ctx, 2)
	require.NoError(t, err)
	assert.True(t, u.Removed)

	q, err := m.Queue(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.AdvisorApproved, q.Advisors[0].Status)
	assert.Equal(t, models.ComplaintOpen, q.Complaints[1].Status)
	assert.False(t, q.FlaggedUsers[0].Removed)
	assert.True(t, q.FlaggedUsers[1].Removed)

	q.Advisors[1].Status = "Suspended"
	again, err := m.Queue(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.AdvisorApproved, again.Advisors[1].Status, "queue is a copy")

	_, err = m.ApproveAdvisor(ctx, 9)
	assert.ErrorIs(t, err, ErrCaseNotFound)
	_, err = m.CloseComplaint(ctx, 9)
	assert.ErrorIs(t, err, ErrCaseNotFound)
	_, err = m.RemoveUser(ctx, 9)
	assert.ErrorIs(t, err, ErrCaseNotFound)
}
