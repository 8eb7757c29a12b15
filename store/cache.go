package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"fund-insights/models"
)

var errStaleCatalog = errors.New("catalog version moved")

const (
	catalogCacheKey   = "catalog:funds"
	catalogVersionKey = "catalog:version"
)

// CachedCatalog fronts another Catalog with a Redis copy of the full fund
// list. Appends go to the inner catalog, bump the catalog version and drop
// the cached copy. A list read from the inner catalog is only cached if the
// version has not moved since the read began.
type CachedCatalog struct {
	inner Catalog
	rdb   *redis.Client
	ttl   time.Duration
	log   zerolog.Logger
}

func NewCachedCatalog(inner Catalog, rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *CachedCatalog {
	return &CachedCatalog{inner: inner, rdb: rdb, ttl: ttl, log: log}
}

func (c *CachedCatalog) List(ctx context.Context) ([]models.Fund, error) {
	cached, err := c.rdb.Get(ctx, catalogCacheKey).Bytes()
	if err == nil {
		var funds []models.Fund
		if err := json.Unmarshal(cached, &funds); err == nil {
			return funds, nil
		}
		c.log.Warn().Err(err).Msg("discarding unreadable catalog cache")
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn().Err(err).Msg("catalog cache unavailable")
	}

	version, verErr := c.version(ctx, c.rdb)

	funds, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	if verErr != nil {
		return funds, nil
	}

	data, err := json.Marshal(funds)
	if err != nil {
		return nil, err
	}
	if err := c.store(ctx, data, version); err != nil {
		c.log.Warn().Err(err).Msg("failed to cache catalog")
	}
	return funds, nil
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (c *CachedCatalog) version(ctx context.Context, r getter) (int64, error) {
	v, err := r.Get(ctx, catalogVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// store caches data unless an append has bumped the version past seen.
func (c *CachedCatalog) store(ctx context.Context, data []byte, seen int64) error {
	err := c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := c.version(ctx, tx)
		if err != nil {
			return err
		}
		if current != seen {
			return errStaleCatalog
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, catalogCacheKey, data, c.ttl)
			return nil
		})
		return err
	}, catalogVersionKey)
	if errors.Is(err, errStaleCatalog) || errors.Is(err, redis.TxFailedErr) {
		c.log.Debug().Int64("seen_version", seen).Msg("catalog changed while listing, not cached")
		return nil
	}
	return err
}

func (c *CachedCatalog) Get(ctx context.Context, id int) (models.Fund, error) {
	funds, err := c.List(ctx)
	if err != nil {
		return models.Fund{}, err
	}
	for _, f := range funds {
		if f.ID == id {
			return f, nil
		}
	}
	return models.Fund{}, ErrFundNotFound
}

func (c *CachedCatalog) Append(ctx context.Context, f models.Fund) (models.Fund, error) {
	stored, err := c.inner.Append(ctx, f)
	if err != nil {
		return models.Fund{}, err
	}
	if err := c.rdb.Incr(ctx, catalogVersionKey).Err(); err != nil {
		c.log.Warn().Err(err).Int("fund_id", stored.ID).Msg("failed to bump catalog version")
	}
	if err := c.rdb.Del(ctx, catalogCacheKey).Err(); err != nil {
		c.log.Warn().Err(err).Int("fund_id", stored.ID).Msg("failed to invalidate catalog cache")
	}
	return stored, nil
}
