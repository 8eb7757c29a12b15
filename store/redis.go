package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"fund-insights/models"
)

// RedisSessions keeps workspaces as JSON values that expire with the session.
type RedisSessions struct {
	rdb *redis.Client
}

func NewRedisSessions(rdb *redis.Client) *RedisSessions {
	return &RedisSessions{rdb: rdb}
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

func refreshKey(token string) string {
	return fmt.Sprintf("refresh:%s", token)
}

// Save is a check-and-set under WATCH on the session key.
func (r *RedisSessions) Save(ctx context.Context, ws *models.Workspace, ttl time.Duration) error {
	key := sessionKey(ws.SessionID)
	next := *ws
	next.Version++
	data, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("encode workspace: %w", err)
	}

	err = r.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			if ws.Version != 0 {
				return ErrSessionNotFound
			}
		case err != nil:
			return err
		default:
			var stored struct {
				Version int `json:"version"`
			}
			if err := json.Unmarshal(current, &stored); err != nil {
				return fmt.Errorf("decode workspace: %w", err)
			}
			if stored.Version != ws.Version {
				return ErrStaleWorkspace
			}
		}

		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, data, ttl)
			return nil
		})
		return err
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		return ErrStaleWorkspace
	}
	if err != nil {
		return fmt.Errorf("save workspace: %w", err)
	}

	ws.Version = next.Version
	return nil
}

func (r *RedisSessions) Load(ctx context.Context, sessionID string) (*models.Workspace, error) {
	data, err := r.rdb.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load workspace: %w", err)
	}

	var ws models.Workspace
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("decode workspace: %w", err)
	}
	return &ws, nil
}

func (r *RedisSessions) Delete(ctx context.Context, sessionID string) error {
	return r.rdb.Del(ctx, sessionKey(sessionID)).Err()
}

func (r *RedisSessions) SaveRefresh(ctx context.Context, token, sessionID string, ttl time.Duration) error {
	return r.rdb.Set(ctx, refreshKey(token), sessionID, ttl).Err()
}

func (r *RedisSessions) ConsumeRefresh(ctx context.Context, token string) (string, error) {
	sessionID, err := r.rdb.GetDel(ctx, refreshKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("consume refresh token: %w", err)
	}
	return sessionID, nil
}
