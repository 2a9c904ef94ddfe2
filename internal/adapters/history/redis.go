package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"logistics-route-service/internal/domain"
	"logistics-route-service/internal/platform/obs"
)

const DefaultRedisKey = "routes:history"

// RedisHistory keeps a capped list of routes, newest at the head.
type RedisHistory struct {
	rdb *redis.Client
	key string
	max int64
}

// NewRedisHistory keeps at most max records under key. max <= 0 keeps everything.
func NewRedisHistory(rdb *redis.Client, key string, max int) *RedisHistory {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisHistory{rdb: rdb, key: key, max: int64(max)}
}

func (h *RedisHistory) Record(ctx context.Context, rec domain.RouteRecord) (err error) {
	defer obs.Time(ctx, "route.history.redis.Record")(&err)

	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("record route: encode: %w", err)
	}

	pipe := h.rdb.TxPipeline()
	pipe.LPush(ctx, h.key, body)
	if h.max > 0 {
		pipe.LTrim(ctx, h.key, 0, h.max-1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record route %q: %w", rec.ID, err)
	}
	return nil
}

func (h *RedisHistory) List(ctx context.Context, limit int) ([]domain.RouteRecord, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	raw, err := h.rdb.LRange(ctx, h.key, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("list routes: lrange %s: %w", h.key, err)
	}

	out := make([]domain.RouteRecord, 0, len(raw))
	for _, s := range raw {
		var rec domain.RouteRecord
		if err := json.Unmarshal([]byte(s), &rec); err != nil {
			return nil, fmt.Errorf("list routes: decode: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}
