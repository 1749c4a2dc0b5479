package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ansokolv/social-calendar-backend/internal/config"
	"github.com/ansokolv/social-calendar-backend/internal/model"
	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"
)

// BusyIntervalCache keeps recently materialized busy intervals per user and
// requested range, so repeated slot generation for the same participants does
// not hit the database on every proposed interval. Entries expire on a short
// TTL; staleness within that window is acceptable for scheduling suggestions.
type BusyIntervalCache struct {
	pool   *redis.Pool
	logger *zap.SugaredLogger
}

func NewBusyIntervalCache(pool *redis.Pool, logger *zap.SugaredLogger) *BusyIntervalCache {
	return &BusyIntervalCache{
		pool:   pool,
		logger: logger,
	}
}

type cachedInterval struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func busyKey(userID int64, rng model.TimeInterval) string {
	return fmt.Sprintf("busy:%v:%v:%v", userID, rng.From.Unix(), rng.To.Unix())
}

func (c *BusyIntervalCache) Get(ctx context.Context, userID int64, rng model.TimeInterval) ([]model.TimeInterval, error) {
	conn, err := c.pool.GetContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("get connection: %w", err)
	}
	defer c.closeConn(conn)

	data, err := redis.Bytes(conn.Do("GET", busyKey(userID, rng)))
	if err != nil {
		if err == redis.ErrNil {
			return nil, model.ErrNoRecord
		}
		return nil, fmt.Errorf("GET: %w", err)
	}

	var cached []cachedInterval
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("unmarshal cached intervals: %w", err)
	}

	res := make([]model.TimeInterval, len(cached))
	for i, ci := range cached {
		res[i] = model.TimeInterval{From: ci.From, To: ci.To}
	}

	return res, nil
}

func (c *BusyIntervalCache) Set(ctx context.Context, userID int64, rng model.TimeInterval, intervals []model.TimeInterval) error {
	conn, err := c.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer c.closeConn(conn)

	cached := make([]cachedInterval, len(intervals))
	for i, in := range intervals {
		cached[i] = cachedInterval{From: in.From, To: in.To}
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("marshal intervals: %w", err)
	}

	if _, err := conn.Do("SET", busyKey(userID, rng), data, "EX", int(config.BusyCacheTTL().Seconds())); err != nil {
		return fmt.Errorf("SET: %w", err)
	}

	return nil
}

func (c *BusyIntervalCache) closeConn(conn redis.Conn) {
	if err := conn.Close(); err != nil {
		c.logger.Errorw("failed closing redis connection", "err", err)
	}
}
