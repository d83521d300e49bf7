// README: Redis read-through cache for single trips, keyed by owner and id.
package trip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache fills are fenced by a per-key generation: Get reports the generation
// it saw, Delete bumps it, and Fill only writes while it is unchanged.
type Cache interface {
	// Get returns a nil trip on a miss.
	Get(ctx context.Context, key Key) (*Trip, int64, error)
	// Fill stores t unless key was invalidated after gen was read.
	Fill(ctx context.Context, t *Trip, gen int64) error
	Delete(ctx context.Context, key Key) error
}

type RedisCache struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

func NewRedisCache(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, keyPrefix: "ojoto:trip:", ttl: ttl}
}

func (c *RedisCache) key(k Key) string {
	return fmt.Sprintf("%s%s:%d", c.keyPrefix, k.PassengerID, k.TripID)
}

func (c *RedisCache) genKey(k Key) string {
	return c.key(k) + ":gen"
}

// genTTL outlives entries so a fence cannot reset while a fill is in flight.
func (c *RedisCache) genTTL() time.Duration {
	return 2 * c.ttl
}

func (c *RedisCache) Get(ctx context.Context, key Key) (*Trip, int64, error) {
	vals, err := c.client.MGet(ctx, c.key(key), c.genKey(key)).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("redis mget: %w", err)
	}
	gen, err := parseGen(vals[1])
	if err != nil {
		return nil, 0, err
	}
	raw, ok := vals[0].(string)
	if !ok {
		return nil, gen, nil
	}
	var t Trip
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return nil, 0, fmt.Errorf("decode cached trip: %w", err)
	}
	if t.Key() != key {
		return nil, gen, nil
	}
	return &t, gen, nil
}

func (c *RedisCache) Fill(ctx context.Context, t *Trip, gen int64) error {
	val, err := json.Marshal(t)
	if err != nil {
		return err
	}
	key := t.Key()
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, c.genKey(key)).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, c.key(key), val, c.ttl)
			return nil
		})
		return err
	}, c.genKey(key))
	switch {
	case err == nil, errors.Is(err, errStaleFill), errors.Is(err, redis.TxFailedErr):
		return nil
	default:
		return fmt.Errorf("redis fill: %w", err)
	}
}

func (c *RedisCache) Delete(ctx context.Context, key Key) error {
	_, err := c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, c.genKey(key))
		p.Expire(ctx, c.genKey(key), c.genTTL())
		p.Del(ctx, c.key(key))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

var errStaleFill = errors.New("trip invalidated since read")

func parseGen(v interface{}) (int64, error) {
	if v == nil {
		return 0, nil
	}
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected cache generation %T", v)
	}
	gen, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("decode cache generation: %w", err)
	}
	return gen, nil
}
