package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/baanruam/dormhub/occupancy-service/internal/core/domain"
	"github.com/baanruam/dormhub/occupancy-service/internal/core/ports"
)

const (
	roomListKey = "rooms:list"
	roomListTTL = 30 * time.Second
)

// RedisRoomListCache caches the rooms-with-occupancy listing in Redis.
// Misses and Redis errors both read as a cache miss; listing always works
// without Redis, just slower.
type RedisRoomListCache struct {
	client *redis.Client
}

var _ ports.RoomListCache = (*RedisRoomListCache)(nil)

func NewRedisRoomListCache(client *redis.Client) *RedisRoomListCache {
	return &RedisRoomListCache{client: client}
}

func (c *RedisRoomListCache) Get(ctx context.Context) ([]domain.RoomWithOccupancy, bool) {
	data, err := c.client.Get(ctx, roomListKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("room cache: get failed: %v", err)
		return nil, false
	}

	var rooms []domain.RoomWithOccupancy
	if err := json.Unmarshal(data, &rooms); err != nil {
		log.Printf("room cache: corrupt entry, dropping: %v", err)
		_ = c.client.Del(ctx, roomListKey).Err()
		return nil, false
	}
	return rooms, true
}

func (c *RedisRoomListCache) Set(ctx context.Context, rooms []domain.RoomWithOccupancy) error {
	data, err := json.Marshal(rooms)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, roomListKey, data, roomListTTL).Err()
}

func (c *RedisRoomListCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, roomListKey).Err()
}
