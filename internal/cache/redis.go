package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/booking-core/internal/domain/availability"
)

// Redis implementa SlotCache com chaves versionadas: cada
// (tenant, staff) tem um contador de versão e a entrada embute a
// versão corrente. Invalidar = INCR no contador; entradas velhas
// morrem pelo TTL sem scan de chaves.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedis(rdb *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &Redis{rdb: rdb, ttl: ttl}
}

func (c *Redis) versionKey(tenantID, staffID uint) string {
	return fmt.Sprintf("slots:ver:%d:%d", tenantID, staffID)
}

func (c *Redis) entryKey(key Key, version int64) string {
	return fmt.Sprintf("%s:v%d", key.String(), version)
}

func (c *Redis) currentVersion(ctx context.Context, tenantID, staffID uint) (int64, error) {
	v, err := c.rdb.Get(ctx, c.versionKey(tenantID, staffID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return v, err
}

func (c *Redis) GetSlots(ctx context.Context, key Key) ([]availability.Slot, bool) {
	ver, err := c.currentVersion(ctx, key.TenantID, key.StaffID)
	if err != nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, c.entryKey(key, ver)).Bytes()
	if err != nil {
		return nil, false
	}

	var slots []availability.Slot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *Redis) SetSlots(ctx context.Context, key Key, slots []availability.Slot) {
	ver, err := c.currentVersion(ctx, key.TenantID, key.StaffID)
	if err != nil {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, c.entryKey(key, ver), raw, c.ttl).Err(); err != nil {
		log.Println("cache: set failed:", err)
	}
}

func (c *Redis) Invalidate(ctx context.Context, tenantID, staffID uint) {
	if err := c.rdb.Incr(ctx, c.versionKey(tenantID, staffID)).Err(); err != nil {
		log.Println("cache: invalidate failed:", err)
	}
}

var _ SlotCache = (*Redis)(nil)
