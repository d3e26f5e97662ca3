package cache

import (
	"context"
	"sync"
	"time"

	"github.com/BruksfildServices01/booking-core/internal/domain/availability"
)

// Memory implementa SlotCache em processo, para testes e para
// deployments single-node sem redis.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	version map[[2]uint]int64
	ttl     time.Duration

	now func() time.Time
}

type memoryEntry struct {
	slots     []availability.Slot
	version   int64
	expiresAt time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &Memory{
		entries: make(map[string]memoryEntry),
		version: make(map[[2]uint]int64),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *Memory) GetSlots(_ context.Context, key Key) ([]availability.Slot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key.String()]
	if !ok {
		return nil, false
	}
	if e.version != c.version[[2]uint{key.TenantID, key.StaffID}] {
		return nil, false
	}
	if !c.now().Before(e.expiresAt) {
		return nil, false
	}

	out := make([]availability.Slot, len(e.slots))
	copy(out, e.slots)
	return out, true
}

func (c *Memory) SetSlots(_ context.Context, key Key, slots []availability.Slot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := make([]availability.Slot, len(slots))
	copy(stored, slots)

	c.entries[key.String()] = memoryEntry{
		slots:     stored,
		version:   c.version[[2]uint{key.TenantID, key.StaffID}],
		expiresAt: c.now().Add(c.ttl),
	}
}

func (c *Memory) Invalidate(_ context.Context, tenantID, staffID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version[[2]uint{tenantID, staffID}]++
}

var _ SlotCache = (*Memory)(nil)
