// Package cache memoiza a saída do gerador de slots.
//
// Invalidação é por (tenant, staff): mais grossa que o necessário é
// aceitável, servir slot velho não é. Um TTL curto protege contra
// invalidação perdida. Falha de cache nunca falha a operação: o
// caller recalcula direto.
package cache

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/booking-core/internal/domain/availability"
)

type Key struct {
	TenantID  uint
	StaffID   uint
	ServiceID uint
	DateFrom  string // YYYY-MM-DD
	DateTo    string // YYYY-MM-DD
}

func (k Key) String() string {
	return fmt.Sprintf("slots:%d:%d:%d:%s:%s",
		k.TenantID, k.StaffID, k.ServiceID, k.DateFrom, k.DateTo)
}

type SlotCache interface {
	// GetSlots devolve (slots, true) em hit. Erros internos viram miss.
	GetSlots(ctx context.Context, key Key) ([]availability.Slot, bool)

	// SetSlots é best-effort.
	SetSlots(ctx context.Context, key Key, slots []availability.Slot)

	// Invalidate derruba tudo do par (tenant, staff). Fire-and-forget.
	Invalidate(ctx context.Context, tenantID uint, staffID uint)
}
