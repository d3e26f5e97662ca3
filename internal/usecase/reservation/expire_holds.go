package reservation

import (
	"context"
	"log"
	"time"

	"github.com/BruksfildServices01/booking-core/internal/cache"
	domain "github.com/BruksfildServices01/booking-core/internal/domain/reservation"
	"github.com/BruksfildServices01/booking-core/internal/notify"
)

// ExpireHolds é o sweep periódico que recolhe holds vencidos.
// A correção não depende dele: hold vencido já é invisível para o
// índice de conflito. Aqui só se recupera storage e se avisa o
// colaborador de notificação.
type ExpireHolds struct {
	repo   domain.Repository
	cache  cache.SlotCache
	notify *notify.Dispatcher

	now func() time.Time
}

func NewExpireHolds(
	repo domain.Repository,
	slotCache cache.SlotCache,
	notifyDispatcher *notify.Dispatcher,
) *ExpireHolds {
	return &ExpireHolds{
		repo:   repo,
		cache:  slotCache,
		notify: notifyDispatcher,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (uc *ExpireHolds) Execute(ctx context.Context) (int, error) {

	expired, err := uc.repo.DeleteExpiredHolds(ctx, uc.now())
	if err != nil {
		return 0, err
	}

	for _, h := range expired {
		if uc.cache != nil {
			uc.cache.Invalidate(ctx, h.TenantID, h.StaffID)
		}

		uc.notify.Dispatch(notify.Event{
			Type:     notify.EventHoldExpired,
			TenantID: h.TenantID,
			Payload: map[string]any{
				"hold_key":    h.HoldKey,
				"customer_id": h.CustomerID,
				"staff_id":    h.StaffID,
				"start":       h.StartTime,
				"end":         h.EndTime,
			},
		})
	}

	return len(expired), nil
}

// Run roda o sweep até o contexto encerrar.
func (uc *ExpireHolds) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := uc.Execute(ctx); err != nil {
				log.Println("hold sweep error:", err)
			} else if n > 0 {
				log.Printf("hold sweep: %d holds expirados removidos", n)
			}
		}
	}
}
