package reservation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/booking-core/internal/audit"
	"github.com/BruksfildServices01/booking-core/internal/cache"
	domain "github.com/BruksfildServices01/booking-core/internal/domain/reservation"
	"github.com/BruksfildServices01/booking-core/internal/models"
)

type ConvertHold struct {
	repo  domain.Repository
	cache cache.SlotCache
	audit *audit.Dispatcher

	now func() time.Time
}

func NewConvertHold(
	repo domain.Repository,
	slotCache cache.SlotCache,
	auditDispatcher *audit.Dispatcher,
) *ConvertHold {
	return &ConvertHold{
		repo:  repo,
		cache: slotCache,
		audit: auditDispatcher,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Execute converte o hold em booking confirmado. A troca é feita na
// mesma transação do store: a faixa nunca fica visível como livre.
// Hold vencido é ausente ⇒ hold_not_found.
func (uc *ConvertHold) Execute(
	ctx context.Context,
	tenantID uint,
	holdKey string,
) (*models.Booking, error) {

	booking, err := uc.repo.ConvertHold(ctx, tenantID, holdKey, uc.now())
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		go uc.cache.Invalidate(context.Background(), tenantID, booking.StaffID)
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		Action:   audit.ActionHoldConverted,
		Entity:   "booking",
		EntityID: &booking.ID,
	})

	return booking, nil
}
