package availability

import (
	"context"
	"time"

	"github.com/BruksfildServices01/booking-core/internal/models"
	"github.com/BruksfildServices01/booking-core/internal/timezone"
)

// Janela de lookahead usada para decidir se vale oferecer
// agendamento para um recurso.
const defaultLookaheadDays = 14

// ======================================================
// USE CASE
// ======================================================

// IsBookingEnabled: true sse existe pelo menos um slot livre na
// janela de lookahead. Staff sem regra ativa ⇒ false.
type IsBookingEnabled struct {
	slots         *GetAvailableSlots
	lookaheadDays int
}

func NewIsBookingEnabled(slots *GetAvailableSlots) *IsBookingEnabled {
	return &IsBookingEnabled{
		slots:         slots,
		lookaheadDays: defaultLookaheadDays,
	}
}

func (uc *IsBookingEnabled) Execute(
	ctx context.Context,
	tenantID uint,
	staffID uint,
	serviceID uint,
) (bool, error) {

	tenant, err := uc.slots.repo.GetTenantByID(ctx, tenantID)
	if err != nil {
		return false, err
	}

	// sem regra ativa não há o que gerar
	var rules []models.AvailabilityRule
	err = withRetry(ctx, func() error {
		var e error
		rules, e = uc.slots.repo.LoadRules(ctx, tenantID, staffID)
		return e
	})
	if err != nil {
		return false, asStoreUnavailable(err)
	}
	if len(rules) == 0 {
		return false, nil
	}

	today := timezone.NowIn(tenant.Timezone)
	from := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	found, err := uc.slots.Execute(ctx, GetAvailableSlotsInput{
		TenantID:  tenantID,
		StaffID:   staffID,
		ServiceID: serviceID,
		DateFrom:  from,
		DateTo:    from.AddDate(0, 0, uc.lookaheadDays),
	})
	if err != nil {
		return false, err
	}

	return len(found) > 0, nil
}
