package reservation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/booking-core/internal/audit"
	"github.com/BruksfildServices01/booking-core/internal/cache"
	domain "github.com/BruksfildServices01/booking-core/internal/domain/reservation"
	wldomain "github.com/BruksfildServices01/booking-core/internal/domain/waitlist"
	"github.com/BruksfildServices01/booking-core/internal/models"
	"github.com/BruksfildServices01/booking-core/internal/notify"
)

// ======================================================
// USE CASE
// ======================================================

// CancelBooking cancela um booking e dispara a checagem de promoção
// da waitlist sobre a faixa liberada.
type CancelBooking struct {
	repo     domain.Repository
	waitlist wldomain.Repository
	cache    cache.SlotCache
	audit    *audit.Dispatcher
	notify   *notify.Dispatcher

	now func() time.Time
}

func NewCancelBooking(
	repo domain.Repository,
	waitlist wldomain.Repository,
	slotCache cache.SlotCache,
	auditDispatcher *audit.Dispatcher,
	notifyDispatcher *notify.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:     repo,
		waitlist: waitlist,
		cache:    slotCache,
		audit:    auditDispatcher,
		notify:   notifyDispatcher,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CancelBooking) Execute(
	ctx context.Context,
	tenantID uint,
	bookingID uint,
) (*models.Booking, error) {

	booking, err := uc.repo.GetBooking(ctx, tenantID, bookingID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanCancel(domain.Status(booking.Status)); err != nil {
		return nil, err
	}

	now := uc.now()
	booking.Status = string(domain.StatusCanceled)
	booking.CancelledAt = &now

	if err := uc.repo.UpdateBooking(ctx, booking); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		go uc.cache.Invalidate(context.Background(), tenantID, booking.StaffID)
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		Action:   audit.ActionBookingCancelled,
		Entity:   "booking",
		EntityID: &booking.ID,
	})

	// --------------------------------------------------
	// Promoção da waitlist sobre a faixa liberada
	// --------------------------------------------------
	uc.promote(ctx, tenantID, booking.StaffID)

	return booking, nil
}

// promote escolhe a melhor entrada waiting cuja janela preferida
// ficou livre: menor prioridade numérica, depois ordem de registro.
// Falha aqui não desfaz o cancelamento.
func (uc *CancelBooking) promote(ctx context.Context, tenantID, staffID uint) {

	waiting, err := uc.waitlist.ListWaiting(ctx, tenantID, staffID)
	if err != nil || len(waiting) == 0 {
		return
	}

	var candidates []models.WaitlistEntry
	for _, e := range waiting {
		conflict, err := uc.repo.HasConflict(
			ctx, tenantID, staffID, e.PreferredStart, e.PreferredEnd,
		)
		if err == nil && !conflict {
			candidates = append(candidates, e)
		}
	}

	best, ok := wldomain.SelectBest(candidates)
	if !ok {
		return
	}

	if err := uc.waitlist.MarkNotified(ctx, tenantID, best.ID, uc.now()); err != nil {
		return
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		Action:   audit.ActionWaitlistPromoted,
		Entity:   "waitlist_entry",
		EntityID: &best.ID,
	})

	uc.notify.Dispatch(notify.Event{
		Type:     notify.EventWaitlistPromoted,
		TenantID: tenantID,
		Payload: map[string]any{
			"entry_id":        best.ID,
			"customer_id":     best.CustomerID,
			"staff_id":        best.StaffID,
			"service_id":      best.ServiceID,
			"preferred_start": best.PreferredStart,
			"preferred_end":   best.PreferredEnd,
		},
	})
}
