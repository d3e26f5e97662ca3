package reservation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/booking-core/internal/audit"
	"github.com/BruksfildServices01/booking-core/internal/cache"
	availdomain "github.com/BruksfildServices01/booking-core/internal/domain/availability"
	domain "github.com/BruksfildServices01/booking-core/internal/domain/reservation"
	"github.com/BruksfildServices01/booking-core/internal/httperr"
	"github.com/BruksfildServices01/booking-core/internal/models"
	"github.com/BruksfildServices01/booking-core/internal/timezone"
)

const defaultHoldTTL = 15 * time.Minute

// ======================================================
// INPUT
// ======================================================

type CreateHoldInput struct {
	TenantID   uint
	StaffID    uint
	ServiceID  uint
	CustomerID uint

	Date string // YYYY-MM-DD, relógio local do tenant
	Time string // HH:mm

	TTL time.Duration // zero ⇒ default
}

// ======================================================
// USE CASE
// ======================================================

type CreateHold struct {
	repo     domain.Repository
	schedule availdomain.Repository
	cache    cache.SlotCache
	audit    *audit.Dispatcher

	now func() time.Time
}

func NewCreateHold(
	repo domain.Repository,
	schedule availdomain.Repository,
	slotCache cache.SlotCache,
	auditDispatcher *audit.Dispatcher,
) *CreateHold {
	return &CreateHold{
		repo:     repo,
		schedule: schedule,
		cache:    slotCache,
		audit:    auditDispatcher,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute cria um hold de curta duração sobre a faixa consumida
// pelo serviço. Conflito é resultado esperado (time_conflict):
// o caller oferece o próximo slot livre.
func (uc *CreateHold) Execute(
	ctx context.Context,
	in CreateHoldInput,
) (*models.BookingHold, error) {

	// --------------------------------------------------
	// 1️⃣ Tenant
	// --------------------------------------------------
	tenant, err := uc.schedule.GetTenantByID(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Data / hora no timezone do tenant
	// --------------------------------------------------
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	start, err := timezone.AtTimeOfDay(date, in.Time, tenant.Timezone)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Antecedência mínima
	// --------------------------------------------------
	minAdvance := tenant.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	if start.Before(uc.now().Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 4️⃣ Serviço → faixa consumida
	// --------------------------------------------------
	svc, err := uc.schedule.GetService(ctx, in.TenantID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	end := start.Add(time.Duration(svc.TotalMinutes()) * time.Minute)

	// --------------------------------------------------
	// 5️⃣ Janela de disponibilidade (regras + time-off)
	// --------------------------------------------------
	rules, err := uc.schedule.LoadRules(ctx, in.TenantID, in.StaffID)
	if err != nil {
		return nil, err
	}

	exceptions, err := uc.schedule.LoadExceptions(
		ctx, in.TenantID, in.StaffID, date, date,
	)
	if err != nil {
		return nil, err
	}

	if !availdomain.FitsRuleWindow(rules, exceptions, date, in.Time, svc.TotalMinutes()) {
		return nil, httperr.ErrBusiness("outside_availability")
	}

	ttl := in.TTL
	if ttl <= 0 {
		ttl = defaultHoldTTL
	}

	hold := &models.BookingHold{
		TenantID:   in.TenantID,
		StaffID:    in.StaffID,
		ServiceID:  in.ServiceID,
		CustomerID: in.CustomerID,
		HoldKey:    uuid.NewString(),
		StartTime:  start,
		EndTime:    end,
		ExpiresAt:  uc.now().Add(ttl),
	}

	// --------------------------------------------------
	// 6️⃣ Check-and-insert atômico
	// --------------------------------------------------
	if err := uc.repo.ReserveHold(ctx, hold); err != nil {

		if httperr.IsConflict(err) {
			uc.audit.Dispatch(audit.Event{
				TenantID: in.TenantID,
				Action:   audit.ActionHoldConflict,
				Entity:   "hold",
				Metadata: map[string]any{
					"staff_id": in.StaffID,
					"start":    start,
					"end":      end,
				},
			})
			return nil, httperr.ErrBusiness(httperr.CodeTimeConflict)
		}

		return nil, err
	}

	// --------------------------------------------------
	// 7️⃣ Invalidação (fire-and-forget) + auditoria
	// --------------------------------------------------
	if uc.cache != nil {
		go uc.cache.Invalidate(context.Background(), in.TenantID, in.StaffID)
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: in.TenantID,
		Action:   audit.ActionHoldCreated,
		Entity:   "hold",
		EntityID: &hold.ID,
	})

	return hold, nil
}
