package availability

import (
	"context"
	"time"

	"github.com/BruksfildServices01/booking-core/internal/cache"
	domain "github.com/BruksfildServices01/booking-core/internal/domain/availability"
	resdomain "github.com/BruksfildServices01/booking-core/internal/domain/reservation"
	"github.com/BruksfildServices01/booking-core/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type GetAvailableSlotsInput struct {
	TenantID  uint
	StaffID   uint
	ServiceID uint

	// datas locais do tenant, intervalo fechado
	DateFrom time.Time
	DateTo   time.Time
}

// ======================================================
// USE CASE
// ======================================================

type GetAvailableSlots struct {
	repo  domain.Repository
	index resdomain.ConflictIndex
	cache cache.SlotCache
}

func NewGetAvailableSlots(
	repo domain.Repository,
	index resdomain.ConflictIndex,
	slotCache cache.SlotCache,
) *GetAvailableSlots {
	return &GetAvailableSlots{
		repo:  repo,
		index: index,
		cache: slotCache,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute devolve os slots livres do intervalo. Read-through:
// hit de cache responde direto; falha de cache nunca falha a
// consulta, recalcula.
//
// Intervalo sem nenhum slot é resposta normal ("não reservável"),
// não é erro.
func (uc *GetAvailableSlots) Execute(
	ctx context.Context,
	in GetAvailableSlotsInput,
) ([]domain.Slot, error) {

	// --------------------------------------------------
	// 1️⃣ Tenant (timezone oficial)
	// --------------------------------------------------
	tenant, err := uc.repo.GetTenantByID(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}

	key := cache.Key{
		TenantID:  in.TenantID,
		StaffID:   in.StaffID,
		ServiceID: in.ServiceID,
		DateFrom:  in.DateFrom.Format("2006-01-02"),
		DateTo:    in.DateTo.Format("2006-01-02"),
	}

	if uc.cache != nil {
		if slots, ok := uc.cache.GetSlots(ctx, key); ok {
			return slots, nil
		}
	}

	slots, err := uc.compute(ctx, tenant, in)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.SetSlots(ctx, key, slots)
	}

	return slots, nil
}

func (uc *GetAvailableSlots) compute(
	ctx context.Context,
	tenant *models.Tenant,
	in GetAvailableSlotsInput,
) ([]domain.Slot, error) {

	// --------------------------------------------------
	// 2️⃣ Serviço (duração + buffers)
	// --------------------------------------------------
	svc, err := uc.repo.GetService(ctx, in.TenantID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Regras + exceções (retry bounded: só store)
	// --------------------------------------------------
	var rules []models.AvailabilityRule
	err = withRetry(ctx, func() error {
		var e error
		rules, e = uc.repo.LoadRules(ctx, in.TenantID, in.StaffID)
		return e
	})
	if err != nil {
		return nil, asStoreUnavailable(err)
	}

	var exceptions []models.TimeOffException
	err = withRetry(ctx, func() error {
		var e error
		exceptions, e = uc.repo.LoadExceptions(
			ctx, in.TenantID, in.StaffID, in.DateFrom, in.DateTo,
		)
		return e
	})
	if err != nil {
		return nil, asStoreUnavailable(err)
	}

	// --------------------------------------------------
	// 4️⃣ Layout dos candidatos (puro)
	// --------------------------------------------------
	candidates, err := domain.LayoutCandidates(
		rules,
		exceptions,
		*svc,
		domain.GenerateInput{
			TenantID:  in.TenantID,
			StaffID:   in.StaffID,
			ServiceID: in.ServiceID,
			DateFrom:  in.DateFrom,
			DateTo:    in.DateTo,
		},
		tenant.Timezone,
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Filtro de ocupação (bookings + holds ativos)
	// --------------------------------------------------
	slots := make([]domain.Slot, 0, len(candidates))
	for _, slot := range candidates {
		conflict, err := uc.index.HasConflict(
			ctx, in.TenantID, in.StaffID, slot.Start, slot.End,
		)
		if err != nil {
			return nil, asStoreUnavailable(err)
		}
		if !conflict {
			slots = append(slots, slot)
		}
	}

	return slots, nil
}
