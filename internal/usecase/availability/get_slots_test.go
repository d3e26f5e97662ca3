package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-core/internal/cache"
	"github.com/BruksfildServices01/booking-core/internal/httperr"
	"github.com/BruksfildServices01/booking-core/internal/infra/memory"
	"github.com/BruksfildServices01/booking-core/internal/models"
)

// 05/01/2026 é uma segunda-feira.
var monday = time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

type slotsEnv struct {
	store  *memory.Store
	tenant models.Tenant
	svc    models.Service
}

func newSlotsEnv(t *testing.T) *slotsEnv {
	t.Helper()

	store := memory.NewStore()

	tenant := store.SeedTenant(models.Tenant{
		Name:     "Studio Alfa",
		Slug:     "studio-alfa",
		Timezone: "UTC",
	})

	svc := store.SeedService(models.Service{
		TenantID:    tenant.ID,
		Name:        "Sessão",
		DurationMin: 60,
	})

	require.NoError(t, store.UpsertRule(context.Background(), &models.AvailabilityRule{
		TenantID:  tenant.ID,
		StaffID:   1,
		Weekday:   1,
		StartTime: "09:00",
		EndTime:   "11:00",
	}))

	return &slotsEnv{store: store, tenant: tenant, svc: svc}
}

func (e *slotsEnv) input() GetAvailableSlotsInput {
	return GetAvailableSlotsInput{
		TenantID:  e.tenant.ID,
		StaffID:   1,
		ServiceID: e.svc.ID,
		DateFrom:  monday,
		DateTo:    monday,
	}
}

func TestGetAvailableSlots_FiltersOccupied(t *testing.T) {
	env := newSlotsEnv(t)

	env.store.SeedBooking(models.Booking{
		TenantID: env.tenant.ID, StaffID: 1,
		StartTime: monday.Add(9 * time.Hour),
		EndTime:   monday.Add(10 * time.Hour),
		Status:    "confirmed",
	})

	uc := NewGetAvailableSlots(env.store, env.store, nil)

	slots, err := uc.Execute(context.Background(), env.input())
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.True(t, slots[0].Start.Equal(monday.Add(10*time.Hour)))
}

func TestGetAvailableSlots_CanceledBookingFreesSlot(t *testing.T) {
	env := newSlotsEnv(t)

	env.store.SeedBooking(models.Booking{
		TenantID: env.tenant.ID, StaffID: 1,
		StartTime: monday.Add(9 * time.Hour),
		EndTime:   monday.Add(10 * time.Hour),
		Status:    "canceled",
	})

	uc := NewGetAvailableSlots(env.store, env.store, nil)

	slots, err := uc.Execute(context.Background(), env.input())
	require.NoError(t, err)
	assert.Len(t, slots, 2)
}

func TestGetAvailableSlots_ReadThroughCache(t *testing.T) {
	env := newSlotsEnv(t)
	ctx := context.Background()

	slotCache := cache.NewMemory(time.Minute)
	uc := NewGetAvailableSlots(env.store, env.store, slotCache)

	slots, err := uc.Execute(ctx, env.input())
	require.NoError(t, err)
	require.Len(t, slots, 2)

	// mutação sem invalidação: o cache ainda responde o snapshot
	env.store.SeedBooking(models.Booking{
		TenantID: env.tenant.ID, StaffID: 1,
		StartTime: monday.Add(9 * time.Hour),
		EndTime:   monday.Add(10 * time.Hour),
		Status:    "confirmed",
	})

	slots, err = uc.Execute(ctx, env.input())
	require.NoError(t, err)
	assert.Len(t, slots, 2)

	// invalidado, recalcula e enxerga o booking
	slotCache.Invalidate(ctx, env.tenant.ID, 1)

	slots, err = uc.Execute(ctx, env.input())
	require.NoError(t, err)
	assert.Len(t, slots, 1)
}

func TestGetAvailableSlots_EmptyRangeIsNotError(t *testing.T) {
	env := newSlotsEnv(t)

	uc := NewGetAvailableSlots(env.store, env.store, nil)

	// terça-feira: sem regra, sem slots
	in := env.input()
	in.DateFrom = monday.AddDate(0, 0, 1)
	in.DateTo = monday.AddDate(0, 0, 1)

	slots, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

// ======================================================
// STORE FALHANDO
// ======================================================

type flakyRepo struct {
	*memory.Store
	fails int
	calls int
	err   error // zero ⇒ falha crua de conexão
}

func (f *flakyRepo) LoadRules(ctx context.Context, tenantID, staffID uint) ([]models.AvailabilityRule, error) {
	f.calls++
	if f.calls <= f.fails {
		if f.err != nil {
			return nil, f.err
		}
		return nil, errors.New("connection refused")
	}
	return f.Store.LoadRules(ctx, tenantID, staffID)
}

func TestGetAvailableSlots_RetriesThenSucceeds(t *testing.T) {
	env := newSlotsEnv(t)

	repo := &flakyRepo{Store: env.store, fails: 2}
	uc := NewGetAvailableSlots(repo, env.store, nil)

	slots, err := uc.Execute(context.Background(), env.input())
	require.NoError(t, err)
	assert.Len(t, slots, 2)
}

func TestGetAvailableSlots_StoreUnavailable(t *testing.T) {
	env := newSlotsEnv(t)

	repo := &flakyRepo{Store: env.store, fails: 100}
	uc := NewGetAvailableSlots(repo, env.store, nil)

	_, err := uc.Execute(context.Background(), env.input())
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeStoreUnavailable))
	assert.True(t, httperr.IsRetryable(err))
}

func TestGetAvailableSlots_TypedErrorPassesThrough(t *testing.T) {
	env := newSlotsEnv(t)

	repo := &flakyRepo{
		Store: env.store,
		fails: 100,
		err:   httperr.ErrBusiness("tenant_not_found"),
	}
	uc := NewGetAvailableSlots(repo, env.store, nil)

	// erro de negócio tipado atravessa intacto e sem retentativa
	_, err := uc.Execute(context.Background(), env.input())
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "tenant_not_found"))
	assert.False(t, httperr.IsBusiness(err, httperr.CodeStoreUnavailable))
	assert.Equal(t, 1, repo.calls)
}

// ======================================================
// BOOKING ENABLED
// ======================================================

func TestIsBookingEnabled(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	tenant := store.SeedTenant(models.Tenant{
		Name: "Studio Alfa", Slug: "studio-alfa", Timezone: "UTC",
	})
	svc := store.SeedService(models.Service{
		TenantID: tenant.ID, Name: "Sessão", DurationMin: 60,
	})

	uc := NewIsBookingEnabled(NewGetAvailableSlots(store, store, nil))

	// sem nenhuma regra ativa
	enabled, err := uc.Execute(ctx, tenant.ID, 1, svc.ID)
	require.NoError(t, err)
	assert.False(t, enabled)

	// com regra em todos os dias há sempre slot no lookahead
	for wd := 1; wd <= 7; wd++ {
		require.NoError(t, store.UpsertRule(ctx, &models.AvailabilityRule{
			TenantID:  tenant.ID,
			StaffID:   1,
			Weekday:   wd,
			StartTime: "09:00",
			EndTime:   "18:00",
		}))
	}

	enabled, err = uc.Execute(ctx, tenant.ID, 1, svc.ID)
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestIsBookingEnabled_RetriesFlakyStore(t *testing.T) {
	env := newSlotsEnv(t)
	ctx := context.Background()

	repo := &flakyRepo{Store: env.store, fails: 2}
	uc := NewIsBookingEnabled(NewGetAvailableSlots(repo, env.store, nil))

	enabled, err := uc.Execute(ctx, env.tenant.ID, 1, env.svc.ID)
	require.NoError(t, err)
	assert.True(t, enabled)
}
