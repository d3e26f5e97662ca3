package reservation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-core/internal/audit"
	"github.com/BruksfildServices01/booking-core/internal/httperr"
	"github.com/BruksfildServices01/booking-core/internal/infra/memory"
	"github.com/BruksfildServices01/booking-core/internal/models"
	"github.com/BruksfildServices01/booking-core/internal/notify"
)

// ======================================================
// FIXTURES
// ======================================================

var t0 = time.Date(2026, time.January, 5, 10, 0, 0, 0, time.UTC)

type holdEnv struct {
	store  *memory.Store
	tenant models.Tenant
	svc    models.Service
	create *CreateHold
}

func newHoldEnv(t *testing.T) *holdEnv {
	t.Helper()

	store := memory.NewStore()
	store.Now = func() time.Time { return t0 }

	tenant := store.SeedTenant(models.Tenant{
		Name:              "Studio Alfa",
		Slug:              "studio-alfa",
		Timezone:          "UTC",
		MinAdvanceMinutes: 120,
	})

	svc := store.SeedService(models.Service{
		TenantID:    tenant.ID,
		Name:        "Sessão",
		DurationMin: 60,
	})

	// terça-feira (06/01) é o dia útil padrão dos cenários
	require.NoError(t, store.UpsertRule(context.Background(), &models.AvailabilityRule{
		TenantID:  tenant.ID,
		StaffID:   1,
		Weekday:   2,
		StartTime: "09:00",
		EndTime:   "18:00",
	}))

	create := NewCreateHold(store, store, nil, audit.NewDispatcher(nil))
	create.now = func() time.Time { return t0 }

	return &holdEnv{store: store, tenant: tenant, svc: svc, create: create}
}

func (e *holdEnv) createInput() CreateHoldInput {
	return CreateHoldInput{
		TenantID:   e.tenant.ID,
		StaffID:    1,
		ServiceID:  e.svc.ID,
		CustomerID: 10,
		Date:       "2026-01-06",
		Time:       "14:00",
	}
}

// ======================================================
// CREATE
// ======================================================

func TestCreateHold_Success(t *testing.T) {
	env := newHoldEnv(t)

	hold, err := env.create.Execute(context.Background(), env.createInput())
	require.NoError(t, err)

	assert.NotEmpty(t, hold.HoldKey)
	assert.True(t, hold.StartTime.Equal(time.Date(2026, 1, 6, 14, 0, 0, 0, time.UTC)))
	assert.True(t, hold.EndTime.Equal(time.Date(2026, 1, 6, 15, 0, 0, 0, time.UTC)))
	assert.True(t, hold.ExpiresAt.Equal(t0.Add(defaultHoldTTL)))
}

func TestCreateHold_Conflict(t *testing.T) {
	env := newHoldEnv(t)
	ctx := context.Background()

	_, err := env.create.Execute(ctx, env.createInput())
	require.NoError(t, err)

	// mesma faixa: segunda tentativa perde
	in := env.createInput()
	in.CustomerID = 11
	_, err = env.create.Execute(ctx, in)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeTimeConflict))

	// faixa sobreposta parcialmente também perde
	in.Time = "14:30"
	_, err = env.create.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeTimeConflict))

	// faixa encostada (15:00) não conflita
	in.Time = "15:00"
	_, err = env.create.Execute(ctx, in)
	assert.NoError(t, err)
}

func TestCreateHold_TooSoon(t *testing.T) {
	env := newHoldEnv(t)

	in := env.createInput()
	in.Date = "2026-01-05"
	in.Time = "11:00" // 1h de antecedência, mínimo é 2h

	_, err := env.create.Execute(context.Background(), in)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "too_soon"))
}

func TestCreateHold_OutsideRuleWindow(t *testing.T) {
	env := newHoldEnv(t)
	ctx := context.Background()

	// quarta-feira não tem regra ativa
	in := env.createInput()
	in.Date = "2026-01-07"
	in.Time = "03:00"
	_, err := env.create.Execute(ctx, in)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "outside_availability"))

	// dia com regra, mas a faixa estoura o fim da janela
	in = env.createInput()
	in.Time = "17:30" // 60min terminam 18:30, janela fecha 18:00
	_, err = env.create.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "outside_availability"))
}

func TestCreateHold_TimeOffSuppressesDay(t *testing.T) {
	env := newHoldEnv(t)
	ctx := context.Background()

	day := time.Date(2026, time.January, 6, 0, 0, 0, 0, time.UTC)
	require.NoError(t, env.store.CreateException(ctx, &models.TimeOffException{
		TenantID:  env.tenant.ID,
		StaffID:   1,
		StartDate: day,
		EndDate:   day,
		Reason:    "folga",
	}))

	_, err := env.create.Execute(ctx, env.createInput())
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "outside_availability"))
}

func TestCreateHold_ExactlyOneWinner(t *testing.T) {
	env := newHoldEnv(t)
	ctx := context.Background()

	const n = 16

	var wg sync.WaitGroup
	results := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := env.createInput()
			in.CustomerID = uint(100 + i)
			_, results[i] = env.create.Execute(ctx, in)
		}(i)
	}
	wg.Wait()

	wins, conflicts := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case httperr.IsBusiness(err, httperr.CodeTimeConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, wins)
	assert.Equal(t, n-1, conflicts)
}

// ======================================================
// EXPIRY
// ======================================================

func TestHold_ExpiresLazily(t *testing.T) {
	env := newHoldEnv(t)
	ctx := context.Background()

	hold, err := env.create.Execute(ctx, env.createInput())
	require.NoError(t, err)

	// aos 10 minutos o hold ainda bloqueia
	env.store.Now = func() time.Time { return t0.Add(10 * time.Minute) }
	conflict, err := env.store.HasConflict(
		ctx, env.tenant.ID, 1, hold.StartTime, hold.EndTime,
	)
	require.NoError(t, err)
	assert.True(t, conflict)

	// aos 16 minutos já não bloqueia, mesmo sem sweep
	env.store.Now = func() time.Time { return t0.Add(16 * time.Minute) }
	conflict, err = env.store.HasConflict(
		ctx, env.tenant.ID, 1, hold.StartTime, hold.EndTime,
	)
	require.NoError(t, err)
	assert.False(t, conflict)
}

func TestCreateHold_ExpiredHoldDoesNotBlockNewHold(t *testing.T) {
	env := newHoldEnv(t)
	ctx := context.Background()

	_, err := env.create.Execute(ctx, env.createInput())
	require.NoError(t, err)

	// 16 minutos depois o hold venceu; nenhum sweep rodou
	later := t0.Add(16 * time.Minute)
	env.store.Now = func() time.Time { return later }
	env.create.now = func() time.Time { return later }

	in := env.createInput()
	in.CustomerID = 11
	_, err = env.create.Execute(ctx, in)
	assert.NoError(t, err)
}

func TestExpireHolds_Sweep(t *testing.T) {
	env := newHoldEnv(t)
	ctx := context.Background()

	hold, err := env.create.Execute(ctx, env.createInput())
	require.NoError(t, err)

	sweeper := NewExpireHolds(env.store, nil, notify.NewDispatcher(notify.LogNotifier{}))

	// antes da expiração nada é recolhido
	sweeper.now = func() time.Time { return t0.Add(10 * time.Minute) }
	n, err := sweeper.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	sweeper.now = func() time.Time { return t0.Add(16 * time.Minute) }
	n, err = sweeper.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = env.store.GetHoldByKey(ctx, env.tenant.ID, hold.HoldKey)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeHoldNotFound))
}

// ======================================================
// RELEASE
// ======================================================

func TestReleaseHold_SecondReleaseFails(t *testing.T) {
	env := newHoldEnv(t)
	ctx := context.Background()

	hold, err := env.create.Execute(ctx, env.createInput())
	require.NoError(t, err)

	release := NewReleaseHold(env.store, nil, audit.NewDispatcher(nil))

	_, err = release.Execute(ctx, env.tenant.ID, hold.HoldKey)
	require.NoError(t, err)

	// a faixa volta a ficar livre
	conflict, err := env.store.HasConflict(
		ctx, env.tenant.ID, 1, hold.StartTime, hold.EndTime,
	)
	require.NoError(t, err)
	assert.False(t, conflict)

	_, err = release.Execute(ctx, env.tenant.ID, hold.HoldKey)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeHoldNotFound))
}

// ======================================================
// CONVERT
// ======================================================

func TestConvertHold_Seamless(t *testing.T) {
	env := newHoldEnv(t)
	ctx := context.Background()

	hold, err := env.create.Execute(ctx, env.createInput())
	require.NoError(t, err)

	convert := NewConvertHold(env.store, nil, audit.NewDispatcher(nil))
	convert.now = func() time.Time { return t0.Add(5 * time.Minute) }

	booking, err := convert.Execute(ctx, env.tenant.ID, hold.HoldKey)
	require.NoError(t, err)

	assert.Equal(t, "confirmed", booking.Status)
	assert.True(t, booking.StartTime.Equal(hold.StartTime))
	assert.True(t, booking.EndTime.Equal(hold.EndTime))

	// a faixa continua ocupada, agora pelo booking
	conflict, err := env.store.HasConflict(
		ctx, env.tenant.ID, 1, hold.StartTime, hold.EndTime,
	)
	require.NoError(t, err)
	assert.True(t, conflict)

	// o hold sumiu
	_, err = env.store.GetHoldByKey(ctx, env.tenant.ID, hold.HoldKey)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeHoldNotFound))
}

func TestConvertHold_ExpiredFails(t *testing.T) {
	env := newHoldEnv(t)
	ctx := context.Background()

	hold, err := env.create.Execute(ctx, env.createInput())
	require.NoError(t, err)

	convert := NewConvertHold(env.store, nil, audit.NewDispatcher(nil))
	convert.now = func() time.Time { return t0.Add(20 * time.Minute) }

	_, err = convert.Execute(ctx, env.tenant.ID, hold.HoldKey)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeHoldNotFound))
}

// ======================================================
// CANCEL + PROMOÇÃO
// ======================================================

func TestCancelBooking_PromotesBestWaitingEntry(t *testing.T) {
	env := newHoldEnv(t)
	ctx := context.Background()

	start := time.Date(2026, 1, 6, 14, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	booking := env.store.SeedBooking(models.Booking{
		TenantID:   env.tenant.ID,
		StaffID:    1,
		ServiceID:  env.svc.ID,
		CustomerID: 10,
		StartTime:  start,
		EndTime:    end,
		Status:     "confirmed",
	})

	// duas entradas sobre a mesma janela; prioridade 1 deve vencer
	low := models.WaitlistEntry{
		TenantID: env.tenant.ID, StaffID: 1, ServiceID: env.svc.ID,
		CustomerID: 20, PreferredStart: start, PreferredEnd: end, Priority: 2,
	}
	high := models.WaitlistEntry{
		TenantID: env.tenant.ID, StaffID: 1, ServiceID: env.svc.ID,
		CustomerID: 21, PreferredStart: start, PreferredEnd: end, Priority: 1,
	}
	require.NoError(t, env.store.CreateEntry(ctx, &low))
	require.NoError(t, env.store.CreateEntry(ctx, &high))

	cancel := NewCancelBooking(
		env.store, env.store, nil,
		audit.NewDispatcher(nil),
		notify.NewDispatcher(notify.LogNotifier{}),
	)
	cancel.now = func() time.Time { return t0 }

	got, err := cancel.Execute(ctx, env.tenant.ID, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "canceled", got.Status)
	require.NotNil(t, got.CancelledAt)

	// só a entrada de prioridade 2 continua esperando
	waiting, err := env.store.ListWaiting(ctx, env.tenant.ID, 1)
	require.NoError(t, err)
	require.Len(t, waiting, 1)
	assert.Equal(t, low.ID, waiting[0].ID)
}

func TestCancelBooking_InvalidState(t *testing.T) {
	env := newHoldEnv(t)
	ctx := context.Background()

	booking := env.store.SeedBooking(models.Booking{
		TenantID:  env.tenant.ID,
		StaffID:   1,
		StartTime: t0,
		EndTime:   t0.Add(time.Hour),
		Status:    "completed",
	})

	cancel := NewCancelBooking(
		env.store, env.store, nil,
		audit.NewDispatcher(nil),
		notify.NewDispatcher(notify.LogNotifier{}),
	)

	_, err := cancel.Execute(ctx, env.tenant.ID, booking.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCancelBooking_NoPromotionWhenWindowStillBusy(t *testing.T) {
	env := newHoldEnv(t)
	ctx := context.Background()

	start := time.Date(2026, 1, 6, 14, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	booking := env.store.SeedBooking(models.Booking{
		TenantID: env.tenant.ID, StaffID: 1,
		StartTime: start, EndTime: end, Status: "confirmed",
	})

	// outro booking segue ocupando a janela preferida
	env.store.SeedBooking(models.Booking{
		TenantID: env.tenant.ID, StaffID: 1,
		StartTime: start.Add(30 * time.Minute), EndTime: end.Add(30 * time.Minute),
		Status: "confirmed",
	})

	entry := models.WaitlistEntry{
		TenantID: env.tenant.ID, StaffID: 1,
		CustomerID: 20, PreferredStart: start, PreferredEnd: end, Priority: 1,
	}
	require.NoError(t, env.store.CreateEntry(ctx, &entry))

	cancel := NewCancelBooking(
		env.store, env.store, nil,
		audit.NewDispatcher(nil),
		notify.NewDispatcher(notify.LogNotifier{}),
	)
	cancel.now = func() time.Time { return t0 }

	_, err := cancel.Execute(ctx, env.tenant.ID, booking.ID)
	require.NoError(t, err)

	// ninguém promovido: a entrada continua waiting
	waiting, err := env.store.ListWaiting(ctx, env.tenant.ID, 1)
	require.NoError(t, err)
	require.Len(t, waiting, 1)
	assert.Equal(t, entry.ID, waiting[0].ID)
}
