package schedule

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/booking-core/internal/audit"
	"github.com/BruksfildServices01/booking-core/internal/cache"
	domain "github.com/BruksfildServices01/booking-core/internal/domain/availability"
	"github.com/BruksfildServices01/booking-core/internal/httperr"
	"github.com/BruksfildServices01/booking-core/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type UpsertRuleInput struct {
	TenantID uint
	StaffID  uint

	Weekday   int    // ISO: 1 = segunda ... 7 = domingo
	StartTime string // HH:MM local
	EndTime   string // HH:MM local
}

// ======================================================
// USE CASE
// ======================================================

type UpsertRule struct {
	repo  domain.Repository
	cache cache.SlotCache
	audit *audit.Dispatcher
}

func NewUpsertRule(
	repo domain.Repository,
	slotCache cache.SlotCache,
	auditDispatcher *audit.Dispatcher,
) *UpsertRule {
	return &UpsertRule{repo: repo, cache: slotCache, audit: auditDispatcher}
}

func (uc *UpsertRule) Execute(
	ctx context.Context,
	in UpsertRuleInput,
) (*models.AvailabilityRule, error) {

	if in.Weekday < 1 || in.Weekday > 7 {
		return nil, httperr.ErrBusiness("invalid_weekday")
	}

	startMin, err := parseClock(in.StartTime)
	if err != nil {
		return nil, err
	}
	endMin, err := parseClock(in.EndTime)
	if err != nil {
		return nil, err
	}
	if startMin >= endMin {
		return nil, httperr.ErrBusiness("invalid_window")
	}

	rule := &models.AvailabilityRule{
		TenantID:  in.TenantID,
		StaffID:   in.StaffID,
		Weekday:   in.Weekday,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Active:    true,
	}

	if err := uc.repo.UpsertRule(ctx, rule); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		go uc.cache.Invalidate(context.Background(), in.TenantID, in.StaffID)
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: in.TenantID,
		Action:   audit.ActionRuleUpserted,
		Entity:   "availability_rule",
		EntityID: &rule.ID,
	})

	return rule, nil
}

// parseClock valida HH:MM e devolve minutos desde meia-noite.
func parseClock(s string) (int, error) {
	if len(s) != 5 || !strings.Contains(s, ":") {
		return 0, httperr.ErrBusiness("invalid_time_of_day")
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, httperr.ErrBusiness("invalid_time_of_day")
	}
	return t.Hour()*60 + t.Minute(), nil
}
