package schedule

import (
	"context"
	"time"

	"github.com/BruksfildServices01/booking-core/internal/audit"
	"github.com/BruksfildServices01/booking-core/internal/cache"
	domain "github.com/BruksfildServices01/booking-core/internal/domain/availability"
	"github.com/BruksfildServices01/booking-core/internal/httperr"
	"github.com/BruksfildServices01/booking-core/internal/models"
)

type AddTimeOffInput struct {
	TenantID uint
	StaffID  uint

	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
	Reason    string
}

type AddTimeOff struct {
	repo  domain.Repository
	cache cache.SlotCache
	audit *audit.Dispatcher
}

func NewAddTimeOff(
	repo domain.Repository,
	slotCache cache.SlotCache,
	auditDispatcher *audit.Dispatcher,
) *AddTimeOff {
	return &AddTimeOff{repo: repo, cache: slotCache, audit: auditDispatcher}
}

func (uc *AddTimeOff) Execute(
	ctx context.Context,
	in AddTimeOffInput,
) (*models.TimeOffException, error) {

	start, err := time.Parse("2006-01-02", in.StartDate)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	end, err := time.Parse("2006-01-02", in.EndDate)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	if end.Before(start) {
		return nil, httperr.ErrBusiness("invalid_window")
	}

	ex := &models.TimeOffException{
		TenantID:  in.TenantID,
		StaffID:   in.StaffID,
		StartDate: start,
		EndDate:   end,
		Reason:    in.Reason,
	}

	if err := uc.repo.CreateException(ctx, ex); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		go uc.cache.Invalidate(context.Background(), in.TenantID, in.StaffID)
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: in.TenantID,
		Action:   audit.ActionTimeOffCreated,
		Entity:   "time_off_exception",
		EntityID: &ex.ID,
	})

	return ex, nil
}
