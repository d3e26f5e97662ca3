package reservation

import (
	"context"

	"github.com/BruksfildServices01/booking-core/internal/audit"
	"github.com/BruksfildServices01/booking-core/internal/cache"
	domain "github.com/BruksfildServices01/booking-core/internal/domain/reservation"
	"github.com/BruksfildServices01/booking-core/internal/models"
)

type ReleaseHold struct {
	repo  domain.Repository
	cache cache.SlotCache
	audit *audit.Dispatcher
}

func NewReleaseHold(
	repo domain.Repository,
	slotCache cache.SlotCache,
	auditDispatcher *audit.Dispatcher,
) *ReleaseHold {
	return &ReleaseHold{
		repo:  repo,
		cache: slotCache,
		audit: auditDispatcher,
	}
}

// Execute remove o hold. Segunda liberação devolve hold_not_found,
// benigno no caminho de release.
func (uc *ReleaseHold) Execute(
	ctx context.Context,
	tenantID uint,
	holdKey string,
) (*models.BookingHold, error) {

	hold, err := uc.repo.DeleteHold(ctx, tenantID, holdKey)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		go uc.cache.Invalidate(context.Background(), tenantID, hold.StaffID)
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		Action:   audit.ActionHoldReleased,
		Entity:   "hold",
		EntityID: &hold.ID,
	})

	return hold, nil
}
