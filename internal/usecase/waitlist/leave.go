package waitlist

import (
	"context"

	"github.com/BruksfildServices01/booking-core/internal/audit"
	domain "github.com/BruksfildServices01/booking-core/internal/domain/waitlist"
	"github.com/BruksfildServices01/booking-core/internal/models"
)

type Leave struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewLeave(repo domain.Repository, auditDispatcher *audit.Dispatcher) *Leave {
	return &Leave{repo: repo, audit: auditDispatcher}
}

// Execute remove a entrada do cliente. Entrada já removida devolve
// entry_not_found, que o handler trata como benigno.
func (uc *Leave) Execute(
	ctx context.Context,
	tenantID uint,
	entryID uint,
) (*models.WaitlistEntry, error) {

	entry, err := uc.repo.RemoveEntry(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		Action:   audit.ActionWaitlistLeft,
		Entity:   "waitlist_entry",
		EntityID: &entry.ID,
	})

	return entry, nil
}
