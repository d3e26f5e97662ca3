package waitlist

import (
	"context"
	"time"

	"github.com/BruksfildServices01/booking-core/internal/audit"
	domain "github.com/BruksfildServices01/booking-core/internal/domain/waitlist"
	"github.com/BruksfildServices01/booking-core/internal/httperr"
	"github.com/BruksfildServices01/booking-core/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type JoinInput struct {
	TenantID   uint
	StaffID    uint
	ServiceID  uint
	CustomerID uint

	PreferredStart time.Time // UTC
	PreferredEnd   time.Time // UTC

	// menor número = maior prioridade
	Priority int
}

// ======================================================
// USE CASE
// ======================================================

type Join struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewJoin(repo domain.Repository, auditDispatcher *audit.Dispatcher) *Join {
	return &Join{repo: repo, audit: auditDispatcher}
}

func (uc *Join) Execute(
	ctx context.Context,
	in JoinInput,
) (*models.WaitlistEntry, error) {

	if !in.PreferredStart.Before(in.PreferredEnd) {
		return nil, httperr.ErrBusiness("invalid_window")
	}

	entry := &models.WaitlistEntry{
		TenantID:       in.TenantID,
		StaffID:        in.StaffID,
		ServiceID:      in.ServiceID,
		CustomerID:     in.CustomerID,
		PreferredStart: in.PreferredStart.UTC(),
		PreferredEnd:   in.PreferredEnd.UTC(),
		Priority:       in.Priority,
		Status:         string(domain.StatusWaiting),
	}

	if err := uc.repo.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: in.TenantID,
		Action:   audit.ActionWaitlistJoined,
		Entity:   "waitlist_entry",
		EntityID: &entry.ID,
	})

	return entry, nil
}
