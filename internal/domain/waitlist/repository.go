package waitlist

import (
	"context"
	"time"

	"github.com/BruksfildServices01/booking-core/internal/models"
)

type Repository interface {
	// CreateEntry grava uma entrada waiting. Já existindo entrada
	// ativa para (customer, staff, janela preferida) ⇒
	// duplicate_waitlist.
	CreateEntry(
		ctx context.Context,
		entry *models.WaitlistEntry,
	) error

	ListWaiting(
		ctx context.Context,
		tenantID uint,
		staffID uint,
	) ([]models.WaitlistEntry, error)

	MarkNotified(
		ctx context.Context,
		tenantID uint,
		entryID uint,
		now time.Time,
	) error

	// RemoveEntry é idempotente na perspectiva do caller de Leave;
	// segunda remoção ⇒ entry_not_found (benigno).
	RemoveEntry(
		ctx context.Context,
		tenantID uint,
		entryID uint,
	) (*models.WaitlistEntry, error)
}
