package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	wldomain "github.com/BruksfildServices01/booking-core/internal/domain/waitlist"
	"github.com/BruksfildServices01/booking-core/internal/httperr"
	"github.com/BruksfildServices01/booking-core/internal/models"
)

type WaitlistGormRepository struct {
	db *gorm.DB
}

func NewWaitlistGormRepository(db *gorm.DB) *WaitlistGormRepository {
	return &WaitlistGormRepository{db: db}
}

// CreateEntry rejeita registro duplicado: já existindo entrada
// waiting do mesmo cliente para o mesmo recurso e janela, devolve
// duplicate_waitlist.
func (r *WaitlistGormRepository) CreateEntry(
	ctx context.Context,
	entry *models.WaitlistEntry,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var count int64
		if err := tx.
			Model(&models.WaitlistEntry{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"tenant_id = ? AND staff_id = ? AND customer_id = ? AND preferred_start = ? AND preferred_end = ? AND status = ?",
				entry.TenantID, entry.StaffID, entry.CustomerID,
				entry.PreferredStart, entry.PreferredEnd,
				string(wldomain.StatusWaiting),
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness(httperr.CodeDuplicateEntry)
		}

		entry.Status = string(wldomain.StatusWaiting)
		return tx.Create(entry).Error
	})
}

func (r *WaitlistGormRepository) ListWaiting(
	ctx context.Context,
	tenantID uint,
	staffID uint,
) ([]models.WaitlistEntry, error) {

	var entries []models.WaitlistEntry
	if err := r.db.WithContext(ctx).
		Where(
			"tenant_id = ? AND staff_id = ? AND status = ?",
			tenantID, staffID, string(wldomain.StatusWaiting),
		).
		Order("priority ASC, created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *WaitlistGormRepository) MarkNotified(
	ctx context.Context,
	tenantID uint,
	entryID uint,
	now time.Time,
) error {

	return r.db.WithContext(ctx).
		Model(&models.WaitlistEntry{}).
		Where("id = ? AND tenant_id = ?", entryID, tenantID).
		Updates(map[string]any{
			"status":      string(wldomain.StatusNotified),
			"notified_at": now,
		}).Error
}

func (r *WaitlistGormRepository) RemoveEntry(
	ctx context.Context,
	tenantID uint,
	entryID uint,
) (*models.WaitlistEntry, error) {

	var removed *models.WaitlistEntry

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var entry models.WaitlistEntry
		if err := tx.
			Where("id = ? AND tenant_id = ?", entryID, tenantID).
			First(&entry).Error; err != nil {

			if err == gorm.ErrRecordNotFound {
				return httperr.ErrBusiness(httperr.CodeEntryNotFound)
			}
			return err
		}

		if err := tx.Delete(&models.WaitlistEntry{}, entry.ID).Error; err != nil {
			return err
		}

		removed = &entry
		return nil
	})

	if err != nil {
		return nil, err
	}
	return removed, nil
}

// Compile-time check
var _ wldomain.Repository = (*WaitlistGormRepository)(nil)
