package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	resdomain "github.com/BruksfildServices01/booking-core/internal/domain/reservation"
	"github.com/BruksfildServices01/booking-core/internal/httperr"
	"github.com/BruksfildServices01/booking-core/internal/models"
)

var occupyingStatuses = []string{
	string(resdomain.StatusPending),
	string(resdomain.StatusConfirmed),
}

type ReservationGormRepository struct {
	db *gorm.DB

	now func() time.Time
}

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// --------------------------------------------------
// Conflict index
// --------------------------------------------------

func (r *ReservationGormRepository) HasConflict(
	ctx context.Context,
	tenantID uint,
	staffID uint,
	start time.Time,
	end time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"tenant_id = ? AND staff_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			tenantID, staffID, occupyingStatuses, end, start,
		).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	// holds vencidos são ausentes, mesmo antes da remoção física
	if err := r.db.WithContext(ctx).
		Model(&models.BookingHold{}).
		Where(
			"tenant_id = ? AND staff_id = ? AND expires_at > ? AND start_time < ? AND end_time > ?",
			tenantID, staffID, r.now(), end, start,
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// --------------------------------------------------
// Holds
// --------------------------------------------------

// ReserveHold é o check-and-insert atômico: lock das linhas
// sobrepostas + contagem + insert na mesma transação. A exclusion
// constraint do Postgres é o backstop (ver internal/db).
func (r *ReservationGormRepository) ReserveHold(
	ctx context.Context,
	hold *models.BookingHold,
) error {

	now := r.now()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var count int64
		if err := tx.
			Model(&models.Booking{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"tenant_id = ? AND staff_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
				hold.TenantID, hold.StaffID, occupyingStatuses,
				hold.EndTime, hold.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness(httperr.CodeTimeConflict)
		}

		if err := tx.
			Model(&models.BookingHold{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"tenant_id = ? AND staff_id = ? AND expires_at > ? AND start_time < ? AND end_time > ?",
				hold.TenantID, hold.StaffID, now,
				hold.EndTime, hold.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness(httperr.CodeTimeConflict)
		}

		// holds vencidos ainda sobrepostos precisam sair antes do
		// insert: a exclusion constraint não conhece expires_at e
		// barraria a faixa recém-liberada até o sweep
		if err := tx.
			Where(
				"tenant_id = ? AND staff_id = ? AND expires_at <= ? AND start_time < ? AND end_time > ?",
				hold.TenantID, hold.StaffID, now,
				hold.EndTime, hold.StartTime,
			).
			Delete(&models.BookingHold{}).Error; err != nil {
			return err
		}

		return tx.Create(hold).Error
	})
}

func (r *ReservationGormRepository) GetHoldByKey(
	ctx context.Context,
	tenantID uint,
	holdKey string,
) (*models.BookingHold, error) {

	var hold models.BookingHold
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND hold_key = ?", tenantID, holdKey).
		First(&hold).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			return nil, httperr.ErrBusiness(httperr.CodeHoldNotFound)
		}
		return nil, err
	}

	return &hold, nil
}

func (r *ReservationGormRepository) DeleteHold(
	ctx context.Context,
	tenantID uint,
	holdKey string,
) (*models.BookingHold, error) {

	var released *models.BookingHold

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var hold models.BookingHold
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("tenant_id = ? AND hold_key = ?", tenantID, holdKey).
			First(&hold).Error; err != nil {

			if err == gorm.ErrRecordNotFound {
				return httperr.ErrBusiness(httperr.CodeHoldNotFound)
			}
			return err
		}

		if err := tx.Delete(&models.BookingHold{}, hold.ID).Error; err != nil {
			return err
		}

		released = &hold
		return nil
	})

	if err != nil {
		return nil, err
	}
	return released, nil
}

// ConvertHold troca hold por booking confirmado na mesma transação:
// a faixa nunca aparece livre no meio do caminho.
func (r *ReservationGormRepository) ConvertHold(
	ctx context.Context,
	tenantID uint,
	holdKey string,
	now time.Time,
) (*models.Booking, error) {

	var created *models.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var hold models.BookingHold
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("tenant_id = ? AND hold_key = ?", tenantID, holdKey).
			First(&hold).Error; err != nil {

			if err == gorm.ErrRecordNotFound {
				return httperr.ErrBusiness(httperr.CodeHoldNotFound)
			}
			return err
		}

		// hold vencido já é ausente para o índice de conflito
		if !resdomain.IsHoldActive(&hold, now) {
			return httperr.ErrBusiness(httperr.CodeHoldNotFound)
		}

		booking := &models.Booking{
			TenantID:   hold.TenantID,
			StaffID:    hold.StaffID,
			ServiceID:  hold.ServiceID,
			CustomerID: hold.CustomerID,
			StartTime:  hold.StartTime,
			EndTime:    hold.EndTime,
			Status:     string(resdomain.StatusConfirmed),
		}

		if err := tx.Create(booking).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.BookingHold{}, hold.ID).Error; err != nil {
			return err
		}

		created = booking
		return nil
	})

	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *ReservationGormRepository) DeleteExpiredHolds(
	ctx context.Context,
	now time.Time,
) ([]models.BookingHold, error) {

	var expired []models.BookingHold

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("expires_at <= ?", now).
			Find(&expired).Error; err != nil {
			return err
		}

		if len(expired) == 0 {
			return nil
		}

		ids := make([]uint, 0, len(expired))
		for _, h := range expired {
			ids = append(ids, h.ID)
		}
		return tx.Delete(&models.BookingHold{}, ids).Error
	})

	if err != nil {
		return nil, err
	}
	return expired, nil
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

func (r *ReservationGormRepository) GetBooking(
	ctx context.Context,
	tenantID uint,
	bookingID uint,
) (*models.Booking, error) {

	var booking models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", bookingID, tenantID).
		First(&booking).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
		return nil, err
	}

	return &booking, nil
}

func (r *ReservationGormRepository) LoadActiveBookings(
	ctx context.Context,
	tenantID uint,
	staffID uint,
	from time.Time,
	to time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where(
			"tenant_id = ? AND staff_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			tenantID, staffID, occupyingStatuses, to, from,
		).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *ReservationGormRepository) UpdateBooking(
	ctx context.Context,
	booking *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

// Compile-time check
var _ resdomain.Repository = (*ReservationGormRepository)(nil)
