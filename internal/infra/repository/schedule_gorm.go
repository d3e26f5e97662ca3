package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	availdomain "github.com/BruksfildServices01/booking-core/internal/domain/availability"
	"github.com/BruksfildServices01/booking-core/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Tenant
// --------------------------------------------------

func (r *ScheduleGormRepository) GetTenantByID(
	ctx context.Context,
	id uint,
) (*models.Tenant, error) {

	var tenant models.Tenant
	if err := r.db.WithContext(ctx).First(&tenant, id).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *ScheduleGormRepository) GetTenantBySlug(
	ctx context.Context,
	slug string,
) (*models.Tenant, error) {

	var tenant models.Tenant
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *ScheduleGormRepository) GetService(
	ctx context.Context,
	tenantID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", serviceID, tenantID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Regras / exceções
// --------------------------------------------------

func (r *ScheduleGormRepository) LoadRules(
	ctx context.Context,
	tenantID uint,
	staffID uint,
) ([]models.AvailabilityRule, error) {

	var rules []models.AvailabilityRule
	if err := r.db.WithContext(ctx).
		Where(
			"tenant_id = ? AND staff_id = ? AND active = true",
			tenantID, staffID,
		).
		Order("weekday ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}

	return rules, nil
}

func (r *ScheduleGormRepository) LoadExceptions(
	ctx context.Context,
	tenantID uint,
	staffID uint,
	from time.Time,
	to time.Time,
) ([]models.TimeOffException, error) {

	var exceptions []models.TimeOffException
	if err := r.db.WithContext(ctx).
		Where(
			"tenant_id = ? AND staff_id = ? AND start_date <= ? AND end_date >= ?",
			tenantID, staffID, to, from,
		).
		Order("start_date ASC").
		Find(&exceptions).Error; err != nil {
		return nil, err
	}

	return exceptions, nil
}

// UpsertRule: no máximo uma regra ativa por (staff, weekday).
// A anterior é desativada na mesma transação.
func (r *ScheduleGormRepository) UpsertRule(
	ctx context.Context,
	rule *models.AvailabilityRule,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.Model(&models.AvailabilityRule{}).
			Where(
				"tenant_id = ? AND staff_id = ? AND weekday = ? AND active = true",
				rule.TenantID, rule.StaffID, rule.Weekday,
			).
			Update("active", false).Error; err != nil {
			return err
		}

		rule.Active = true
		return tx.Create(rule).Error
	})
}

func (r *ScheduleGormRepository) CreateException(
	ctx context.Context,
	ex *models.TimeOffException,
) error {
	return r.db.WithContext(ctx).Create(ex).Error
}

// Compile-time check
var _ availdomain.Repository = (*ScheduleGormRepository)(nil)
