package availability

import (
	"context"
	"time"

	"github.com/BruksfildServices01/booking-core/internal/models"
)

// Repository é o colaborador de leitura de regras/exceções.
// Escopo de tenant obrigatório em toda consulta.
type Repository interface {
	GetTenantByID(
		ctx context.Context,
		id uint,
	) (*models.Tenant, error)

	GetTenantBySlug(
		ctx context.Context,
		slug string,
	) (*models.Tenant, error)

	GetService(
		ctx context.Context,
		tenantID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Regras / exceções --------

	LoadRules(
		ctx context.Context,
		tenantID uint,
		staffID uint,
	) ([]models.AvailabilityRule, error)

	LoadExceptions(
		ctx context.Context,
		tenantID uint,
		staffID uint,
		from time.Time,
		to time.Time,
	) ([]models.TimeOffException, error)

	// -------- Escritas administrativas --------

	UpsertRule(
		ctx context.Context,
		rule *models.AvailabilityRule,
	) error

	CreateException(
		ctx context.Context,
		ex *models.TimeOffException,
	) error
}
