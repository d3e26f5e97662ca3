package schedule

import (
	"context"

	domain "github.com/BruksfildServices01/booking-core/internal/domain/availability"
	"github.com/BruksfildServices01/booking-core/internal/models"
)

type ListRules struct {
	repo domain.Repository
}

func NewListRules(repo domain.Repository) *ListRules {
	return &ListRules{repo: repo}
}

func (uc *ListRules) Execute(
	ctx context.Context,
	tenantID uint,
	staffID uint,
) ([]models.AvailabilityRule, error) {
	return uc.repo.LoadRules(ctx, tenantID, staffID)
}
