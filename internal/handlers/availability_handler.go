package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	availdomain "github.com/BruksfildServices01/booking-core/internal/domain/availability"
	"github.com/BruksfildServices01/booking-core/internal/httperr"
	"github.com/BruksfildServices01/booking-core/internal/httpresp"
	"github.com/BruksfildServices01/booking-core/internal/models"
	ucAvailability "github.com/BruksfildServices01/booking-core/internal/usecase/availability"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	schedule       availdomain.Repository
	getSlots       *ucAvailability.GetAvailableSlots
	bookingEnabled *ucAvailability.IsBookingEnabled
}

func NewAvailabilityHandler(
	schedule availdomain.Repository,
	getSlots *ucAvailability.GetAvailableSlots,
	bookingEnabled *ucAvailability.IsBookingEnabled,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		schedule:       schedule,
		getSlots:       getSlots,
		bookingEnabled: bookingEnabled,
	}
}

// ======================================================
// HELPERS
// ======================================================

func (h *AvailabilityHandler) tenantFromSlug(c *gin.Context) (*models.Tenant, bool) {
	tenant, err := h.schedule.GetTenantBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.NotFound(c, "tenant_not_found", "Estabelecimento não encontrado.")
		return nil, false
	}
	return tenant, true
}

func queryUint(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

// ======================================================
// GET /api/public/:slug/availability
// ======================================================

func (h *AvailabilityHandler) GetSlots(c *gin.Context) {
	tenant, ok := h.tenantFromSlug(c)
	if !ok {
		return
	}

	staffID, ok1 := queryUint(c, "staff_id")
	serviceID, ok2 := queryUint(c, "service_id")
	if !ok1 || !ok2 {
		httperr.BadRequest(c, "missing_staff_or_service", "staff_id e service_id são obrigatórios.")
		return
	}

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inicial inválida.")
		return
	}

	to := from
	if raw := c.Query("to"); raw != "" {
		to, err = time.Parse("2006-01-02", raw)
		if err != nil || to.Before(from) {
			httperr.BadRequest(c, "invalid_date", "Data final inválida.")
			return
		}
	}

	slots, err := h.getSlots.Execute(c.Request.Context(), ucAvailability.GetAvailableSlotsInput{
		TenantID:  tenant.ID,
		StaffID:   staffID,
		ServiceID: serviceID,
		DateFrom:  from,
		DateTo:    to,
	})
	if err != nil {
		writeError(c, err, "failed_to_list_availability", "Erro ao consultar disponibilidade.")
		return
	}

	httpresp.List(c, slots)
}

// ======================================================
// GET /api/public/:slug/booking-enabled
// ======================================================

func (h *AvailabilityHandler) BookingEnabled(c *gin.Context) {
	tenant, ok := h.tenantFromSlug(c)
	if !ok {
		return
	}

	staffID, ok1 := queryUint(c, "staff_id")
	serviceID, ok2 := queryUint(c, "service_id")
	if !ok1 || !ok2 {
		httperr.BadRequest(c, "missing_staff_or_service", "staff_id e service_id são obrigatórios.")
		return
	}

	enabled, err := h.bookingEnabled.Execute(c.Request.Context(), tenant.ID, staffID, serviceID)
	if err != nil {
		writeError(c, err, "failed_to_check_booking", "Erro ao verificar disponibilidade.")
		return
	}

	httpresp.OK(c, gin.H{"booking_enabled": enabled})
}
