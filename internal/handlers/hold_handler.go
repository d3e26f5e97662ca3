package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	availdomain "github.com/BruksfildServices01/booking-core/internal/domain/availability"
	"github.com/BruksfildServices01/booking-core/internal/httperr"
	"github.com/BruksfildServices01/booking-core/internal/httpresp"
	ucReservation "github.com/BruksfildServices01/booking-core/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type HoldHandler struct {
	schedule availdomain.Repository

	create  *ucReservation.CreateHold
	release *ucReservation.ReleaseHold
	convert *ucReservation.ConvertHold

	holdTTL time.Duration
}

func NewHoldHandler(
	schedule availdomain.Repository,
	create *ucReservation.CreateHold,
	release *ucReservation.ReleaseHold,
	convert *ucReservation.ConvertHold,
	holdTTL time.Duration,
) *HoldHandler {
	return &HoldHandler{
		schedule: schedule,
		create:   create,
		release:  release,
		convert:  convert,
		holdTTL:  holdTTL,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateHoldRequest struct {
	StaffID    uint   `json:"staff_id" binding:"required"`
	ServiceID  uint   `json:"service_id" binding:"required"`
	CustomerID uint   `json:"customer_id" binding:"required"`
	Date       string `json:"date" binding:"required"` // YYYY-MM-DD local
	Time       string `json:"time" binding:"required"` // HH:mm local
}

// ======================================================
// POST /api/public/:slug/holds
// ======================================================

func (h *HoldHandler) Create(c *gin.Context) {
	tenant, err := h.schedule.GetTenantBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.NotFound(c, "tenant_not_found", "Estabelecimento não encontrado.")
		return
	}

	var req CreateHoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	hold, err := h.create.Execute(c.Request.Context(), ucReservation.CreateHoldInput{
		TenantID:   tenant.ID,
		StaffID:    req.StaffID,
		ServiceID:  req.ServiceID,
		CustomerID: req.CustomerID,
		Date:       req.Date,
		Time:       req.Time,
		TTL:        h.holdTTL,
	})
	if err != nil {
		writeError(c, err, "failed_to_create_hold", "Erro ao reservar horário.")
		return
	}

	httpresp.Created(c, hold)
}

// ======================================================
// DELETE /api/public/:slug/holds/:key
// ======================================================

func (h *HoldHandler) Release(c *gin.Context) {
	tenant, err := h.schedule.GetTenantBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.NotFound(c, "tenant_not_found", "Estabelecimento não encontrado.")
		return
	}

	hold, err := h.release.Execute(c.Request.Context(), tenant.ID, c.Param("key"))
	if err != nil {
		writeError(c, err, "failed_to_release_hold", "Erro ao liberar horário.")
		return
	}

	httpresp.OK(c, hold)
}

// ======================================================
// POST /api/public/:slug/holds/:key/confirm
// ======================================================

func (h *HoldHandler) Confirm(c *gin.Context) {
	tenant, err := h.schedule.GetTenantBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.NotFound(c, "tenant_not_found", "Estabelecimento não encontrado.")
		return
	}

	booking, err := h.convert.Execute(c.Request.Context(), tenant.ID, c.Param("key"))
	if err != nil {
		writeError(c, err, "failed_to_confirm_hold", "Erro ao confirmar agendamento.")
		return
	}

	httpresp.Created(c, booking)
}
