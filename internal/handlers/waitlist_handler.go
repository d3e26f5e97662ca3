package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	availdomain "github.com/BruksfildServices01/booking-core/internal/domain/availability"
	"github.com/BruksfildServices01/booking-core/internal/httperr"
	"github.com/BruksfildServices01/booking-core/internal/httpresp"
	ucWaitlist "github.com/BruksfildServices01/booking-core/internal/usecase/waitlist"
)

// ======================================================
// HANDLER
// ======================================================

type WaitlistHandler struct {
	schedule availdomain.Repository

	join  *ucWaitlist.Join
	leave *ucWaitlist.Leave
}

func NewWaitlistHandler(
	schedule availdomain.Repository,
	join *ucWaitlist.Join,
	leave *ucWaitlist.Leave,
) *WaitlistHandler {
	return &WaitlistHandler{schedule: schedule, join: join, leave: leave}
}

// ======================================================
// REQUESTS
// ======================================================

type JoinWaitlistRequest struct {
	StaffID    uint `json:"staff_id" binding:"required"`
	ServiceID  uint `json:"service_id" binding:"required"`
	CustomerID uint `json:"customer_id" binding:"required"`

	PreferredStart time.Time `json:"preferred_start" binding:"required"` // RFC3339
	PreferredEnd   time.Time `json:"preferred_end" binding:"required"`   // RFC3339

	Priority int `json:"priority"`
}

// ======================================================
// POST /api/public/:slug/waitlist
// ======================================================

func (h *WaitlistHandler) Join(c *gin.Context) {
	tenant, err := h.schedule.GetTenantBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.NotFound(c, "tenant_not_found", "Estabelecimento não encontrado.")
		return
	}

	var req JoinWaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	entry, err := h.join.Execute(c.Request.Context(), ucWaitlist.JoinInput{
		TenantID:       tenant.ID,
		StaffID:        req.StaffID,
		ServiceID:      req.ServiceID,
		CustomerID:     req.CustomerID,
		PreferredStart: req.PreferredStart,
		PreferredEnd:   req.PreferredEnd,
		Priority:       req.Priority,
	})
	if err != nil {
		writeError(c, err, "failed_to_join_waitlist", "Erro ao entrar na lista de espera.")
		return
	}

	httpresp.Created(c, entry)
}

// ======================================================
// DELETE /api/public/:slug/waitlist/:id
// ======================================================

func (h *WaitlistHandler) Leave(c *gin.Context) {
	tenant, err := h.schedule.GetTenantBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.NotFound(c, "tenant_not_found", "Estabelecimento não encontrado.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	entry, err := h.leave.Execute(c.Request.Context(), tenant.ID, uint(id))
	if err != nil {
		writeError(c, err, "failed_to_leave_waitlist", "Erro ao sair da lista de espera.")
		return
	}

	httpresp.OK(c, entry)
}
