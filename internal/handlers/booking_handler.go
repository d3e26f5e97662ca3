package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	resdomain "github.com/BruksfildServices01/booking-core/internal/domain/reservation"
	"github.com/BruksfildServices01/booking-core/internal/httperr"
	"github.com/BruksfildServices01/booking-core/internal/httpresp"
	"github.com/BruksfildServices01/booking-core/internal/middleware"
	ucReservation "github.com/BruksfildServices01/booking-core/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	repo   resdomain.Repository
	cancel *ucReservation.CancelBooking
}

func NewBookingHandler(
	repo resdomain.Repository,
	cancel *ucReservation.CancelBooking,
) *BookingHandler {
	return &BookingHandler{repo: repo, cancel: cancel}
}

// ======================================================
// GET /api/me/bookings?staff_id=&from=&to=
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	staffID, ok := queryUint(c, "staff_id")
	if !ok {
		httperr.BadRequest(c, "missing_staff", "staff_id é obrigatório.")
		return
	}

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inicial inválida.")
		return
	}

	to := from.Add(24 * time.Hour)
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil || parsed.Before(from) {
			httperr.BadRequest(c, "invalid_date", "Data final inválida.")
			return
		}
		to = parsed.Add(24 * time.Hour)
	}

	bookings, err := h.repo.LoadActiveBookings(c.Request.Context(), tenantID, staffID, from, to)
	if err != nil {
		writeError(c, err, "failed_to_list_bookings", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, bookings)
}

// ======================================================
// PATCH /api/me/bookings/:id/cancel
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	booking, err := h.cancel.Execute(c.Request.Context(), tenantID, uint(id))
	if err != nil {
		writeError(c, err, "failed_to_cancel_booking", "Erro ao cancelar agendamento.")
		return
	}

	httpresp.OK(c, booking)
}
