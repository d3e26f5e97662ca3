package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-core/internal/httperr"
	"github.com/BruksfildServices01/booking-core/internal/httpresp"
	"github.com/BruksfildServices01/booking-core/internal/middleware"
	ucSchedule "github.com/BruksfildServices01/booking-core/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type RulesHandler struct {
	upsert  *ucSchedule.UpsertRule
	list    *ucSchedule.ListRules
	timeOff *ucSchedule.AddTimeOff
}

func NewRulesHandler(
	upsert *ucSchedule.UpsertRule,
	list *ucSchedule.ListRules,
	timeOff *ucSchedule.AddTimeOff,
) *RulesHandler {
	return &RulesHandler{upsert: upsert, list: list, timeOff: timeOff}
}

// ======================================================
// REQUESTS
// ======================================================

type UpsertRuleRequest struct {
	Weekday   int    `json:"weekday" binding:"required"`    // ISO: 1 = segunda ... 7 = domingo
	StartTime string `json:"start_time" binding:"required"` // HH:MM local
	EndTime   string `json:"end_time" binding:"required"`   // HH:MM local
}

type AddTimeOffRequest struct {
	StartDate string `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate   string `json:"end_date" binding:"required"`   // YYYY-MM-DD
	Reason    string `json:"reason"`
}

func paramStaffID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("staffId"), 10, 32)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_staff", "Staff inválido.")
		return 0, false
	}
	return uint(id), true
}

// ======================================================
// PUT /api/me/staff/:staffId/rules
// ======================================================

func (h *RulesHandler) Upsert(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	staffID, ok := paramStaffID(c)
	if !ok {
		return
	}

	var req UpsertRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	rule, err := h.upsert.Execute(c.Request.Context(), ucSchedule.UpsertRuleInput{
		TenantID:  tenantID,
		StaffID:   staffID,
		Weekday:   req.Weekday,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		writeError(c, err, "failed_to_upsert_rule", "Erro ao salvar regra.")
		return
	}

	httpresp.OK(c, rule)
}

// ======================================================
// GET /api/me/staff/:staffId/rules
// ======================================================

func (h *RulesHandler) List(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	staffID, ok := paramStaffID(c)
	if !ok {
		return
	}

	rules, err := h.list.Execute(c.Request.Context(), tenantID, staffID)
	if err != nil {
		writeError(c, err, "failed_to_list_rules", "Erro ao listar regras.")
		return
	}

	httpresp.List(c, rules)
}

// ======================================================
// POST /api/me/staff/:staffId/time-off
// ======================================================

func (h *RulesHandler) AddTimeOff(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	staffID, ok := paramStaffID(c)
	if !ok {
		return
	}

	var req AddTimeOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ex, err := h.timeOff.Execute(c.Request.Context(), ucSchedule.AddTimeOffInput{
		TenantID:  tenantID,
		StaffID:   staffID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
	})
	if err != nil {
		writeError(c, err, "failed_to_add_time_off", "Erro ao registrar folga.")
		return
	}

	httpresp.Created(c, ex)
}
