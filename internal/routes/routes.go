package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-core/internal/audit"
	"github.com/BruksfildServices01/booking-core/internal/cache"
	"github.com/BruksfildServices01/booking-core/internal/config"
	"github.com/BruksfildServices01/booking-core/internal/handlers"
	infraRepo "github.com/BruksfildServices01/booking-core/internal/infra/repository"
	"github.com/BruksfildServices01/booking-core/internal/middleware"
	"github.com/BruksfildServices01/booking-core/internal/notify"
	ucAvailability "github.com/BruksfildServices01/booking-core/internal/usecase/availability"
	ucReservation "github.com/BruksfildServices01/booking-core/internal/usecase/reservation"
	ucSchedule "github.com/BruksfildServices01/booking-core/internal/usecase/schedule"
	ucWaitlist "github.com/BruksfildServices01/booking-core/internal/usecase/waitlist"
)

// Deps agrupa o que o processo monta fora do router.
type Deps struct {
	DB    *gorm.DB
	Redis *redis.Client
	Cfg   *config.Config
}

// RegisterRoutes monta os singletons e liga as rotas.
// Devolve o sweeper de holds para o main agendar.
func RegisterRoutes(r *gin.Engine, d Deps) *ucReservation.ExpireHolds {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(d.DB)
	reservationRepo := infraRepo.NewReservationGormRepository(d.DB)
	waitlistRepo := infraRepo.NewWaitlistGormRepository(d.DB)

	auditLogger := audit.New(d.DB)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	notifyDispatcher := notify.NewDispatcher(notify.LogNotifier{})

	var slotCache cache.SlotCache
	if d.Redis != nil {
		slotCache = cache.NewRedis(d.Redis, d.Cfg.CacheTTL)
	}

	// ======================================================
	// 🧠 USE CASES — AVAILABILITY
	// ======================================================
	getSlotsUC := ucAvailability.NewGetAvailableSlots(
		scheduleRepo,
		reservationRepo,
		slotCache,
	)

	bookingEnabledUC := ucAvailability.NewIsBookingEnabled(getSlotsUC)

	// ======================================================
	// 🧠 USE CASES — RESERVATION
	// ======================================================
	createHoldUC := ucReservation.NewCreateHold(
		reservationRepo,
		scheduleRepo,
		slotCache,
		auditDispatcher,
	)

	releaseHoldUC := ucReservation.NewReleaseHold(
		reservationRepo,
		slotCache,
		auditDispatcher,
	)

	convertHoldUC := ucReservation.NewConvertHold(
		reservationRepo,
		slotCache,
		auditDispatcher,
	)

	cancelBookingUC := ucReservation.NewCancelBooking(
		reservationRepo,
		waitlistRepo,
		slotCache,
		auditDispatcher,
		notifyDispatcher,
	)

	expireHoldsUC := ucReservation.NewExpireHolds(
		reservationRepo,
		slotCache,
		notifyDispatcher,
	)

	// ======================================================
	// 🧠 USE CASES — WAITLIST / SCHEDULE
	// ======================================================
	joinWaitlistUC := ucWaitlist.NewJoin(waitlistRepo, auditDispatcher)
	leaveWaitlistUC := ucWaitlist.NewLeave(waitlistRepo, auditDispatcher)

	upsertRuleUC := ucSchedule.NewUpsertRule(scheduleRepo, slotCache, auditDispatcher)
	listRulesUC := ucSchedule.NewListRules(scheduleRepo)
	addTimeOffUC := ucSchedule.NewAddTimeOff(scheduleRepo, slotCache, auditDispatcher)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	availabilityHandler := handlers.NewAvailabilityHandler(
		scheduleRepo,
		getSlotsUC,
		bookingEnabledUC,
	)

	holdHandler := handlers.NewHoldHandler(
		scheduleRepo,
		createHoldUC,
		releaseHoldUC,
		convertHoldUC,
		d.Cfg.HoldTTL,
	)

	bookingHandler := handlers.NewBookingHandler(reservationRepo, cancelBookingUC)

	waitlistHandler := handlers.NewWaitlistHandler(
		scheduleRepo,
		joinWaitlistUC,
		leaveWaitlistUC,
	)

	rulesHandler := handlers.NewRulesHandler(upsertRuleUC, listRulesUC, addTimeOffUC)

	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/availability", availabilityHandler.GetSlots)
			publicAPI.GET("/:slug/booking-enabled", availabilityHandler.BookingEnabled)

			publicAPI.POST("/:slug/holds", holdHandler.Create)
			publicAPI.DELETE("/:slug/holds/:key", holdHandler.Release)
			publicAPI.POST("/:slug/holds/:key/confirm", holdHandler.Confirm)

			publicAPI.POST("/:slug/waitlist", waitlistHandler.Join)
			publicAPI.DELETE("/:slug/waitlist/:id", waitlistHandler.Leave)
		}

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Cfg))
		{
			secured.GET("/me/bookings", bookingHandler.List)
			secured.PATCH("/me/bookings/:id/cancel", bookingHandler.Cancel)

			secured.GET("/me/staff/:staffId/rules", rulesHandler.List)
			secured.PUT("/me/staff/:staffId/rules", rulesHandler.Upsert)
			secured.POST("/me/staff/:staffId/time-off", rulesHandler.AddTimeOff)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}

	return expireHoldsUC
}
