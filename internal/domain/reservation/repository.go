package reservation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/booking-core/internal/models"
)

// ConflictIndex responde se uma faixa já está ocupada por booking
// pending/confirmed ou hold não expirado do mesmo recurso.
type ConflictIndex interface {
	HasConflict(
		ctx context.Context,
		tenantID uint,
		staffID uint,
		start time.Time,
		end time.Time,
	) (bool, error)
}

// Repository concentra o espaço de conflito de um tenant.
//
// ReserveHold é o único ponto de sincronização crítico do engine:
// check-and-insert atômico por (tenant, staff). Para duas tentativas
// concorrentes sobrepostas, exatamente uma vence; a outra recebe
// time_conflict.
type Repository interface {
	ConflictIndex

	// -------- Holds --------

	ReserveHold(
		ctx context.Context,
		hold *models.BookingHold,
	) error

	GetHoldByKey(
		ctx context.Context,
		tenantID uint,
		holdKey string,
	) (*models.BookingHold, error)

	// DeleteHold remove o hold; segunda remoção ⇒ hold_not_found.
	DeleteHold(
		ctx context.Context,
		tenantID uint,
		holdKey string,
	) (*models.BookingHold, error)

	// ConvertHold troca hold por booking confirmado na mesma
	// transação, sem janela em que a faixa apareça livre.
	ConvertHold(
		ctx context.Context,
		tenantID uint,
		holdKey string,
		now time.Time,
	) (*models.Booking, error)

	// DeleteExpiredHolds recolhe holds vencidos e devolve os
	// removidos, para invalidação de cache por recurso.
	DeleteExpiredHolds(
		ctx context.Context,
		now time.Time,
	) ([]models.BookingHold, error)

	// -------- Bookings --------

	GetBooking(
		ctx context.Context,
		tenantID uint,
		bookingID uint,
	) (*models.Booking, error)

	LoadActiveBookings(
		ctx context.Context,
		tenantID uint,
		staffID uint,
		from time.Time,
		to time.Time,
	) ([]models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		booking *models.Booking,
	) error
}
