package reservation

import (
	"time"

	"github.com/BruksfildServices01/booking-core/internal/models"
)

// Ciclo de vida de um hold:
//
//	created → active → {released | expired | converted}
//
// "expired" não exige deleção física: um hold vencido já é
// invisível para o índice de conflito.

// IsHoldActive decide se o hold ainda ocupa espaço de conflito.
func IsHoldActive(h *models.BookingHold, now time.Time) bool {
	return now.Before(h.ExpiresAt)
}
