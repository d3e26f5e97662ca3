package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/booking-core/internal/httperr"
	"github.com/BruksfildServices01/booking-core/internal/models"
)

var base = time.Date(2026, time.January, 5, 10, 0, 0, 0, time.UTC)

func TestOverlaps_HalfOpen(t *testing.T) {
	// [10:00, 11:00) e [11:00, 12:00) não conflitam
	assert.False(t, Overlaps(
		base, base.Add(time.Hour),
		base.Add(time.Hour), base.Add(2*time.Hour),
	))

	// sobreposição parcial conflita
	assert.True(t, Overlaps(
		base, base.Add(time.Hour),
		base.Add(30*time.Minute), base.Add(90*time.Minute),
	))

	// intervalo contido conflita
	assert.True(t, Overlaps(
		base, base.Add(2*time.Hour),
		base.Add(30*time.Minute), base.Add(time.Hour),
	))

	// intervalos idênticos conflitam
	assert.True(t, Overlaps(
		base, base.Add(time.Hour),
		base, base.Add(time.Hour),
	))
}

func TestOccupiesConflictSpace(t *testing.T) {
	assert.True(t, OccupiesConflictSpace(StatusPending))
	assert.True(t, OccupiesConflictSpace(StatusConfirmed))
	assert.False(t, OccupiesConflictSpace(StatusCanceled))
	assert.False(t, OccupiesConflictSpace(StatusCompleted))
	assert.False(t, OccupiesConflictSpace(StatusNoShow))
	assert.False(t, OccupiesConflictSpace(StatusFailed))
}

func TestCanCancel(t *testing.T) {
	assert.NoError(t, CanCancel(StatusPending))
	assert.NoError(t, CanCancel(StatusConfirmed))

	err := CanCancel(StatusCompleted)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	err = CanCancel(StatusCanceled)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestIsHoldActive(t *testing.T) {
	h := &models.BookingHold{ExpiresAt: base.Add(15 * time.Minute)}

	assert.True(t, IsHoldActive(h, base))
	assert.True(t, IsHoldActive(h, base.Add(14*time.Minute)))

	// na expiração exata o hold já não ocupa espaço
	assert.False(t, IsHoldActive(h, base.Add(15*time.Minute)))
	assert.False(t, IsHoldActive(h, base.Add(16*time.Minute)))
}
