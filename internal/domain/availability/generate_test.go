package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-core/internal/models"
)

// 05/01/2026 é uma segunda-feira.
var monday = time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

func mondayRule(start, end string) models.AvailabilityRule {
	return models.AvailabilityRule{
		TenantID:  1,
		StaffID:   1,
		Weekday:   1,
		StartTime: start,
		EndTime:   end,
		Active:    true,
	}
}

func genInput(from, to time.Time) GenerateInput {
	return GenerateInput{
		TenantID:  1,
		StaffID:   1,
		ServiceID: 1,
		DateFrom:  from,
		DateTo:    to,
	}
}

func TestISOWeekday(t *testing.T) {
	assert.Equal(t, 1, ISOWeekday(monday))
	assert.Equal(t, 7, ISOWeekday(monday.AddDate(0, 0, -1))) // domingo
	assert.Equal(t, 5, ISOWeekday(monday.AddDate(0, 0, 4)))  // sexta
}

func TestLayoutCandidates_PlainWindow(t *testing.T) {
	svc := models.Service{TenantID: 1, DurationMin: 60}

	slots, err := LayoutCandidates(
		[]models.AvailabilityRule{mondayRule("09:00", "12:00")},
		nil, svc, genInput(monday, monday), "UTC",
	)
	require.NoError(t, err)
	require.Len(t, slots, 3)

	assert.True(t, slots[0].Start.Equal(time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)))
	assert.True(t, slots[1].Start.Equal(time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)))
	assert.True(t, slots[2].Start.Equal(time.Date(2026, 1, 5, 11, 0, 0, 0, time.UTC)))
	assert.True(t, slots[0].End.Equal(time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, slots[0].Weekday)
}

func TestLayoutCandidates_BuffersConsumeWindow(t *testing.T) {
	// janela de 1h, consumo total de 55min: cabe exatamente um slot
	svc := models.Service{
		TenantID:        1,
		DurationMin:     30,
		BufferBeforeMin: 15,
		BufferAfterMin:  10,
	}

	slots, err := LayoutCandidates(
		[]models.AvailabilityRule{mondayRule("09:00", "10:00")},
		nil, svc, genInput(monday, monday), "UTC",
	)
	require.NoError(t, err)
	require.Len(t, slots, 1)

	assert.True(t, slots[0].Start.Equal(time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)))
	assert.True(t, slots[0].End.Equal(time.Date(2026, 1, 5, 9, 55, 0, 0, time.UTC)))
}

func TestLayoutCandidates_ExceptionSuppressesDay(t *testing.T) {
	svc := models.Service{TenantID: 1, DurationMin: 60}
	ex := models.TimeOffException{
		TenantID:  1,
		StaffID:   1,
		StartDate: monday,
		EndDate:   monday,
	}

	slots, err := LayoutCandidates(
		[]models.AvailabilityRule{mondayRule("09:00", "12:00")},
		[]models.TimeOffException{ex},
		svc, genInput(monday, monday), "UTC",
	)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestLayoutCandidates_NoRuleNoSlots(t *testing.T) {
	svc := models.Service{TenantID: 1, DurationMin: 60}

	// regra só para segunda; consulta numa terça
	slots, err := LayoutCandidates(
		[]models.AvailabilityRule{mondayRule("09:00", "12:00")},
		nil, svc, genInput(monday.AddDate(0, 0, 1), monday.AddDate(0, 0, 1)), "UTC",
	)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestLayoutCandidates_OrderedAcrossDays(t *testing.T) {
	svc := models.Service{TenantID: 1, DurationMin: 60}

	rules := []models.AvailabilityRule{
		mondayRule("09:00", "11:00"),
		{TenantID: 1, StaffID: 1, Weekday: 2, StartTime: "08:00", EndTime: "10:00", Active: true},
	}

	slots, err := LayoutCandidates(
		rules, nil, svc, genInput(monday, monday.AddDate(0, 0, 1)), "UTC",
	)
	require.NoError(t, err)
	require.Len(t, slots, 4)

	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].Start.Before(slots[i].Start))
	}
}

func TestLayoutCandidates_InvalidTimezone(t *testing.T) {
	svc := models.Service{TenantID: 1, DurationMin: 60}

	_, err := LayoutCandidates(
		[]models.AvailabilityRule{mondayRule("09:00", "12:00")},
		nil, svc, genInput(monday, monday), "Not/AZone",
	)
	require.Error(t, err)
}

func TestRulesByWeekday_NewestWins(t *testing.T) {
	old := mondayRule("08:00", "12:00")
	old.UpdatedAt = monday

	newer := mondayRule("10:00", "14:00")
	newer.UpdatedAt = monday.AddDate(0, 0, 1)

	byDay := RulesByWeekday([]models.AvailabilityRule{old, newer})
	require.Contains(t, byDay, 1)
	assert.Equal(t, "10:00", byDay[1].StartTime)
}

func TestFitsRuleWindow(t *testing.T) {
	rules := []models.AvailabilityRule{mondayRule("09:00", "18:00")}

	// dentro da janela, com o consumo total cabendo
	assert.True(t, FitsRuleWindow(rules, nil, monday, "09:00", 60))
	assert.True(t, FitsRuleWindow(rules, nil, monday, "17:00", 60))

	// estoura o fim da janela ou começa antes dela
	assert.False(t, FitsRuleWindow(rules, nil, monday, "17:30", 60))
	assert.False(t, FitsRuleWindow(rules, nil, monday, "08:30", 60))

	// weekday sem regra
	tuesday := monday.AddDate(0, 0, 1)
	assert.False(t, FitsRuleWindow(rules, nil, tuesday, "09:00", 60))

	// exceção cobrindo a data derruba o dia inteiro
	off := []models.TimeOffException{{
		TenantID: 1, StaffID: 1, StartDate: monday, EndDate: monday,
	}}
	assert.False(t, FitsRuleWindow(rules, off, monday, "09:00", 60))
}
