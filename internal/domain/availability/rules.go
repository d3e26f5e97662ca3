package availability

import (
	"time"

	"github.com/BruksfildServices01/booking-core/internal/models"
)

// ===============================
// Regras semanais
// ===============================

// ISOWeekday: 1 = segunda ... 7 = domingo.
func ISOWeekday(t time.Time) int {
	return (int(t.Weekday())+6)%7 + 1
}

// RulesByWeekday indexa as regras ativas por dia da semana.
// Havendo mais de uma (estado transitório de upsert), vence a mais
// recente.
func RulesByWeekday(rules []models.AvailabilityRule) map[int]models.AvailabilityRule {
	byDay := make(map[int]models.AvailabilityRule, len(rules))
	for _, r := range rules {
		if !r.Active || r.Weekday < 1 || r.Weekday > 7 {
			continue
		}
		if prev, ok := byDay[r.Weekday]; ok && prev.UpdatedAt.After(r.UpdatedAt) {
			continue
		}
		byDay[r.Weekday] = r
	}
	return byDay
}

// ===============================
// Validação de faixa avulsa
// ===============================

// FitsRuleWindow valida uma faixa pedida fora do gerador de slots:
// a data local não pode estar suprimida por exceção e o consumo
// total precisa caber inteiro na janela da regra ativa do weekday.
func FitsRuleWindow(
	rules []models.AvailabilityRule,
	exceptions []models.TimeOffException,
	date time.Time,
	timeOfDay string,
	totalMinutes int,
) bool {

	if IsDateSuppressed(exceptions, date) {
		return false
	}

	rule, ok := RulesByWeekday(rules)[ISOWeekday(date)]
	if !ok {
		return false
	}

	winStart, okStart := minutesOfDay(rule.StartTime)
	winEnd, okEnd := minutesOfDay(rule.EndTime)
	cur, okCur := minutesOfDay(timeOfDay)
	if !okStart || !okEnd || !okCur {
		return false
	}

	return cur >= winStart && cur+totalMinutes <= winEnd
}

// ===============================
// Exceções (time-off)
// ===============================

// IsDateSuppressed: uma exceção cobrindo a data derruba o dia
// inteiro, independente de regra.
func IsDateSuppressed(exceptions []models.TimeOffException, date time.Time) bool {
	y, m, d := date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	for _, ex := range exceptions {
		from := truncateDate(ex.StartDate)
		to := truncateDate(ex.EndDate)
		if !day.Before(from) && !day.After(to) {
			return true
		}
	}
	return false
}

func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
