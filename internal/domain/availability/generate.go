package availability

import (
	"time"

	"github.com/BruksfildServices01/booking-core/internal/models"
	"github.com/BruksfildServices01/booking-core/internal/timezone"
)

// LayoutCandidates gera os slots candidatos de um intervalo de datas,
// sem olhar ocupação. Função pura dos inputs: mesmo input, mesma
// sequência, ordenada por início.
//
// Algoritmo por data (relógio local do tenant):
//  1. exceção cobrindo a data ⇒ dia inteiro fora
//  2. sem regra para o weekday ⇒ zero slots (não é erro)
//  3. candidatos começam no início da janela, passo de
//     duração + buffer depois; candidato cujo consumo total
//     (buffer antes + duração + buffer depois) estoura a janela
//     é descartado
//  4. cada candidato vira instante UTC via timezone
func LayoutCandidates(
	rules []models.AvailabilityRule,
	exceptions []models.TimeOffException,
	svc models.Service,
	in GenerateInput,
	tz string,
) ([]Slot, error) {

	if svc.DurationMin <= 0 {
		return nil, nil
	}

	byDay := RulesByWeekday(rules)

	step := svc.DurationMin + svc.BufferAfterMin
	total := svc.TotalMinutes()

	var slots []Slot

	for date := truncateDate(in.DateFrom); !date.After(truncateDate(in.DateTo)); date = date.AddDate(0, 0, 1) {

		if IsDateSuppressed(exceptions, date) {
			continue
		}

		weekday := ISOWeekday(date)
		rule, ok := byDay[weekday]
		if !ok {
			continue
		}

		winStart, okStart := minutesOfDay(rule.StartTime)
		winEnd, okEnd := minutesOfDay(rule.EndTime)
		if !okStart || !okEnd || winStart >= winEnd {
			continue
		}

		for cur := winStart; cur+total <= winEnd; cur += step {
			start, err := timezone.ToUTC(
				date.Year(), date.Month(), date.Day(),
				cur/60, cur%60,
				tz,
			)
			if err != nil {
				return nil, err
			}

			slots = append(slots, Slot{
				StaffID:   in.StaffID,
				ServiceID: in.ServiceID,
				Start:     start,
				End:       start.Add(time.Duration(total) * time.Minute),
				Weekday:   weekday,
			})
		}
	}

	return slots, nil
}

func minutesOfDay(hhmm string) (int, bool) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}
