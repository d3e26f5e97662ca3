// Package timezone centraliza a conversão entre o relógio local do
// tenant e instantes UTC.
//
// Política de DST: um horário de parede é resolvido com o offset
// vigente à meia-noite local daquela data (offset pré-transição).
// Se esse instante não reproduz o horário pedido e o horário existe
// naquele dia (pedido posterior à transição), vale a normalização do
// time.Date. Horários dentro do gap de "spring forward" resolvem,
// portanto, sempre com o offset pré-transição, de forma determinística.
package timezone

import (
	"time"

	"github.com/BruksfildServices01/booking-core/internal/httperr"
)

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// LocationOf falha com invalid_timezone para zona desconhecida.
func LocationOf(tz string) (*time.Location, error) {
	if tz == "" {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidTimezone)
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidTimezone)
	}
	return loc, nil
}

// Location nunca falha: cai no timezone padrão.
// Usar apenas onde o tenant já foi validado.
func Location(tz string) *time.Location {
	if loc, err := LocationOf(tz); err == nil {
		return loc
	}
	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// ===============================
// Conversão determinística
// ===============================

// ToUTC converte o horário de parede (ano, mês, dia, hora, minuto)
// do tenant para um instante UTC seguindo a política de DST do
// cabeçalho do pacote.
func ToUTC(year int, month time.Month, day, hour, min int, tz string) (time.Time, error) {
	loc, err := LocationOf(tz)
	if err != nil {
		return time.Time{}, err
	}
	return toUTCIn(year, month, day, hour, min, loc), nil
}

func toUTCIn(year int, month time.Month, day, hour, min int, loc *time.Location) time.Time {
	// offset pré-transição: o vigente à meia-noite local
	midnight := time.Date(year, month, day, 0, 0, 0, 0, loc)
	_, offset := midnight.Zone()

	candidate := time.Date(year, month, day, hour, min, 0, 0, time.UTC).
		Add(-time.Duration(offset) * time.Second)

	local := candidate.In(loc)
	if local.Hour() == hour && local.Minute() == min &&
		local.Day() == day && local.Month() == month {
		return candidate
	}

	// horário de parede posterior à transição do dia
	return time.Date(year, month, day, hour, min, 0, 0, loc).UTC()
}

// ToTenantLocal projeta um instante UTC no relógio local do tenant.
func ToTenantLocal(utc time.Time, tz string) (time.Time, error) {
	loc, err := LocationOf(tz)
	if err != nil {
		return time.Time{}, err
	}
	return utc.In(loc), nil
}

// AtTimeOfDay aplica um "HH:MM" sobre uma data local e devolve o
// instante UTC correspondente.
func AtTimeOfDay(date time.Time, hhmm string, tz string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_time_of_day")
	}
	return ToUTC(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), tz)
}
