package availability

import "time"

// Slot é transiente: nunca persistido, regenerado sob demanda.
// Start/End em UTC cobrem a janela consumida inteira
// (buffer antes + duração + buffer depois); é essa faixa que um
// hold ocupa.
type Slot struct {
	StaffID   uint      `json:"staff_id"`
	ServiceID uint      `json:"service_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`

	// dia da semana no relógio local do tenant (ISO, 1 = segunda)
	Weekday int `json:"weekday"`
}

type GenerateInput struct {
	TenantID  uint
	StaffID   uint
	ServiceID uint

	// datas no relógio local do tenant, intervalo fechado
	DateFrom time.Time
	DateTo   time.Time
}
