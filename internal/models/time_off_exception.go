package models

import "time"

// TimeOffException suprime qualquer regra recorrente que cruze o
// seu intervalo de datas. Expira naturalmente quando o intervalo
// passa, limpeza é opcional.
type TimeOffException struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"index;not null" json:"tenant_id"`
	StaffID  uint `gorm:"index;not null" json:"staff_id"`

	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`

	Reason string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
