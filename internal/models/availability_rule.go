package models

import "time"

// AvailabilityRule é a regra semanal recorrente de um staff.
// Weekday segue ISO: 1 = segunda ... 7 = domingo.
// No máximo uma regra ativa por (staff, weekday); criar outra
// substitui a anterior (upsert).
type AvailabilityRule struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"index;not null" json:"tenant_id"`
	StaffID  uint `gorm:"index:idx_rule_staff_weekday;not null" json:"staff_id"`

	Weekday   int    `gorm:"index:idx_rule_staff_weekday;not null" json:"weekday"`
	StartTime string `gorm:"size:5;not null" json:"start_time"` // HH:MM local
	EndTime   string `gorm:"size:5;not null" json:"end_time"`   // HH:MM local

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
