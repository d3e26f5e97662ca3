package models

import "time"

type WaitlistEntry struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"index;not null" json:"tenant_id"`
	StaffID  uint `gorm:"index;not null" json:"staff_id"`

	ServiceID  uint `json:"service_id"`
	CustomerID uint `gorm:"index" json:"customer_id"`

	PreferredStart time.Time `gorm:"not null" json:"preferred_start"` // UTC
	PreferredEnd   time.Time `gorm:"not null" json:"preferred_end"`   // UTC

	// menor número = maior prioridade
	Priority int `gorm:"default:0" json:"priority"`

	Status string `gorm:"size:20;default:'waiting'" json:"status"`

	NotifiedAt *time.Time `json:"notified_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
