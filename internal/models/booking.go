package models

import "time"

type Booking struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"index;not null" json:"tenant_id"`
	StaffID  uint `gorm:"index;not null" json:"staff_id"`

	ServiceID  uint `json:"service_id"`
	CustomerID uint `json:"customer_id"`

	StartTime time.Time `gorm:"index;not null" json:"start_time"` // UTC
	EndTime   time.Time `gorm:"not null" json:"end_time"`         // UTC

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
