package models

import "time"

// BookingHold reserva temporariamente uma faixa de horário.
// Enquanto now < ExpiresAt ocupa o mesmo espaço de conflito de um
// booking confirmado. Expiração é avaliada na leitura; a remoção
// física fica a cargo do sweeper.
type BookingHold struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"index;not null" json:"tenant_id"`
	StaffID  uint `gorm:"index;not null" json:"staff_id"`

	ServiceID  uint `json:"service_id"`
	CustomerID uint `json:"customer_id"`

	HoldKey string `gorm:"size:64;uniqueIndex;not null" json:"hold_key"`

	StartTime time.Time `gorm:"index;not null" json:"start_time"` // UTC
	EndTime   time.Time `gorm:"not null" json:"end_time"`         // UTC

	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`

	CreatedAt time.Time `json:"created_at"`
}
