package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID string   `gorm:"size:36;index" json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	BarberID uint   `gorm:"index" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	// EndTime is frozen at creation (start + service duration) and is not
	// recomputed if the service changes later.
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status        string `gorm:"size:20;default:'pendiente'" json:"status"`
	PaymentStatus string `gorm:"size:20;default:'sin_pago'" json:"payment_status"`

	TotalAmount   float64 `json:"total_amount"`
	DepositAmount float64 `json:"deposit_amount"`

	MPPreferenceID string `gorm:"size:100;index" json:"mp_preference_id"`
	MPPaymentID    string `gorm:"size:100" json:"mp_payment_id"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
