package dto

import "time"

type AppointmentListDTO struct {
	ID uint `json:"id"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`

	CustomerName string `json:"customer_name"`
	BarberName   string `json:"barber_name"`
	ServiceName  string `json:"service_name"`

	TotalAmount   float64 `json:"total_amount"`
	DepositAmount float64 `json:"deposit_amount"`
}
