package appointment

import "github.com/estudiobarber/turnos-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pendiente"
	StatusConfirmed Status = "confirmado"
	StatusCancelled Status = "cancelado"
)

// ===============================
// Payment Status
// ===============================

type PaymentStatus string

const (
	PaymentNone           PaymentStatus = "sin_pago"
	PaymentDepositPending PaymentStatus = "seña_pendiente"
	PaymentDepositPaid    PaymentStatus = "seña_pagada"
	PaymentTotalPaid      PaymentStatus = "total_pagado"
	PaymentRejected       PaymentStatus = "rechazado"
	PaymentRefunded       PaymentStatus = "reembolsado"
)

// IsPaid reports whether money was actually collected for this status.
func IsPaid(ps PaymentStatus) bool {
	return ps == PaymentDepositPaid || ps == PaymentTotalPaid
}

// ===============================
// Validations
// ===============================

// CanCancel: cancelado is terminal, everything else can still be cancelled.
func CanCancel(current Status) error {
	if current == StatusCancelled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanRefund requires collected money; refunding an unpaid appointment is a
// staff mistake, not a state transition.
func CanRefund(payment PaymentStatus) error {
	if !IsPaid(payment) {
		return httperr.ErrBusiness("nothing_to_refund")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}

func InitialPaymentStatus() PaymentStatus {
	return PaymentNone
}
