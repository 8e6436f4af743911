package appointment

import (
	"time"

	"github.com/estudiobarber/turnos-api/internal/models"
)

// ===============================
// Payment outcome (webhook-driven)
// ===============================

// PaymentOutcome is the authoritative state re-fetched from the payment
// provider, never the raw webhook body.
type PaymentOutcome struct {
	PaymentID string
	Status    string
	Amount    float64
}

type OutcomeResult string

const (
	ResultConfirmed OutcomeResult = "ok"
	ResultCancelled OutcomeResult = "cancelled"
	ResultPending   OutcomeResult = "pending"
	ResultIgnored   OutcomeResult = "ignored"
)

// ApplyPaymentOutcome mutates ap according to the provider outcome and
// reports what happened. Replaying the same outcome leaves ap unchanged,
// so webhook retries are harmless.
func ApplyPaymentOutcome(ap *models.Appointment, out PaymentOutcome, now time.Time) OutcomeResult {
	switch out.Status {

	case "approved":
		if Status(ap.Status) == StatusCancelled {
			// cancelado is terminal: a late approval needs a refund, not
			// a resurrection of the slot.
			return ResultIgnored
		}

		if out.Amount >= ap.TotalAmount {
			ap.PaymentStatus = string(PaymentTotalPaid)
		} else {
			ap.PaymentStatus = string(PaymentDepositPaid)
		}
		ap.Status = string(StatusConfirmed)
		ap.MPPaymentID = out.PaymentID
		if ap.ConfirmedAt == nil {
			ap.ConfirmedAt = &now
		}
		return ResultConfirmed

	case "rejected":
		ap.PaymentStatus = string(PaymentRejected)
		ap.Status = string(StatusCancelled)
		if ap.CancelledAt == nil {
			ap.CancelledAt = &now
		}
		return ResultCancelled

	case "in_process", "pending":
		return ResultPending

	default:
		return ResultIgnored
	}
}

// ===============================
// Staff actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

// Refund is the compensating process for money collected on an appointment
// that will not happen.
func Refund(ap *models.Appointment, now time.Time) error {
	if err := CanRefund(PaymentStatus(ap.PaymentStatus)); err != nil {
		return err
	}

	ap.PaymentStatus = string(PaymentRefunded)
	ap.Status = string(StatusCancelled)
	if ap.CancelledAt == nil {
		ap.CancelledAt = &now
	}
	return nil
}
