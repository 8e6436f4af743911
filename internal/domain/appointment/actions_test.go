package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/estudiobarber/turnos-api/internal/httperr"
	"github.com/estudiobarber/turnos-api/internal/models"
)

func pendingAppointment(total, deposit float64) *models.Appointment {
	return &models.Appointment{
		ID:            1,
		Status:        string(StatusPending),
		PaymentStatus: string(PaymentNone),
		TotalAmount:   total,
		DepositAmount: deposit,
	}
}

func TestApplyPaymentOutcome_ApprovedDeposit(t *testing.T) {
	ap := pendingAppointment(1000, 300)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	res := ApplyPaymentOutcome(ap, PaymentOutcome{
		PaymentID: "mp-55",
		Status:    "approved",
		Amount:    300,
	}, now)

	assert.Equal(t, ResultConfirmed, res)
	assert.Equal(t, string(StatusConfirmed), ap.Status)
	assert.Equal(t, string(PaymentDepositPaid), ap.PaymentStatus)
	assert.Equal(t, "mp-55", ap.MPPaymentID)
	if assert.NotNil(t, ap.ConfirmedAt) {
		assert.Equal(t, now, *ap.ConfirmedAt)
	}
}

func TestApplyPaymentOutcome_ApprovedFullAmount(t *testing.T) {
	ap := pendingAppointment(1000, 300)
	now := time.Now()

	res := ApplyPaymentOutcome(ap, PaymentOutcome{
		PaymentID: "mp-56",
		Status:    "approved",
		Amount:    1000,
	}, now)

	assert.Equal(t, ResultConfirmed, res)
	assert.Equal(t, string(PaymentTotalPaid), ap.PaymentStatus)
	assert.Equal(t, string(StatusConfirmed), ap.Status)
}

func TestApplyPaymentOutcome_ReplayIsIdempotent(t *testing.T) {
	ap := pendingAppointment(1000, 300)
	first := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	out := PaymentOutcome{PaymentID: "mp-57", Status: "approved", Amount: 300}

	assert.Equal(t, ResultConfirmed, ApplyPaymentOutcome(ap, out, first))

	// retry an hour later with the same payload
	res := ApplyPaymentOutcome(ap, out, first.Add(time.Hour))

	assert.Equal(t, ResultConfirmed, res)
	assert.Equal(t, string(PaymentDepositPaid), ap.PaymentStatus)
	assert.Equal(t, first, *ap.ConfirmedAt)
}

func TestApplyPaymentOutcome_ApprovedAfterCancellation(t *testing.T) {
	ap := pendingAppointment(1000, 300)
	ap.Status = string(StatusCancelled)

	res := ApplyPaymentOutcome(ap, PaymentOutcome{
		PaymentID: "mp-58",
		Status:    "approved",
		Amount:    1000,
	}, time.Now())

	assert.Equal(t, ResultIgnored, res)
	assert.Equal(t, string(StatusCancelled), ap.Status)
	assert.Equal(t, string(PaymentNone), ap.PaymentStatus)
	assert.Empty(t, ap.MPPaymentID)
}

func TestApplyPaymentOutcome_Rejected(t *testing.T) {
	ap := pendingAppointment(1000, 300)
	now := time.Now()

	res := ApplyPaymentOutcome(ap, PaymentOutcome{
		PaymentID: "mp-59",
		Status:    "rejected",
		Amount:    300,
	}, now)

	assert.Equal(t, ResultCancelled, res)
	assert.Equal(t, string(StatusCancelled), ap.Status)
	assert.Equal(t, string(PaymentRejected), ap.PaymentStatus)
	assert.NotNil(t, ap.CancelledAt)
}

func TestApplyPaymentOutcome_PendingLeavesAppointmentUntouched(t *testing.T) {
	for _, status := range []string{"pending", "in_process"} {
		ap := pendingAppointment(1000, 300)

		res := ApplyPaymentOutcome(ap, PaymentOutcome{
			PaymentID: "mp-60",
			Status:    status,
			Amount:    300,
		}, time.Now())

		assert.Equal(t, ResultPending, res)
		assert.Equal(t, string(StatusPending), ap.Status)
		assert.Equal(t, string(PaymentNone), ap.PaymentStatus)
	}
}

func TestApplyPaymentOutcome_UnknownStatusIgnored(t *testing.T) {
	ap := pendingAppointment(1000, 300)

	res := ApplyPaymentOutcome(ap, PaymentOutcome{
		PaymentID: "mp-61",
		Status:    "charged_back",
		Amount:    300,
	}, time.Now())

	assert.Equal(t, ResultIgnored, res)
	assert.Equal(t, string(StatusPending), ap.Status)
}

func TestCancel(t *testing.T) {
	now := time.Now()

	ap := pendingAppointment(1000, 300)
	assert.NoError(t, Cancel(ap, now))
	assert.Equal(t, string(StatusCancelled), ap.Status)
	assert.Equal(t, now, *ap.CancelledAt)

	// cancelling twice is rejected
	err := Cancel(ap, now)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestRefund(t *testing.T) {
	now := time.Now()

	ap := pendingAppointment(1000, 300)
	ap.Status = string(StatusConfirmed)
	ap.PaymentStatus = string(PaymentDepositPaid)

	assert.NoError(t, Refund(ap, now))
	assert.Equal(t, string(PaymentRefunded), ap.PaymentStatus)
	assert.Equal(t, string(StatusCancelled), ap.Status)

	unpaid := pendingAppointment(1000, 300)
	err := Refund(unpaid, now)
	assert.True(t, httperr.IsBusiness(err, "nothing_to_refund"))
}

func TestOverlaps(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2025, 6, 1, h, m, 0, 0, time.UTC)
	}

	// back-to-back intervals do not overlap
	assert.False(t, Overlaps(at(9, 0), at(9, 30), at(9, 30), at(10, 0)))
	assert.False(t, Overlaps(at(9, 30), at(10, 0), at(9, 0), at(9, 30)))

	assert.True(t, Overlaps(at(9, 0), at(9, 30), at(9, 15), at(9, 45)))
	assert.True(t, Overlaps(at(9, 0), at(10, 0), at(9, 15), at(9, 30)))
	assert.True(t, Overlaps(at(9, 15), at(9, 30), at(9, 0), at(10, 0)))
}
