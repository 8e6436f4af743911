package appointment

import (
	"context"

	"github.com/estudiobarber/turnos-api/internal/audit"
	domain "github.com/estudiobarber/turnos-api/internal/domain/appointment"
	"github.com/estudiobarber/turnos-api/internal/httperr"
	"github.com/estudiobarber/turnos-api/internal/models"
	"github.com/estudiobarber/turnos-api/internal/timezone"
)

// RefundAppointment is the compensating path for collected money: it marks
// the appointment refunded and cancelled. The actual money movement happens
// in the Mercado Pago dashboard; this records the business outcome.
type RefundAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	tz    string
}

func NewRefundAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *RefundAppointment {
	return &RefundAppointment{
		repo:  repo,
		audit: audit,
		tz:    tz,
	}
}

func (uc *RefundAppointment) Execute(
	ctx context.Context,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(uc.tz)
	if err := domain.Refund(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_refunded",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
