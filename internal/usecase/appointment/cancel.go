package appointment

import (
	"context"

	"github.com/estudiobarber/turnos-api/internal/audit"
	domain "github.com/estudiobarber/turnos-api/internal/domain/appointment"
	"github.com/estudiobarber/turnos-api/internal/httperr"
	"github.com/estudiobarber/turnos-api/internal/models"
	"github.com/estudiobarber/turnos-api/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	tz    string
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
		tz:    tz,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(uc.tz)
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
