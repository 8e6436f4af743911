package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/estudiobarber/turnos-api/internal/audit"
	domain "github.com/estudiobarber/turnos-api/internal/domain/appointment"
	"github.com/estudiobarber/turnos-api/internal/httperr"
	"github.com/estudiobarber/turnos-api/internal/models"
	"github.com/estudiobarber/turnos-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	CustomerID    string
	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	BarberID  uint
	ServiceID uint

	Date string // YYYY-MM-DD
	Time string // HH:mm
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	tz    string
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		tz:    tz,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if in.CustomerID == "" || in.BarberID == 0 || in.ServiceID == 0 ||
		in.Date == "" || in.Time == "" {
		return nil, httperr.ErrBusiness("missing_fields")
	}

	// Customer identity comes from the external identity provider.
	if _, err := uuid.Parse(in.CustomerID); err != nil {
		return nil, httperr.ErrBusiness("invalid_customer_id")
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(uc.tz),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	service, err := uc.repo.GetActiveService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	if _, err := uc.repo.GetActiveBarber(ctx, in.BarberID); err != nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	end := start.Add(time.Duration(service.DurationMin) * time.Minute)

	customer, err := uc.repo.GetOrCreateCustomer(
		ctx,
		in.CustomerID,
		in.CustomerName,
		in.CustomerPhone,
		in.CustomerEmail,
	)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		CustomerID:    customer.ID,
		BarberID:      in.BarberID,
		ServiceID:     service.ID,
		StartTime:     start,
		EndTime:       end,
		Status:        string(domain.InitialStatus()),
		PaymentStatus: string(domain.InitialPaymentStatus()),
		TotalAmount:   service.Price,
		DepositAmount: service.DepositMin,
	}

	if err := uc.repo.CreateAppointmentIfFree(ctx, ap); err != nil {
		if httperr.IsBusiness(err, "slot_taken") || httperr.IsExclusionConflict(err) {
			uc.audit.Dispatch(audit.Event{
				Action: "appointment_conflict",
				Entity: "appointment",
				Metadata: map[string]any{
					"barber_id": in.BarberID,
					"start":     start,
					"end":       end,
				},
			})
			return nil, httperr.ErrBusiness("slot_taken")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
