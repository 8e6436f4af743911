package appointment

import (
	"context"
	"time"

	"github.com/estudiobarber/turnos-api/internal/models"
)

type Repository interface {
	// -------- Catalog --------
	GetActiveService(
		ctx context.Context,
		serviceID uint,
	) (*models.Service, error)

	GetActiveBarber(
		ctx context.Context,
		barberID uint,
	) (*models.Barber, error)

	// -------- Customer --------
	GetOrCreateCustomer(
		ctx context.Context,
		id string,
		name string,
		phone string,
		email string,
	) (*models.Customer, error)

	// -------- Appointment (create / conflict) --------

	// CreateAppointmentIfFree inserts ap unless a non-cancelled appointment
	// for the same barber overlaps [StartTime, EndTime). On overlap it
	// returns the slot_taken business error and inserts nothing.
	CreateAppointmentIfFree(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	FindByPaymentRef(
		ctx context.Context,
		externalRef string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability / listing --------
	ListAppointmentsForDay(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
