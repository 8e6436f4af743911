package appointment

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/estudiobarber/turnos-api/internal/domain/appointment"
	"github.com/estudiobarber/turnos-api/internal/models"
)

var _ domain.Repository = (*mockRepo)(nil)

// mockRepo implements domain.Repository with overridable function fields so
// each test wires only the calls it expects.
type mockRepo struct {
	getActiveServiceFn    func(ctx context.Context, serviceID uint) (*models.Service, error)
	getActiveBarberFn     func(ctx context.Context, barberID uint) (*models.Barber, error)
	getOrCreateCustomerFn func(ctx context.Context, id, name, phone, email string) (*models.Customer, error)
	createIfFreeFn        func(ctx context.Context, ap *models.Appointment) error
	getAppointmentFn      func(ctx context.Context, appointmentID uint) (*models.Appointment, error)
	findByPaymentRefFn    func(ctx context.Context, externalRef string) (*models.Appointment, error)
	updateAppointmentFn   func(ctx context.Context, ap *models.Appointment) error
	listForDayFn          func(ctx context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error)
	listForPeriodFn       func(ctx context.Context, start, end time.Time) ([]models.Appointment, error)
}

func (m *mockRepo) GetActiveService(ctx context.Context, serviceID uint) (*models.Service, error) {
	if m.getActiveServiceFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.getActiveServiceFn(ctx, serviceID)
}

func (m *mockRepo) GetActiveBarber(ctx context.Context, barberID uint) (*models.Barber, error) {
	if m.getActiveBarberFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.getActiveBarberFn(ctx, barberID)
}

func (m *mockRepo) GetOrCreateCustomer(ctx context.Context, id, name, phone, email string) (*models.Customer, error) {
	if m.getOrCreateCustomerFn == nil {
		return &models.Customer{ID: id, Name: name, Phone: phone, Email: email}, nil
	}
	return m.getOrCreateCustomerFn(ctx, id, name, phone, email)
}

func (m *mockRepo) CreateAppointmentIfFree(ctx context.Context, ap *models.Appointment) error {
	if m.createIfFreeFn == nil {
		return nil
	}
	return m.createIfFreeFn(ctx, ap)
}

func (m *mockRepo) GetAppointment(ctx context.Context, appointmentID uint) (*models.Appointment, error) {
	if m.getAppointmentFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.getAppointmentFn(ctx, appointmentID)
}

func (m *mockRepo) FindByPaymentRef(ctx context.Context, externalRef string) (*models.Appointment, error) {
	if m.findByPaymentRefFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.findByPaymentRefFn(ctx, externalRef)
}

func (m *mockRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	if m.updateAppointmentFn == nil {
		return nil
	}
	return m.updateAppointmentFn(ctx, ap)
}

func (m *mockRepo) ListAppointmentsForDay(ctx context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	if m.listForDayFn == nil {
		return nil, nil
	}
	return m.listForDayFn(ctx, barberID, start, end)
}

func (m *mockRepo) ListAppointmentsForPeriod(ctx context.Context, start, end time.Time) ([]models.Appointment, error) {
	if m.listForPeriodFn == nil {
		return nil, nil
	}
	return m.listForPeriodFn(ctx, start, end)
}

// nopSink discards audit entries in tests.
type nopSink struct{}

func (nopSink) Log(userID *uint, action, entity string, entityID *uint, metadata any) error {
	return nil
}
