package payment

import (
	"context"
	"time"

	"gorm.io/gorm"

	apdomain "github.com/estudiobarber/turnos-api/internal/domain/appointment"
	paydomain "github.com/estudiobarber/turnos-api/internal/domain/payment"
	"github.com/estudiobarber/turnos-api/internal/models"
)

var (
	_ apdomain.Repository = (*mockRepo)(nil)
	_ paydomain.Gateway   = (*mockGateway)(nil)
)

// mockRepo implements the ledger repository; payment flows only touch the
// lookup and update methods, the rest return not-found.
type mockRepo struct {
	getAppointmentFn    func(ctx context.Context, appointmentID uint) (*models.Appointment, error)
	findByPaymentRefFn  func(ctx context.Context, externalRef string) (*models.Appointment, error)
	updateAppointmentFn func(ctx context.Context, ap *models.Appointment) error

	updated []*models.Appointment
}

func (m *mockRepo) GetActiveService(ctx context.Context, serviceID uint) (*models.Service, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepo) GetActiveBarber(ctx context.Context, barberID uint) (*models.Barber, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepo) GetOrCreateCustomer(ctx context.Context, id, name, phone, email string) (*models.Customer, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepo) CreateAppointmentIfFree(ctx context.Context, ap *models.Appointment) error {
	return gorm.ErrRecordNotFound
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
	m.updated = append(m.updated, ap)
	if m.updateAppointmentFn == nil {
		return nil
	}
	return m.updateAppointmentFn(ctx, ap)
}

func (m *mockRepo) ListAppointmentsForDay(ctx context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	return nil, nil
}

func (m *mockRepo) ListAppointmentsForPeriod(ctx context.Context, start, end time.Time) ([]models.Appointment, error) {
	return nil, nil
}

type mockGateway struct {
	createPreferenceFn func(ctx context.Context, in paydomain.PreferenceInput) (*paydomain.Preference, error)
	getPaymentFn       func(ctx context.Context, paymentID string) (*paydomain.Info, error)

	getPaymentCalls []string
}

func (m *mockGateway) CreatePreference(ctx context.Context, in paydomain.PreferenceInput) (*paydomain.Preference, error) {
	if m.createPreferenceFn == nil {
		return &paydomain.Preference{ID: "pref-1", InitPoint: "https://mp.example/init/pref-1"}, nil
	}
	return m.createPreferenceFn(ctx, in)
}

func (m *mockGateway) GetPayment(ctx context.Context, paymentID string) (*paydomain.Info, error) {
	m.getPaymentCalls = append(m.getPaymentCalls, paymentID)
	if m.getPaymentFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.getPaymentFn(ctx, paymentID)
}

// nopSink discards audit entries in tests.
type nopSink struct{}

func (nopSink) Log(userID *uint, action, entity string, entityID *uint, metadata any) error {
	return nil
}
