package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/estudiobarber/turnos-api/internal/audit"
	apdomain "github.com/estudiobarber/turnos-api/internal/domain/appointment"
	paydomain "github.com/estudiobarber/turnos-api/internal/domain/payment"
	"github.com/estudiobarber/turnos-api/internal/httperr"
	"github.com/estudiobarber/turnos-api/internal/models"
)

func preferenceUC(repo *mockRepo, gw *mockGateway) *CreatePreference {
	return NewCreatePreference(repo, gw, audit.NewDispatcher(nopSink{}))
}

func repoWithAppointment(ap *models.Appointment) *mockRepo {
	return &mockRepo{
		getAppointmentFn: func(ctx context.Context, appointmentID uint) (*models.Appointment, error) {
			return ap, nil
		},
	}
}

func storedAppointment() *models.Appointment {
	return &models.Appointment{
		ID:            42,
		Status:        string(apdomain.StatusPending),
		PaymentStatus: string(apdomain.PaymentNone),
		TotalAmount:   1000,
		DepositAmount: 300,
		Service:       models.Service{Name: "Corte clásico"},
	}
}

func TestCreatePreference_Validation(t *testing.T) {
	uc := preferenceUC(&mockRepo{}, &mockGateway{})

	_, err := uc.Execute(context.Background(), CreatePreferenceInput{})
	assert.True(t, httperr.IsBusiness(err, "missing_fields"))

	_, err = uc.Execute(context.Background(), CreatePreferenceInput{
		AppointmentID: 42, Amount: 300, PayType: "installments",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_pay_type"))
}

func TestCreatePreference_AppointmentNotFound(t *testing.T) {
	uc := preferenceUC(&mockRepo{}, &mockGateway{})

	_, err := uc.Execute(context.Background(), CreatePreferenceInput{
		AppointmentID: 42, Amount: 300, PayType: paydomain.PayDeposit,
	})
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestCreatePreference_CancelledAppointment(t *testing.T) {
	ap := storedAppointment()
	ap.Status = string(apdomain.StatusCancelled)
	uc := preferenceUC(repoWithAppointment(ap), &mockGateway{})

	_, err := uc.Execute(context.Background(), CreatePreferenceInput{
		AppointmentID: 42, Amount: 300, PayType: paydomain.PayDeposit,
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCreatePreference_GatewayFailure(t *testing.T) {
	repo := repoWithAppointment(storedAppointment())
	gw := &mockGateway{
		createPreferenceFn: func(ctx context.Context, in paydomain.PreferenceInput) (*paydomain.Preference, error) {
			return nil, errors.New("mp timeout")
		},
	}
	uc := preferenceUC(repo, gw)

	_, err := uc.Execute(context.Background(), CreatePreferenceInput{
		AppointmentID: 42, Amount: 300, PayType: paydomain.PayDeposit,
	})

	assert.True(t, httperr.IsBusiness(err, "payment_gateway_error"))
	assert.Empty(t, repo.updated)
}

func TestCreatePreference_DepositCheckout(t *testing.T) {
	ap := storedAppointment()
	repo := repoWithAppointment(ap)
	var sent paydomain.PreferenceInput
	gw := &mockGateway{
		createPreferenceFn: func(ctx context.Context, in paydomain.PreferenceInput) (*paydomain.Preference, error) {
			sent = in
			return &paydomain.Preference{ID: "pref-9", InitPoint: "https://mp.example/init/pref-9"}, nil
		},
	}
	uc := preferenceUC(repo, gw)

	out, err := uc.Execute(context.Background(), CreatePreferenceInput{
		AppointmentID: 42, Amount: 300, PayType: paydomain.PayDeposit,
	})

	assert.NoError(t, err)
	assert.Equal(t, "https://mp.example/init/pref-9", out.URL)

	// checkout title falls back to the booked service
	assert.Equal(t, "Corte clásico", sent.Title)
	assert.Equal(t, uint(42), sent.AppointmentID)

	assert.Len(t, repo.updated, 1)
	assert.Equal(t, "pref-9", ap.MPPreferenceID)
	assert.Equal(t, string(apdomain.PaymentDepositPending), ap.PaymentStatus)
}

func TestCreatePreference_FullCheckoutKeepsPaymentStatus(t *testing.T) {
	ap := storedAppointment()
	uc := preferenceUC(repoWithAppointment(ap), &mockGateway{})

	out, err := uc.Execute(context.Background(), CreatePreferenceInput{
		AppointmentID: 42, Amount: 1000, PayType: paydomain.PayFull,
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, out.URL)
	assert.Equal(t, string(apdomain.PaymentNone), ap.PaymentStatus)
	assert.Equal(t, "pref-1", ap.MPPreferenceID)
}
