package payment

import (
	"context"
	"log"

	"github.com/estudiobarber/turnos-api/internal/audit"
	apdomain "github.com/estudiobarber/turnos-api/internal/domain/appointment"
	paydomain "github.com/estudiobarber/turnos-api/internal/domain/payment"
	"github.com/estudiobarber/turnos-api/internal/httperr"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreatePreferenceInput struct {
	AppointmentID uint
	Title         string
	Amount        float64
	PayType       string // deposit | full
}

type CreatePreferenceOutput struct {
	URL string `json:"url"`
}

// ======================================================
// USE CASE
// ======================================================

type CreatePreference struct {
	repo    apdomain.Repository
	gateway paydomain.Gateway
	audit   *audit.Dispatcher
}

func NewCreatePreference(
	repo apdomain.Repository,
	gateway paydomain.Gateway,
	audit *audit.Dispatcher,
) *CreatePreference {
	return &CreatePreference{
		repo:    repo,
		gateway: gateway,
		audit:   audit,
	}
}

func (uc *CreatePreference) Execute(
	ctx context.Context,
	in CreatePreferenceInput,
) (*CreatePreferenceOutput, error) {

	if in.AppointmentID == 0 || in.Amount <= 0 {
		return nil, httperr.ErrBusiness("missing_fields")
	}

	if in.PayType != paydomain.PayDeposit && in.PayType != paydomain.PayFull {
		return nil, httperr.ErrBusiness("invalid_pay_type")
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if apdomain.Status(ap.Status) == apdomain.StatusCancelled {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	title := in.Title
	if title == "" {
		title = ap.Service.Name
	}

	pref, err := uc.gateway.CreatePreference(ctx, paydomain.PreferenceInput{
		AppointmentID: ap.ID,
		Title:         title,
		Amount:        in.Amount,
		PayType:       in.PayType,
	})
	if err != nil {
		log.Printf("create preference for appointment %d: %v", ap.ID, err)
		return nil, httperr.ErrBusiness("payment_gateway_error")
	}

	ap.MPPreferenceID = pref.ID
	if in.PayType == paydomain.PayDeposit &&
		apdomain.PaymentStatus(ap.PaymentStatus) == apdomain.PaymentNone {
		ap.PaymentStatus = string(apdomain.PaymentDepositPending)
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "payment_preference_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"preference_id": pref.ID,
			"pay_type":      in.PayType,
			"amount":        in.Amount,
		},
	})

	return &CreatePreferenceOutput{URL: pref.InitPoint}, nil
}
