package mercadopago

import (
	"context"
	"fmt"
	"strconv"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"

	appconfig "github.com/estudiobarber/turnos-api/internal/config"
	domain "github.com/estudiobarber/turnos-api/internal/domain/payment"
)

// Gateway implements domain.Gateway against the Mercado Pago SDK with the
// shop's single access token.
type Gateway struct {
	prefClient preference.Client
	payClient  mppayment.Client
	publicURL  string
	notifyURL  string
}

func New(cfg *appconfig.Config) (*Gateway, error) {
	mpCfg, err := mpconfig.New(cfg.MPAccessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &Gateway{
		prefClient: preference.NewClient(mpCfg),
		payClient:  mppayment.NewClient(mpCfg),
		publicURL:  cfg.PublicURL,
		notifyURL:  fmt.Sprintf("%s/api/payments/webhook", cfg.APIBaseURL),
	}, nil
}

func (g *Gateway) buildPreferenceRequest(in domain.PreferenceInput) preference.Request {

	apptID := strconv.FormatUint(uint64(in.AppointmentID), 10)

	successURL := fmt.Sprintf(
		"%s/reservar/success?appointment_id=%s&pay=%s",
		g.publicURL, apptID, in.PayType,
	)
	failureURL := fmt.Sprintf(
		"%s/reservar/error?appointment_id=%s&pay=%s",
		g.publicURL, apptID, in.PayType,
	)
	pendingURL := fmt.Sprintf(
		"%s/reservar/pending?appointment_id=%s&pay=%s",
		g.publicURL, apptID, in.PayType,
	)

	return preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:     in.Title,
				Quantity:  1,
				UnitPrice: in.Amount,
			},
		},
		// The external reference carries the appointment ID; the webhook
		// reads it back from the re-fetched payment, never from the
		// notification body.
		ExternalReference: apptID,
		AutoReturn:        "approved",
		BackURLs: &preference.BackURLsRequest{
			Success: successURL,
			Failure: failureURL,
			Pending: pendingURL,
		},
		NotificationURL: g.notifyURL,
	}
}

func (g *Gateway) CreatePreference(
	ctx context.Context,
	in domain.PreferenceInput,
) (*domain.Preference, error) {

	result, err := g.prefClient.Create(ctx, g.buildPreferenceRequest(in))
	if err != nil {
		return nil, fmt.Errorf("create preference: %w", err)
	}

	return &domain.Preference{
		ID:        result.ID,
		InitPoint: result.InitPoint,
	}, nil
}

func (g *Gateway) GetPayment(
	ctx context.Context,
	paymentID string,
) (*domain.Info, error) {

	id, err := strconv.Atoi(paymentID)
	if err != nil {
		return nil, fmt.Errorf("invalid payment ID %q: %w", paymentID, err)
	}

	result, err := g.payClient.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}

	return &domain.Info{
		ID:           paymentID,
		Status:       result.Status,
		StatusDetail: result.StatusDetail,
		ExternalRef:  result.ExternalReference,
		Amount:       result.TransactionAmount,
		PayerEmail:   result.Payer.Email,
	}, nil
}

// Compile-time check
var _ domain.Gateway = (*Gateway)(nil)
