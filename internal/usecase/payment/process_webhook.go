package payment

import (
	"context"
	"log"

	"github.com/estudiobarber/turnos-api/internal/audit"
	apdomain "github.com/estudiobarber/turnos-api/internal/domain/appointment"
	paydomain "github.com/estudiobarber/turnos-api/internal/domain/payment"
	"github.com/estudiobarber/turnos-api/internal/timezone"
)

// Ack is what the webhook endpoint answers Mercado Pago. The endpoint always
// responds 200 no matter what happened internally; a non-2xx answer would
// only trigger a retry storm for a failure retries cannot fix.
type Ack string

const (
	AckOK            Ack = "ok"
	AckIgnored       Ack = "ignored"
	AckPending       Ack = "pending"
	AckCancelled     Ack = "cancelled"
	AckNoAppointment Ack = "no_appointment"
)

type WebhookInput struct {
	Type   string
	DataID string
}

type ProcessWebhook struct {
	repo    apdomain.Repository
	gateway paydomain.Gateway
	audit   *audit.Dispatcher
	tz      string
}

func NewProcessWebhook(
	repo apdomain.Repository,
	gateway paydomain.Gateway,
	audit *audit.Dispatcher,
	tz string,
) *ProcessWebhook {
	return &ProcessWebhook{
		repo:    repo,
		gateway: gateway,
		audit:   audit,
		tz:      tz,
	}
}

// Execute reconciles one Mercado Pago notification against the ledger.
// The webhook body is treated as untrusted: only the payment ID is taken
// from it, and the authoritative status is re-fetched from the API.
func (uc *ProcessWebhook) Execute(ctx context.Context, in WebhookInput) Ack {

	if in.Type != "payment" {
		return AckIgnored
	}

	if in.DataID == "" {
		log.Println("webhook: payment notification without data.id")
		return AckIgnored
	}

	info, err := uc.gateway.GetPayment(ctx, in.DataID)
	if err != nil {
		log.Printf("webhook: fetch payment %s: %v", in.DataID, err)
		return AckIgnored
	}

	ap, err := uc.repo.FindByPaymentRef(ctx, info.ExternalRef)
	if err != nil {
		log.Printf("webhook: payment %s received but no appointment matches ref %q",
			info.ID, info.ExternalRef)
		uc.audit.Dispatch(audit.Event{
			Action: "webhook_orphan_payment",
			Entity: "payment",
			Metadata: map[string]any{
				"payment_id":   info.ID,
				"external_ref": info.ExternalRef,
				"status":       info.Status,
			},
		})
		return AckNoAppointment
	}

	now := timezone.NowIn(uc.tz)
	result := apdomain.ApplyPaymentOutcome(ap, apdomain.PaymentOutcome{
		PaymentID: info.ID,
		Status:    info.Status,
		Amount:    info.Amount,
	}, now)

	switch result {

	case apdomain.ResultConfirmed:
		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			log.Printf("webhook: persist confirmation of appointment %d: %v", ap.ID, err)
			return AckIgnored
		}
		uc.audit.Dispatch(audit.Event{
			Action:   "payment_confirmed",
			Entity:   "appointment",
			EntityID: &ap.ID,
			Metadata: map[string]any{
				"payment_id":     info.ID,
				"amount":         info.Amount,
				"payment_status": ap.PaymentStatus,
			},
		})
		return AckOK

	case apdomain.ResultCancelled:
		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			log.Printf("webhook: persist rejection of appointment %d: %v", ap.ID, err)
			return AckIgnored
		}
		uc.audit.Dispatch(audit.Event{
			Action:   "payment_rejected",
			Entity:   "appointment",
			EntityID: &ap.ID,
			Metadata: map[string]any{"payment_id": info.ID},
		})
		return AckCancelled

	case apdomain.ResultPending:
		return AckPending

	default:
		log.Printf("webhook: unhandled payment status %q for appointment %d",
			info.Status, ap.ID)
		return AckIgnored
	}
}
