package payment

import "context"

// Pay types tag which amount a checkout collects; the redirect pages use the
// same tag to render the right confirmation.
const (
	PayDeposit = "deposit"
	PayFull    = "full"
)

type PreferenceInput struct {
	AppointmentID uint
	Title         string
	Amount        float64
	PayType       string
}

type Preference struct {
	ID        string
	InitPoint string
}

// Info is the authoritative payment record re-fetched from the provider.
type Info struct {
	ID           string
	Status       string
	StatusDetail string
	ExternalRef  string
	Amount       float64
	PayerEmail   string
}

type Gateway interface {
	CreatePreference(ctx context.Context, in PreferenceInput) (*Preference, error)
	GetPayment(ctx context.Context, paymentID string) (*Info, error)
}
