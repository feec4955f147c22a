package checkoutControllers

import (
	"fmt"
	"os"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/paymentintent"
)

// PaymentProvider requests an in-progress charge attempt from the external
// payment provider. Tests substitute a fake; production wires Stripe.
type PaymentProvider interface {
	CreateIntent(amountCents int64, currency, orderRef string) (intentID, clientSecret string, err error)
}

// StripeProvider creates payment intents against the Stripe API. The API key
// is taken from STRIPE_SECRET_KEY at startup.
type StripeProvider struct{}

func NewStripeProvider() StripeProvider {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	return StripeProvider{}
}

func (StripeProvider) CreateIntent(amountCents int64, currency, orderRef string) (string, string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("order_ref", orderRef)

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", "", fmt.Errorf("stripe payment intent: %w", err)
	}
	return pi.ID, pi.ClientSecret, nil
}
