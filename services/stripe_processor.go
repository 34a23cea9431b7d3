package services

import (
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
)

// StripeProcessor implements CardProcessor over Stripe payment intents.
type StripeProcessor struct{}

func NewStripeProcessor(secretKey string) *StripeProcessor {
	stripe.Key = secretKey
	return &StripeProcessor{}
}

func (s *StripeProcessor) CreateIntent(amount int64, currency, orderNumber string) (string, string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
	}
	params.AddMetadata("order_number", orderNumber)

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", "", err
	}
	return pi.ID, pi.ClientSecret, nil
}

func (s *StripeProcessor) IntentSecret(ref string) (string, error) {
	pi, err := paymentintent.Get(ref, nil)
	if err != nil {
		return "", err
	}
	return pi.ClientSecret, nil
}

func (s *StripeProcessor) IntentPaid(ref string) (bool, error) {
	pi, err := paymentintent.Get(ref, nil)
	if err != nil {
		return false, err
	}
	return pi.Status == stripe.PaymentIntentStatusSucceeded, nil
}

func (s *StripeProcessor) CancelIntent(ref string) error {
	_, err := paymentintent.Cancel(ref, nil)
	return err
}
