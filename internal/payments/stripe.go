package payments

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/paymentintent"

	"github.com/guardtag/guardtag-backend/pkg/errors"
	pkgstripe "github.com/guardtag/guardtag-backend/pkg/stripe"
)

const currency = "usd"

type stripeGateway struct{}

// NewStripeGateway wraps the configured Stripe client behind the Gateway
// interface so checkout can be tested without the provider.
func NewStripeGateway(api *pkgstripe.Client) Gateway {
	if api == nil {
		return nil
	}
	return &stripeGateway{}
}

func (g *stripeGateway) CreateIntent(ctx context.Context, amount decimal.Decimal, orderID string) (*Intent, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New(errors.CodeValidation, "payment amount must be positive")
	}

	// Stripe amounts are integer minor units.
	cents := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(cents),
		Currency: stripe.String(currency),
	}
	params.AddMetadata("order_id", orderID)
	params.Context = ctx

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "failed to create payment intent")
	}
	return &Intent{ID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}

func (g *stripeGateway) ConfirmIntent(ctx context.Context, intentID string) (bool, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	intent, err := paymentintent.Get(intentID, params)
	if err != nil {
		return false, errors.Wrap(errors.CodeDependency, err, "failed to fetch payment intent")
	}
	return intent.Status == stripe.PaymentIntentStatusSucceeded, nil
}
