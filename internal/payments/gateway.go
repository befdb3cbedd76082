package payments

import (
	"context"

	"github.com/shopspring/decimal"
)

// Intent is the provider-side payment handle returned to the storefront so
// the client can finish the card flow.
type Intent struct {
	ID           string
	ClientSecret string
}

// Gateway is the subset of payment-provider operations checkout needs.
type Gateway interface {
	CreateIntent(ctx context.Context, amount decimal.Decimal, orderID string) (*Intent, error)
	ConfirmIntent(ctx context.Context, intentID string) (bool, error)
}
