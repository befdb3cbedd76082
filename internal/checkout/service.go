package checkout

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/guardtag/guardtag-backend/internal/cart"
	"github.com/guardtag/guardtag-backend/internal/orders"
	"github.com/guardtag/guardtag-backend/internal/payments"
	"github.com/guardtag/guardtag-backend/pkg/db/models"
	"github.com/guardtag/guardtag-backend/pkg/enums"
	"github.com/guardtag/guardtag-backend/pkg/errors"
	"github.com/guardtag/guardtag-backend/pkg/logger"
	"github.com/guardtag/guardtag-backend/pkg/types"
)

// Input is the customer-provided half of a checkout. Amounts never come
// from the client; the order total is recomputed from the cart snapshot.
type Input struct {
	CustomerName    string
	CustomerEmail   string
	ShippingAddress types.Address
	PaymentMethod   enums.PaymentMethod
}

// Result is the checkout outcome. ClientSecret is only set for card orders
// that still need the provider-side confirmation step.
type Result struct {
	Order        *models.Order
	ClientSecret string
}

// Service drains a cart session into a durable order.
type Service interface {
	Checkout(ctx context.Context, session *cart.Session, input Input) (*Result, error)
	ConfirmPayment(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
}

type service struct {
	orders  orders.Service
	gateway payments.Gateway
	logg    *logger.Logger
}

func NewService(orderSvc orders.Service, gateway payments.Gateway, logg *logger.Logger) Service {
	return &service{orders: orderSvc, gateway: gateway, logg: logg}
}

// Checkout snapshots the cart lines into an order and, for card payments,
// opens a provider intent. The cart is cleared last so a failure at any
// earlier step leaves it intact for a retry.
func (s *service) Checkout(ctx context.Context, session *cart.Session, input Input) (*Result, error) {
	items := session.Items()
	if len(items) == 0 {
		return nil, errors.New(errors.CodeValidation, "cart is empty")
	}

	order, err := s.orders.Create(ctx, orders.CreateOrderInput{
		CustomerName:    input.CustomerName,
		CustomerEmail:   input.CustomerEmail,
		ShippingAddress: input.ShippingAddress,
		Items:           snapshotItems(items),
		PaymentMethod:   input.PaymentMethod,
	})
	if err != nil {
		return nil, err
	}

	result := &Result{Order: order}
	if input.PaymentMethod == enums.PaymentMethodCreditCard {
		if s.gateway == nil {
			return nil, errors.New(errors.CodeDependency, "card payments are not configured")
		}
		total, err := decimal.NewFromString(order.TotalAmount)
		if err != nil {
			return nil, errors.Wrap(errors.CodeInternal, err, "invalid order total")
		}
		intent, err := s.gateway.CreateIntent(ctx, total, order.ID.String())
		if err != nil {
			return nil, err
		}
		if err := s.orders.AttachPaymentIntent(ctx, order.ID, intent.ID); err != nil {
			return nil, err
		}
		order.PaymentIntentID = &intent.ID
		result.ClientSecret = intent.ClientSecret
	}

	// The order is durable at this point. A failed clear must not produce a
	// second order on retry, so it is logged instead of failing the checkout.
	if err := session.Clear(ctx); err != nil {
		s.logg.Error(s.logg.WithCartSession(ctx, session.ID()), "failed to clear cart after checkout", err)
	}

	return result, nil
}

// ConfirmPayment verifies the provider intent succeeded before settling the
// order. An unpaid intent is reported as retryable, not a state conflict.
func (s *service) ConfirmPayment(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentIntentID == nil || *order.PaymentIntentID == "" {
		return nil, errors.New(errors.CodeStateConflict, "order has no payment intent")
	}
	if s.gateway == nil {
		return nil, errors.New(errors.CodeDependency, "card payments are not configured")
	}

	succeeded, err := s.gateway.ConfirmIntent(ctx, *order.PaymentIntentID)
	if err != nil {
		return nil, err
	}
	if !succeeded {
		return nil, errors.New(errors.CodePayment, "payment has not completed").
			WithDetails(map[string]any{"order_id": orderID.String()})
	}

	return s.orders.MarkPaid(ctx, orderID)
}

func snapshotItems(lines []cart.LineItem) []types.OrderItem {
	out := make([]types.OrderItem, 0, len(lines))
	for _, line := range lines {
		out = append(out, types.OrderItem{
			ProductID:     line.Product.ID,
			Name:          line.Product.Name,
			Price:         line.Product.Price,
			Quantity:      line.Quantity,
			Customization: line.Customization,
		})
	}
	return out
}
