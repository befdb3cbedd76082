package orders

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/guardtag/guardtag-backend/pkg/db/models"
	"github.com/guardtag/guardtag-backend/pkg/enums"
	"github.com/guardtag/guardtag-backend/pkg/errors"
	"github.com/guardtag/guardtag-backend/pkg/logger"
	"github.com/guardtag/guardtag-backend/pkg/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service owns the order lifecycle: pending or awaiting_payment at creation,
// confirmed after merchant review, paid once the payment provider settles.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Confirm(ctx context.Context, id uuid.UUID) (*models.Order, error)
	AttachPaymentIntent(ctx context.Context, id uuid.UUID, intentID string) error
	MarkPaid(ctx context.Context, id uuid.UUID) (*models.Order, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

func NewService(repo Repository, logg *logger.Logger) Service {
	return &service{repo: repo, logg: logg}
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, errors.New(errors.CodeValidation, "order must contain at least one item")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, errors.New(errors.CodeValidation, "unknown payment method").
			WithDetails(map[string]any{"payment_method": input.PaymentMethod.String()})
	}

	total, err := computeTotal(input.Items)
	if err != nil {
		return nil, err
	}

	status := enums.OrderStatusPending
	if input.PaymentMethod == enums.PaymentMethodCreditCard {
		status = enums.OrderStatusAwaitingPayment
	}

	order := &models.Order{
		ID:              uuid.New(),
		CustomerName:    input.CustomerName,
		CustomerEmail:   input.CustomerEmail,
		ShippingAddress: input.ShippingAddress,
		Items:           input.Items,
		TotalAmount:     total.StringFixed(2),
		Status:          status,
		PaymentMethod:   input.PaymentMethod,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "failed to create order")
	}

	ctx = s.logg.WithFields(ctx, map[string]any{
		"order_id": order.ID.String(),
		"status":   order.Status.String(),
		"total":    order.TotalAmount,
	})
	s.logg.Info(ctx, "order created")
	return order, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "order not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "failed to load order")
	}
	return order, nil
}

// Confirm moves a reviewable order to confirmed. Paid orders stay paid and
// already-confirmed ones are rejected rather than silently re-confirmed.
func (s *service) Confirm(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != enums.OrderStatusPending && order.Status != enums.OrderStatusAwaitingPayment {
		return nil, errors.New(errors.CodeStateConflict, "order cannot be confirmed").
			WithDetails(map[string]any{"status": order.Status.String()})
	}

	order.Status = enums.OrderStatusConfirmed
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "failed to confirm order")
	}
	s.logg.Info(s.logg.WithField(ctx, "order_id", order.ID.String()), "order confirmed")
	return order, nil
}

// AttachPaymentIntent records the provider intent id on a card order.
func (s *service) AttachPaymentIntent(ctx context.Context, id uuid.UUID, intentID string) error {
	order, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if order.Status != enums.OrderStatusAwaitingPayment {
		return errors.New(errors.CodeStateConflict, "order is not awaiting payment").
			WithDetails(map[string]any{"status": order.Status.String()})
	}

	order.PaymentIntentID = &intentID
	if err := s.repo.Update(ctx, order); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "failed to attach payment intent")
	}
	return nil
}

// MarkPaid settles an awaiting_payment order once the provider confirms.
func (s *service) MarkPaid(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != enums.OrderStatusAwaitingPayment {
		return nil, errors.New(errors.CodeStateConflict, "order is not awaiting payment").
			WithDetails(map[string]any{"status": order.Status.String()})
	}

	order.Status = enums.OrderStatusPaid
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "failed to mark order paid")
	}
	s.logg.Info(s.logg.WithField(ctx, "order_id", order.ID.String()), "order paid")
	return order, nil
}

func computeTotal(items []types.OrderItem) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, item := range items {
		if item.Quantity <= 0 {
			return decimal.Zero, errors.New(errors.CodeValidation, "item quantity must be positive").
				WithDetails(map[string]any{"product_id": item.ProductID})
		}
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			return decimal.Zero, errors.New(errors.CodeValidation, "item price is not a valid decimal").
				WithDetails(map[string]any{"product_id": item.ProductID, "price": item.Price})
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total, nil
}
