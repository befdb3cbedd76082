package checkout

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/guardtag/guardtag-backend/internal/cart"
	"github.com/guardtag/guardtag-backend/internal/catalog"
	"github.com/guardtag/guardtag-backend/internal/orders"
	"github.com/guardtag/guardtag-backend/internal/payments"
	"github.com/guardtag/guardtag-backend/pkg/db/models"
	"github.com/guardtag/guardtag-backend/pkg/enums"
	"github.com/guardtag/guardtag-backend/pkg/errors"
	"github.com/guardtag/guardtag-backend/pkg/logger"
	"github.com/guardtag/guardtag-backend/pkg/types"
)

type memorySlot struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemorySlot() *memorySlot {
	return &memorySlot{data: make(map[string][]byte)}
}

func (m *memorySlot) Save(_ context.Context, sessionID string, snapshot []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(snapshot))
	copy(cp, snapshot)
	m.data[sessionID] = cp
	return nil
}

func (m *memorySlot) Load(_ context.Context, sessionID string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot, ok := m.data[sessionID]
	if !ok {
		return nil, cart.ErrSlotEmpty
	}
	return snapshot, nil
}

func (m *memorySlot) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, sessionID)
	return nil
}

type memoryOrderRepo struct {
	orders map[uuid.UUID]models.Order
}

func newMemoryOrderRepo() *memoryOrderRepo {
	return &memoryOrderRepo{orders: make(map[uuid.UUID]models.Order)}
}

func (m *memoryOrderRepo) Create(_ context.Context, order *models.Order) error {
	m.orders[order.ID] = *order
	return nil
}

func (m *memoryOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := order
	return &cp, nil
}

func (m *memoryOrderRepo) Update(_ context.Context, order *models.Order) error {
	m.orders[order.ID] = *order
	return nil
}

type stubGateway struct {
	createdAmount decimal.Decimal
	createErr     error
	confirmResult bool
	confirmErr    error
}

func (g *stubGateway) CreateIntent(_ context.Context, amount decimal.Decimal, orderID string) (*payments.Intent, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.createdAmount = amount
	return &payments.Intent{ID: "pi_" + orderID, ClientSecret: "cs_" + orderID}, nil
}

func (g *stubGateway) ConfirmIntent(_ context.Context, _ string) (bool, error) {
	return g.confirmResult, g.confirmErr
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newFixture(gateway payments.Gateway) (Service, *cart.Session) {
	logg := testLogger()
	orderSvc := orders.NewService(newMemoryOrderRepo(), logg)
	session := cart.NewManager(newMemorySlot(), logg).Session(context.Background(), "sess-checkout")
	return NewService(orderSvc, gateway, logg), session
}

func testInput(method enums.PaymentMethod) Input {
	return Input{
		CustomerName:  "Jordan Vega",
		CustomerEmail: "jordan@example.com",
		ShippingAddress: types.Address{
			Street:  "Calle Mayor 12",
			City:    "Madrid",
			ZipCode: "28013",
			Country: "ES",
		},
		PaymentMethod: method,
	}
}

func fillCart(t *testing.T, session *cart.Session) {
	t.Helper()
	ctx := context.Background()
	cust := cart.Customization{"name": "Emma", "phone": "+34600111222"}
	product := catalog.Product{ID: "kids-tag-phone", Name: "Kids Safety Tag - Phone", Price: "24.99"}
	if err := session.AddWithCustomization(ctx, product, cust, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
}

func TestCheckoutCashOrder(t *testing.T) {
	ctx := context.Background()
	svc, session := newFixture(&stubGateway{})
	fillCart(t, session)

	result, err := svc.Checkout(ctx, session, testInput(enums.PaymentMethodCashOnDelivery))
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if result.Order.Status != enums.OrderStatusPending {
		t.Fatalf("status = %s, want pending", result.Order.Status)
	}
	if result.Order.TotalAmount != "49.98" {
		t.Fatalf("total = %s, want 49.98", result.Order.TotalAmount)
	}
	if result.ClientSecret != "" {
		t.Fatalf("cash order should not have a client secret")
	}
	if len(result.Order.Items) != 1 || result.Order.Items[0].Customization["name"] != "Emma" {
		t.Fatalf("customization not snapshotted: %+v", result.Order.Items)
	}
	if session.TotalItems() != 0 {
		t.Fatalf("cart not cleared after checkout")
	}
}

func TestCheckoutCardOrderOpensIntent(t *testing.T) {
	ctx := context.Background()
	gateway := &stubGateway{}
	svc, session := newFixture(gateway)
	fillCart(t, session)

	result, err := svc.Checkout(ctx, session, testInput(enums.PaymentMethodCreditCard))
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if result.Order.Status != enums.OrderStatusAwaitingPayment {
		t.Fatalf("status = %s, want awaiting_payment", result.Order.Status)
	}
	if result.ClientSecret == "" {
		t.Fatalf("card order must return a client secret")
	}
	if result.Order.PaymentIntentID == nil {
		t.Fatalf("intent id not attached to order")
	}
	if gateway.createdAmount.String() != "49.98" {
		t.Fatalf("intent amount = %s, want 49.98", gateway.createdAmount)
	}
	if session.TotalItems() != 0 {
		t.Fatalf("cart not cleared after checkout")
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, session := newFixture(&stubGateway{})

	_, err := svc.Checkout(context.Background(), session, testInput(enums.PaymentMethodCashOnDelivery))
	if typed := errors.As(err); typed == nil || typed.Code() != errors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCheckoutIntentFailureKeepsCart(t *testing.T) {
	ctx := context.Background()
	gateway := &stubGateway{createErr: errors.New(errors.CodeDependency, "provider down")}
	svc, session := newFixture(gateway)
	fillCart(t, session)

	_, err := svc.Checkout(ctx, session, testInput(enums.PaymentMethodCreditCard))
	if typed := errors.As(err); typed == nil || typed.Code() != errors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if session.TotalItems() == 0 {
		t.Fatalf("cart must survive a failed card checkout")
	}
}

func TestConfirmPayment(t *testing.T) {
	ctx := context.Background()
	gateway := &stubGateway{confirmResult: true}
	svc, session := newFixture(gateway)
	fillCart(t, session)

	result, err := svc.Checkout(ctx, session, testInput(enums.PaymentMethodCreditCard))
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	paid, err := svc.ConfirmPayment(ctx, result.Order.ID)
	if err != nil {
		t.Fatalf("confirm payment: %v", err)
	}
	if paid.Status != enums.OrderStatusPaid {
		t.Fatalf("status = %s, want paid", paid.Status)
	}
}

func TestConfirmPaymentUnsettledIntent(t *testing.T) {
	ctx := context.Background()
	gateway := &stubGateway{confirmResult: false}
	svc, session := newFixture(gateway)
	fillCart(t, session)

	result, err := svc.Checkout(ctx, session, testInput(enums.PaymentMethodCreditCard))
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	_, err = svc.ConfirmPayment(ctx, result.Order.ID)
	if typed := errors.As(err); typed == nil || typed.Code() != errors.CodePayment {
		t.Fatalf("expected payment error, got %v", err)
	}
}

func TestConfirmPaymentWithoutIntent(t *testing.T) {
	ctx := context.Background()
	svc, session := newFixture(&stubGateway{})
	fillCart(t, session)

	result, err := svc.Checkout(ctx, session, testInput(enums.PaymentMethodCashOnDelivery))
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	_, err = svc.ConfirmPayment(ctx, result.Order.ID)
	if typed := errors.As(err); typed == nil || typed.Code() != errors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}
