package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/guardtag/guardtag-backend/internal/cart"
	"github.com/guardtag/guardtag-backend/internal/catalog"
	checkoutsvc "github.com/guardtag/guardtag-backend/internal/checkout"
	"github.com/guardtag/guardtag-backend/internal/contacts"
	"github.com/guardtag/guardtag-backend/internal/orders"
	"github.com/guardtag/guardtag-backend/pkg/config"
	"github.com/guardtag/guardtag-backend/pkg/db/models"
	"github.com/guardtag/guardtag-backend/pkg/enums"
	pkgerrors "github.com/guardtag/guardtag-backend/pkg/errors"
	"github.com/guardtag/guardtag-backend/pkg/logger"
	"github.com/guardtag/guardtag-backend/pkg/types"
	"gorm.io/gorm"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubCatalog struct{}

func (stubCatalog) List(context.Context) ([]catalog.Product, error) {
	return []catalog.Product{
		{ID: "kids-tag-phone", Name: "Kids Safety Tag - Phone", Price: "24.99", Category: "kids"},
		{ID: "pet-tag-phone", Name: "Pet Tag - Phone", Price: "19.99", Category: "pets"},
	}, nil
}

func (s stubCatalog) Get(_ context.Context, id string) (catalog.Product, error) {
	products, _ := s.List(context.Background())
	for _, product := range products {
		if product.ID == id {
			return product, nil
		}
	}
	return catalog.Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (s stubCatalog) ListByCategory(_ context.Context, category string) ([]catalog.Product, error) {
	products, _ := s.List(context.Background())
	filtered := make([]catalog.Product, 0, len(products))
	for _, product := range products {
		if product.Category == category {
			filtered = append(filtered, product)
		}
	}
	return filtered, nil
}

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
	mu     sync.Mutex
	orders map[uuid.UUID]models.Order
}

func newMemoryOrderRepo() *memoryOrderRepo {
	return &memoryOrderRepo{orders: make(map[uuid.UUID]models.Order)}
}

func (m *memoryOrderRepo) Create(_ context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = *order
	return nil
}

func (m *memoryOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := order
	return &cp, nil
}

func (m *memoryOrderRepo) Update(_ context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = *order
	return nil
}

type memoryContactRepo struct {
	mu       sync.Mutex
	contacts []models.Contact
}

func (m *memoryContactRepo) Create(_ context.Context, contact *models.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contacts = append(m.contacts, *contact)
	return nil
}

func (m *memoryContactRepo) List(context.Context) ([]models.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Contact(nil), m.contacts...), nil
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	cfg := &config.Config{}
	cfg.App.Env = "test"

	ordersService := orders.NewService(newMemoryOrderRepo(), logg)
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		stubPinger{},
		stubCatalog{},
		cart.NewManager(newMemorySlot(), logg),
		checkoutsvc.NewService(ordersService, nil, logg),
		ordersService,
		contacts.NewService(&memoryContactRepo{}, logg),
	)
}

func decodeData(t *testing.T, body io.Reader, dest any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func TestHealthEndpoints(t *testing.T) {
	router := testRouter(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, resp.Code)
		}
	}
}

func TestListAndGetProducts(t *testing.T) {
	router := testRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var products []catalog.Product
	decodeData(t, resp.Body, &products)
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/products/kids-tag-phone", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/products/category/pets", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	decodeData(t, resp.Body, &products)
	if len(products) != 1 || products[0].ID != "pet-tag-phone" {
		t.Fatalf("unexpected category result: %+v", products)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/products/unknown", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCartSessionMinting(t *testing.T) {
	router := testRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	minted := resp.Header().Get("X-Cart-Session")
	if minted == "" {
		t.Fatalf("session header not minted")
	}

	// A provided session id is echoed back untouched.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Cart-Session", "sess-known")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if got := resp.Header().Get("X-Cart-Session"); got != "sess-known" {
		t.Fatalf("session header = %q, want sess-known", got)
	}
}

func TestCartFlowOverHTTP(t *testing.T) {
	router := testRouter(t)
	session := "sess-http"

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var reader io.Reader
		if body != "" {
			reader = strings.NewReader(body)
		}
		req := httptest.NewRequest(method, path, reader)
		req.Header.Set("X-Cart-Session", session)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp
	}

	resp := do(http.MethodPost, "/api/v1/cart/items",
		`{"productId":"kids-tag-phone","quantity":1,"customization":{"name":"Emma","phone":"+34600111222"}}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("add: expected 201 got %d: %s", resp.Code, resp.Body)
	}

	// Same payload with reordered keys must merge, not fork a line.
	resp = do(http.MethodPost, "/api/v1/cart/items",
		`{"productId":"kids-tag-phone","quantity":2,"customization":{"phone":"+34600111222","name":"Emma"}}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("add merge: expected 201 got %d", resp.Code)
	}

	var view struct {
		Items []struct {
			Fingerprint string `json:"fingerprint"`
			Quantity    int    `json:"quantity"`
		} `json:"items"`
		TotalItems int    `json:"totalItems"`
		TotalPrice string `json:"totalPrice"`
	}
	decodeData(t, resp.Body, &view)
	if len(view.Items) != 1 || view.Items[0].Quantity != 3 {
		t.Fatalf("expected one merged line with qty 3, got %+v", view.Items)
	}
	if view.TotalPrice != "74.97" {
		t.Fatalf("total = %s, want 74.97", view.TotalPrice)
	}

	resp = do(http.MethodPatch, "/api/v1/cart/items",
		`{"productId":"kids-tag-phone","fingerprint":"`+view.Items[0].Fingerprint+`","quantity":0}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("update: expected 200 got %d", resp.Code)
	}
	decodeData(t, resp.Body, &view)
	if view.TotalItems != 0 {
		t.Fatalf("zero quantity did not remove the line: %+v", view)
	}

	resp = do(http.MethodGet, "/api/v1/cart", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("get: expected 200 got %d", resp.Code)
	}
}

func TestCheckoutOverHTTP(t *testing.T) {
	router := testRouter(t)
	session := "sess-checkout-http"

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items",
		strings.NewReader(`{"productId":"pet-tag-phone","quantity":2}`))
	req.Header.Set("X-Cart-Session", session)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("add: expected 201 got %d", resp.Code)
	}

	checkoutBody := `{
		"customerName": "Jordan Vega",
		"customerEmail": "jordan@example.com",
		"shippingAddress": {"street": "Calle Mayor 12", "city": "Madrid", "zipCode": "28013", "country": "ES"},
		"paymentMethod": "cash_on_delivery"
	}`
	req = httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(checkoutBody))
	req.Header.Set("X-Cart-Session", session)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("checkout: expected 201 got %d: %s", resp.Code, resp.Body)
	}

	var result struct {
		Order struct {
			ID              string            `json:"id"`
			TotalAmount     string            `json:"totalAmount"`
			Status          string            `json:"status"`
			ShippingAddress types.Address     `json:"shippingAddress"`
			Items           []types.OrderItem `json:"items"`
		} `json:"order"`
	}
	decodeData(t, resp.Body, &result)
	if result.Order.TotalAmount != "39.98" {
		t.Fatalf("total = %s, want 39.98", result.Order.TotalAmount)
	}
	if result.Order.Status != enums.OrderStatusPending.String() {
		t.Fatalf("status = %s, want pending", result.Order.Status)
	}

	// The order is readable and confirmable afterwards.
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+result.Order.ID, nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("get order: expected 200 got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+result.Order.ID+"/confirm", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("confirm order: expected 200 got %d", resp.Code)
	}

	// The cart must be empty after a successful checkout.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Cart-Session", session)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	var view struct {
		TotalItems int `json:"totalItems"`
	}
	decodeData(t, resp.Body, &view)
	if view.TotalItems != 0 {
		t.Fatalf("cart not cleared: %+v", view)
	}
}

func TestCheckoutEmptyCartOverHTTP(t *testing.T) {
	router := testRouter(t)

	body := `{
		"customerName": "Jordan Vega",
		"customerEmail": "jordan@example.com",
		"shippingAddress": {"street": "Calle Mayor 12", "city": "Madrid", "zipCode": "28013", "country": "ES"},
		"paymentMethod": "cash_on_delivery"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	req.Header.Set("X-Cart-Session", "sess-empty")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestContactValidation(t *testing.T) {
	router := testRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/contact",
		strings.NewReader(`{"name":"Jordan","email":"not-an-email","subject":"Hi","message":"too short"}`)))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/contact",
		strings.NewReader(`{"name":"Jordan","email":"jordan@example.com","subject":"Warranty","message":"My tag stopped responding to taps."}`)))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body)
	}
}
