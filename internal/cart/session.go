package cart

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/guardtag/guardtag-backend/internal/catalog"
	"github.com/guardtag/guardtag-backend/pkg/errors"
	"github.com/guardtag/guardtag-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// LineItem is one cart line. Identity is the (ProductID, Fingerprint) pair;
// quantity merges onto an existing line, it never forks a new one.
type LineItem struct {
	Product       catalog.Product `json:"product"`
	Customization Customization   `json:"customization,omitempty"`
	Fingerprint   Fingerprint     `json:"fingerprint"`
	Quantity      int             `json:"quantity"`
}

// Session holds one shopper's cart. All mutations are serialized, applied
// in memory and then written wholesale to the durable slot.
type Session struct {
	mu          sync.Mutex
	restoreOnce sync.Once
	id          string
	items       []LineItem
	open        bool
	slot        Slot
	logg        *logger.Logger
}

type snapshot struct {
	Items []snapshotItem `json:"items"`
}

type snapshotItem struct {
	Product       catalog.Product `json:"product"`
	Customization Customization   `json:"customization,omitempty"`
	Quantity      int             `json:"quantity"`
}

func newSession(id string, slot Slot, logg *logger.Logger) *Session {
	return &Session{id: id, slot: slot, logg: logg}
}

// ID returns the session identifier minted for the shopper.
func (s *Session) ID() string {
	return s.id
}

// Add puts quantity units of an uncustomized product in the cart.
func (s *Session) Add(ctx context.Context, product catalog.Product, quantity int) error {
	return s.AddWithCustomization(ctx, product, nil, quantity)
}

// AddWithCustomization merges onto the line with the same product and
// customization fingerprint, or appends a new line at the end.
func (s *Session) AddWithCustomization(ctx context.Context, product catalog.Product, customization Customization, quantity int) error {
	if quantity <= 0 {
		return errors.New(errors.CodeValidation, "quantity must be positive").
			WithDetails(map[string]any{"quantity": quantity})
	}

	fp := ComputeFingerprint(customization)

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.findLocked(product.ID, fp); idx >= 0 {
		s.items[idx].Quantity += quantity
		return s.persistLocked(ctx)
	}
	s.items = append(s.items, LineItem{
		Product:       product,
		Customization: customization,
		Fingerprint:   fp,
		Quantity:      quantity,
	})
	return s.persistLocked(ctx)
}

// UpdateQuantity sets the quantity on an existing line. Zero or negative
// removes the line. An unknown (product, fingerprint) pair is a no-op.
func (s *Session) UpdateQuantity(ctx context.Context, productID string, fp Fingerprint, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findLocked(productID, fp)
	if idx < 0 {
		return nil
	}
	if quantity <= 0 {
		s.items = append(s.items[:idx], s.items[idx+1:]...)
	} else {
		s.items[idx].Quantity = quantity
	}
	return s.persistLocked(ctx)
}

// Remove deletes the line identified by (productID, fingerprint).
func (s *Session) Remove(ctx context.Context, productID string, fp Fingerprint) error {
	return s.UpdateQuantity(ctx, productID, fp, 0)
}

// Clear empties the cart and its durable slot.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	return s.persistLocked(ctx)
}

// Open marks the cart drawer visible. The flag is transient: it is not
// written to the durable slot and resets on restore.
func (s *Session) Open() {
	s.mu.Lock()
	s.open = true
	s.mu.Unlock()
}

// Close marks the cart drawer hidden.
func (s *Session) Close() {
	s.mu.Lock()
	s.open = false
	s.mu.Unlock()
}

// IsOpen reports the drawer state.
func (s *Session) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Items returns a copy of the cart lines in insertion order.
func (s *Session) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems sums the quantities across all lines.
func (s *Session) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums price*quantity across all lines with exact decimals.
func (s *Session) TotalPrice() (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, item := range s.items {
		price, err := decimal.NewFromString(item.Product.Price)
		if err != nil {
			return decimal.Zero, errors.Wrap(errors.CodeInternal, err, "invalid product price in cart").
				WithDetails(map[string]any{"product_id": item.Product.ID})
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total, nil
}

func (s *Session) findLocked(productID string, fp Fingerprint) int {
	for i, item := range s.items {
		if item.Product.ID == productID && item.Fingerprint == fp {
			return i
		}
	}
	return -1
}

func (s *Session) persistLocked(ctx context.Context) error {
	snap := snapshot{Items: make([]snapshotItem, 0, len(s.items))}
	for _, item := range s.items {
		snap.Items = append(snap.Items, snapshotItem{
			Product:       item.Product,
			Customization: item.Customization,
			Quantity:      item.Quantity,
		})
	}
	encoded, err := json.Marshal(snap)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "failed to encode cart snapshot")
	}
	if err := s.slot.Save(ctx, s.id, encoded); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "failed to persist cart")
	}
	return nil
}

// restore loads the durable snapshot. A missing slot yields an empty cart;
// a snapshot that no longer parses is discarded with a warning rather than
// taking the session down.
func (s *Session) restore(ctx context.Context) {
	s.restoreOnce.Do(func() { s.restoreFromSlot(ctx) })
}

func (s *Session) restoreFromSlot(ctx context.Context) {
	data, err := s.slot.Load(ctx, s.id)
	if err != nil {
		if err != ErrSlotEmpty {
			s.logg.Error(s.logg.WithCartSession(ctx, s.id), "failed to load cart snapshot", err)
		}
		return
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logg.Warn(s.logg.WithCartSession(ctx, s.id), "discarding corrupt cart snapshot")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]LineItem, 0, len(snap.Items))
	for _, item := range snap.Items {
		if item.Quantity <= 0 || item.Product.ID == "" {
			continue
		}
		s.items = append(s.items, LineItem{
			Product:       item.Product,
			Customization: item.Customization,
			Fingerprint:   ComputeFingerprint(item.Customization),
			Quantity:      item.Quantity,
		})
	}
}
