package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OrderItem is the immutable snapshot of a cart line item taken at checkout.
// Price is the exact-precision decimal string from the catalog, never a float.
type OrderItem struct {
	ProductID     string         `json:"productId"`
	Name          string         `json:"name"`
	Price         string         `json:"price"`
	Quantity      int            `json:"quantity"`
	Customization map[string]any `json:"customization,omitempty"`
}

// OrderItems is stored as a single JSON column on the order row.
type OrderItems []OrderItem

func (o OrderItems) Value() (driver.Value, error) {
	if o == nil {
		o = OrderItems{}
	}
	raw, err := json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("order items: marshal: %w", err)
	}
	return string(raw), nil
}

func (o *OrderItems) Scan(src any) error {
	if src == nil {
		*o = OrderItems{}
		return nil
	}
	switch v := src.(type) {
	case string:
		return json.Unmarshal([]byte(v), o)
	case []byte:
		return json.Unmarshal(v, o)
	default:
		return fmt.Errorf("order items: unsupported Scan type %T", src)
	}
}
