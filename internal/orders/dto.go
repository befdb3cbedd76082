package orders

import (
	"github.com/guardtag/guardtag-backend/pkg/enums"
	"github.com/guardtag/guardtag-backend/pkg/types"
)

// CreateOrderInput carries everything needed to persist a new order. Items
// are pre-snapshotted cart lines; the total is recomputed here and never
// trusted from the caller.
type CreateOrderInput struct {
	CustomerName    string
	CustomerEmail   string
	ShippingAddress types.Address
	Items           []types.OrderItem
	PaymentMethod   enums.PaymentMethod
}
