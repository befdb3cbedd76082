package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/guardtag/guardtag-backend/pkg/enums"
	"github.com/guardtag/guardtag-backend/pkg/types"
)

// Order is the persisted checkout result. Items and the shipping address are
// JSON snapshots so the order survives later catalog edits unchanged.
type Order struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	CustomerName    string              `gorm:"column:customer_name;not null"`
	CustomerEmail   string              `gorm:"column:customer_email;not null"`
	ShippingAddress types.Address       `gorm:"column:shipping_address;type:jsonb;not null"`
	Items           types.OrderItems    `gorm:"column:items;type:jsonb;not null"`
	TotalAmount     string              `gorm:"column:total_amount;type:numeric(10,2);not null"`
	Status          enums.OrderStatus   `gorm:"column:status;not null;default:pending"`
	PaymentMethod   enums.PaymentMethod `gorm:"column:payment_method;not null;default:cash_on_delivery"`
	PaymentIntentID *string             `gorm:"column:payment_intent_id"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
