package models

import (
	"time"

	"github.com/guardtag/guardtag-backend/pkg/types"
)

// Product is a catalog listing. IDs are human-readable slugs (e.g. kids-tag-phone)
// and Price is an exact-precision decimal string, never a float.
type Product struct {
	ID          string            `gorm:"column:id;primaryKey"`
	Name        string            `gorm:"column:name;not null"`
	Description string            `gorm:"column:description;not null"`
	Price       string            `gorm:"column:price;type:numeric(10,2);not null"`
	Category    string            `gorm:"column:category;not null;index"`
	ImageURL    string            `gorm:"column:image_url;not null"`
	Features    types.StringSlice `gorm:"column:features;type:jsonb;not null"`
	IsPopular   bool              `gorm:"column:is_popular;not null;default:false"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
