package catalog

import "github.com/guardtag/guardtag-backend/pkg/db/models"

// Product is the catalog view handed to the cart and the API. Field names
// match the storefront client's wire format.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Category    string   `json:"category"`
	ImageURL    string   `json:"imageUrl"`
	Features    []string `json:"features"`
	IsPopular   bool     `json:"isPopular"`
}

func newProduct(m models.Product) Product {
	return Product{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Category:    m.Category,
		ImageURL:    m.ImageURL,
		Features:    m.Features,
		IsPopular:   m.IsPopular,
	}
}

func newProductList(ms []models.Product) []Product {
	out := make([]Product, 0, len(ms))
	for _, m := range ms {
		out = append(out, newProduct(m))
	}
	return out
}
