package catalog

import (
	"context"

	"github.com/guardtag/guardtag-backend/pkg/db/models"
	"github.com/guardtag/guardtag-backend/pkg/logger"
	"github.com/guardtag/guardtag-backend/pkg/types"
)

// Seed inserts the default product lineup when the catalog table is empty.
// It is a no-op on a populated database so restarts never duplicate rows.
func Seed(ctx context.Context, repo Repository, logg *logger.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if err := repo.CreateBatch(ctx, defaultProducts()); err != nil {
		return err
	}
	logg.Info(logg.WithField(ctx, "products", len(defaultProducts())), "seeded product catalog")
	return nil
}

func defaultProducts() []models.Product {
	return []models.Product{
		{
			ID:          "kids-tag-phone",
			Name:        "Kids Safety Tag - Phone",
			Description: "NFC tag for kids that instantly dials a parent's phone number when tapped.",
			Price:       "24.99",
			Category:    "kids",
			ImageURL:    "/images/products/kids-tag-phone.jpg",
			Features:    types.StringSlice{"One-tap emergency call", "Waterproof casing", "Custom engraving", "No app required"},
			IsPopular:   true,
		},
		{
			ID:          "kids-tag-whatsapp",
			Name:        "Kids Safety Tag - WhatsApp",
			Description: "NFC tag for kids that opens a WhatsApp chat with a guardian when tapped.",
			Price:       "24.99",
			Category:    "kids",
			ImageURL:    "/images/products/kids-tag-whatsapp.jpg",
			Features:    types.StringSlice{"Opens WhatsApp chat", "Waterproof casing", "Custom engraving", "No app required"},
		},
		{
			ID:          "kids-tag-emergency",
			Name:        "Kids Safety Tag - Emergency Info",
			Description: "NFC tag showing emergency contacts and medical info for your child.",
			Price:       "24.99",
			Category:    "kids",
			ImageURL:    "/images/products/kids-tag-emergency.jpg",
			Features:    types.StringSlice{"Full emergency profile", "Medical info display", "Waterproof casing", "Custom engraving"},
		},
		{
			ID:          "pet-tag-phone",
			Name:        "Pet Tag - Phone",
			Description: "NFC collar tag that dials the owner's number when a finder taps it.",
			Price:       "19.99",
			Category:    "pets",
			ImageURL:    "/images/products/pet-tag-phone.jpg",
			Features:    types.StringSlice{"One-tap call to owner", "Collar mount", "Weatherproof", "Lightweight design"},
		},
		{
			ID:          "pet-tag-whatsapp",
			Name:        "Pet Tag - WhatsApp",
			Description: "NFC collar tag that opens a WhatsApp chat with the pet's owner.",
			Price:       "19.99",
			Category:    "pets",
			ImageURL:    "/images/products/pet-tag-whatsapp.jpg",
			Features:    types.StringSlice{"Opens WhatsApp chat", "Collar mount", "Weatherproof", "Lightweight design"},
		},
		{
			ID:          "pet-tag-emergency",
			Name:        "Pet Tag - Emergency Info",
			Description: "NFC collar tag showing the pet's info, vet details and owner contacts.",
			Price:       "19.99",
			Category:    "pets",
			ImageURL:    "/images/products/pet-tag-emergency.jpg",
			Features:    types.StringSlice{"Pet profile display", "Vet contact info", "Collar mount", "Weatherproof"},
		},
		{
			ID:          "luggage-tag-phone",
			Name:        "Luggage Tag - Phone",
			Description: "NFC luggage tag that lets a finder call you with a single tap.",
			Price:       "14.99",
			Category:    "luggage",
			ImageURL:    "/images/products/luggage-tag-phone.jpg",
			Features:    types.StringSlice{"One-tap call", "Durable strap", "Travel-proof build", "Custom engraving"},
		},
		{
			ID:          "luggage-tag-whatsapp",
			Name:        "Luggage Tag - WhatsApp",
			Description: "NFC luggage tag that opens a WhatsApp chat with the owner.",
			Price:       "14.99",
			Category:    "luggage",
			ImageURL:    "/images/products/luggage-tag-whatsapp.jpg",
			Features:    types.StringSlice{"Opens WhatsApp chat", "Durable strap", "Travel-proof build", "Custom engraving"},
		},
		{
			ID:          "luggage-tag-emergency",
			Name:        "Luggage Tag - Emergency Info",
			Description: "NFC luggage tag showing owner contact details to whoever finds it.",
			Price:       "14.99",
			Category:    "luggage",
			ImageURL:    "/images/products/luggage-tag-emergency.jpg",
			Features:    types.StringSlice{"Owner contact display", "Durable strap", "Travel-proof build", "Custom engraving"},
		},
		{
			ID:          "senior-tag-phone",
			Name:        "Senior Care Tag - Phone",
			Description: "NFC tag for seniors that dials a caregiver's number when tapped.",
			Price:       "29.99",
			Category:    "elderly",
			ImageURL:    "/images/products/senior-tag-phone.jpg",
			Features:    types.StringSlice{"One-tap caregiver call", "Large tap area", "Wearable options", "Waterproof casing"},
		},
		{
			ID:          "senior-tag-whatsapp",
			Name:        "Senior Care Tag - WhatsApp",
			Description: "NFC tag for seniors that opens a WhatsApp chat with family.",
			Price:       "29.99",
			Category:    "elderly",
			ImageURL:    "/images/products/senior-tag-whatsapp.jpg",
			Features:    types.StringSlice{"Opens WhatsApp chat", "Large tap area", "Wearable options", "Waterproof casing"},
		},
		{
			ID:          "senior-tag-emergency",
			Name:        "Senior Care Tag - Emergency Info",
			Description: "NFC tag showing medical conditions, medications and emergency contacts.",
			Price:       "29.99",
			Category:    "elderly",
			ImageURL:    "/images/products/senior-tag-emergency.jpg",
			Features:    types.StringSlice{"Medical profile display", "Medication list", "Emergency contacts", "Waterproof casing"},
		},
	}
}
