package catalog

import (
	"context"
	"io"
	"testing"

	"github.com/guardtag/guardtag-backend/pkg/db/models"
	"github.com/guardtag/guardtag-backend/pkg/errors"
	"github.com/guardtag/guardtag-backend/pkg/logger"
	"gorm.io/gorm"
)

type memoryRepo struct {
	products []models.Product
}

func (m *memoryRepo) List(context.Context) ([]models.Product, error) {
	return append([]models.Product(nil), m.products...), nil
}

func (m *memoryRepo) FindByID(_ context.Context, id string) (*models.Product, error) {
	for _, product := range m.products {
		if product.ID == id {
			cp := product
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryRepo) ListByCategory(_ context.Context, category string) ([]models.Product, error) {
	var filtered []models.Product
	for _, product := range m.products {
		if product.Category == category {
			filtered = append(filtered, product)
		}
	}
	return filtered, nil
}

func (m *memoryRepo) Count(context.Context) (int64, error) {
	return int64(len(m.products)), nil
}

func (m *memoryRepo) CreateBatch(_ context.Context, products []models.Product) error {
	m.products = append(m.products, products...)
	return nil
}

func seededRepo() *memoryRepo {
	return &memoryRepo{products: []models.Product{
		{ID: "kids-tag-phone", Name: "Kids Safety Tag - Phone", Price: "24.99", Category: "kids"},
		{ID: "pet-tag-phone", Name: "Pet Tag - Phone", Price: "19.99", Category: "pets"},
	}}
}

func TestServiceGet(t *testing.T) {
	svc := NewService(seededRepo())

	product, err := svc.Get(context.Background(), "kids-tag-phone")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if product.Name != "Kids Safety Tag - Phone" || product.Price != "24.99" {
		t.Fatalf("unexpected product: %+v", product)
	}

	_, err = svc.Get(context.Background(), "missing")
	if typed := errors.As(err); typed == nil || typed.Code() != errors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceListByCategory(t *testing.T) {
	svc := NewService(seededRepo())

	products, err := svc.ListByCategory(context.Background(), "pets")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 1 || products[0].ID != "pet-tag-phone" {
		t.Fatalf("unexpected category filter result: %+v", products)
	}
}

func TestSeedPopulatesEmptyCatalog(t *testing.T) {
	repo := &memoryRepo{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	if err := Seed(context.Background(), repo, logg); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(repo.products) != 12 {
		t.Fatalf("seeded %d products, want 12", len(repo.products))
	}

	categories := map[string]int{}
	for _, product := range repo.products {
		categories[product.Category]++
		if product.Price == "" {
			t.Fatalf("product %s has no price", product.ID)
		}
	}
	for _, category := range []string{"kids", "pets", "luggage", "elderly"} {
		if categories[category] != 3 {
			t.Fatalf("category %s has %d products, want 3", category, categories[category])
		}
	}

	// Restarting against a populated catalog must not duplicate rows.
	if err := Seed(context.Background(), repo, logg); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if len(repo.products) != 12 {
		t.Fatalf("seed duplicated rows: %d", len(repo.products))
	}
}
