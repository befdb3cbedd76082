package catalog

import (
	"context"
	stderrors "errors"

	"github.com/guardtag/guardtag-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes read access to the product catalog.
type Service interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (Product, error)
	ListByCategory(ctx context.Context, category string) ([]Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "failed to list products")
	}
	return newProductList(products), nil
}

func (s *service) Get(ctx context.Context, id string) (Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return Product{}, errors.New(errors.CodeNotFound, "product not found").
				WithDetails(map[string]any{"product_id": id})
		}
		return Product{}, errors.Wrap(errors.CodeInternal, err, "failed to load product")
	}
	return newProduct(*product), nil
}

func (s *service) ListByCategory(ctx context.Context, category string) ([]Product, error) {
	products, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "failed to list products by category")
	}
	return newProductList(products), nil
}
