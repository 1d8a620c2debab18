package service

import (
	"context"
	"fmt"

	"lab-portal/internal/model"
	"lab-portal/internal/repository"
	"lab-portal/internal/validation"
)

type ProductService interface {
	Create(ctx context.Context, product *model.Product) error
	List(ctx context.Context, filter repository.ProductFilter) ([]*model.Product, error)
	Get(ctx context.Context, id string) (*model.Product, error)
	// Update loads the product, lets apply merge changes into it, then
	// validates and stores the result.
	Update(ctx context.Context, id string, apply func(*model.Product) error) (*model.Product, error)
	Delete(ctx context.Context, id string) error
}

type productServiceImpl struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productServiceImpl{
		productRepo: productRepo,
	}
}

func (s *productServiceImpl) Create(ctx context.Context, product *model.Product) error {
	product.ID = ""
	product.ApplyDefaults()
	if err := validation.Struct(product); err != nil {
		return err
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (s *productServiceImpl) List(ctx context.Context, filter repository.ProductFilter) ([]*model.Product, error) {
	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *productServiceImpl) Get(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", id, err)
	}
	return product, nil
}

func (s *productServiceImpl) Update(ctx context.Context, id string, apply func(*model.Product) error) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", id, err)
	}

	meta := product.Document
	if err := apply(product); err != nil {
		return nil, err
	}
	product.Document = meta
	product.ApplyDefaults()

	if err := validation.Struct(product); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

func (s *productServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("product %s: %w", id, err)
	}
	return nil
}
