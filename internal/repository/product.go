package repository

import (
	"context"

	"gorm.io/gorm"

	"lab-portal/internal/model"
)

type ProductFilter struct {
	Title                string
	Category             string
	Prices               string
	BootcampAvailability string
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, productID string) (*model.Product, error)
	FindMany(ctx context.Context, productIDs []string) ([]*model.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*model.Product, error)
	Save(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, productID string) error
	TitlesByID(ctx context.Context, productIDs []string) (map[string]string, error)
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, translate(err)
	}

	return &product, nil
}

func (r *productRepoImpl) FindMany(ctx context.Context, productIDs []string) ([]*model.Product, error) {
	var products []*model.Product
	if len(productIDs) == 0 {
		return products, nil
	}

	err := r.db.WithContext(ctx).
		Where("id IN ?", productIDs).
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) List(ctx context.Context, filter ProductFilter) ([]*model.Product, error) {
	q := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.Title != "" {
		q = q.Where("LOWER(title) LIKE ? ESCAPE '!'", containsPattern(filter.Title))
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Prices != "" {
		q = q.Where("prices = ?", filter.Prices)
	}
	if filter.BootcampAvailability != "" {
		q = q.Where("bootcamp_availability = ?", filter.BootcampAvailability)
	}

	var products []*model.Product
	if err := q.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) Save(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepoImpl) Delete(ctx context.Context, productID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", productID).
		Delete(&model.Product{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}

	return nil
}

func (r *productRepoImpl) TitlesByID(ctx context.Context, productIDs []string) (map[string]string, error) {
	titles := make(map[string]string, len(productIDs))
	if len(productIDs) == 0 {
		return titles, nil
	}

	var rows []struct {
		ID    string
		Title string
	}
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Select("id", "title").
		Where("id IN ?", productIDs).
		Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		titles[row.ID] = row.Title
	}

	return titles, nil
}
