package repository

import (
	"context"

	"gorm.io/gorm"

	"lab-portal/internal/model"
)

// DocumentRepository stores content records keyed by product.
type DocumentRepository[T any] interface {
	FindAll(ctx context.Context) ([]T, error)
	FindByProduct(ctx context.Context, product string) ([]T, error)
	FindOneByProduct(ctx context.Context, product string) (*T, error)
	FindByID(ctx context.Context, id string) (*T, error)
	ExistsForProduct(ctx context.Context, product string) (bool, error)
	Create(ctx context.Context, doc *T) error
	Save(ctx context.Context, doc *T) error
	DeleteByID(ctx context.Context, id string) error
	DeleteByProduct(ctx context.Context, product string) (int64, error)
}

type documentRepoImpl[T any, PT model.ProductDocument[T]] struct {
	db *gorm.DB
}

func newDocumentRepository[T any, PT model.ProductDocument[T]](db *gorm.DB) *documentRepoImpl[T, PT] {
	return &documentRepoImpl[T, PT]{
		db: db,
	}
}

func NewLabManualRepository(db *gorm.DB) DocumentRepository[model.LabManual] {
	return newDocumentRepository[model.LabManual](db)
}

func NewFaqsRepository(db *gorm.DB) DocumentRepository[model.Faqs] {
	return newDocumentRepository[model.Faqs](db)
}

func NewCourseVideoRepository(db *gorm.DB) DocumentRepository[model.CourseVideo] {
	return newDocumentRepository[model.CourseVideo](db)
}

func NewCourseMaterialRepository(db *gorm.DB) DocumentRepository[model.CourseMaterial] {
	return newDocumentRepository[model.CourseMaterial](db)
}

func (r *documentRepoImpl[T, PT]) FindAll(ctx context.Context) ([]T, error) {
	var docs []T
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&docs).Error

	if err != nil {
		return nil, err
	}

	return docs, nil
}

func (r *documentRepoImpl[T, PT]) FindByProduct(ctx context.Context, product string) ([]T, error) {
	var docs []T
	err := r.db.WithContext(ctx).
		Where("product = ?", product).
		Order("updated_at DESC").
		Find(&docs).Error

	if err != nil {
		return nil, err
	}

	return docs, nil
}

func (r *documentRepoImpl[T, PT]) FindOneByProduct(ctx context.Context, product string) (*T, error) {
	var doc T
	err := r.db.WithContext(ctx).
		Where("product = ?", product).
		Order("created_at ASC").
		First(&doc).Error

	if err != nil {
		return nil, translate(err)
	}

	return &doc, nil
}

func (r *documentRepoImpl[T, PT]) FindByID(ctx context.Context, id string) (*T, error) {
	var doc T
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&doc).Error

	if err != nil {
		return nil, translate(err)
	}

	return &doc, nil
}

func (r *documentRepoImpl[T, PT]) ExistsForProduct(ctx context.Context, product string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(PT(new(T))).
		Where("product = ?", product).
		Count(&count).Error

	return count > 0, err
}

func (r *documentRepoImpl[T, PT]) Create(ctx context.Context, doc *T) error {
	return translate(r.db.WithContext(ctx).Create(doc).Error)
}

func (r *documentRepoImpl[T, PT]) Save(ctx context.Context, doc *T) error {
	return r.db.WithContext(ctx).Save(doc).Error
}

func (r *documentRepoImpl[T, PT]) DeleteByID(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(PT(new(T)))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}

	return nil
}

func (r *documentRepoImpl[T, PT]) DeleteByProduct(ctx context.Context, product string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("product = ?", product).
		Delete(PT(new(T)))

	return result.RowsAffected, result.Error
}
