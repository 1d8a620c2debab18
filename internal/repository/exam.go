package repository

import (
	"context"

	"gorm.io/gorm"

	"lab-portal/internal/model"
)

type ExamRepository interface {
	Create(ctx context.Context, tx *gorm.DB, exam *model.Exam) error
	FindAll(ctx context.Context) ([]*model.Exam, error)
	FindByID(ctx context.Context, id string) (*model.Exam, error)
}

type examRepoImpl struct {
	db *gorm.DB
}

func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepoImpl{
		db: db,
	}
}

func (r *examRepoImpl) Create(ctx context.Context, tx *gorm.DB, exam *model.Exam) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(exam).Error
}

func (r *examRepoImpl) FindAll(ctx context.Context) ([]*model.Exam, error) {
	var exams []*model.Exam
	err := r.db.WithContext(ctx).
		Order("date DESC").
		Find(&exams).Error

	if err != nil {
		return nil, err
	}

	return exams, nil
}

func (r *examRepoImpl) FindByID(ctx context.Context, id string) (*model.Exam, error) {
	var exam model.Exam
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&exam).Error

	if err != nil {
		return nil, translate(err)
	}

	return &exam, nil
}
