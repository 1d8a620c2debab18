package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"lab-portal/internal/common"
	"lab-portal/internal/model"
)

type MachineFormRepository interface {
	DocumentRepository[model.MachineForm]
	// ReplaceAnswers writes answers only if the stored version still equals
	// form.Version, then bumps the version.
	ReplaceAnswers(ctx context.Context, form *model.MachineForm) error
}

type machineFormRepoImpl struct {
	*documentRepoImpl[model.MachineForm, *model.MachineForm]
}

func NewMachineFormRepository(db *gorm.DB) MachineFormRepository {
	return &machineFormRepoImpl{
		documentRepoImpl: newDocumentRepository[model.MachineForm](db),
	}
}

func (r *machineFormRepoImpl) Create(ctx context.Context, form *model.MachineForm) error {
	if form.Version == 0 {
		form.Version = 1
	}
	if form.Answers == nil {
		form.Answers = []model.MachineAnswer{}
	}
	return r.documentRepoImpl.Create(ctx, form)
}

func (r *machineFormRepoImpl) ReplaceAnswers(ctx context.Context, form *model.MachineForm) error {
	next := model.MachineForm{
		Document: model.Document{UpdatedAt: time.Now()},
		Answers:  form.Answers,
		Version:  form.Version + 1,
	}
	result := r.db.WithContext(ctx).
		Model(&model.MachineForm{}).
		Where("id = ? AND version = ?", form.ID, form.Version).
		Select("answers", "version", "updated_at").
		Updates(&next)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrVersionConflict
	}

	form.Version = next.Version
	form.UpdatedAt = next.UpdatedAt
	return nil
}
