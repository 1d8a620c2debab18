package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"lab-portal/internal/dto"
	"lab-portal/internal/logging"
	"lab-portal/internal/model"
	"lab-portal/internal/repository"
)

type ExamService interface {
	Schedule(ctx context.Context, userID string, req *dto.ExamRequest) (*model.Exam, error)
	List(ctx context.Context) ([]*model.Exam, error)
	Get(ctx context.Context, id string) (*model.Exam, error)
}

type examServiceImpl struct {
	db       *gorm.DB
	examRepo repository.ExamRepository
	userRepo repository.CheckoutUserRepository
	logger   logging.Logger
	now      func() time.Time
}

func NewExamService(
	db *gorm.DB,
	examRepo repository.ExamRepository,
	userRepo repository.CheckoutUserRepository,
	logger logging.Logger,
) ExamService {
	return &examServiceImpl{
		db:       db,
		examRepo: examRepo,
		userRepo: userRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// Schedule records an exam booking. A non-empty address also becomes the
// buyer's region when the buyer exists.
func (s *examServiceImpl) Schedule(ctx context.Context, userID string, req *dto.ExamRequest) (*model.Exam, error) {
	exam := &model.Exam{
		Name:      strings.TrimSpace(req.Name),
		Date:      s.now(),
		Address:   strings.TrimSpace(req.Address),
		UserID:    userID,
		ProductID: req.ProductID,
	}
	if req.Date != nil {
		exam.Date = *req.Date
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.examRepo.Create(ctx, tx, exam); err != nil {
			return fmt.Errorf("create exam: %w", err)
		}
		if exam.Address == "" {
			return nil
		}

		updated, err := s.userRepo.UpdateRegion(ctx, tx, userID, exam.Address)
		if err != nil {
			return fmt.Errorf("update region: %w", err)
		}
		if !updated {
			s.logger.Warn(ctx, "exam booked for unknown checkout user", "user_id", userID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return exam, nil
}

func (s *examServiceImpl) List(ctx context.Context) ([]*model.Exam, error) {
	exams, err := s.examRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list exams: %w", err)
	}
	return exams, nil
}

func (s *examServiceImpl) Get(ctx context.Context, id string) (*model.Exam, error) {
	exam, err := s.examRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("exam %s: %w", id, err)
	}
	return exam, nil
}
