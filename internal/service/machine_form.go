package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"lab-portal/internal/dto"
	"lab-portal/internal/logging"
	"lab-portal/internal/model"
	"lab-portal/internal/repository"
)

type MachineFormService interface {
	List(ctx context.Context) ([]model.MachineForm, error)
	ListByProduct(ctx context.Context, product string) (*dto.MachineFormsByProduct, error)
	Create(ctx context.Context, form *model.MachineForm) error
	Delete(ctx context.Context, id string) error
	DeleteByProduct(ctx context.Context, product string) (int64, error)
	AddAnswer(ctx context.Context, id string, req *dto.MachineAnswerRequest) (*model.MachineForm, error)
}

type machineFormServiceImpl struct {
	formRepo    repository.MachineFormRepository
	productRepo repository.ProductRepository
	logger      logging.Logger
	now         func() time.Time
}

func NewMachineFormService(
	formRepo repository.MachineFormRepository,
	productRepo repository.ProductRepository,
	logger logging.Logger,
) MachineFormService {
	return &machineFormServiceImpl{
		formRepo:    formRepo,
		productRepo: productRepo,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *machineFormServiceImpl) List(ctx context.Context) ([]model.MachineForm, error) {
	forms, err := s.formRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list machine forms: %w", err)
	}

	ids := make([]string, 0, len(forms))
	for i := range forms {
		ids = append(ids, forms[i].Product)
	}
	titles, err := productTitles(ctx, s.productRepo, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve product titles: %w", err)
	}
	for i := range forms {
		forms[i].ProductTitle = titles[forms[i].Product]
	}

	return forms, nil
}

func (s *machineFormServiceImpl) ListByProduct(ctx context.Context, product string) (*dto.MachineFormsByProduct, error) {
	forms, err := s.formRepo.FindByProduct(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("list machine forms for product %s: %w", product, err)
	}

	titles, err := s.productRepo.TitlesByID(ctx, []string{product})
	if err != nil {
		return nil, fmt.Errorf("resolve product title: %w", err)
	}
	title := titles[product]

	grouped := make(map[string][]model.MachineForm)
	for i := range forms {
		forms[i].ProductTitle = title
		sortAnswersNewestFirst(forms[i].Answers)
		grouped[forms[i].Machine] = append(grouped[forms[i].Machine], forms[i])
	}

	return &dto.MachineFormsByProduct{
		ProductTitle: title,
		Forms:        forms,
		GroupedData:  grouped,
	}, nil
}

func (s *machineFormServiceImpl) Create(ctx context.Context, form *model.MachineForm) error {
	form.ID = ""
	if err := s.formRepo.Create(ctx, form); err != nil {
		return fmt.Errorf("create machine form: %w", err)
	}
	return nil
}

func (s *machineFormServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.formRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("machine form %s: %w", id, err)
	}
	return nil
}

func (s *machineFormServiceImpl) DeleteByProduct(ctx context.Context, product string) (int64, error) {
	n, err := s.formRepo.DeleteByProduct(ctx, product)
	if err != nil {
		return 0, fmt.Errorf("delete machine forms for product %s: %w", product, err)
	}
	return n, nil
}

func (s *machineFormServiceImpl) AddAnswer(ctx context.Context, id string, req *dto.MachineAnswerRequest) (*model.MachineForm, error) {
	var form *model.MachineForm
	err := retryOnConflict(func() error {
		var err error
		form, err = s.formRepo.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("machine form %s: %w", id, err)
		}

		form.Answers = append(form.Answers, model.MachineAnswer{
			UserID:      req.UserID,
			Answer:      req.Answer,
			SubmittedAt: s.now(),
		})
		return s.formRepo.ReplaceAnswers(ctx, form)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "machine form answered", "form_id", id, "user_id", req.UserID)
	return form, nil
}

func sortAnswersNewestFirst(answers []model.MachineAnswer) {
	sort.SliceStable(answers, func(i, j int) bool {
		return answers[i].SubmittedAt.After(answers[j].SubmittedAt)
	})
}
