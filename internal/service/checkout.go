package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lab-portal/internal/common"
	"lab-portal/internal/dto"
	"lab-portal/internal/logging"
	"lab-portal/internal/model"
	"lab-portal/internal/repository"
)

type CheckoutService interface {
	CreateOrder(ctx context.Context, req *dto.CheckoutRequest) (*model.Order, error)
	UpdateStatus(ctx context.Context, orderID string, success bool) (*model.Order, error)
	AddItem(ctx context.Context, orderID string, item *dto.CheckoutItemRequest) (*model.Order, error)
	RemoveItem(ctx context.Context, orderID, itemID string) (*model.Order, error)
	SaveCheckoutUser(ctx context.Context, req *dto.CheckoutUserRequest) (*model.CheckoutUser, error)
	UpdateCheckoutUser(ctx context.Context, userID string, req *dto.UpdateCheckoutUserRequest) (*model.CheckoutUser, error)
}

type checkoutServiceImpl struct {
	db        *gorm.DB
	orderRepo repository.OrderRepository
	userRepo  repository.CheckoutUserRepository
	logger    logging.Logger
}

func NewCheckoutService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	userRepo repository.CheckoutUserRepository,
	logger logging.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		db:        db,
		orderRepo: orderRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

func (s *checkoutServiceImpl) CreateOrder(ctx context.Context, req *dto.CheckoutRequest) (*model.Order, error) {
	items := make([]model.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, newOrderItem(item))
	}

	order := &model.Order{
		Items:       items,
		TotalAmount: orderTotal(items),
		Status:      model.OrderPending,
	}
	if req.TotalAmount > 0 {
		order.TotalAmount = req.TotalAmount
	}

	if err := s.orderRepo.Create(ctx, nil, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.logger.Info(ctx, "order created", "order_id", order.ID, "items", len(items), "total", order.TotalAmount)
	return order, nil
}

func (s *checkoutServiceImpl) UpdateStatus(ctx context.Context, orderID string, success bool) (*model.Order, error) {
	status := model.OrderFailed
	if success {
		status = model.OrderSuccess
	}

	order, err := s.orderRepo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", orderID, err)
	}

	s.logger.Info(ctx, "order status updated", "order_id", orderID, "status", status)
	return order, nil
}

func (s *checkoutServiceImpl) AddItem(ctx context.Context, orderID string, item *dto.CheckoutItemRequest) (*model.Order, error) {
	var order *model.Order
	err := retryOnConflict(func() error {
		var err error
		order, err = s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("order %s: %w", orderID, err)
		}

		order.Items = append(order.Items, newOrderItem(item))
		order.TotalAmount = orderTotal(order.Items)
		return s.orderRepo.ReplaceItems(ctx, order)
	})
	if err != nil {
		return nil, fmt.Errorf("add item to order %s: %w", orderID, err)
	}
	return order, nil
}

func (s *checkoutServiceImpl) RemoveItem(ctx context.Context, orderID, itemID string) (*model.Order, error) {
	var order *model.Order
	err := retryOnConflict(func() error {
		var err error
		order, err = s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("order %s: %w", orderID, err)
		}

		idx := -1
		for i, item := range order.Items {
			if item.ID == itemID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("item %s in order %s: %w", itemID, orderID, common.ErrNotFound)
		}
		if len(order.Items) == 1 {
			return common.NewValidationError("Cannot remove the last item from an order")
		}

		order.Items = append(order.Items[:idx:idx], order.Items[idx+1:]...)
		order.TotalAmount = orderTotal(order.Items)
		return s.orderRepo.ReplaceItems(ctx, order)
	})
	if err != nil {
		return nil, fmt.Errorf("remove item from order %s: %w", orderID, err)
	}
	return order, nil
}

func (s *checkoutServiceImpl) SaveCheckoutUser(ctx context.Context, req *dto.CheckoutUserRequest) (*model.CheckoutUser, error) {
	var user *model.CheckoutUser
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		user, err = linkCheckoutUser(ctx, tx, s.userRepo, req.Name, req.Email, req.Order)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("save checkout user: %w", err)
	}
	return user, nil
}

func (s *checkoutServiceImpl) UpdateCheckoutUser(ctx context.Context, userID string, req *dto.UpdateCheckoutUserRequest) (*model.CheckoutUser, error) {
	if req.Name == nil && req.Email == nil {
		return nil, common.NewValidationError("At least one field (name or email) is required")
	}

	var name, email *string
	var blank []common.FieldError
	if req.Name != nil {
		n := strings.TrimSpace(*req.Name)
		if n == "" {
			blank = append(blank, common.FieldError{Field: "name", Error: "name cannot be blank"})
		}
		name = &n
	}
	if req.Email != nil {
		e := normalizeEmail(*req.Email)
		if e == "" {
			blank = append(blank, common.FieldError{Field: "email", Error: "email cannot be blank"})
		}
		email = &e
	}
	if len(blank) > 0 {
		return nil, common.NewValidationError("", blank...)
	}

	user, err := s.userRepo.UpdateProfile(ctx, userID, name, email)
	if err != nil {
		return nil, fmt.Errorf("checkout user %s: %w", userID, err)
	}
	return user, nil
}

// linkCheckoutUser finds the buyer by email, creating it on first checkout,
// and links orderID to it when given.
func linkCheckoutUser(ctx context.Context, tx *gorm.DB, repo repository.CheckoutUserRepository, name, email, orderID string) (*model.CheckoutUser, error) {
	email = normalizeEmail(email)

	user, err := repo.FindByEmail(ctx, tx, email)
	if errors.Is(err, common.ErrNotFound) {
		user = &model.CheckoutUser{
			Name:   strings.TrimSpace(name),
			Email:  email,
			Orders: []string{},
		}
		if orderID != "" {
			user.Orders = append(user.Orders, orderID)
		}
		if err := repo.Create(ctx, tx, user); err != nil {
			return nil, fmt.Errorf("create checkout user: %w", err)
		}
		return user, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find checkout user: %w", err)
	}

	if orderID == "" {
		return user, nil
	}

	err = retryOnConflict(func() error {
		if err := repo.AppendOrder(ctx, tx, user, orderID); !errors.Is(err, common.ErrVersionConflict) {
			return err
		}
		fresh, err := repo.FindByEmail(ctx, tx, email)
		if err != nil {
			return err
		}
		user = fresh
		return common.ErrVersionConflict
	})
	if err != nil {
		return nil, fmt.Errorf("link order %s: %w", orderID, err)
	}
	return user, nil
}

func newOrderItem(req *dto.CheckoutItemRequest) model.OrderItem {
	return model.OrderItem{
		ID:           uuid.NewString(),
		Product:      req.Product,
		Title:        req.Title,
		Quantity:     req.Quantity,
		Amount:       req.Amount,
		AccessPeriod: req.AccessPeriod,
	}
}

func orderTotal(items []model.OrderItem) float64 {
	amounts := make([]float64, 0, len(items))
	for _, item := range items {
		amounts = append(amounts, item.Amount)
	}
	return sumAmounts(amounts...)
}
