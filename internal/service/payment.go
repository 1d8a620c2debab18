package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"lab-portal/internal/client"
	"lab-portal/internal/common"
	"lab-portal/internal/dto"
	"lab-portal/internal/logging"
	"lab-portal/internal/model"
	"lab-portal/internal/repository"
)

const (
	currencyINR   = "INR"
	paymentMethod = "upi"
)

type PaymentService interface {
	CreateOrder(ctx context.Context, req *dto.CreatePaymentOrderRequest) (*client.RazorpayOrder, error)
	VerifyPayment(ctx context.Context, req *dto.VerifyPaymentRequest) (*model.Order, error)
	PaidOrders(ctx context.Context) ([]*model.Order, error)
	KeyID() string
}

type paymentServiceImpl struct {
	db             *gorm.DB
	razorpayClient client.RazorpayClient
	orderRepo      repository.OrderRepository
	userRepo       repository.CheckoutUserRepository
	logger         logging.Logger
}

func NewPaymentService(
	db *gorm.DB,
	razorpayClient client.RazorpayClient,
	orderRepo repository.OrderRepository,
	userRepo repository.CheckoutUserRepository,
	logger logging.Logger,
) PaymentService {
	return &paymentServiceImpl{
		db:             db,
		razorpayClient: razorpayClient,
		orderRepo:      orderRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

func (s *paymentServiceImpl) KeyID() string {
	return s.razorpayClient.KeyID()
}

func (s *paymentServiceImpl) CreateOrder(ctx context.Context, req *dto.CreatePaymentOrderRequest) (*client.RazorpayOrder, error) {
	items := make([]model.OrderItem, 0, len(req.OrderItems))
	for _, it := range req.OrderItems {
		amount, _ := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))).Float64()
		item := model.OrderItem{
			ID:       uuid.NewString(),
			Product:  it.ID,
			Title:    it.Title,
			Quantity: it.Quantity,
			Amount:   amount,
			ImageURL: it.ImageURL,
			AccessID: it.AccessID,
		}
		if it.AccessDays > 0 {
			item.AccessPeriod = fmt.Sprintf("%d days", it.AccessDays)
		}
		items = append(items, item)
	}

	total := orderTotal(items)
	if req.Total > 0 {
		total = req.Total
	}

	paise := toPaise(total)
	if paise <= 0 {
		return nil, common.NewValidationError("Order total must be greater than zero")
	}

	receipt, err := client.NewReceipt()
	if err != nil {
		return nil, fmt.Errorf("generate receipt: %w", err)
	}

	rzpOrder, err := s.razorpayClient.CreateOrder(ctx, &client.RazorpayOrderRequest{
		Amount:   paise,
		Currency: currencyINR,
		Receipt:  receipt,
		Notes: map[string]string{
			"fullName": req.FullName,
			"email":    req.Email,
		},
	})
	if err != nil {
		s.logger.Error(ctx, "razorpay create order failed", "error", err)
		return nil, fmt.Errorf("razorpay api create order: %w", errors.Join(common.ErrDownstream, err))
	}

	order := &model.Order{
		FullName:    req.FullName,
		Email:       normalizeEmail(req.Email),
		Items:       items,
		TotalAmount: total,
		Status:      model.OrderPending,
		Razorpay:    model.Razorpay{OrderID: rzpOrder.ID},
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		_, err := linkCheckoutUser(ctx, tx, s.userRepo, req.FullName, req.Email, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "payment order created",
		"order_id", order.ID,
		"razorpay_order_id", rzpOrder.ID,
		"amount", paise,
	)
	return rzpOrder, nil
}

func (s *paymentServiceImpl) VerifyPayment(ctx context.Context, req *dto.VerifyPaymentRequest) (*model.Order, error) {
	if !s.razorpayClient.VerifyPaymentSignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		s.logger.Warn(ctx, "payment signature rejected", "razorpay_order_id", req.RazorpayOrderID)
		return nil, common.ErrInvalidSignature
	}

	order, err := s.orderRepo.MarkPaid(ctx,
		model.Razorpay{
			OrderID:   req.RazorpayOrderID,
			PaymentID: req.RazorpayPaymentID,
			Signature: req.RazorpaySignature,
		},
		model.PaymentDetails{
			PaymentID: req.RazorpayPaymentID,
			Currency:  currencyINR,
			Method:    paymentMethod,
			Status:    model.PaymentStatusPaid,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("order for razorpay order %s: %w", req.RazorpayOrderID, err)
	}

	s.logger.Info(ctx, "payment verified", "order_id", order.ID, "razorpay_order_id", req.RazorpayOrderID)
	return order, nil
}

func (s *paymentServiceImpl) PaidOrders(ctx context.Context) ([]*model.Order, error) {
	orders, err := s.orderRepo.FindPaid(ctx)
	if err != nil {
		return nil, fmt.Errorf("list paid orders: %w", err)
	}
	return orders, nil
}

// toPaise converts a rupee amount to paise, rounding to the nearest paisa.
func toPaise(rupees float64) int64 {
	return decimal.NewFromFloat(rupees).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
