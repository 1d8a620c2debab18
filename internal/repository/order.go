package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"lab-portal/internal/common"
	"lab-portal/internal/model"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindByIDs(ctx context.Context, ids []string) ([]*model.Order, error)
	FindByRazorpayOrderID(ctx context.Context, razorpayOrderID string) (*model.Order, error)
	FindPaid(ctx context.Context) ([]*model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
	ReplaceItems(ctx context.Context, order *model.Order) error
	MarkPaid(ctx context.Context, razorpay model.Razorpay, details model.PaymentDetails) (*model.Order, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	if tx == nil {
		tx = r.db
	}
	if order.Version == 0 {
		order.Version = 1
	}
	if order.Status == "" {
		order.Status = model.OrderPending
	}
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&order).Error

	if err != nil {
		return nil, translate(err)
	}

	return &order, nil
}

func (r *orderRepoImpl) FindByIDs(ctx context.Context, ids []string) ([]*model.Order, error) {
	var orders []*model.Order
	if len(ids) == 0 {
		return orders, nil
	}

	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("created_at ASC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) FindByRazorpayOrderID(ctx context.Context, razorpayOrderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("razorpay_order_id = ?", razorpayOrderID).
		First(&order).Error

	if err != nil {
		return nil, translate(err)
	}

	return &order, nil
}

func (r *orderRepoImpl) FindPaid(ctx context.Context) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Where("payment_status = ?", model.PaymentStatusPaid).
		Order("created_at DESC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Order{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"status":     status,
				"version":    gorm.Expr("version + 1"),
				"updated_at": time.Now(),
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Where("id = ?", id).First(&order).Error
	})

	if err != nil {
		return nil, translate(err)
	}

	return &order, nil
}

// ReplaceItems persists order.Items and order.TotalAmount if nobody else
// has written the order since it was read.
func (r *orderRepoImpl) ReplaceItems(ctx context.Context, order *model.Order) error {
	next := model.Order{
		Document:    model.Document{UpdatedAt: time.Now()},
		Items:       order.Items,
		TotalAmount: order.TotalAmount,
		Version:     order.Version + 1,
	}
	result := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ? AND version = ?", order.ID, order.Version).
		Select("items", "total_amount", "version", "updated_at").
		Updates(&next)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrVersionConflict
	}

	order.Version = next.Version
	order.UpdatedAt = next.UpdatedAt
	return nil
}

func (r *orderRepoImpl) MarkPaid(ctx context.Context, razorpay model.Razorpay, details model.PaymentDetails) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Order{}).
			Where("razorpay_order_id = ?", razorpay.OrderID).
			Updates(map[string]interface{}{
				"razorpay_payment_id": razorpay.PaymentID,
				"razorpay_signature":  razorpay.Signature,
				"payment_payment_id":  details.PaymentID,
				"payment_currency":    details.Currency,
				"payment_method":      details.Method,
				"payment_status":      details.Status,
				"status":              model.OrderSuccess,
				"version":             gorm.Expr("version + 1"),
				"updated_at":          time.Now(),
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Where("razorpay_order_id = ?", razorpay.OrderID).First(&order).Error
	})

	if err != nil {
		return nil, translate(err)
	}

	return &order, nil
}
