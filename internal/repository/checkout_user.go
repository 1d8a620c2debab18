package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"lab-portal/internal/common"
	"lab-portal/internal/model"
)

type CheckoutUserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *model.CheckoutUser) error
	FindByID(ctx context.Context, id string) (*model.CheckoutUser, error)
	FindByEmail(ctx context.Context, tx *gorm.DB, email string) (*model.CheckoutUser, error)
	FindByEmailAndName(ctx context.Context, email, name string) (*model.CheckoutUser, error)
	FindWithOrders(ctx context.Context) ([]*model.CheckoutUser, error)
	AppendOrder(ctx context.Context, tx *gorm.DB, user *model.CheckoutUser, orderID string) error
	UpdateProfile(ctx context.Context, id string, name, email *string) (*model.CheckoutUser, error)
	UpdateRegion(ctx context.Context, tx *gorm.DB, id, region string) (bool, error)
	SetAuthToken(ctx context.Context, id, token string, expiresAt time.Time) error
	ConsumeAuthToken(ctx context.Context, id, token string) (bool, error)
}

type checkoutUserRepoImpl struct {
	db *gorm.DB
}

func NewCheckoutUserRepository(db *gorm.DB) CheckoutUserRepository {
	return &checkoutUserRepoImpl{
		db: db,
	}
}

func (r *checkoutUserRepoImpl) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *checkoutUserRepoImpl) Create(ctx context.Context, tx *gorm.DB, user *model.CheckoutUser) error {
	if user.Orders == nil {
		user.Orders = []string{}
	}
	if user.Version == 0 {
		user.Version = 1
	}
	return translate(r.conn(tx).WithContext(ctx).Create(user).Error)
}

func (r *checkoutUserRepoImpl) FindByID(ctx context.Context, id string) (*model.CheckoutUser, error) {
	var user model.CheckoutUser
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error

	if err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

func (r *checkoutUserRepoImpl) FindByEmail(ctx context.Context, tx *gorm.DB, email string) (*model.CheckoutUser, error) {
	var user model.CheckoutUser
	err := r.conn(tx).WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error

	if err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

func (r *checkoutUserRepoImpl) FindByEmailAndName(ctx context.Context, email, name string) (*model.CheckoutUser, error) {
	var user model.CheckoutUser
	err := r.db.WithContext(ctx).
		Where("email = ? AND LOWER(name) = LOWER(?)", email, name).
		First(&user).Error

	if err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

func (r *checkoutUserRepoImpl) FindWithOrders(ctx context.Context) ([]*model.CheckoutUser, error) {
	var users []*model.CheckoutUser
	err := r.db.WithContext(ctx).
		Where("orders IS NOT NULL AND orders <> ? AND orders <> ?", "[]", "null").
		Find(&users).Error

	if err != nil {
		return nil, err
	}

	return users, nil
}

func (r *checkoutUserRepoImpl) AppendOrder(ctx context.Context, tx *gorm.DB, user *model.CheckoutUser, orderID string) error {
	if user.HasOrder(orderID) {
		return nil
	}

	next := model.CheckoutUser{
		Document: model.Document{UpdatedAt: time.Now()},
		Orders:   append(append([]string{}, user.Orders...), orderID),
		Version:  user.Version + 1,
	}
	result := r.conn(tx).WithContext(ctx).
		Model(&model.CheckoutUser{}).
		Where("id = ? AND version = ?", user.ID, user.Version).
		Select("orders", "version", "updated_at").
		Updates(&next)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrVersionConflict
	}

	user.Orders = next.Orders
	user.Version = next.Version
	user.UpdatedAt = next.UpdatedAt
	return nil
}

func (r *checkoutUserRepoImpl) UpdateProfile(ctx context.Context, id string, name, email *string) (*model.CheckoutUser, error) {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
		"version":    gorm.Expr("version + 1"),
	}
	if name != nil {
		updates["name"] = *name
	}
	if email != nil {
		updates["email"] = *email
	}

	var user model.CheckoutUser
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.CheckoutUser{}).
			Where("id = ?", id).
			Updates(updates)

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Where("id = ?", id).First(&user).Error
	})

	if err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

func (r *checkoutUserRepoImpl) UpdateRegion(ctx context.Context, tx *gorm.DB, id, region string) (bool, error) {
	result := r.conn(tx).WithContext(ctx).
		Model(&model.CheckoutUser{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"region":     region,
			"updated_at": time.Now(),
		})

	return result.RowsAffected > 0, result.Error
}

func (r *checkoutUserRepoImpl) SetAuthToken(ctx context.Context, id, token string, expiresAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.CheckoutUser{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"auth_token":            token,
			"auth_token_expires_at": expiresAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound
	}

	return nil
}

// ConsumeAuthToken clears the token only if it still equals token, so a link
// can be redeemed once even under concurrent requests.
func (r *checkoutUserRepoImpl) ConsumeAuthToken(ctx context.Context, id, token string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.CheckoutUser{}).
		Where("id = ? AND auth_token = ?", id, token).
		Updates(map[string]interface{}{
			"auth_token":            "",
			"auth_token_expires_at": nil,
		})

	return result.RowsAffected == 1, result.Error
}
