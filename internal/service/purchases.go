package service

import (
	"context"
	"fmt"
	"sort"

	"lab-portal/internal/dto"
	"lab-portal/internal/model"
	"lab-portal/internal/repository"
)

type PurchaseService interface {
	UserOrders(ctx context.Context, userID string) (*dto.UserOrders, error)
	UserPurchases(ctx context.Context, userID string) (*dto.UserPurchases, error)
	UsersWithPurchases(ctx context.Context) ([]*dto.UserPurchases, error)
}

type purchaseServiceImpl struct {
	userRepo  repository.CheckoutUserRepository
	orderRepo repository.OrderRepository
}

func NewPurchaseService(userRepo repository.CheckoutUserRepository, orderRepo repository.OrderRepository) PurchaseService {
	return &purchaseServiceImpl{
		userRepo:  userRepo,
		orderRepo: orderRepo,
	}
}

func (s *purchaseServiceImpl) UserOrders(ctx context.Context, userID string) (*dto.UserOrders, error) {
	purchases, err := s.UserPurchases(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.UserOrders{
		UserID:              purchases.ID,
		UserName:            purchases.Name,
		UserEmail:           purchases.Email,
		PurchasedItemsCount: purchases.PurchasedItemsCount,
		PurchasedItems:      purchases.PurchasedItems,
	}, nil
}

func (s *purchaseServiceImpl) UserPurchases(ctx context.Context, userID string) (*dto.UserPurchases, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("checkout user %s: %w", userID, err)
	}

	orders, err := s.orderRepo.FindByIDs(ctx, user.Orders)
	if err != nil {
		return nil, fmt.Errorf("load orders of user %s: %w", userID, err)
	}

	return summarize(user, orders), nil
}

func (s *purchaseServiceImpl) UsersWithPurchases(ctx context.Context) ([]*dto.UserPurchases, error) {
	users, err := s.userRepo.FindWithOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list checkout users: %w", err)
	}

	var ids []string
	for _, u := range users {
		ids = append(ids, u.Orders...)
	}
	orders, err := s.orderRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	byID := make(map[string]*model.Order, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
	}

	result := make([]*dto.UserPurchases, 0, len(users))
	for _, u := range users {
		owned := make([]*model.Order, 0, len(u.Orders))
		for _, id := range u.Orders {
			if o, ok := byID[id]; ok {
				owned = append(owned, o)
			}
		}

		summary := summarize(u, owned)
		if summary.PurchasedItemsCount == 0 {
			continue
		}
		summary.Region = ""
		result = append(result, summary)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].PurchasedItemsCount > result[j].PurchasedItemsCount
	})
	return result, nil
}

func summarize(user *model.CheckoutUser, orders []*model.Order) *dto.UserPurchases {
	items, total := CollectPurchases(orders)
	return &dto.UserPurchases{
		ID:                  user.ID,
		Name:                user.Name,
		Email:               user.Email,
		PurchasedItemsCount: len(items),
		PurchasedItems:      items,
		TotalAmount:         total,
		Region:              user.Region,
	}
}

// CollectPurchases flattens the items of successful orders, stamping each
// with its order's creation time, and sums those orders' totals.
func CollectPurchases(orders []*model.Order) ([]*dto.PurchasedItem, float64) {
	items := make([]*dto.PurchasedItem, 0)
	totals := make([]float64, 0, len(orders))

	for _, o := range orders {
		if o.Status != model.OrderSuccess {
			continue
		}
		totals = append(totals, o.TotalAmount)
		for _, item := range o.Items {
			items = append(items, &dto.PurchasedItem{
				Product:      item.Product,
				Title:        item.Title,
				Quantity:     item.Quantity,
				AccessPeriod: item.AccessPeriod,
				PurchaseDate: o.CreatedAt,
			})
		}
	}

	return items, sumAmounts(totals...)
}
