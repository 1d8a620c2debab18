package dto

import "time"

type PurchasedItem struct {
	Product      string    `json:"product"`
	Title        string    `json:"title,omitempty"`
	Quantity     int       `json:"quantity"`
	AccessPeriod string    `json:"accessPeriod,omitempty"`
	PurchaseDate time.Time `json:"purchaseDate"`
}

type UserOrders struct {
	UserID              string           `json:"userId"`
	UserName            string           `json:"userName"`
	UserEmail           string           `json:"userEmail"`
	PurchasedItemsCount int              `json:"purchasedItemsCount"`
	PurchasedItems      []*PurchasedItem `json:"purchasedItems"`
}

type UserPurchases struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Email               string           `json:"email"`
	PurchasedItemsCount int              `json:"purchasedItemsCount"`
	PurchasedItems      []*PurchasedItem `json:"purchasedItems"`
	TotalAmount         float64          `json:"totalAmount"`
	Region              string           `json:"region,omitempty"`
}
