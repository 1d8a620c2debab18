package model

import "time"

// CheckoutUser is a buyer. It is created at first checkout and is the
// identity used by the email sign-in.
type CheckoutUser struct {
	Document
	Name   string   `json:"name" gorm:"size:255;not null"`
	Email  string   `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Orders []string `json:"order" gorm:"type:longtext;serializer:json"`
	Region string   `json:"region,omitempty" gorm:"size:255"`

	AuthToken          string     `json:"-" gorm:"size:128;index"`
	AuthTokenExpiresAt *time.Time `json:"-"`

	Version int `json:"-" gorm:"not null;default:1"`
}

// HasOrder reports whether orderID is already linked to the user.
func (u *CheckoutUser) HasOrder(orderID string) bool {
	for _, id := range u.Orders {
		if id == orderID {
			return true
		}
	}
	return false
}
