package model

type OrderStatus string

const (
	OrderPending OrderStatus = "pending"
	OrderSuccess OrderStatus = "success"
	OrderFailed  OrderStatus = "failed"
)

const PaymentStatusPaid = "paid"

type Order struct {
	Document
	FullName       string         `json:"fullName,omitempty" gorm:"size:255"`
	Email          string         `json:"email,omitempty" gorm:"size:255;index"`
	Items          []OrderItem    `json:"items" gorm:"type:longtext;serializer:json"`
	TotalAmount    float64        `json:"totalAmount" gorm:"not null"`
	Status         OrderStatus    `json:"status" gorm:"size:16;index;not null;default:pending"`
	Razorpay       Razorpay       `json:"razorpay" gorm:"embedded;embeddedPrefix:razorpay_"`
	PaymentDetails PaymentDetails `json:"paymentDetails" gorm:"embedded;embeddedPrefix:payment_"`
	Version        int            `json:"-" gorm:"not null;default:1"`
}

type OrderItem struct {
	ID           string  `json:"id"`
	Product      string  `json:"product"`
	Title        string  `json:"title,omitempty"`
	Quantity     int     `json:"quantity"`
	Amount       float64 `json:"amount"`
	AccessPeriod string  `json:"accessPeriod,omitempty"`
	ImageURL     string  `json:"imageUrl,omitempty"`
	AccessID     string  `json:"accessId,omitempty"`
}

type Razorpay struct {
	OrderID   string `json:"orderId,omitempty" gorm:"size:64;index"`
	PaymentID string `json:"paymentId,omitempty" gorm:"size:64"`
	Signature string `json:"signature,omitempty" gorm:"size:128"`
}

type PaymentDetails struct {
	PaymentID string `json:"payment_id,omitempty" gorm:"size:64"`
	Currency  string `json:"currency,omitempty" gorm:"size:8"`
	Method    string `json:"method,omitempty" gorm:"size:32"`
	Status    string `json:"status,omitempty" gorm:"size:16;index"`
}
