package dto

type PaymentItemRequest struct {
	ID         string  `json:"id" validate:"required"`
	Title      string  `json:"title"`
	Price      float64 `json:"price" validate:"gt=0"`
	Quantity   int     `json:"quantity" validate:"gt=0"`
	AccessDays int     `json:"accessDays" validate:"gte=0"`
	ImageURL   string  `json:"imageUrl"`
	AccessID   string  `json:"accessId"`
}

type CreatePaymentOrderRequest struct {
	FullName   string                `json:"fullName" validate:"required"`
	Email      string                `json:"email" validate:"required,email"`
	OrderItems []*PaymentItemRequest `json:"orderItems" validate:"required,min=1,dive,required"`
	Total      float64               `json:"total" validate:"gte=0"`
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

type CheckoutItemRequest struct {
	Product      string  `json:"product" validate:"required"`
	Title        string  `json:"title"`
	Quantity     int     `json:"quantity" validate:"gt=0"`
	Amount       float64 `json:"amount" validate:"gt=0"`
	AccessPeriod string  `json:"accessPeriod"`
}

type CheckoutRequest struct {
	Items       []*CheckoutItemRequest `json:"items" validate:"required,min=1,dive,required"`
	TotalAmount float64                `json:"totalAmount" validate:"gte=0"`
}

type OrderStatusRequest struct {
	IsSuccess *bool `json:"isSuccess" validate:"required"`
}

type CheckoutUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Order string `json:"order"`
}

type UpdateCheckoutUserRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1"`
	Email *string `json:"email" validate:"omitempty,email"`
}
