package models

import "time"

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderPending  OrderStatus = "pending"
	OrderPaid     OrderStatus = "paid"
	OrderCanceled OrderStatus = "canceled"
)

// Order is a placed purchase built from a cart
type Order struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	UserID     uint        `json:"user_id" gorm:"not null;index"`
	TotalPrice float64     `json:"total_price" gorm:"not null"`
	Status     OrderStatus `json:"status" gorm:"not null;default:'pending'"`
	Items      []OrderItem `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	Payment    *Payment    `json:"payment,omitempty"`
	CreatedAt  time.Time   `json:"created_at" gorm:"index"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem freezes the unit price at the time the order was placed
type OrderItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	OrderID   uint    `json:"-" gorm:"not null;index"`
	ProductID uint    `json:"product_id" gorm:"not null"`
	Product   Product `json:"product"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	Price     float64 `json:"price" gorm:"not null"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// PaymentStatus mirrors the provider-side intent state
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentFailed    PaymentStatus = "failed"
	PaymentCanceled  PaymentStatus = "canceled"
)

// Payment records a payment intent created for an order
type Payment struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	OrderID     uint          `json:"order_id" gorm:"uniqueIndex;not null"`
	Amount      float64       `json:"amount" gorm:"not null"`
	Currency    string        `json:"currency" gorm:"not null;default:'usd'"`
	Status      PaymentStatus `json:"status" gorm:"not null;default:'pending'"`
	ProviderRef string        `json:"provider_ref" gorm:"column:provider_ref;index"`
	CreatedAt   time.Time     `json:"created_at"`
}

func (Payment) TableName() string {
	return "payments"
}
