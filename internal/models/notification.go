package models

import "time"

// Notification is the durable read/unread record paired with a realtime push
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Message   string    `json:"message" gorm:"not null"`
	IsRead    bool      `json:"is_read" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (Notification) TableName() string {
	return "notifications"
}

// All returns every model in migration order.
func All() []any {
	return []any{
		&User{},
		&Category{},
		&Product{},
		&Inventory{},
		&Cart{},
		&CartItem{},
		&Order{},
		&OrderItem{},
		&Payment{},
		&Notification{},
	}
}
