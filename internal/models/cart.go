package models

// Cart is the single open basket of a user
type Cart struct {
	ID     uint       `json:"cart_id" gorm:"primaryKey"`
	UserID uint       `json:"user_id" gorm:"uniqueIndex;not null"`
	Items  []CartItem `json:"items" gorm:"constraint:OnDelete:CASCADE"`
}

func (Cart) TableName() string {
	return "carts"
}

// CartItem is one product line in a cart
type CartItem struct {
	ID        uint    `json:"item_id" gorm:"primaryKey"`
	CartID    uint    `json:"-" gorm:"not null;index"`
	ProductID uint    `json:"product_id" gorm:"not null;index"`
	Product   Product `json:"product"`
	Quantity  int     `json:"quantity" gorm:"not null;default:1"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// Total sums price * quantity over all lines. Products must be preloaded.
func (c Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}
