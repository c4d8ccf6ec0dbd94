package models

import "time"

// Category groups products
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}

// Product is a sellable item. Stock lives in its Inventory row.
type Product struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"uniqueIndex;not null"`
	Description string     `json:"description"`
	Price       float64    `json:"price" gorm:"not null"`
	CategoryID  uint       `json:"category_id" gorm:"not null;index"`
	Category    *Category  `json:"category,omitempty" gorm:"constraint:OnDelete:RESTRICT"`
	Inventory   *Inventory `json:"inventory,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// Inventory tracks stock for exactly one product
type Inventory struct {
	ID            uint      `json:"inventory_id" gorm:"primaryKey"`
	ProductID     uint      `json:"product_id" gorm:"uniqueIndex;not null"`
	StockQuantity int       `json:"stock_quantity" gorm:"not null;default:0"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Inventory) TableName() string {
	return "inventory"
}
