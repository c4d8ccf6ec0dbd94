package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ecommerce-api/internal/models"
)

var errEmptyCart = errors.New("cart is empty")

// insufficientStockError names the product whose inventory could not cover
// the requested quantity.
type insufficientStockError struct {
	product string
}

func (e *insufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.product)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func loadOrder(db *gorm.DB, userID, orderID uint) (*models.Order, error) {
	var order models.Order
	err := db.Preload("Items.Product").Preload("Payment").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// PlaceOrder handles POST /orders
// Stock is decremented, the order written and the cart emptied in a single
// transaction; any shortfall rolls the whole order back.
func (h *Handler) PlaceOrder(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var order models.Order
	err := h.db.Transaction(func(tx *gorm.DB) error {
		cart, err := loadCart(tx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errEmptyCart
		}
		if err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return errEmptyCart
		}

		for _, item := range cart.Items {
			res := tx.Model(&models.Inventory{}).
				Where("product_id = ? AND stock_quantity >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return &insufficientStockError{product: item.Product.Name}
			}
		}

		order = models.Order{
			UserID:     userID,
			TotalPrice: roundCents(cart.Total()),
			Status:     models.OrderPending,
		}
		if err := tx.Omit(clause.Associations).Create(&order).Error; err != nil {
			return err
		}

		for _, item := range cart.Items {
			line := models.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Product.Price,
			}
			if err := tx.Omit("Product").Create(&line).Error; err != nil {
				return err
			}
		}

		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})

	var stockErr *insufficientStockError
	switch {
	case errors.Is(err, errEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{"error": "Insufficient stock for " + stockErr.product})
		return
	case err != nil:
		h.internalError(c, "Failed to place order", err)
		return
	}

	// Stock levels shown in the catalog changed.
	h.invalidateCatalog()

	msg := fmt.Sprintf("Order #%d placed", order.ID)
	h.notify(userID, msg, msg, false)

	placed, err := loadOrder(h.db, userID, order.ID)
	if err != nil {
		h.internalError(c, "Failed to fetch order", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   placed,
	})
}

// ListOrders handles GET /orders
func (h *Handler) ListOrders(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var orders []models.Order
	err := h.db.Preload("Items.Product").Preload("Payment").
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&orders).Error
	if err != nil {
		h.internalError(c, "Failed to fetch orders", err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /orders/:id
func (h *Handler) GetOrder(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := loadOrder(h.db, userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		h.internalError(c, "Failed to fetch order", err)
		return
	}
	c.JSON(http.StatusOK, order)
}
