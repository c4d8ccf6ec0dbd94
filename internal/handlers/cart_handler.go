package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ecommerce-api/internal/models"
)

type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"omitempty,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CartResponse is the cart view returned by every cart endpoint.
type CartResponse struct {
	CartID     uint              `json:"cart_id"`
	UserID     uint              `json:"user_id"`
	Items      []models.CartItem `json:"items"`
	TotalPrice float64           `json:"total_price"`
}

func newCartResponse(userID uint, cart *models.Cart) CartResponse {
	resp := CartResponse{UserID: userID, Items: []models.CartItem{}}
	if cart == nil {
		return resp
	}
	resp.CartID = cart.ID
	if cart.Items != nil {
		resp.Items = cart.Items
	}
	resp.TotalPrice = roundCents(cart.Total())
	return resp
}

// loadCart returns the user's cart with products preloaded, or
// gorm.ErrRecordNotFound when the user has none.
func loadCart(db *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("cart_items.id asc")
	}).Preload("Items.Product").
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (h *Handler) respondWithCart(c *gin.Context, status int, userID uint) {
	cart, err := loadCart(h.db, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		h.internalError(c, "Failed to fetch cart", err)
		return
	}
	c.JSON(status, newCartResponse(userID, cart))
}

// GetCart handles GET /cart
func (h *Handler) GetCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	h.respondWithCart(c, http.StatusOK, userID)
}

// AddToCart handles POST /cart/items
// Adding a product already in the cart increases that line's quantity.
func (h *Handler) AddToCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	var product models.Product
	if err := h.db.First(&product, req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		h.internalError(c, "Failed to fetch product", err)
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where(models.Cart{UserID: userID}).FirstOrCreate(&cart).Error; err != nil {
			return err
		}

		var item models.CartItem
		err := tx.Where("cart_id = ? AND product_id = ?", cart.ID, product.ID).First(&item).Error
		switch {
		case err == nil:
			return tx.Model(&item).UpdateColumn("quantity", gorm.Expr("quantity + ?", req.Quantity)).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: req.Quantity}
			return tx.Omit("Product").Create(&item).Error
		default:
			return err
		}
	})
	if err != nil {
		h.internalError(c, "Failed to add item to cart", err)
		return
	}

	h.respondWithCart(c, http.StatusOK, userID)
}

// findCartItem resolves an item id inside the caller's cart and writes the
// 404 response itself when either is missing.
func (h *Handler) findCartItem(c *gin.Context, userID, itemID uint) (*models.CartItem, bool) {
	var cart models.Cart
	if err := h.db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
			return nil, false
		}
		h.internalError(c, "Failed to fetch cart", err)
		return nil, false
	}

	var item models.CartItem
	if err := h.db.Where("id = ? AND cart_id = ?", itemID, cart.ID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in cart"})
			return nil, false
		}
		h.internalError(c, "Failed to fetch cart item", err)
		return nil, false
	}
	return &item, true
}

// UpdateCartItem handles PUT /cart/items/:item_id
// A quantity of zero or less removes the line.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, ok := h.findCartItem(c, userID, itemID)
	if !ok {
		return
	}

	var err error
	if *req.Quantity <= 0 {
		err = h.db.Delete(item).Error
	} else {
		err = h.db.Model(item).Update("quantity", *req.Quantity).Error
	}
	if err != nil {
		h.internalError(c, "Failed to update cart item", err)
		return
	}

	h.respondWithCart(c, http.StatusOK, userID)
}

// RemoveCartItem handles DELETE /cart/items/:item_id
func (h *Handler) RemoveCartItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}

	item, ok := h.findCartItem(c, userID, itemID)
	if !ok {
		return
	}
	if err := h.db.Delete(item).Error; err != nil {
		h.internalError(c, "Failed to remove cart item", err)
		return
	}

	h.respondWithCart(c, http.StatusOK, userID)
}

// ClearCart handles DELETE /cart
func (h *Handler) ClearCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	err := h.db.Where("cart_id IN (?)", h.db.Model(&models.Cart{}).Select("id").Where("user_id = ?", userID)).
		Delete(&models.CartItem{}).Error
	if err != nil {
		h.internalError(c, "Failed to clear cart", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
