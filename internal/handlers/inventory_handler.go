package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ecommerce-api/internal/models"
)

type UpdateInventoryRequest struct {
	StockQuantity *int `json:"stock_quantity" binding:"required,min=0"`
}

// ListInventory handles GET /admin/inventory
func (h *Handler) ListInventory(c *gin.Context) {
	var rows []models.Inventory
	if err := h.db.Order("product_id asc").Find(&rows).Error; err != nil {
		h.internalError(c, "Failed to fetch inventory", err)
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inventory is empty"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// UpdateInventory handles PUT /admin/inventory/:product_id
func (h *Handler) UpdateInventory(c *gin.Context) {
	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}

	var req UpdateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var inv models.Inventory
	if err := h.db.Where("product_id = ?", productID).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found in inventory"})
			return
		}
		h.internalError(c, "Failed to fetch inventory", err)
		return
	}

	if err := h.db.Model(&inv).Update("stock_quantity", *req.StockQuantity).Error; err != nil {
		h.internalError(c, "Failed to update inventory", err)
		return
	}
	inv.StockQuantity = *req.StockQuantity
	h.invalidateCatalog()

	c.JSON(http.StatusOK, gin.H{
		"message":   "Inventory updated successfully",
		"inventory": inv,
	})
}
