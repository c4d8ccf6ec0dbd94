package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ecommerce-api/internal/database"
	"ecommerce-api/internal/models"
)

var errCategoryNotFound = errors.New("category not found")

type CreateProductRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	CategoryID    uint    `json:"category_id" binding:"required"`
	StockQuantity int     `json:"stock_quantity" binding:"min=0"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=1"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	CategoryID  *uint    `json:"category_id" binding:"omitempty,min=1"`
}

func (h *Handler) loadProduct(db *gorm.DB, id uint) (*models.Product, error) {
	var product models.Product
	if err := db.Preload("Category").Preload("Inventory").First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts handles GET /products
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.products.GetOrLoad(catalogKey, h.cfg.Catalog.CacheTTL, func() ([]models.Product, error) {
		var out []models.Product
		err := h.db.Preload("Category").Preload("Inventory").Order("id asc").Find(&out).Error
		return out, err
	})
	if err != nil {
		h.internalError(c, "Failed to fetch products", err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.loadProduct(h.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		h.internalError(c, "Failed to fetch product", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct handles POST /admin/add-product
// The product and its inventory row are written in one transaction.
func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		Inventory:   &models.Inventory{StockQuantity: req.StockQuantity},
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, req.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errCategoryNotFound
			}
			return err
		}
		return tx.Create(&product).Error
	})
	switch {
	case errors.Is(err, errCategoryNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category not found"})
		return
	case database.IsUniqueViolation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product with this name already exists"})
		return
	case err != nil:
		h.internalError(c, "Failed to create product", err)
		return
	}
	h.invalidateCatalog()

	created, err := h.loadProduct(h.db, product.ID)
	if err != nil {
		h.internalError(c, "Failed to fetch product", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Product added successfully",
		"product": created,
	})
}

// UpdateProduct handles PUT /admin/products/:id
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var product models.Product
	if err := h.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		h.internalError(c, "Failed to fetch product", err)
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := h.db.First(&category, *req.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category not found"})
				return
			}
			h.internalError(c, "Failed to fetch category", err)
			return
		}
		updates["category_id"] = *req.CategoryID
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	if err := h.db.Model(&product).Updates(updates).Error; err != nil {
		if database.IsUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product with this name already exists"})
			return
		}
		h.internalError(c, "Failed to update product", err)
		return
	}
	h.invalidateCatalog()

	updated, err := h.loadProduct(h.db, id)
	if err != nil {
		h.internalError(c, "Failed to fetch product", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteProduct handles DELETE /admin/products/:id
// Products referenced by placed orders are kept for order history.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var product models.Product
	if err := h.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		h.internalError(c, "Failed to fetch product", err)
		return
	}

	var ordered int64
	if err := h.db.Model(&models.OrderItem{}).Where("product_id = ?", id).Count(&ordered).Error; err != nil {
		h.internalError(c, "Failed to check product orders", err)
		return
	}
	if ordered > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Product is referenced by existing orders"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.Inventory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
	if err != nil {
		h.internalError(c, "Failed to delete product", err)
		return
	}
	h.invalidateCatalog()

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
