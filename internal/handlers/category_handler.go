package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ecommerce-api/internal/database"
	"ecommerce-api/internal/models"
)

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Description *string `json:"description"`
}

// ListCategories handles GET /categories
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.categories.GetOrLoad(catalogKey, h.cfg.Catalog.CacheTTL, func() ([]models.Category, error) {
		var out []models.Category
		err := h.db.Order("id asc").Find(&out).Error
		return out, err
	})
	if err != nil {
		h.internalError(c, "Failed to fetch categories", err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	c.JSON(http.StatusOK, categories)
}

// CreateCategory handles POST /admin/categories
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := models.Category{Name: req.Name, Description: req.Description}
	if err := h.db.Create(&category).Error; err != nil {
		if database.IsUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category with this name already exists"})
			return
		}
		h.internalError(c, "Failed to create category", err)
		return
	}
	h.invalidateCatalog()

	c.JSON(http.StatusCreated, category)
}

// UpdateCategory handles PUT /admin/categories/:id
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var category models.Category
	if err := h.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		h.internalError(c, "Failed to fetch category", err)
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	if err := h.db.Model(&category).Updates(updates).Error; err != nil {
		if database.IsUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category with this name already exists"})
			return
		}
		h.internalError(c, "Failed to update category", err)
		return
	}
	h.invalidateCatalog()

	c.JSON(http.StatusOK, category)
}

// DeleteCategory handles DELETE /admin/categories/:id
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var category models.Category
	if err := h.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		h.internalError(c, "Failed to fetch category", err)
		return
	}

	var products int64
	if err := h.db.Model(&models.Product{}).Where("category_id = ?", id).Count(&products).Error; err != nil {
		h.internalError(c, "Failed to check category products", err)
		return
	}
	if products > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Category still has products"})
		return
	}

	if err := h.db.Delete(&category).Error; err != nil {
		h.internalError(c, "Failed to delete category", err)
		return
	}
	h.invalidateCatalog()

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
