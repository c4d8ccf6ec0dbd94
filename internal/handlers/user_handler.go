package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecommerce-api/internal/middleware"
	"ecommerce-api/internal/models"
	"ecommerce-api/internal/version"
)

type UserResponse struct {
	ID       uint   `json:"id"`
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Profile handles GET /user/profile
// The profile comes straight from the verified token claims.
func (h *Handler) Profile(c *gin.Context) {
	id, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, UserResponse{
		ID:       id,
		FullName: c.GetString(middleware.ContextFullName),
		Email:    c.GetString(middleware.ContextEmail),
		Role:     c.GetString(middleware.ContextRole),
	})
}

// GetAllUsers returns all users (admin)
// GET /admin/users
func (h *Handler) GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := h.db.Order("id asc").Find(&users).Error; err != nil {
		h.internalError(c, "Failed to fetch users", err)
		return
	}

	// Map to safe response payload
	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, UserResponse{
			ID:       u.ID,
			FullName: u.FullName,
			Email:    u.Email,
			Role:     u.Role,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"users": resp,
		"count": len(resp),
	})
}

// Home handles GET /
func (h *Handler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the E-commerce API"})
}

// Health handles GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"version":     version.String(),
		"connections": h.registry.Count(),
	})
}

// AdminConnections lists the users holding a live notification socket
// GET /admin/connections
func (h *Handler) AdminConnections(c *gin.Context) {
	ids := h.registry.ConnectedUsers()
	c.JSON(http.StatusOK, gin.H{
		"count":    len(ids),
		"user_ids": ids,
	})
}
