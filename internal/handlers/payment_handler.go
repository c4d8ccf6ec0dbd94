package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ecommerce-api/internal/database"
	"ecommerce-api/internal/models"
	"ecommerce-api/internal/payments"
)

type CreatePaymentIntentRequest struct {
	OrderID  uint   `json:"order_id" binding:"required"`
	Currency string `json:"currency"`
}

// CreatePaymentIntent handles POST /payments/create-intent
func (h *Handler) CreatePaymentIntent(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Currency == "" {
		req.Currency = h.cfg.Payments.DefaultCurrency
	}

	var order models.Order
	if err := h.db.Where("id = ? AND user_id = ?", req.OrderID, userID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		h.internalError(c, "Failed to fetch order", err)
		return
	}
	if order.Status != models.OrderPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order already paid or canceled"})
		return
	}

	var existing int64
	if err := h.db.Model(&models.Payment{}).Where("order_id = ?", order.ID).Count(&existing).Error; err != nil {
		h.internalError(c, "Failed to check payments", err)
		return
	}
	if existing > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order already paid"})
		return
	}

	intent, err := h.payments.CreateIntent(c.Request.Context(), payments.IntentRequest{
		Amount:   payments.ToMinorUnits(order.TotalPrice),
		Currency: req.Currency,
		Metadata: map[string]string{
			"order_id": strconv.FormatUint(uint64(order.ID), 10),
			"user_id":  strconv.FormatUint(uint64(userID), 10),
		},
	})
	if err != nil {
		if errors.Is(err, payments.ErrInvalidCurrency) || errors.Is(err, payments.ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("payment provider failed", "order_id", order.ID, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment provider unavailable"})
		return
	}

	payment := models.Payment{
		OrderID:     order.ID,
		Amount:      order.TotalPrice,
		Currency:    intent.Currency,
		Status:      models.PaymentPending,
		ProviderRef: intent.ID,
	}
	if err := h.db.Create(&payment).Error; err != nil {
		if database.IsUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order already paid"})
			return
		}
		h.internalError(c, "Failed to store payment", err)
		return
	}

	msg := fmt.Sprintf("Payment initiated for order #%d", order.ID)
	h.notify(userID, msg, msg, false)

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Payment created successfully",
		"payment_id":    payment.ID,
		"client_secret": intent.ClientSecret,
		"amount":        payment.Amount,
		"currency":      payment.Currency,
	})
}
