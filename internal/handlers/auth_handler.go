package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ecommerce-api/internal/auth"
	"ecommerce-api/internal/database"
	"ecommerce-api/internal/models"
)

// RegisterRequest represents the registration payload
type RegisterRequest struct {
	FullName string `json:"fullname" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type ChangePasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type ForgetPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyOTPRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         int    `json:"otp" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

func invalidCredentials(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
}

// findUserByEmail returns the user or gorm.ErrRecordNotFound.
func (h *Handler) findUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := h.db.Where("email = ?", models.NormalizeEmail(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Register handles POST /user/register
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := models.NormalizeEmail(req.Email)
	if _, err := h.findUserByEmail(email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This email already registered"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		h.internalError(c, "Failed to check email", err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.internalError(c, "Failed to register user", err)
		return
	}

	user := models.User{
		FullName: req.FullName,
		Email:    email,
		Password: hash,
		Role:     models.RoleUser,
	}
	if err := h.db.Create(&user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "This email already registered"})
			return
		}
		h.internalError(c, "Failed to register user", err)
		return
	}

	h.notify(user.ID, "New user registered", "New user registered", false)

	c.JSON(http.StatusCreated, gin.H{
		"message": "You are registered",
		"id":      user.ID,
	})
}

// Login handles POST /user/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request. Email and password are required.",
		})
		return
	}

	user, err := h.findUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			invalidCredentials(c)
			return
		}
		h.internalError(c, "Failed to fetch user", err)
		return
	}
	if !auth.VerifyPassword(user.Password, req.Password) {
		invalidCredentials(c)
		return
	}

	token, err := h.tokens.Generate(auth.Subject{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Role:     user.Role,
	})
	if err != nil {
		h.internalError(c, "Failed to generate token", err)
		return
	}

	if user.IsAdmin() {
		h.notify(user.ID, "Admin logged in", "Login successful", true)
	} else {
		h.notify(user.ID, "User logged in", "Login successful", false)
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// ChangePassword handles POST /user/change-password
func (h *Handler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.findUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			invalidCredentials(c)
			return
		}
		h.internalError(c, "Failed to fetch user", err)
		return
	}
	if !auth.VerifyPassword(user.Password, req.OldPassword) {
		invalidCredentials(c)
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		h.internalError(c, "Failed to change password", err)
		return
	}
	if err := h.db.Model(user).Update("password", hash).Error; err != nil {
		h.internalError(c, "Failed to change password", err)
		return
	}

	h.notify(user.ID, "Password updated", "Password updated", false)

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// ForgetPassword handles POST /user/forget-password
// It issues a short-lived OTP; delivery by email is outside this service.
func (h *Handler) ForgetPassword(c *gin.Context) {
	var req ForgetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.findUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.internalError(c, "Failed to fetch user", err)
		return
	}

	otp, err := auth.GenerateOTP()
	if err != nil {
		h.internalError(c, "Failed to generate OTP", err)
		return
	}
	expiresAt := time.Now().Add(h.cfg.Auth.OTPTTL)
	if err := h.db.Model(user).Updates(map[string]any{
		"otp":            otp,
		"otp_expires_at": expiresAt,
	}).Error; err != nil {
		h.internalError(c, "Failed to store OTP", err)
		return
	}

	h.notify(user.ID, "Password reset requested", "Password reset OTP issued", false)

	resp := gin.H{"message": "OTP sent on email"}
	if h.cfg.Auth.ExposeOTP {
		resp["otp"] = otp
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyOTP handles POST /user/verify-otp
func (h *Handler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.findUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.internalError(c, "Failed to fetch user", err)
		return
	}

	if user.OTP == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "OTP not found for this user"})
		return
	}
	if user.OTPExpiresAt != nil && time.Now().After(*user.OTPExpiresAt) {
		_ = h.db.Model(user).Updates(map[string]any{"otp": nil, "otp_expires_at": nil}).Error
		c.JSON(http.StatusBadRequest, gin.H{"error": "OTP has expired"})
		return
	}
	if *user.OTP != req.OTP {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OTP provided"})
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		h.internalError(c, "Failed to reset password", err)
		return
	}
	if err := h.db.Model(user).Updates(map[string]any{
		"password":       hash,
		"otp":            nil,
		"otp_expires_at": nil,
	}).Error; err != nil {
		h.internalError(c, "Failed to reset password", err)
		return
	}

	h.notify(user.ID, "OTP verified", "OTP verified successful", false)

	c.JSON(http.StatusOK, gin.H{"message": "OTP verified and password reset successfully"})
}
