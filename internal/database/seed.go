package database

import (
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"ecommerce-api/internal/auth"
	"ecommerce-api/internal/config"
	"ecommerce-api/internal/models"
)

// EnsureAdmin creates the bootstrap admin account unless an admin already
// exists. It returns true when a new account was inserted.
func EnsureAdmin(db *gorm.DB, cfg config.AdminConfig, logger *slog.Logger) (bool, error) {
	var existing models.User
	err := db.Where("role = ?", models.RoleAdmin).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("look up admin: %w", err)
	}

	if !cfg.Configured() {
		logger.Warn("no admin account exists and no admin credentials are configured")
		return false, nil
	}

	hash, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return false, err
	}

	admin := models.User{
		FullName: cfg.Name,
		Email:    models.NormalizeEmail(cfg.Email),
		Password: hash,
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}

	logger.Info("admin account created", "email", admin.Email, "user_id", admin.ID)
	return true, nil
}
