package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ecommerce-api/internal/auth"
	"ecommerce-api/internal/cache"
	"ecommerce-api/internal/config"
	"ecommerce-api/internal/middleware"
	"ecommerce-api/internal/models"
	"ecommerce-api/internal/payments"
	"ecommerce-api/internal/realtime"
)

const catalogKey = "all"

// Deps are the collaborators a Handler needs. Everything is constructed
// once in cmd/server and shared by all requests.
type Deps struct {
	DB       *gorm.DB
	Tokens   *auth.TokenManager
	Registry *realtime.Manager
	Notifier realtime.Notifier
	Payments payments.Provider
	Config   *config.Config
	Logger   *slog.Logger
}

// Handler serves every HTTP endpoint of the API.
type Handler struct {
	db       *gorm.DB
	tokens   *auth.TokenManager
	registry *realtime.Manager
	notifier realtime.Notifier
	payments payments.Provider
	cfg      *config.Config
	logger   *slog.Logger

	products   cache.Cache[string, []models.Product]
	categories cache.Cache[string, []models.Category]
}

// New builds a Handler from its dependencies.
func New(d Deps) *Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := d.Config
	if cfg == nil {
		cfg = config.Default()
	}
	provider := d.Payments
	if provider == nil {
		provider = payments.NewLocalProvider()
	}
	return &Handler{
		db:         d.DB,
		tokens:     d.Tokens,
		registry:   d.Registry,
		notifier:   d.Notifier,
		payments:   provider,
		cfg:        cfg,
		logger:     logger,
		products:   cache.NewTTLCache[string, []models.Product](),
		categories: cache.NewTTLCache[string, []models.Category](),
	}
}

// notify stores the durable notification record and then pushes the
// realtime message. Neither step can fail the calling request.
func (h *Handler) notify(userID uint, record, push string, read bool) {
	n := models.Notification{UserID: userID, Message: record, IsRead: read}
	if err := h.db.Create(&n).Error; err != nil {
		h.logger.Warn("failed to store notification", "user_id", userID, "error", err)
	}
	h.notifier.Notify(userID, push)
}

func (h *Handler) invalidateCatalog() {
	h.products.Delete(catalogKey)
	h.categories.Delete(catalogKey)
}

// internalError logs err and answers with a generic 500.
func (h *Handler) internalError(c *gin.Context, msg string, err error) {
	h.logger.Error(msg, "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

// parseIDParam reads a positive integer path parameter, answering 400 when
// it is malformed.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// currentUser returns the authenticated user id or answers 401.
func currentUser(c *gin.Context) (uint, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
	}
	return id, ok
}
