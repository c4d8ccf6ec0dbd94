package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"ecommerce-api/internal/auth"
	"ecommerce-api/internal/handlers"
	"ecommerce-api/internal/middleware"
	"ecommerce-api/internal/models"
)

// cors allows browser frontends on any origin to call the API.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func SetupRoutes(h *handlers.Handler, tokens *auth.TokenManager, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}

	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery(), middleware.RequestLogger(logger), cors())

	ginRouter.GET("/", h.Home)
	ginRouter.GET("/health", h.Health)

	// Realtime notifications; authorization depends on realtime.require_token
	ginRouter.GET("/ws/:user_id", h.WebSocket)

	// Public routes (no authentication required)
	user := ginRouter.Group("/user")
	{
		user.POST("/register", h.Register)
		user.POST("/login", h.Login)
		user.POST("/change-password", h.ChangePassword)
		user.POST("/forget-password", h.ForgetPassword)
		user.POST("/verify-otp", h.VerifyOTP)
	}
	ginRouter.GET("/categories", h.ListCategories)
	ginRouter.GET("/products", h.ListProducts)
	ginRouter.GET("/products/:id", h.GetProduct)

	// Protected routes (authentication required)
	protected := ginRouter.Group("")
	protected.Use(middleware.JWTAuthMiddleware(tokens))
	{
		protected.GET("/user/profile", h.Profile)

		protected.GET("/cart", h.GetCart)
		protected.DELETE("/cart", h.ClearCart)
		protected.POST("/cart/items", h.AddToCart)
		protected.PUT("/cart/items/:item_id", h.UpdateCartItem)
		protected.DELETE("/cart/items/:item_id", h.RemoveCartItem)

		protected.POST("/orders", h.PlaceOrder)
		protected.GET("/orders", h.ListOrders)
		protected.GET("/orders/:id", h.GetOrder)

		protected.POST("/payments/create-intent", h.CreatePaymentIntent)

		protected.GET("/notifications", h.ListNotifications)
		protected.PUT("/notifications/:id/read", h.MarkNotificationRead)
	}

	admin := ginRouter.Group("/admin")
	admin.Use(middleware.JWTAuthMiddleware(tokens), middleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("/categories", h.CreateCategory)
		admin.PUT("/categories/:id", h.UpdateCategory)
		admin.DELETE("/categories/:id", h.DeleteCategory)

		admin.POST("/add-product", h.CreateProduct)
		admin.PUT("/products/:id", h.UpdateProduct)
		admin.DELETE("/products/:id", h.DeleteProduct)

		admin.GET("/inventory", h.ListInventory)
		admin.PUT("/inventory/:product_id", h.UpdateInventory)

		admin.GET("/users", h.GetAllUsers)
		admin.GET("/connections", h.AdminConnections)
	}

	return ginRouter
}
