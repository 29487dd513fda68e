package routes

import (
	"net/http"

	"yekzen_backend/internal/handlers"
	"yekzen_backend/internal/handlers/payment"
	"yekzen_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	authed := middleware.AuthRequired()
	admin := middleware.AdminRequired()

	// Auth
	auth := api.Group("/auth")
	auth.POST("/register", middleware.RegisterRateLimit(), handlers.Register)
	auth.POST("/login", middleware.LoginRateLimit(), handlers.Login)
	auth.POST("/refresh", handlers.RefreshToken)
	auth.POST("/logout", authed, handlers.Logout)
	auth.GET("/me", authed, handlers.Me)
	auth.GET("/:provider", handlers.OAuthBegin)
	auth.GET("/:provider/callback", handlers.OAuthCallback)

	// Products
	api.GET("/products", handlers.ListProducts)
	api.GET("/products/search", handlers.SearchProducts)
	api.GET("/products/:id", handlers.GetProduct)
	api.POST("/products", authed, admin, handlers.CreateProduct)
	api.PUT("/products/:id", authed, admin, handlers.UpdateProduct)
	api.DELETE("/products/:id", authed, admin, handlers.DeleteProduct)
	api.PUT("/products/:id/stock", authed, admin, handlers.UpdateStock)
	api.POST("/products/:id/images", authed, admin, handlers.PresignProductImageUpload)
	api.GET("/images/*object", handlers.PresignImageDownload)

	// Categories
	api.GET("/categories", handlers.ListCategories)
	api.POST("/categories", authed, admin, handlers.CreateCategory)
	api.DELETE("/categories/:id", authed, admin, handlers.DeleteCategory)

	// Reviews
	api.GET("/products/:id/reviews", handlers.ListReviews)
	api.POST("/products/:id/reviews", authed, handlers.CreateReview)

	// Shipping addresses
	addresses := api.Group("/addresses", authed)
	addresses.GET("", handlers.ListAddresses)
	addresses.POST("", handlers.CreateAddress)
	addresses.DELETE("/:id", handlers.DeleteAddress)

	// Cart
	cart := api.Group("/cart", authed)
	cart.GET("", handlers.GetCart)
	cart.POST("/add", handlers.AddToCart)
	cart.PUT("/:productId", handlers.UpdateCartItem)
	cart.DELETE("/:productId", handlers.RemoveFromCart)
	cart.DELETE("", handlers.ClearCart)
	cart.GET("/ws", handlers.CartWebSocket)

	// Checkout
	checkout := api.Group("/checkout", authed)
	checkout.POST("/stripe", payment.CreateCheckoutSession)
	checkout.POST("/intent", payment.CreatePaymentIntent)
	checkout.POST("/razorpay", payment.CreateRazorpayOrder)
	checkout.POST("/razorpay/verify", payment.VerifyRazorpayPayment)

	// Webhooks are authenticated by the provider signature, not by our JWT
	api.POST("/webhooks/stripe", payment.StripeWebhook)

	// Orders
	orders := api.Group("/orders", authed)
	orders.GET("", handlers.GetMyOrders)
	orders.GET("/:id", handlers.GetOrderByID)

	api.GET("/admin/orders", authed, admin, handlers.AdminListOrders)
	api.PUT("/admin/orders/:id/status", authed, admin, handlers.AdminUpdateOrderStatus)
}
