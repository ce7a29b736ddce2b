package routes

import (
	"lacave_back_end/internal/handlers/admin"
	"lacave_back_end/internal/handlers/payement"
	"lacave_back_end/internal/handlers/product"
	"lacave_back_end/internal/handlers/user"
	"lacave_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Auth
	r.POST("/users", middleware.RegisterRateLimit(), user.CreateUser)
	r.GET("/auth/verify", user.VerifyEmail)
	r.POST("/auth/login", middleware.LoginRateLimit(), user.Login)
	r.GET("/me", middleware.AuthRequired(), user.Me)

	// Catalogue (lecture publique)
	r.GET("/products", product.GetProducts)
	r.GET("/products/search", product.SearchProducts)
	r.GET("/products/:id", product.GetProductByID)
	r.GET("/categories", product.GetAllCategories)
	r.GET("/brands", product.GetAllBrands)
	r.GET("/subcategories", product.GetAllSubCategories)

	// Panier
	cart := r.Group("/cart", middleware.AuthRequired())
	{
		cart.GET("", user.GetCart)
		cart.POST("/add", user.AddToCart)
		cart.POST("/remove", user.RemoveFromCart)
		cart.DELETE("", user.ClearCart)
	}

	// Commandes et paiement
	orders := r.Group("/orders", middleware.AuthRequired())
	{
		orders.POST("", payement.CreateOrder)
		orders.GET("", user.GetMyOrders)
		orders.GET("/:number", user.GetOrderByNumber)
	}

	payment := r.Group("/payment", middleware.AuthRequired())
	{
		payment.POST("/khalti/initiate", payement.InitiateKhaltiPayment)
		payment.POST("/card/intent", payement.CreateCardPaymentIntent)
	}

	// Retour Khalti : le frontend rappelle avec le pidx reçu sur return_url
	r.GET("/payment/khalti/lookup", payement.LookupKhaltiPayment)
	r.POST("/payment/khalti/lookup", payement.LookupKhaltiPayment)

	// Webhook Stripe (signé, pas de JWT)
	r.POST("/payment/stripe/webhook", payement.StripeWebhook)

	// Administration
	adm := r.Group("/admin", middleware.AuthRequired(), middleware.RequireAdmin)
	{
		adm.GET("/products", product.GetAllProductsAdmin)
		adm.POST("/products", product.CreateProduct)
		adm.PUT("/products/:id", product.UpdateProduct)
		adm.DELETE("/products/:id", product.DeleteProduct)
		adm.POST("/categories", product.CreateCategory)
		adm.DELETE("/categories/:id", product.DeleteCategory)
		adm.POST("/brands", product.CreateBrand)
		adm.POST("/subcategories", product.CreateSubCategory)

		adm.GET("/orders", payement.GetAllOrders)
		adm.PUT("/orders/:number/payment-status", payement.OverridePaymentStatus)
		adm.GET("/dashboard", payement.GetDashboardStats)

		adm.GET("/users", admin.GetUsers)
		adm.PUT("/users/:id/disabled", admin.SetUserDisabled)
	}
}
