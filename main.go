package main

import (
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/mwangik/go-storefront/internal/auth"
	"github.com/mwangik/go-storefront/internal/db"
	"github.com/mwangik/go-storefront/internal/handlers"
)

func main() {

	db.Init()
	auth.Init()

	r := gin.Default()

	// ── session store ──
	store := cookie.NewStore([]byte(getEnv("SESSION_SECRET", "change-me")))
	r.Use(sessions.Sessions("storesess", store))

	// ── public endpoints ──
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.GET("/auth/login", auth.Login)
	r.GET("/auth/callback", auth.Callback)
	r.POST("/auth/logout", auth.Logout)

	// ── public catalog ──
	r.GET("/products", handlers.ListProducts)
	r.GET("/products/:id", handlers.ProductDetailView)
	r.GET("/search-products", handlers.SearchProducts)
	r.GET("/products/category/:category_id", handlers.ProductsByCategory)
	r.GET("/products/brand/:brand_id", handlers.ProductsByBrand)
	r.GET("/products/subcategory/:subcategory_id", handlers.ProductsBySubCategory)
	r.GET("/products/by-category-ids", handlers.ProductsByCategoryIDs)
	r.GET("/products/by-brand-ids", handlers.ProductsByBrandIDs)
	r.GET("/products/by-subcategory-ids", handlers.ProductsBySubCategoryIDs)
	r.GET("/categories", handlers.ListCategories)
	r.GET("/subcategories", handlers.ListSubCategories)
	r.GET("/brands", handlers.ListBrands)
	r.GET("/feedback/product/:product_id", handlers.ProductFeedback)

	// ── protected API ──
	api := r.Group("/api")
	api.Use(auth.RequireAuth())
	{
		api.POST("/cart/add", handlers.AddToCart)
		api.DELETE("/cart/remove/:cart_item_id", handlers.RemoveFromCart)
		api.GET("/cart/count", handlers.CartItemCount)
		api.GET("/my-cart", handlers.MyCart)

		api.POST("/place-order", handlers.PlaceOrder)
		api.POST("/buy-now", handlers.BuyNow)
		api.GET("/my-orders", handlers.MyOrders)

		api.POST("/feedback", handlers.CreateFeedback)
		api.PATCH("/feedback/:feedback_id", handlers.EditFeedback)
		api.DELETE("/feedback/:feedback_id", handlers.DeleteFeedback)
		api.GET("/feedback/my", handlers.MyFeedback)

		api.GET("/user/profile", handlers.UserProfile)
		api.PATCH("/user/profile", handlers.UpdateProfile)
		api.DELETE("/user", handlers.DeleteAccount)

		admin := api.Group("/admin")
		admin.Use(auth.RequireStaff())
		{
			admin.POST("/products", handlers.AdminCreateProduct)
			admin.PUT("/products/:id", handlers.AdminUpdateProduct)
			admin.DELETE("/products/:id", handlers.AdminDeleteProduct)
		}
	}

	r.Run(":8080")
}

func getEnv(key, fallback string) string {

	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return fallback
}
