package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mwangik/go-storefront/internal/auth"
	"github.com/mwangik/go-storefront/internal/db"
	"github.com/mwangik/go-storefront/internal/handlers"
	"github.com/mwangik/go-storefront/internal/models"
)

// setupTestRouter spins up a named in-memory SQLite database, swaps it in for
// the package-level handle and wires the full route table. Each top-level test
// passes its own dbName so state never bleeds between test functions.
func setupTestRouter(t *testing.T, dbName string) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect test database: " + err.Error())
	}

	err = testDB.AutoMigrate(
		&models.Customer{},
		&models.Category{},
		&models.SubCategory{},
		&models.Brand{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.OrderStatus{},
		&models.Order{},
		&models.OrderItem{},
		&models.StoreSetting{},
		&models.Feedback{},
	)
	if err != nil {
		panic("failed to auto-migrate models: " + err.Error())
	}

	originalDB := db.DB
	db.SetTestDB(testDB)

	r := gin.New()
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte("test-secret-key"))
	r.Use(sessions.Sessions("storesess", store))

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

	t.Cleanup(func() {
		db.SetTestDB(originalDB)
	})

	return r, testDB
}

// mustCreate inserts a fixture row and fails the test immediately if the
// insert is rejected, so constraint violations can't surface later as
// confusing 401s or missing rows.
func mustCreate(t *testing.T, testDB *gorm.DB, value interface{}) {
	t.Helper()
	if err := testDB.Create(value).Error; err != nil {
		t.Fatalf("failed to create fixture %T: %v", value, err)
	}
}

func jsonRequest(method, path string, body interface{}) *http.Request {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// performAuthenticatedRequest issues a request carrying a session cookie for
// customerID; pass nil to simulate an anonymous caller.
func performAuthenticatedRequest(router *gin.Engine, method, path string, body interface{}, customerID *uint) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	req := jsonRequest(method, path, body)

	// Run the session middleware against a throwaway context so we can mint
	// a valid cookie for the real request.
	tempW := httptest.NewRecorder()
	tempC, _ := gin.CreateTestContext(tempW)
	tempC.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	store := cookie.NewStore([]byte("test-secret-key"))
	sessions.Sessions("storesess", store)(tempC)

	session := sessions.Default(tempC)
	if customerID != nil {
		session.Set("customer_id", *customerID)
	} else {
		session.Delete("customer_id")
	}
	session.Save()

	req.Header.Set("Cookie", tempW.Header().Get("Set-Cookie"))

	router.ServeHTTP(recorder, req)
	return recorder
}

func performRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(method, path, nil))
	return recorder
}
