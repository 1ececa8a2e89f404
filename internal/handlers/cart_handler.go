package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/mwangik/go-storefront/internal/auth"
	"github.com/mwangik/go-storefront/internal/db"
	"github.com/mwangik/go-storefront/internal/models"
)

type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gte=1"`
}

type CartItemResponse struct {
	ID           uint            `json:"id"`
	ProductID    uint            `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	ProductImage string          `json:"product_image"`
	Quantity     int             `json:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// POST /api/cart/add
//
// The accumulated quantity for a product (existing cart quantity plus the
// requested amount) is checked against live stock; the check is advisory,
// not serialized against concurrent adds.
func AddToCart(c *gin.Context) {

	cust := auth.CurrentCustomer(c)

	var req AddToCartRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var product models.Product
	if err := db.DB.First(&product, req.ProductID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found."})
		return
	}

	// Get or create the customer's cart
	var cart models.Cart
	if err := db.DB.Where(models.Cart{CustomerID: cust.ID}).FirstOrCreate(&cart).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Get or create the cart item for this product
	var item models.CartItem
	err := db.DB.Where("cart_id = ? AND product_id = ?", cart.ID, product.ID).First(&item).Error

	newQuantity := req.Quantity
	existing := 0
	if err == nil {
		existing = item.Quantity
		newQuantity = item.Quantity + req.Quantity
	}

	if newQuantity > product.Stock {
		errorMessage := fmt.Sprintf("Only %d units in stock. You already have %d in cart.", product.Stock, existing)
		c.JSON(http.StatusBadRequest, gin.H{"error": errorMessage})
		return
	}

	if err != nil {
		item = models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: newQuantity}
		if err := db.DB.Create(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	} else {
		item.Quantity = newQuantity
		if err := db.DB.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product added to cart."})
}

// DELETE /api/cart/remove/:cart_item_id
func RemoveFromCart(c *gin.Context) {

	cust := auth.CurrentCustomer(c)

	var cart models.Cart
	if err := db.DB.Where("customer_id = ?", cust.ID).First(&cart).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found."})
		return
	}

	var item models.CartItem
	if err := db.DB.Where("id = ? AND cart_id = ?", c.Param("cart_item_id"), cart.ID).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in cart."})
		return
	}

	if err := db.DB.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart."})
}

// GET /api/my-cart
func MyCart(c *gin.Context) {

	cust := auth.CurrentCustomer(c)

	var cart models.Cart
	if err := db.DB.Where("customer_id = ?", cust.ID).First(&cart).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found."})
		return
	}

	var items []models.CartItem
	if err := db.DB.Preload("Product").Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	response := make([]CartItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, CartItemResponse{
			ID:           item.ID,
			ProductID:    item.Product.ID,
			ProductName:  item.Product.Name,
			ProductPrice: item.Product.Price,
			ProductImage: item.Product.ImageURL,
			Quantity:     item.Quantity,
			Subtotal:     item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}

	c.JSON(http.StatusOK, response)
}

// GET /api/cart/count
func CartItemCount(c *gin.Context) {

	cust := auth.CurrentCustomer(c)

	var cart models.Cart
	if err := db.DB.Where("customer_id = ?", cust.ID).First(&cart).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"count": 0})
		return
	}

	var count int64
	if err := db.DB.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
