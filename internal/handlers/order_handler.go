package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mwangik/go-storefront/internal/auth"
	"github.com/mwangik/go-storefront/internal/db"
	"github.com/mwangik/go-storefront/internal/models"
	"github.com/mwangik/go-storefront/internal/notifier"
	"github.com/mwangik/go-storefront/internal/pagination"
)

type BuyNowRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type OrderResponse struct {
	ID         uint               `json:"id"`
	Reference  string             `json:"reference"`
	CustomerID uint               `json:"customer_id"`
	CreatedAt  time.Time          `json:"created_at"`
	TotalPrice decimal.Decimal    `json:"total_price"`
	Status     *uint              `json:"status"`
	StatusName string             `json:"status_name"`
	Items      []models.OrderItem `json:"items"`
}

func orderResponse(order models.Order) OrderResponse {
	resp := OrderResponse{
		ID:         order.ID,
		Reference:  order.Reference,
		CustomerID: order.CustomerID,
		CreatedAt:  order.CreatedAt,
		TotalPrice: order.TotalPrice,
		Status:     order.StatusID,
		Items:      order.Items,
	}
	if order.Status != nil {
		resp.StatusName = order.Status.Name
	}
	return resp
}

// POST /api/place-order
//
// Converts the caller's cart into an immutable order. Order creation, item
// snapshots, the conditional stock decrement and the cart wipe commit as one
// transaction; any failure leaves cart and stock untouched.
func PlaceOrder(c *gin.Context) {

	cust := auth.CurrentCustomer(c)

	var cart models.Cart
	if err := db.DB.Where("customer_id = ?", cust.ID).First(&cart).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found."})
		return
	}

	var cartItems []models.CartItem
	if err := db.DB.Preload("Product").Where("cart_id = ?", cart.ID).Find(&cartItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(cartItems) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty."})
		return
	}

	// Total over current prices; the same prices are snapshotted below.
	total := decimal.Zero
	for _, item := range cartItems {
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	tx := db.DB.Begin()

	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start transaction"})
		return
	}

	var defaultStatus models.OrderStatus
	if err := tx.Where("name = ?", models.DefaultOrderStatus).First(&defaultStatus).Error; err != nil {

		tx.Rollback()

		c.JSON(http.StatusNotFound, gin.H{"error": "Default order status not found."})
		return
	}

	order := models.Order{
		Reference:  uuid.NewString(),
		CustomerID: cust.ID,
		TotalPrice: total,
		StatusID:   &defaultStatus.ID,
	}

	if err := tx.Create(&order).Error; err != nil {

		tx.Rollback()

		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Read the store-wide toggle once per invocation, never cached.
	var setting models.StoreSetting
	deductStock := tx.First(&setting).Error == nil && setting.AutoStockDeduction

	var orderItems []models.OrderItem

	for _, item := range cartItems {

		productID := item.ProductID
		orderItems = append(orderItems, models.OrderItem{
			OrderID:     order.ID,
			ProductID:   &productID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			Price:       item.Product.Price,
		})
	}

	if err := tx.CreateInBatches(&orderItems, len(orderItems)).Error; err != nil {

		tx.Rollback()

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order items"})
		return
	}

	if deductStock {
		for _, item := range cartItems {
			err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				Update("stock", gorm.Expr("stock - ?", item.Quantity)).Error
			if err != nil {

				tx.Rollback()

				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to deduct stock"})
				return
			}
		}
	}

	if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {

		tx.Rollback()

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cart"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to commit order"})
		return
	}

	if err := db.DB.Preload("Items").Preload("Status").First(&order, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve order with items"})
		return
	}

	go func(customer models.Customer, order models.Order) {

		if err := notifier.SendSMS(customer.Phone, order.ID, order.TotalPrice); err != nil {
			fmt.Printf("Failed to send SMS for order %d to %s: %v\n", order.ID, customer.Phone, err)
		}
	}(*cust, order)

	go func(customer models.Customer, order models.Order) {

		if err := notifier.SendEmail(customer.Email, customer.Name, order.ID, order.TotalPrice); err != nil {
			fmt.Printf("Failed to send email for order %d to %s: %v\n", order.ID, customer.Email, err)
		}
	}(*cust, order)

	c.JSON(http.StatusCreated, orderResponse(order))
}

// POST /api/buy-now
//
// Same invariant as PlaceOrder but for a single ad hoc product/quantity pair.
// The caller's cart is never touched.
func BuyNow(c *gin.Context) {

	cust := auth.CurrentCustomer(c)

	var req BuyNowRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if req.ProductID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required."})
		return
	}

	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if req.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1."})
		return
	}

	var product models.Product
	if err := db.DB.First(&product, req.ProductID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found."})
		return
	}

	if product.Stock < req.Quantity {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Not enough stock available."})
		return
	}

	totalPrice := product.Price.Mul(decimal.NewFromInt(int64(req.Quantity)))

	tx := db.DB.Begin()

	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start transaction"})
		return
	}

	var defaultStatus models.OrderStatus
	if err := tx.Where("name = ?", models.DefaultOrderStatus).First(&defaultStatus).Error; err != nil {

		tx.Rollback()

		c.JSON(http.StatusNotFound, gin.H{"error": "Default order status not found."})
		return
	}

	order := models.Order{
		Reference:  uuid.NewString(),
		CustomerID: cust.ID,
		TotalPrice: totalPrice,
		StatusID:   &defaultStatus.ID,
	}

	if err := tx.Create(&order).Error; err != nil {

		tx.Rollback()

		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	orderItem := models.OrderItem{
		OrderID:     order.ID,
		ProductID:   &product.ID,
		ProductName: product.Name,
		Quantity:    req.Quantity,
		Price:       product.Price,
	}

	if err := tx.Create(&orderItem).Error; err != nil {

		tx.Rollback()

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order item"})
		return
	}

	var setting models.StoreSetting
	if tx.First(&setting).Error == nil && setting.AutoStockDeduction {
		err := tx.Model(&models.Product{}).
			Where("id = ?", product.ID).
			Update("stock", gorm.Expr("stock - ?", req.Quantity)).Error
		if err != nil {

			tx.Rollback()

			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to deduct stock"})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to commit order"})
		return
	}

	go func(customer models.Customer, orderID uint, total decimal.Decimal) {

		if err := notifier.SendEmail(customer.Email, customer.Name, orderID, total); err != nil {
			fmt.Printf("Failed to send email for order %d to %s: %v\n", orderID, customer.Email, err)
		}
	}(*cust, order.ID, totalPrice)

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Order placed successfully.",
		"order_id":    order.ID,
		"product":     product.Name,
		"quantity":    req.Quantity,
		"total_price": totalPrice,
	})
}

// GET /api/my-orders
func MyOrders(c *gin.Context) {

	cust := auth.CurrentCustomer(c)

	query := db.DB.Model(&models.Order{}).
		Preload("Items").
		Preload("Status").
		Where("customer_id = ?", cust.ID).
		Order("created_at DESC")

	var orders []models.Order
	page, err := pagination.Paginate(c, query, 3, &orders)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	response := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		response = append(response, orderResponse(order))
	}
	page.Results = response

	c.JSON(http.StatusOK, page)
}
