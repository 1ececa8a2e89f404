package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mwangik/go-storefront/internal/handlers"
	"github.com/mwangik/go-storefront/internal/models"
)

func TestPlaceOrderHandler(t *testing.T) {

	router, testDB := setupTestRouter(t, "place_order_test")

	status := models.OrderStatus{Name: models.DefaultOrderStatus}
	mustCreate(t, testDB, &status)
	mustCreate(t, testDB, &models.StoreSetting{AutoStockDeduction: false})

	customer := models.Customer{Name: "Test Customer", OIDCID: "oidc-orders", Email: "orders@example.com", Phone: "1234567890"}
	mustCreate(t, testDB, &customer)

	productA := models.Product{Name: "Product A", Price: decimal.NewFromFloat(10.00), Stock: 10}
	productB := models.Product{Name: "Product B", Price: decimal.NewFromFloat(5.00), Stock: 10}
	mustCreate(t, testDB, &productA)
	mustCreate(t, testDB, &productB)

	t.Run("Returns 404 when the caller has no cart", func(t *testing.T) {
		custID := customer.ID
		recorder := performAuthenticatedRequest(router, http.MethodPost, "/api/place-order", nil, &custID)

		assert.Equal(t, http.StatusNotFound, recorder.Code)

		var response map[string]string
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Equal(t, "Cart not found.", response["error"])
	})

	cart := models.Cart{CustomerID: customer.ID}
	mustCreate(t, testDB, &cart)

	t.Run("Returns 400 for an empty cart and creates no order", func(t *testing.T) {
		custID := customer.ID
		recorder := performAuthenticatedRequest(router, http.MethodPost, "/api/place-order", nil, &custID)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var response map[string]string
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Equal(t, "Cart is empty.", response["error"])

		var count int64
		testDB.Model(&models.Order{}).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("Snapshots items, totals correctly and empties the cart", func(t *testing.T) {
		mustCreate(t, testDB, &models.CartItem{CartID: cart.ID, ProductID: productA.ID, Quantity: 2})
		mustCreate(t, testDB, &models.CartItem{CartID: cart.ID, ProductID: productB.ID, Quantity: 1})

		custID := customer.ID
		recorder := performAuthenticatedRequest(router, http.MethodPost, "/api/place-order", nil, &custID)

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var response handlers.OrderResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Greater(t, response.ID, uint(0))
		assert.NotEmpty(t, response.Reference)
		assert.Equal(t, models.DefaultOrderStatus, response.StatusName)
		assert.True(t, response.TotalPrice.Equal(decimal.NewFromFloat(25.00)))
		assert.Len(t, response.Items, 2)
		assert.Equal(t, "Product A", response.Items[0].ProductName)
		assert.Equal(t, 2, response.Items[0].Quantity)
		assert.True(t, response.Items[0].Price.Equal(decimal.NewFromFloat(10.00)))
		assert.Equal(t, "Product B", response.Items[1].ProductName)
		assert.Equal(t, 1, response.Items[1].Quantity)
		assert.True(t, response.Items[1].Price.Equal(decimal.NewFromFloat(5.00)))

		// Cart emptied
		var itemCount int64
		testDB.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&itemCount)
		assert.Equal(t, int64(0), itemCount)

		// Deduction disabled: stock unchanged
		var stored models.Product
		testDB.First(&stored, productA.ID)
		assert.Equal(t, 10, stored.Stock)

		// Snapshot persisted
		var storedOrder models.Order
		testDB.Preload("Items").First(&storedOrder, response.ID)
		assert.True(t, storedOrder.TotalPrice.Equal(decimal.NewFromFloat(25.00)))
		assert.Len(t, storedOrder.Items, 2)
	})

	t.Run("Order item prices survive later catalog changes", func(t *testing.T) {
		var storedItem models.OrderItem
		testDB.Where("product_name = ?", "Product A").First(&storedItem)

		testDB.Model(&models.Product{}).Where("id = ?", productA.ID).
			Update("price", decimal.NewFromFloat(99.99))

		testDB.Where("product_name = ?", "Product A").First(&storedItem)
		assert.True(t, storedItem.Price.Equal(decimal.NewFromFloat(10.00)))

		// Restore for the remaining subtests
		testDB.Model(&models.Product{}).Where("id = ?", productA.ID).
			Update("price", decimal.NewFromFloat(10.00))
	})

	t.Run("Deducts stock when the toggle is on", func(t *testing.T) {
		testDB.Model(&models.StoreSetting{}).Where("1 = 1").Update("auto_stock_deduction", true)

		mustCreate(t, testDB, &models.CartItem{CartID: cart.ID, ProductID: productA.ID, Quantity: 3})

		custID := customer.ID
		recorder := performAuthenticatedRequest(router, http.MethodPost, "/api/place-order", nil, &custID)

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var stored models.Product
		testDB.First(&stored, productA.ID)
		assert.Equal(t, 7, stored.Stock)

		testDB.Model(&models.StoreSetting{}).Where("1 = 1").Update("auto_stock_deduction", false)
	})
}

func TestPlaceOrderMissingDefaultStatus(t *testing.T) {

	router, testDB := setupTestRouter(t, "place_order_no_status_test")

	// No OrderStatus rows seeded: the workflow's hard external dependency.
	customer := models.Customer{Name: "Test Customer", OIDCID: "oidc-nostatus", Email: "nostatus@example.com", Phone: "1234567890"}
	mustCreate(t, testDB, &customer)

	product := models.Product{Name: "Product A", Price: decimal.NewFromFloat(10.00), Stock: 10}
	mustCreate(t, testDB, &product)

	cart := models.Cart{CustomerID: customer.ID}
	mustCreate(t, testDB, &cart)
	mustCreate(t, testDB, &models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 2})

	custID := customer.ID
	recorder := performAuthenticatedRequest(router, http.MethodPost, "/api/place-order", nil, &custID)

	assert.Equal(t, http.StatusNotFound, recorder.Code)

	var response map[string]string
	json.Unmarshal(recorder.Body.Bytes(), &response)
	assert.Equal(t, "Default order status not found.", response["error"])

	// Everything rolled back: no order, cart untouched
	var orderCount, itemCount int64
	testDB.Model(&models.Order{}).Count(&orderCount)
	assert.Equal(t, int64(0), orderCount)
	testDB.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&itemCount)
	assert.Equal(t, int64(1), itemCount)
}

func TestBuyNowHandler(t *testing.T) {

	router, testDB := setupTestRouter(t, "buy_now_test")

	status := models.OrderStatus{Name: models.DefaultOrderStatus}
	mustCreate(t, testDB, &status)
	mustCreate(t, testDB, &models.StoreSetting{AutoStockDeduction: true})

	customer := models.Customer{Name: "Test Customer", OIDCID: "oidc-buynow", Email: "buynow@example.com", Phone: "1234567890"}
	mustCreate(t, testDB, &customer)

	product := models.Product{Name: "Product A", Price: decimal.NewFromFloat(10.50), Stock: 5}
	mustCreate(t, testDB, &product)

	cart := models.Cart{CustomerID: customer.ID}
	mustCreate(t, testDB, &cart)
	mustCreate(t, testDB, &models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 1})

	t.Run("Places an order and leaves the cart alone", func(t *testing.T) {
		reqBody := handlers.BuyNowRequest{ProductID: product.ID, Quantity: 3}
		custID := customer.ID
		recorder := performAuthenticatedRequest(router, http.MethodPost, "/api/buy-now", reqBody, &custID)

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var response struct {
			Message    string          `json:"message"`
			OrderID    uint            `json:"order_id"`
			Product    string          `json:"product"`
			Quantity   int             `json:"quantity"`
			TotalPrice decimal.Decimal `json:"total_price"`
		}
		err := json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "Order placed successfully.", response.Message)
		assert.Equal(t, "Product A", response.Product)
		assert.Equal(t, 3, response.Quantity)
		assert.True(t, response.TotalPrice.Equal(decimal.NewFromFloat(31.50)))

		// Stock deducted
		var stored models.Product
		testDB.First(&stored, product.ID)
		assert.Equal(t, 2, stored.Stock)

		// Cart untouched
		var itemCount int64
		testDB.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&itemCount)
		assert.Equal(t, int64(1), itemCount)

		// Snapshot persisted
		var item models.OrderItem
		testDB.Where("order_id = ?", response.OrderID).First(&item)
		assert.Equal(t, "Product A", item.ProductName)
		assert.True(t, item.Price.Equal(decimal.NewFromFloat(10.50)))
	})

	t.Run("Quantity defaults to 1", func(t *testing.T) {
		reqBody := map[string]interface{}{"product_id": product.ID}
		custID := customer.ID
		recorder := performAuthenticatedRequest(router, http.MethodPost, "/api/buy-now", reqBody, &custID)

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var response struct {
			Quantity int `json:"quantity"`
		}
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Equal(t, 1, response.Quantity)

		var stored models.Product
		testDB.First(&stored, product.ID)
		assert.Equal(t, 1, stored.Stock)
	})

	t.Run("Returns 400 when quantity exceeds stock and creates nothing", func(t *testing.T) {
		var ordersBefore int64
		testDB.Model(&models.Order{}).Count(&ordersBefore)

		reqBody := handlers.BuyNowRequest{ProductID: product.ID, Quantity: 3}
		custID := customer.ID
		recorder := performAuthenticatedRequest(router, http.MethodPost, "/api/buy-now", reqBody, &custID)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var response map[string]string
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Equal(t, "Not enough stock available.", response["error"])

		var ordersAfter int64
		testDB.Model(&models.Order{}).Count(&ordersAfter)
		assert.Equal(t, ordersBefore, ordersAfter)

		var stored models.Product
		testDB.First(&stored, product.ID)
		assert.Equal(t, 1, stored.Stock)
	})

	t.Run("Returns 404 for unknown product", func(t *testing.T) {
		reqBody := handlers.BuyNowRequest{ProductID: 99999, Quantity: 1}
		custID := customer.ID
		recorder := performAuthenticatedRequest(router, http.MethodPost, "/api/buy-now", reqBody, &custID)

		assert.Equal(t, http.StatusNotFound, recorder.Code)

		var response map[string]string
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Equal(t, "Product not found.", response["error"])
	})

	t.Run("Returns 400 when product_id is missing", func(t *testing.T) {
		custID := customer.ID
		recorder := performAuthenticatedRequest(router, http.MethodPost, "/api/buy-now", map[string]interface{}{}, &custID)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var response map[string]string
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Equal(t, "Product ID is required.", response["error"])
	})
}

func TestMyOrdersHandler(t *testing.T) {

	router, testDB := setupTestRouter(t, "my_orders_test")

	status := models.OrderStatus{Name: models.DefaultOrderStatus}
	mustCreate(t, testDB, &status)

	customer := models.Customer{Name: "Test Customer", OIDCID: "oidc-myorders", Email: "myorders@example.com", Phone: "1234567890"}
	mustCreate(t, testDB, &customer)

	for i := 0; i < 4; i++ {
		order := models.Order{
			Reference:  fmt.Sprintf("ref-%04d", i),
			CustomerID: customer.ID,
			TotalPrice: decimal.NewFromInt(int64(10 + i)),
			StatusID:   &status.ID,
		}
		mustCreate(t, testDB, &order)
		mustCreate(t, testDB, &models.OrderItem{
			OrderID:     order.ID,
			ProductName: "Product",
			Quantity:    1,
			Price:       order.TotalPrice,
		})
	}

	custID := customer.ID
	recorder := performAuthenticatedRequest(router, http.MethodGet, "/api/my-orders", nil, &custID)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var page struct {
		Count    int64                    `json:"count"`
		Next     *string                  `json:"next"`
		Previous *string                  `json:"previous"`
		Results  []handlers.OrderResponse `json:"results"`
	}
	err := json.Unmarshal(recorder.Body.Bytes(), &page)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), page.Count)
	assert.NotNil(t, page.Next)
	assert.Nil(t, page.Previous)
	assert.Len(t, page.Results, 3)
	assert.Equal(t, models.DefaultOrderStatus, page.Results[0].StatusName)
	assert.Len(t, page.Results[0].Items, 1)
}
