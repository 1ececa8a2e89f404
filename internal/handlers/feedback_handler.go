package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mwangik/go-storefront/internal/auth"
	"github.com/mwangik/go-storefront/internal/db"
	"github.com/mwangik/go-storefront/internal/models"
)

type CreateFeedbackRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

type EditFeedbackRequest struct {
	Message string `json:"message" binding:"required"`
}

type FeedbackResponse struct {
	ID         uint      `json:"id"`
	Customer   string    `json:"customer"`
	CustomerID uint      `json:"customer_id"`
	Product    string    `json:"product"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
	IsResolved bool      `json:"is_resolved"`
}

func feedbackResponses(feedbacks []models.Feedback) []FeedbackResponse {
	responses := make([]FeedbackResponse, 0, len(feedbacks))
	for _, fb := range feedbacks {
		responses = append(responses, FeedbackResponse{
			ID:         fb.ID,
			Customer:   fb.Customer.Name,
			CustomerID: fb.CustomerID,
			Product:    fb.Product.Name,
			Message:    fb.Message,
			CreatedAt:  fb.CreatedAt,
			IsResolved: fb.IsResolved,
		})
	}
	return responses
}

// POST /api/feedback
func CreateFeedback(c *gin.Context) {

	cust := auth.CurrentCustomer(c)

	var req CreateFeedbackRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var product models.Product
	if err := db.DB.First(&product, req.ProductID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found."})
		return
	}

	feedback := models.Feedback{
		CustomerID: cust.ID,
		ProductID:  product.ID,
		Message:    req.Message,
	}

	if err := db.DB.Create(&feedback).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Feedback submitted successfully."})
}

// PATCH /api/feedback/:feedback_id
//
// Scoping the lookup to the authenticated author makes someone else's
// feedback indistinguishable from a missing one.
func EditFeedback(c *gin.Context) {

	cust := auth.CurrentCustomer(c)

	var feedback models.Feedback
	err := db.DB.Where("id = ? AND customer_id = ?", c.Param("feedback_id"), cust.ID).First(&feedback).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Feedback not found or unauthorized."})
		return
	}

	var req EditFeedbackRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	feedback.Message = req.Message
	if err := db.DB.Save(&feedback).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Feedback updated successfully."})
}

// DELETE /api/feedback/:feedback_id
func DeleteFeedback(c *gin.Context) {

	cust := auth.CurrentCustomer(c)

	var feedback models.Feedback
	err := db.DB.Where("id = ? AND customer_id = ?", c.Param("feedback_id"), cust.ID).First(&feedback).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Feedback not found or unauthorized."})
		return
	}

	if err := db.DB.Delete(&feedback).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// GET /api/feedback/my
func MyFeedback(c *gin.Context) {

	cust := auth.CurrentCustomer(c)

	var feedbacks []models.Feedback
	err := db.DB.Preload("Customer").Preload("Product").
		Where("customer_id = ?", cust.ID).
		Order("created_at DESC").
		Find(&feedbacks).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, feedbackResponses(feedbacks))
}

// GET /feedback/product/:product_id
func ProductFeedback(c *gin.Context) {

	var product models.Product
	if err := db.DB.First(&product, c.Param("product_id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found."})
		return
	}

	var feedbacks []models.Feedback
	err := db.DB.Preload("Customer").Preload("Product").
		Where("product_id = ?", product.ID).
		Order("created_at DESC").
		Find(&feedbacks).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, feedbackResponses(feedbacks))
}
