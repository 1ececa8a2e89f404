package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mwangik/go-storefront/internal/auth"
	"github.com/mwangik/go-storefront/internal/db"
	"github.com/mwangik/go-storefront/internal/models"
)

type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// GET /api/user/profile
func UserProfile(c *gin.Context) {
	c.JSON(http.StatusOK, auth.CurrentCustomer(c))
}

// PATCH /api/user/profile
//
// Email is read only; it belongs to the identity provider.
func UpdateProfile(c *gin.Context) {

	cust := auth.CurrentCustomer(c)

	var req UpdateProfileRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		cust.Name = *req.Name
	}
	if req.Phone != nil {
		cust.Phone = *req.Phone
	}
	if req.Address != nil {
		cust.Address = *req.Address
	}

	if err := db.DB.Save(cust).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully.", "user": cust})
}

// DELETE /api/user
func DeleteAccount(c *gin.Context) {

	cust := auth.CurrentCustomer(c)

	if err := db.DB.Delete(&models.Customer{}, cust.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
