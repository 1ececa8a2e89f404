package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/mwangik/go-storefront/internal/db"
	"github.com/mwangik/go-storefront/internal/models"
)

type ProductAdminRequest struct {
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	Image         string          `json:"image"`
	Stock         int             `json:"stock" binding:"gte=0"`
	CategoryID    *uint           `json:"category_id"`
	SubCategoryID *uint           `json:"subcategory_id"`
	BrandID       *uint           `json:"brand_id"`
	IsActive      *bool           `json:"is_active"`
}

func (req *ProductAdminRequest) validateRefs() error {

	if req.CategoryID != nil {
		if err := db.DB.First(&models.Category{}, *req.CategoryID).Error; err != nil {
			return fmt.Errorf("Category not found with ID: %d", *req.CategoryID)
		}
	}
	if req.SubCategoryID != nil {
		if err := db.DB.First(&models.SubCategory{}, *req.SubCategoryID).Error; err != nil {
			return fmt.Errorf("SubCategory not found with ID: %d", *req.SubCategoryID)
		}
	}
	if req.BrandID != nil {
		if err := db.DB.First(&models.Brand{}, *req.BrandID).Error; err != nil {
			return fmt.Errorf("Brand not found with ID: %d", *req.BrandID)
		}
	}

	return nil
}

func (req *ProductAdminRequest) apply(product *models.Product) {
	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.ImageURL = req.Image
	product.Stock = req.Stock
	product.CategoryID = req.CategoryID
	product.SubCategoryID = req.SubCategoryID
	product.BrandID = req.BrandID
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
}

// POST /api/admin/products
func AdminCreateProduct(c *gin.Context) {

	var req ProductAdminRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative."})
		return
	}

	if err := req.validateRefs(); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	product := models.Product{IsActive: true}
	req.apply(&product)

	if err := db.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, product)
}

// PUT /api/admin/products/:id
func AdminUpdateProduct(c *gin.Context) {

	var product models.Product
	if err := db.DB.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found."})
		return
	}

	var req ProductAdminRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative."})
		return
	}

	if err := req.validateRefs(); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	req.apply(&product)

	if err := db.DB.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, product)
}

// DELETE /api/admin/products/:id
func AdminDeleteProduct(c *gin.Context) {

	var product models.Product
	if err := db.DB.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found."})
		return
	}

	if err := db.DB.Delete(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully."})
}
