package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mwangik/go-storefront/internal/db"
	"github.com/mwangik/go-storefront/internal/models"
	"github.com/mwangik/go-storefront/internal/pagination"
)

const catalogPageSize = 10

type SubCategoryEntry struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// GET /categories
func ListCategories(c *gin.Context) {

	var categories []models.Category
	page, err := pagination.Paginate(c, db.DB.Model(&models.Category{}), catalogPageSize, &categories)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, page)
}

// GET /subcategories
func ListSubCategories(c *gin.Context) {

	var subcategories []models.SubCategory
	query := db.DB.Model(&models.SubCategory{}).Preload("Category")
	page, err := pagination.Paginate(c, query, catalogPageSize, &subcategories)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	entries := make([]SubCategoryEntry, 0, len(subcategories))
	for _, sc := range subcategories {
		entries = append(entries, SubCategoryEntry{
			ID:       sc.ID,
			Name:     sc.Name,
			Category: sc.Category.Name,
		})
	}
	page.Results = entries

	c.JSON(http.StatusOK, page)
}

// GET /brands
func ListBrands(c *gin.Context) {

	var brands []models.Brand
	page, err := pagination.Paginate(c, db.DB.Model(&models.Brand{}), catalogPageSize, &brands)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, page)
}
