package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mwangik/go-storefront/internal/db"
	"github.com/mwangik/go-storefront/internal/models"
	"github.com/mwangik/go-storefront/internal/pagination"
	"github.com/mwangik/go-storefront/internal/utils"
)

const productPageSize = 10

type ProductListEntry struct {
	ID    uint            `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
	Brand string          `json:"brand"`
}

type ProductDetail struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Brand       string          `json:"brand"`
	Category    string          `json:"category"`
	SubCategory string          `json:"subcategory"`
	Stock       int             `json:"stock"`
}

func listEntries(products []models.Product) []ProductListEntry {
	entries := make([]ProductListEntry, 0, len(products))
	for _, p := range products {
		entry := ProductListEntry{
			ID:    p.ID,
			Name:  p.Name,
			Price: p.Price,
			Image: p.ImageURL,
		}
		if p.Brand != nil {
			entry.Brand = p.Brand.Name
		}
		entries = append(entries, entry)
	}
	return entries
}

func paginatedProducts(c *gin.Context, query *gorm.DB) {

	var products []models.Product
	page, err := pagination.Paginate(c, query.Preload("Brand"), productPageSize, &products)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	page.Results = listEntries(products)
	c.JSON(http.StatusOK, page)
}

// GET /products
func ListProducts(c *gin.Context) {
	paginatedProducts(c, db.DB.Model(&models.Product{}))
}

// GET /products/:id
func ProductDetailView(c *gin.Context) {

	var product models.Product
	err := db.DB.Preload("Brand").Preload("Category").Preload("SubCategory").
		First(&product, c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found."})
		return
	}

	detail := ProductDetail{
		ID:          product.ID,
		Name:        product.Name,
		Price:       product.Price,
		Description: product.Description,
		Image:       product.ImageURL,
		Stock:       product.Stock,
	}
	if product.Brand != nil {
		detail.Brand = product.Brand.Name
	}
	if product.Category != nil {
		detail.Category = product.Category.Name
	}
	if product.SubCategory != nil {
		detail.SubCategory = product.SubCategory.Name
	}

	c.JSON(http.StatusOK, detail)
}

// GET /search-products?q=
//
// Case-insensitive substring match across product, brand, category and
// subcategory names. No ranking; a blank query returns everything.
func SearchProducts(c *gin.Context) {

	query := db.DB.Model(&models.Product{})

	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	if q != "" {
		pattern := "%" + q + "%"
		// Match via a subquery so the paginated outer query stays a plain
		// products select; joining here would leak ambiguous name columns
		// into the scan and break the count.
		matching := db.DB.Model(&models.Product{}).
			Select("products.id").
			Joins("LEFT JOIN brands ON brands.id = products.brand_id").
			Joins("LEFT JOIN categories ON categories.id = products.category_id").
			Joins("LEFT JOIN sub_categories ON sub_categories.id = products.sub_category_id").
			Where(
				"LOWER(products.name) LIKE ? OR LOWER(brands.name) LIKE ? OR LOWER(categories.name) LIKE ? OR LOWER(sub_categories.name) LIKE ?",
				pattern, pattern, pattern, pattern,
			)
		query = query.Where("id IN (?)", matching)
	}

	paginatedProducts(c, query)
}

// GET /products/category/:category_id
func ProductsByCategory(c *gin.Context) {
	paginatedProducts(c, db.DB.Model(&models.Product{}).Where("category_id = ?", c.Param("category_id")))
}

// GET /products/brand/:brand_id
func ProductsByBrand(c *gin.Context) {
	paginatedProducts(c, db.DB.Model(&models.Product{}).Where("brand_id = ?", c.Param("brand_id")))
}

// GET /products/subcategory/:subcategory_id
func ProductsBySubCategory(c *gin.Context) {
	paginatedProducts(c, db.DB.Model(&models.Product{}).Where("sub_category_id = ?", c.Param("subcategory_id")))
}

// GET /products/by-category-ids?ids=1,2,3
func ProductsByCategoryIDs(c *gin.Context) {
	ids := utils.ParseIDList(c.Query("ids"))
	paginatedProducts(c, db.DB.Model(&models.Product{}).Where("category_id IN ?", ids))
}

// GET /products/by-brand-ids?ids=1,2,3
func ProductsByBrandIDs(c *gin.Context) {
	ids := utils.ParseIDList(c.Query("ids"))
	paginatedProducts(c, db.DB.Model(&models.Product{}).Where("brand_id IN ?", ids))
}

// GET /products/by-subcategory-ids?ids=1,2,3
func ProductsBySubCategoryIDs(c *gin.Context) {
	ids := utils.ParseIDList(c.Query("ids"))
	paginatedProducts(c, db.DB.Model(&models.Product{}).Where("sub_category_id IN ?", ids))
}
