package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const maxPageSize = 100

// Page mirrors the envelope the storefront clients already consume:
// a total count, absolute next/previous links and the result slice.
type Page struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// Paginate counts query, applies page/page_size from the request and scans
// the page into out. page_size is client-overridable up to maxPageSize.
func Paginate(c *gin.Context, query *gorm.DB, defaultSize int, out interface{}) (*Page, error) {

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	size, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultSize)))
	if err != nil || size < 1 {
		size = defaultSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, err
	}

	if err := query.Offset((page - 1) * size).Limit(size).Find(out).Error; err != nil {
		return nil, err
	}

	result := &Page{
		Count:   count,
		Results: out,
	}

	if int64(page*size) < count {
		next := pageURL(c, page+1)
		result.Next = &next
	}
	if page > 1 {
		prev := pageURL(c, page-1)
		result.Previous = &prev
	}

	return result, nil
}

func pageURL(c *gin.Context, page int) string {
	u := *c.Request.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}
