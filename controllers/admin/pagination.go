package adminControllers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// PageResult is the envelope every admin list endpoint returns.
type PageResult struct {
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Total    int64       `json:"total"`
	Items    interface{} `json:"items"`
}

// ParsePage reads page (>=1) and page_size (1..100, default 20).
func ParsePage(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// ParseSort maps sort_by/order onto a whitelisted ORDER BY clause, falling
// back to created_at descending.
func ParseSort(c *gin.Context, sortKeys map[string]string) string {
	column, ok := sortKeys[c.DefaultQuery("sort_by", "created_at")]
	if !ok {
		column = "created_at"
	}
	order := strings.ToLower(c.DefaultQuery("order", "desc"))
	if order != "asc" && order != "desc" {
		order = "desc"
	}
	return fmt.Sprintf("%s %s", column, order)
}

// Paginate runs the count and the page fetch concurrently on independent
// sessions of the same filtered query and fills dest with the page items.
func Paginate(query *gorm.DB, page, pageSize int, orderClause string, dest interface{}) (int64, error) {
	countQuery := query.Session(&gorm.Session{})
	pageQuery := query.Session(&gorm.Session{})

	var total int64
	countErr := make(chan error, 1)
	go func() {
		countErr <- countQuery.Count(&total).Error
	}()

	err := pageQuery.
		Order(orderClause).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(dest).Error

	if cerr := <-countErr; cerr != nil && err == nil {
		err = cerr
	}
	return total, err
}
