package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// Pagination holds the parsed page/limit query parameters
type Pagination struct {
	Page  int
	Limit int
}

// Offset returns the row offset for the current page
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParsePagination reads page and limit query parameters with sane bounds
func ParsePagination(c *gin.Context) Pagination {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if err != nil || page < 1 {
		page = defaultPage
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return Pagination{Page: page, Limit: limit}
}
