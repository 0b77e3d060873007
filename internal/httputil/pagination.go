package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParsePagination safely parses and validates page and per_page query parameters.
// It uses default values of 1 for page and 20 for per_page.
// The per_page value cannot exceed 100.
func ParsePagination(c *gin.Context) (page, perPage int, err error) {
	// Parse page query parameter (default: 1)
	pageStr := c.DefaultQuery("page", "1")
	page, err = strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return 0, 0, fmt.Errorf("invalid page parameter: must be a positive integer")
	}

	// Parse per_page query parameter (default: 20, max: 100)
	perPageStr := c.DefaultQuery("per_page", "20")
	perPage, err = strconv.Atoi(perPageStr)
	if err != nil || perPage < 1 || perPage > 100 {
		return 0, 0, fmt.Errorf("invalid per_page parameter: must be between 1 and 100")
	}

	return page, perPage, nil
}
