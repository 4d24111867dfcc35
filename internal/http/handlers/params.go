package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pageParams reads the common listing query string; out-of-range values are
// clamped later by the service layer.
func pageParams(c *gin.Context) (page, pageSize int, search string) {
	page, _ = strconv.Atoi(c.Query("page"))
	pageSize, _ = strconv.Atoi(c.Query("pageSize"))
	search = c.Query("search")
	return page, pageSize, search
}

// batchDeleteRequest is the wire shape of every batch exclusion call.
type batchDeleteRequest struct {
	Keys []string `json:"keys"`
}
