// File: /controllers/helpers.go
package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"loopline-api/apperr"
	"loopline-api/models"
	"loopline-api/utils"
)

// pathID validates an id path parameter before any collection sees it.
// On failure the 400 has already been sent.
func pathID(c *gin.Context, name string) (string, bool) {
	raw := c.Param(name)
	id, err := models.ParseID(raw)
	if err != nil {
		utils.SendAppError(c, apperr.Invalid("invalid id %q", raw))
		return "", false
	}
	return id, true
}

// pagination reads page/limit query values with the usual defaults and cap.
func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	return page, limit
}

// totalPages for pagination metadata.
func totalPages(total int64, limit int) int {
	return int((total + int64(limit) - 1) / int64(limit))
}
