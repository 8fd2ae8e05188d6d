package handler

import (
	"net/http"

	"boardshelf/backend/internal/database"
	"boardshelf/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// GetCategories godoc
// @Summary      List categories
// @Description  Retrieves the full list of categories.
// @Tags         categories
// @Produce      json
// @Success      200  {array}  models.Category
// @Router       /categories [get]
func GetCategories(c *gin.Context) {
	categories := []models.Category{}
	if err := database.DB.Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve categories"})
		return
	}

	c.JSON(http.StatusOK, categories)
}
