package handlers

import (
	"net/http"
	"strings"

	"yekzen_backend/internal/database"
	"yekzen_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// GET /api/categories
func ListCategories(c *gin.Context) {
	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return
	}

	iter := session.Query(`SELECT category_id, name, slug, description, image_url FROM categories`).Iter()

	categories := []models.Category{}
	var cat models.Category
	for iter.Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.ImageURL) {
		categories = append(categories, cat)
		cat = models.Category{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "category listing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// POST /api/categories (admin)
func CreateCategory(c *gin.Context) {
	var cat models.Category
	if err := c.ShouldBindJSON(&cat); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if cat.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return
	}

	cat.ID = gocql.TimeUUID()
	if cat.Slug == "" {
		cat.Slug = strings.ToLower(strings.ReplaceAll(cat.Name, " ", "-"))
	}

	if err := session.Query(`INSERT INTO categories (category_id, name, slug, description, image_url)
		VALUES (?, ?, ?, ?, ?)`,
		cat.ID, cat.Name, cat.Slug, cat.Description, cat.ImageURL).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "category creation failed"})
		return
	}

	c.JSON(http.StatusCreated, cat)
}

// DELETE /api/categories/:id (admin)
func DeleteCategory(c *gin.Context) {
	categoryID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return
	}

	if err := session.Query(`DELETE FROM categories WHERE category_id = ?`, categoryID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "category deletion failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}
