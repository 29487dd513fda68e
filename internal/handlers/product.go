package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"yekzen_backend/internal/cache"
	"yekzen_backend/internal/database"
	"yekzen_backend/internal/inventory"
	"yekzen_backend/internal/models"
	services "yekzen_backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

const productColumns = `product_id, name, description, price, mrp, stock, low_stock_threshold,
	sku, category_id, image_urls, tags, rating, is_active, created_at, updated_at`

func scanProduct(scan func(...interface{}) error) (models.Product, error) {
	var p models.Product
	err := scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.MRP, &p.Stock, &p.LowStockThreshold,
		&p.SKU, &p.CategoryID, &p.ImageURLs, &p.Tags, &p.Rating, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// GET /api/products
func ListProducts(c *gin.Context) {
	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return
	}

	iter := session.Query(`SELECT ` + productColumns + ` FROM products`).Iter()

	products := []models.Product{}
	var p models.Product
	for iter.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.MRP, &p.Stock, &p.LowStockThreshold,
		&p.SKU, &p.CategoryID, &p.ImageURLs, &p.Tags, &p.Rating, &p.IsActive, &p.CreatedAt, &p.UpdatedAt) {
		if p.IsActive {
			products = append(products, p)
		}
		p = models.Product{}
	}
	if err := iter.Close(); err != nil {
		log.Printf("❌ Product listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "product listing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// GET /api/products/:id
func GetProduct(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return
	}

	q := session.Query(`SELECT `+productColumns+` FROM products WHERE product_id = ?`, productID)
	p, err := scanProduct(q.Scan)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// GET /api/products/search?q=
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	results, err := services.SearchProducts(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}

// POST /api/products (admin)
func CreateProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if p.CategoryID == (gocql.UUID{}) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category_id is required"})
		return
	}
	if p.Price < 0 || p.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price and stock must be non-negative"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return
	}

	var categoryName string
	if err := session.Query(`SELECT name FROM categories WHERE category_id = ?`, p.CategoryID).
		Scan(&categoryName); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category not found"})
		return
	}

	if len(p.ImageURLs) == 0 {
		p.ImageURLs = []string{fmt.Sprintf("http://%s/%s/products/%s.jpg",
			os.Getenv("MINIO_ENDPOINT"), os.Getenv("MINIO_BUCKET"), p.SKU)}
	}

	p.ID = gocql.TimeUUID()
	p.IsActive = true
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt

	if err := session.Query(`INSERT INTO products (`+productColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Price, p.MRP, p.Stock, p.LowStockThreshold,
		p.SKU, p.CategoryID, p.ImageURLs, p.Tags, p.Rating, p.IsActive, p.CreatedAt, p.UpdatedAt).
		Exec(); err != nil {
		log.Printf("❌ Product insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "product creation failed"})
		return
	}

	services.IndexProduct(p)
	log.Printf("✅ Product created: %s (%s)", p.Name, p.ID)

	c.JSON(http.StatusCreated, p)
}

// PUT /api/products/:id (admin)
func UpdateProduct(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return
	}

	p.ID = productID
	p.UpdatedAt = time.Now()

	if err := session.Query(`UPDATE products SET name = ?, description = ?, price = ?, mrp = ?,
		low_stock_threshold = ?, sku = ?, category_id = ?, image_urls = ?, tags = ?, is_active = ?, updated_at = ?
		WHERE product_id = ?`,
		p.Name, p.Description, p.Price, p.MRP, p.LowStockThreshold, p.SKU, p.CategoryID,
		p.ImageURLs, p.Tags, p.IsActive, p.UpdatedAt, productID).Exec(); err != nil {
		log.Printf("❌ Product update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "product update failed"})
		return
	}

	cache.InvalidateProductCache(productID.String())
	services.IndexProduct(p)

	c.JSON(http.StatusOK, p)
}

// DELETE /api/products/:id (admin) — soft delete, the row stays for order
// history.
func DeleteProduct(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return
	}

	if err := session.Query(`UPDATE products SET is_active = false, updated_at = ? WHERE product_id = ?`,
		time.Now(), productID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "product deletion failed"})
		return
	}

	cache.InvalidateProductCache(productID.String())
	services.DeleteProductIndex(productID.String())

	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

// PUT /api/products/:id/stock (admin)
func UpdateStock(c *gin.Context) {
	productID := c.Param("id")

	var req struct {
		Quantity int    `json:"quantity" binding:"required"`
		Type     string `json:"type" binding:"required"` // "restock" or "adjustment"
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	store := inventory.ScyllaStore{}
	current, err := store.Stock(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	var newStock int
	switch req.Type {
	case "restock":
		newStock = current + req.Quantity
	case "adjustment":
		newStock = req.Quantity
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be 'restock' or 'adjustment'"})
		return
	}
	if newStock < 0 {
		newStock = 0
	}

	if err := store.SetStock(c.Request.Context(), productID, newStock); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stock update failed"})
		return
	}

	cache.InvalidateProductCache(productID)
	log.Printf("📦 Stock for %s: %d → %d (%s)", productID, current, newStock, req.Type)

	c.JSON(http.StatusOK, gin.H{"product_id": productID, "stock": newStock})
}
