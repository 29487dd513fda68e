package handlers

import (
	"log"
	"net/http"
	"time"

	"yekzen_backend/internal/cache"
	"yekzen_backend/internal/database"
	"yekzen_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// GET /api/products/:id/reviews
func ListReviews(c *gin.Context) {
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

	iter := session.Query(`SELECT review_id, product_id, user_id, user_name, rating, comment, created_at
		FROM reviews WHERE product_id = ?`, productID).Iter()

	reviews := []models.Review{}
	var r models.Review
	for iter.Scan(&r.ID, &r.ProductID, &r.UserID, &r.UserName, &r.Rating, &r.Comment, &r.CreatedAt) {
		reviews = append(reviews, r)
		r = models.Review{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "review listing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "count": len(reviews)})
}

// POST /api/products/:id/reviews (auth)
func CreateReview(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var req struct {
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
		return
	}

	userID := c.GetString("user_id")
	userName := ""
	if u, err := cache.GetUserFromCache(userID); err == nil {
		userName = u.Name
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return
	}

	review := models.Review{
		ID:        gocql.TimeUUID(),
		ProductID: productID,
		UserID:    userID,
		UserName:  userName,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}

	if err := session.Query(`INSERT INTO reviews (review_id, product_id, user_id, user_name, rating, comment, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		review.ID, review.ProductID, review.UserID, review.UserName, review.Rating,
		review.Comment, review.CreatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "review creation failed"})
		return
	}

	go recomputeProductRating(productID)

	c.JSON(http.StatusCreated, review)
}

// recomputeProductRating refreshes the denormalized average on the product
// row.
func recomputeProductRating(productID gocql.UUID) {
	session, err := database.GetProductsSession()
	if err != nil {
		return
	}

	iter := session.Query(`SELECT rating FROM reviews WHERE product_id = ?`, productID).Iter()

	sum, count := 0, 0
	var rating int
	for iter.Scan(&rating) {
		sum += rating
		count++
	}
	if err := iter.Close(); err != nil || count == 0 {
		return
	}

	avg := float64(sum) / float64(count)
	if err := session.Query(`UPDATE products SET rating = ? WHERE product_id = ?`, avg, productID).Exec(); err != nil {
		log.Printf("⚠️ Rating update failed for %s: %v", productID, err)
		return
	}
	cache.InvalidateProductCache(productID.String())
}
