package handlers

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"yekzen_backend/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /api/products/:id/images (admin) — returns a presigned PUT URL so the
// admin UI uploads straight to MinIO.
func PresignProductImageUpload(c *gin.Context) {
	productID := c.Param("id")

	var req struct {
		Extension string `json:"extension"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Extension == "" {
		req.Extension = "jpg"
	}

	objectName := fmt.Sprintf("products/%s/%s.%s", productID, uuid.NewString(), req.Extension)
	bucket := os.Getenv("MINIO_BUCKET")

	uploadURL, err := database.MinIO.PresignedPutObject(c.Request.Context(), bucket, objectName, 15*time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "presign failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"upload_url": uploadURL.String(),
		"object":     objectName,
		"public_url": fmt.Sprintf("http://%s/%s/%s", os.Getenv("MINIO_ENDPOINT"), bucket, objectName),
	})
}

// GET /api/images/*object — presigned download for private buckets.
func PresignImageDownload(c *gin.Context) {
	objectName := c.Param("object")
	if len(objectName) > 0 && objectName[0] == '/' {
		objectName = objectName[1:]
	}

	url, err := database.MinIO.PresignedGetObject(c.Request.Context(), os.Getenv("MINIO_BUCKET"),
		objectName, time.Hour, nil)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "object not found"})
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, url.String())
}
