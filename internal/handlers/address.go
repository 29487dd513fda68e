package handlers

import (
	"net/http"

	"yekzen_backend/internal/database"
	"yekzen_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// GET /api/addresses
func ListAddresses(c *gin.Context) {
	userID := c.GetString("user_id")

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return
	}

	iter := session.Query(`SELECT address_id, user_id, full_name, line1, line2, city, state, pin_code, phone, is_default
		FROM addresses WHERE user_id = ? ALLOW FILTERING`, userID).Iter()

	addresses := []models.Address{}
	var a models.Address
	for iter.Scan(&a.ID, &a.UserID, &a.FullName, &a.Line1, &a.Line2, &a.City, &a.State, &a.PinCode, &a.Phone, &a.IsDefault) {
		addresses = append(addresses, a)
		a = models.Address{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "address listing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

// POST /api/addresses
func CreateAddress(c *gin.Context) {
	userID := c.GetString("user_id")

	var a models.Address
	if err := c.ShouldBindJSON(&a); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if a.FullName == "" || a.Line1 == "" || a.City == "" || a.PinCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "full_name, line1, city and pin_code are required"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return
	}

	a.ID = gocql.TimeUUID()
	a.UserID = userID

	if err := session.Query(`INSERT INTO addresses
		(address_id, user_id, full_name, line1, line2, city, state, pin_code, phone, is_default)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.FullName, a.Line1, a.Line2, a.City, a.State, a.PinCode, a.Phone, a.IsDefault).
		Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "address creation failed"})
		return
	}

	c.JSON(http.StatusCreated, a)
}

// DELETE /api/addresses/:id
func DeleteAddress(c *gin.Context) {
	userID := c.GetString("user_id")

	addressID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address id"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return
	}

	// Only the owner may delete.
	var owner string
	if err := session.Query(`SELECT user_id FROM addresses WHERE address_id = ?`, addressID).
		Scan(&owner); err != nil || owner != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
		return
	}

	if err := session.Query(`DELETE FROM addresses WHERE address_id = ?`, addressID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "address deletion failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "address deleted"})
}
