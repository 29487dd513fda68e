package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"yekzen_backend/internal/cache"
	"yekzen_backend/internal/database"
	"yekzen_backend/internal/models"
	"yekzen_backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// POST /api/auth/register
func Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration data"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing gocql.UUID
	if err := session.Query(`SELECT user_id FROM users WHERE email = ? ALLOW FILTERING`, email).
		Scan(&existing); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	userID := gocql.TimeUUID()
	now := time.Now()
	if err := session.Query(`INSERT INTO users
		(user_id, email, name, password_hash, role, provider, avatar_url, created_at)
		VALUES (?, ?, ?, ?, 'user', 'local', '', ?)`,
		userID, email, req.Name, hash, now).Exec(); err != nil {
		log.Printf("❌ User insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	user := models.User{ID: userID.String(), Email: email, Name: req.Name, Role: "user", Provider: "local", CreatedAt: now}
	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	refresh := utils.GenerateRefreshToken()
	cache.StoreRefreshToken(user.ID, refresh, utils.RefreshTokenTTL)

	log.Printf("✅ User registered: %s", email)
	c.JSON(http.StatusCreated, gin.H{"token": token, "refresh_token": refresh, "user": user})
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credentials payload"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var (
		userID                          gocql.UUID
		name, passwordHash, role, prov  string
		avatarURL                       string
		createdAt                       time.Time
	)
	err = session.Query(`SELECT user_id, name, password_hash, role, provider, avatar_url, created_at
		FROM users WHERE email = ? ALLOW FILTERING`, email).
		Scan(&userID, &name, &passwordHash, &role, &prov, &avatarURL, &createdAt)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	ok, err := utils.VerifyPassword(req.Password, passwordHash)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	user := models.User{ID: userID.String(), Email: email, Name: name, Role: role, Provider: prov, AvatarURL: avatarURL, CreatedAt: createdAt}
	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	refresh := utils.GenerateRefreshToken()
	cache.StoreRefreshToken(user.ID, refresh, utils.RefreshTokenTTL)

	c.JSON(http.StatusOK, gin.H{"token": token, "refresh_token": refresh, "user": user})
}

// POST /api/auth/refresh
func RefreshToken(c *gin.Context) {
	var req struct {
		UserID       string `json:"user_id" binding:"required"`
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid refresh payload"})
		return
	}

	stored, err := cache.GetRefreshToken(req.UserID)
	if err != nil || stored != req.RefreshToken {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}

	user, err := cache.GetUserFromCache(req.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return
	}

	token, err := utils.GenerateJWT(*user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	// Rotate: the old refresh token dies with this exchange.
	refresh := utils.GenerateRefreshToken()
	cache.StoreRefreshToken(user.ID, refresh, utils.RefreshTokenTTL)

	c.JSON(http.StatusOK, gin.H{"token": token, "refresh_token": refresh})
}

// POST /api/auth/logout
func Logout(c *gin.Context) {
	userID := c.GetString("user_id")
	cache.DeleteRefreshToken(userID)

	// The access token stays valid until exp unless blacklisted.
	if jti := c.GetString("jti"); jti != "" {
		cache.BlacklistToken(jti, utils.AccessTokenTTL)
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// GET /api/auth/me
func Me(c *gin.Context) {
	userID := c.GetString("user_id")
	user, err := cache.GetUserFromCache(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}
