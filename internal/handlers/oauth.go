package handlers

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"yekzen_backend/internal/cache"
	"yekzen_backend/internal/database"
	"yekzen_backend/internal/models"
	"yekzen_backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
)

// GET /api/auth/:provider
func OAuthBegin(c *gin.Context) {
	q := c.Request.URL.Query()
	q.Set("provider", c.Param("provider"))
	c.Request.URL.RawQuery = q.Encode()

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// GET /api/auth/:provider/callback
func OAuthCallback(c *gin.Context) {
	q := c.Request.URL.Query()
	q.Set("provider", c.Param("provider"))
	c.Request.URL.RawQuery = q.Encode()

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		log.Printf("❌ OAuth callback failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication failed"})
		return
	}

	user, err := upsertOAuthUser(gothUser)
	if err != nil {
		log.Printf("❌ OAuth user upsert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "authentication failed"})
		return
	}

	token, err := utils.GenerateJWT(*user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	refresh := utils.GenerateRefreshToken()
	cache.StoreRefreshToken(user.ID, refresh, utils.RefreshTokenTTL)

	// Hand the session back to the storefront.
	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		frontend = "http://localhost:3000"
	}
	c.Redirect(http.StatusTemporaryRedirect, frontend+"/auth/callback?token="+token+"&refresh="+refresh)
}

func upsertOAuthUser(gothUser goth.User) (*models.User, error) {
	session, err := database.GetUsersSession()
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(gothUser.Email)

	var (
		userID                         gocql.UUID
		name, role, provider, avatarURL string
		createdAt                      time.Time
	)
	err = session.Query(`SELECT user_id, name, role, provider, avatar_url, created_at
		FROM users WHERE email = ? ALLOW FILTERING`, email).
		Scan(&userID, &name, &role, &provider, &avatarURL, &createdAt)
	if err == nil {
		return &models.User{ID: userID.String(), Email: email, Name: name, Role: role,
			Provider: provider, AvatarURL: avatarURL, CreatedAt: createdAt}, nil
	}

	userID = gocql.TimeUUID()
	now := time.Now()
	displayName := gothUser.Name
	if displayName == "" {
		displayName = gothUser.NickName
	}

	if err := session.Query(`INSERT INTO users
		(user_id, email, name, password_hash, role, provider, avatar_url, created_at)
		VALUES (?, ?, ?, '', 'user', ?, ?, ?)`,
		userID, email, displayName, gothUser.Provider, gothUser.AvatarURL, now).Exec(); err != nil {
		return nil, err
	}

	log.Printf("✅ New %s user: %s", gothUser.Provider, email)
	return &models.User{ID: userID.String(), Email: email, Name: displayName, Role: "user",
		Provider: gothUser.Provider, AvatarURL: gothUser.AvatarURL, CreatedAt: now}, nil
}
