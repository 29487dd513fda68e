package cache

import (
	"context"
	"encoding/json"
	"time"

	"yekzen_backend/internal/database"
	"yekzen_backend/internal/models"

	"github.com/gocql/gocql"
)

const (
	UserCacheTTL    = 5 * time.Minute
	ProductCacheTTL = 10 * time.Minute
)

// GetUserFromCache reads a user from Redis, falling back to ScyllaDB and
// repopulating the cache on a miss.
func GetUserFromCache(userID string) (*models.User, error) {
	ctx := context.Background()
	key := "user:" + userID

	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var user models.User
		if json.Unmarshal([]byte(data), &user) == nil {
			return &user, nil
		}
	}

	session, err := database.GetUsersSession()
	if err != nil {
		return nil, err
	}

	uid, err := gocql.ParseUUID(userID)
	if err != nil {
		return nil, err
	}

	var (
		email, name, role, provider, avatarURL string
		createdAt                              time.Time
	)
	err = session.Query(`SELECT email, name, role, provider, avatar_url, created_at
		FROM users WHERE user_id = ?`, uid).Scan(
		&email, &name, &role, &provider, &avatarURL, &createdAt)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:        userID,
		Email:     email,
		Name:      name,
		Role:      role,
		Provider:  provider,
		AvatarURL: avatarURL,
		CreatedAt: createdAt,
	}

	jsonData, _ := json.Marshal(user)
	database.Redis.Set(ctx, key, jsonData, UserCacheTTL)

	return user, nil
}

func InvalidateUserCache(userID string) {
	database.Redis.Del(context.Background(), "user:"+userID)
}

// GetProductNamesFromCache resolves product names for a batch of IDs,
// Redis first, ScyllaDB for the misses.
func GetProductNamesFromCache(productIDs []string) map[string]string {
	ctx := context.Background()
	result := make(map[string]string)
	missingIDs := []string{}

	for _, productID := range productIDs {
		key := "product_name:" + productID
		name, err := database.Redis.Get(ctx, key).Result()
		if err == nil {
			result[productID] = name
		} else {
			missingIDs = append(missingIDs, productID)
		}
	}

	if len(missingIDs) > 0 {
		session, err := database.GetProductsSession()
		if err == nil {
			for _, productID := range missingIDs {
				pid, err := gocql.ParseUUID(productID)
				if err != nil {
					continue
				}
				var name string
				if session.Query("SELECT name FROM products WHERE product_id = ?", pid).Scan(&name) == nil {
					result[productID] = name
					database.Redis.Set(ctx, "product_name:"+productID, name, ProductCacheTTL)
				}
			}
		}
	}

	return result
}

func InvalidateProductCache(productID string) {
	database.Redis.Del(context.Background(), "product:"+productID, "product_name:"+productID)
}
