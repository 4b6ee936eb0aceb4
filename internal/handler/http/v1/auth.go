package v1

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	apiKeyHeader    = "X-API-Key"
	officerIDHeader = "X-Officer-ID"
	officerIDKey    = "officer_id"
)

// APIKeyAuthMiddleware - middleware для аутентификации по API-ключу.
// Для WebSocket ключ может передаваться в параметре api_key.
func APIKeyAuthMiddleware(apiKeys []string, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader(apiKeyHeader)
		if apiKey == "" {
			// Проверяем также заголовок Authorization: Bearer
			if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
				apiKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}
		if apiKey == "" {
			apiKey = c.Query("api_key")
		}

		if apiKey == "" {
			log.Warn("API key missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			return
		}

		if !validAPIKey(apiKeys, apiKey) {
			log.WithField("path", c.FullPath()).Warn("Invalid API key provided")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}

		c.Next()
	}
}

func validAPIKey(apiKeys []string, apiKey string) bool {
	for _, key := range apiKeys {
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) == 1 {
			return true
		}
	}
	return false
}

// OfficerIdentityMiddleware переносит X-Officer-ID, выставленный прокси идентификации, в контекст запроса
func OfficerIdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if officerID := strings.TrimSpace(c.GetHeader(officerIDHeader)); officerID != "" {
			c.Set(officerIDKey, officerID)
		}
		c.Next()
	}
}

// actingOfficer возвращает идентификатор офицера, от имени которого выполняется запрос
func actingOfficer(c *gin.Context) (string, bool) {
	officerID := c.GetString(officerIDKey)
	return officerID, officerID != ""
}
