package middleware

import (
	"log"
	"net/http"
	"strings"

	"blogapi/models"
	"blogapi/utils"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookie = "access_token"
	callerKey         = "caller"
)

// AuthRequired accepts a bearer token or the access_token cookie set at
// sign-in and attaches the resulting Caller to the request.
func AuthRequired(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token, _ = c.Cookie(AccessTokenCookie)
		}

		if token == "" {
			_ = c.Error(utils.HandleError(http.StatusUnauthorized, "Unauthorized"))
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateJWT(token)
		if err != nil {
			log.Printf("Token validation failed: %v", err)
			_ = c.Error(utils.HandleError(http.StatusUnauthorized, "Unauthorized"))
			c.Abort()
			return
		}

		SetCaller(c, &models.Caller{ID: claims.UserID, IsAdmin: claims.IsAdmin})
		c.Next()
	}
}

func SetCaller(c *gin.Context, caller *models.Caller) {
	c.Set(callerKey, caller)
}

func CurrentCaller(c *gin.Context) (*models.Caller, bool) {
	value, exists := c.Get(callerKey)
	if !exists {
		return nil, false
	}
	caller, ok := value.(*models.Caller)
	return caller, ok
}

func bearerToken(header string) string {
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}
	return ""
}
