package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Hadi891/CareerCompass/internal/delivery/http/response"
	"github.com/Hadi891/CareerCompass/internal/domain"
	"github.com/Hadi891/CareerCompass/pkg/auth"
)

func AuthMiddleware(issuer *auth.Issuer, userRepo domain.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		// 1. Try the Authorization header
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			// 2. Fall back to the auth cookie
			cookie, err := c.Cookie("auth_token")
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		userID, email, err := issuer.ParseToken(tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		// A valid token for a deleted account is still unauthorized.
		if _, err := userRepo.GetByID(c.Request.Context(), userID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				response.Error(c, http.StatusUnauthorized, "User not found", nil)
			} else {
				response.Error(c, http.StatusInternalServerError, "Could not verify user", nil)
			}
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), userID)
		c.Set(string(domain.KeyUserEmail), email)

		c.Next()
	}
}
