package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/akhilsingh-git/timesheetapplication/internal/application/service"
	"github.com/akhilsingh-git/timesheetapplication/internal/domain/entity"
)

const identityKey = "identity"

// AuthMiddleware resolves the Identity from the Authorization bearer token
// and aborts with 401 when it cannot.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Error:   "missing bearer token",
			})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		user, err := authService.ResolveToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Error:   "could not validate credentials",
			})
			return
		}

		c.Set(identityKey, user)
		c.Next()
	}
}

// currentUser returns the identity the auth middleware attached.
func currentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	user, _ := v.(*entity.User)
	return user
}
