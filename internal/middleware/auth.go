package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fencyatf/Products-Backend/internal/account"
	"github.com/fencyatf/Products-Backend/internal/util"

	"github.com/gin-gonic/gin"
)

// CurrentUserKey holds the authenticated email in the gin context.
const CurrentUserKey = "currentUser"

// TokenVerifier is satisfied by *account.SessionIssuer.
type TokenVerifier interface {
	Verify(token string) (*util.Claims, error)
}

// AuthMiddleware requires a valid bearer token. A missing token is 401, a
// token that fails verification is 403.
func AuthMiddleware(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)

		claims, err := v.Verify(tokenStr)
		if err != nil {
			if errors.Is(err, account.ErrTokenMissing) {
				util.AbortError(c, http.StatusUnauthorized, util.KindToken, "Token not provided")
			} else {
				util.AbortError(c, http.StatusForbidden, util.KindToken, "Invalid token")
			}
			return
		}

		c.Set(CurrentUserKey, claims.User)
		c.Next()
	}
}

// bearerToken reads "Authorization: Bearer xxx", falling back to ?token=
// for downloads where the client cannot set headers.
func bearerToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return c.Query("token")
}

// CurrentUser returns the email set by AuthMiddleware.
func CurrentUser(c *gin.Context) (string, bool) {
	email := c.GetString(CurrentUserKey)
	return email, email != ""
}
