package middleware

import (
	"net/http"

	"github.com/abidalfrz/expense-tracker-webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// CurrentUserKey is the gin context key holding the authenticated *models.User.
const CurrentUserKey = "currentUser"

// RequireAuth resolves the session cookie to a user and puts it in the
// context. Requests without a live session are redirected to /login with the
// stale cookie cleared.
func RequireAuth(sessions *service.SessionService, cookieName string, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			redirectToLogin(c, cookieName, secureCookie)
			return
		}

		user, err := sessions.Resolve(token)
		if err != nil {
			redirectToLogin(c, cookieName, secureCookie)
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

func redirectToLogin(c *gin.Context, cookieName string, secure bool) {
	c.SetCookie(cookieName, "", -1, "/", "", secure, true)
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}
