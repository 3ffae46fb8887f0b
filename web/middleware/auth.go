// Package middleware contains the route guards and request shims applied
// before handler bodies run.
package middleware

import (
	"net/http"

	"github.com/jvlcode/goblog/web/session"

	"github.com/gin-gonic/gin"
)

// SessionRequired redirects anonymous requests to the login page.
func SessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !session.IsLogin(c) {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// PermissionRequired enforces a capability on top of an authenticated
// session. A missing capability is fatal to the request: 403, no soft
// redirect.
func PermissionRequired(codename string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := session.GetLoginUser(c)
		if user == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		if !user.HasPerm(codename) {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}
