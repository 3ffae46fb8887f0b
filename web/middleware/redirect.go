package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RedirectMiddleware permanently redirects legacy paths to their current
// equivalents.
func RedirectMiddleware() gin.HandlerFunc {
	redirects := map[string]string{
		"/old-url": "/new-url",
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for from, to := range redirects {
			if path == from || strings.HasPrefix(path, from+"/") {
				newPath := to + path[len(from):]

				c.Redirect(http.StatusMovedPermanently, newPath)
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
