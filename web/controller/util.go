package controller

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/jvlcode/goblog/config"
	"github.com/jvlcode/goblog/web/session"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the real IP address from the request headers or
// remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return ips[0]
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// siteDomain returns the domain used in outbound links: the configured one
// when set, otherwise the requesting host.
func siteDomain(c *gin.Context) string {
	if domain := config.GetDomain(); domain != "" {
		return domain
	}
	if host := c.GetHeader("X-Forwarded-Host"); host != "" {
		return host
	}
	return c.Request.Host
}

// html renders a template with the provided data and title, draining any
// queued flash notifications into the page.
func html(c *gin.Context, name string, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["title"] = title
	data["flashes"] = session.Flashes(c)
	data["login_user"] = session.GetLoginUser(c)
	data["cur_ver"] = config.GetVersion()
	c.HTML(http.StatusOK, name, data)
}

// notFound terminates the request with HTTP 404.
func notFound(c *gin.Context) {
	c.AbortWithStatus(http.StatusNotFound)
}

// pathId parses a numeric :id path parameter. Non-numeric ids behave like
// missing rows.
func pathId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
