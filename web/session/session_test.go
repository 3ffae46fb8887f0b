package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jvlcode/goblog/database/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newSessionEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(sessions.Sessions("goblog-session", cookie.NewStore([]byte("test-secret"))))
	return engine
}

func TestLoginUserKeepsPasswordHashOutOfCookie(t *testing.T) {
	engine := newSessionEngine()
	engine.GET("/set", func(c *gin.Context) {
		err := SetLoginUser(c, &model.User{
			Id:       1,
			Username: "frank",
			Password: "$2a$10$notarealhashbutclosetoone",
		})
		assert.NoError(t, err)
		c.Status(http.StatusOK)
	})
	engine.GET("/get", func(c *gin.Context) {
		user := GetLoginUser(c)
		if assert.NotNil(t, user) {
			c.String(http.StatusOK, "%s|%s", user.Username, user.Password)
		}
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/set", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	assert.NotEmpty(t, cookies)
	for _, ck := range cookies {
		assert.NotContains(t, ck.Value, "$2a$")
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/get", nil)
	for _, ck := range cookies {
		req2.AddCookie(ck)
	}
	engine.ServeHTTP(w2, req2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, "frank|", w2.Body.String())
}

func TestFlashesDrainOnce(t *testing.T) {
	engine := newSessionEngine()
	engine.GET("/flash", func(c *gin.Context) {
		Success(c, "done")
		c.Status(http.StatusOK)
	})
	engine.GET("/read", func(c *gin.Context) {
		flashes := Flashes(c)
		c.String(http.StatusOK, "%d", len(flashes))
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/flash", nil))
	cookies := w.Result().Cookies()

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/read", nil)
	for _, ck := range cookies {
		req2.AddCookie(ck)
	}
	engine.ServeHTTP(w2, req2)
	assert.Equal(t, "1", w2.Body.String())

	// The drain saved the session; re-reading with the refreshed cookie
	// yields nothing.
	w3 := httptest.NewRecorder()
	req3 := httptest.NewRequest(http.MethodGet, "/read", nil)
	for _, ck := range w2.Result().Cookies() {
		req3.AddCookie(ck)
	}
	engine.ServeHTTP(w3, req3)
	assert.Equal(t, "0", w3.Body.String())
}
