// Package session wraps gin-contrib/sessions with helpers for the logged-in
// user and one-shot flash notifications.
package session

import (
	"encoding/gob"

	"github.com/jvlcode/goblog/database/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const loginUser = "LOGIN_USER"

// Flash is a one-shot notification carried across a redirect.
type Flash struct {
	Level   string
	Message string
}

func init() {
	gob.Register(model.User{})
	gob.Register(Flash{})
}

func SetLoginUser(c *gin.Context, user *model.User) error {
	// The cookie store signs but does not encrypt, so the bcrypt hash
	// must not ride along.
	stored := *user
	stored.Password = ""
	s := sessions.Default(c)
	s.Set(loginUser, stored)
	return s.Save()
}

func GetLoginUser(c *gin.Context) *model.User {
	s := sessions.Default(c)
	if obj := s.Get(loginUser); obj != nil {
		if user, ok := obj.(model.User); ok {
			return &user
		}
	}
	return nil
}

func IsLogin(c *gin.Context) bool {
	return GetLoginUser(c) != nil
}

func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	return s.Save()
}

// AddFlash queues a notification for the next rendered page.
func AddFlash(c *gin.Context, level string, message string) {
	s := sessions.Default(c)
	s.AddFlash(Flash{Level: level, Message: message})
	_ = s.Save()
}

// Success queues a success notification.
func Success(c *gin.Context, message string) {
	AddFlash(c, "success", message)
}

// Error queues an error notification.
func Error(c *gin.Context, message string) {
	AddFlash(c, "error", message)
}

// Flashes drains and returns the queued notifications.
func Flashes(c *gin.Context) []Flash {
	s := sessions.Default(c)
	raw := s.Flashes()
	if len(raw) > 0 {
		_ = s.Save()
	}
	flashes := make([]Flash, 0, len(raw))
	for _, f := range raw {
		if flash, ok := f.(Flash); ok {
			flashes = append(flashes, flash)
		}
	}
	return flashes
}
