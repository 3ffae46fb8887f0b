package controller

import (
	"errors"
	"net/http"

	"github.com/jvlcode/goblog/database"
	"github.com/jvlcode/goblog/database/model"
	"github.com/jvlcode/goblog/logger"
	"github.com/jvlcode/goblog/web/entity"
	"github.com/jvlcode/goblog/web/service"
	"github.com/jvlcode/goblog/web/session"

	"github.com/gin-gonic/gin"
)

// AuthController handles registration, sessions, and the password reset
// flow.
type AuthController struct {
	userService  service.UserService
	tokenService service.TokenService
	mailService  service.MailService
}

// NewAuthController creates an AuthController and registers its routes.
func NewAuthController(g *gin.RouterGroup) *AuthController {
	a := &AuthController{}
	a.initRouter(g)
	return a
}

func (a *AuthController) initRouter(g *gin.RouterGroup) {
	g.GET("/register", a.register)
	g.POST("/register", a.register)
	g.GET("/login", a.login)
	g.POST("/login", a.login)
	g.GET("/logout", a.logout)
	g.GET("/forgot-password", a.forgotPassword)
	g.POST("/forgot-password", a.forgotPassword)
	g.GET("/reset-password/:uidb64/:token", a.resetPassword)
	g.POST("/reset-password/:uidb64/:token", a.resetPassword)
}

// register creates the user with a hashed password and puts it in the
// Readers group. An invalid form redisplays with field errors only; no
// page-level notification.
func (a *AuthController) register(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		html(c, "register.html", "Register", nil)
		return
	}

	var form entity.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		html(c, "register.html", "Register", gin.H{
			"form":         form,
			"field_errors": entity.FieldErrors(err),
		})
		return
	}

	_, err := a.userService.Register(form.Username, form.Email, form.Password)
	if err != nil {
		fieldErrors := map[string]string{}
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			fieldErrors["Username"] = err.Error()
		case errors.Is(err, service.ErrEmailTaken):
			fieldErrors["Email"] = err.Error()
		default:
			logger.Warning("register err:", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		html(c, "register.html", "Register", gin.H{
			"form":         form,
			"field_errors": fieldErrors,
		})
		return
	}

	session.Success(c, "Registration successful! You can now log in.")
	c.Redirect(http.StatusFound, "/login")
}

// login authenticates and establishes the session.
func (a *AuthController) login(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		html(c, "login.html", "Login", nil)
		return
	}

	var form entity.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		session.Error(c, "Invalid credentials")
		html(c, "login.html", "Login", gin.H{"form": form})
		return
	}

	user := a.userService.CheckUser(form.Username, form.Password)
	if user == nil {
		logger.Warningf("failed login for %q from %s", form.Username, getRemoteIp(c))
		session.Error(c, "Invalid credentials")
		html(c, "login.html", "Login", gin.H{"form": form})
		return
	}

	if err := session.SetLoginUser(c, user); err != nil {
		logger.Warning("unable to save session:", err)
	}
	logger.Infof("%s logged in from %s", user.Username, getRemoteIp(c))
	c.Redirect(http.StatusFound, "/dashboard")
}

// logout tears down the session unconditionally.
func (a *AuthController) logout(c *gin.Context) {
	if user := session.GetLoginUser(c); user != nil {
		logger.Infof("%s logged out", user.Username)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("unable to clear session:", err)
	}
	c.Redirect(http.StatusFound, "/")
}

// forgotPassword emails a single-use reset link. The success notification
// is flashed whether or not the SMTP relay accepts the message; transport
// errors are only logged. The miss path discloses account existence, as
// the page always has.
func (a *AuthController) forgotPassword(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		html(c, "forgot_password.html", "Forgot Password", nil)
		return
	}

	var form entity.ForgotPasswordForm
	if err := c.ShouldBind(&form); err != nil {
		html(c, "forgot_password.html", "Forgot Password", gin.H{
			"form":         form,
			"field_errors": entity.FieldErrors(err),
		})
		return
	}

	user, err := a.userService.GetUserByEmail(form.Email)
	if err != nil {
		if !database.IsNotFound(err) {
			logger.Warning("lookup user by email err:", err)
		}
		session.Error(c, "User with this email does not exist")
		html(c, "forgot_password.html", "Forgot Password", gin.H{"form": form})
		return
	}

	token := a.tokenService.MakeToken(user)
	uid := a.tokenService.EncodeUID(user.Id)
	if err := a.mailService.SendPasswordReset(user.Email, siteDomain(c), uid, token); err != nil {
		logger.Warning("send reset mail err:", err)
	}
	session.Success(c, "Email has been sent")
	html(c, "forgot_password.html", "Forgot Password", gin.H{"form": form})
}

// resetPassword verifies the uid/token pair and sets the new password.
// Every failure mode collapses into one generic notification so the page
// discloses nothing about which step failed.
func (a *AuthController) resetPassword(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		html(c, "reset_password.html", "Reset Password", nil)
		return
	}

	var form entity.ResetPasswordForm
	if err := c.ShouldBind(&form); err != nil {
		html(c, "reset_password.html", "Reset Password", gin.H{
			"form":         form,
			"field_errors": entity.FieldErrors(err),
		})
		return
	}

	id, err := a.tokenService.DecodeUID(c.Param("uidb64"))
	if err == nil {
		var user *model.User
		user, err = a.userService.GetUser(id)
		if err == nil && !a.tokenService.CheckToken(user, c.Param("token")) {
			err = service.ErrInvalidToken
		}
		if err == nil {
			if err = a.userService.UpdatePassword(user.Id, form.NewPassword); err == nil {
				session.Success(c, "Password reset successfully!")
				c.Redirect(http.StatusFound, "/login")
				return
			}
		}
	}

	logger.Debugf("reset password failed: %v", err)
	session.Error(c, "Something went wrong")
	html(c, "reset_password.html", "Reset Password", gin.H{"form": form})
}
