// Package web provides the blog's web server: routing, sessions,
// templates, and static assets.
package web

import (
	"context"
	"embed"
	"html/template"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/jvlcode/goblog/config"
	"github.com/jvlcode/goblog/logger"
	"github.com/jvlcode/goblog/util/common"
	"github.com/jvlcode/goblog/util/random"
	"github.com/jvlcode/goblog/web/controller"
	"github.com/jvlcode/goblog/web/middleware"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

//go:embed html/*
var htmlFS embed.FS

const sessionName = "goblog-session"

// Server is the blog's web server with its controllers.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	blog *controller.BlogController
	auth *controller.AuthController
	post *controller.PostController

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

// getHtmlTemplate parses the embedded HTML templates.
func (s *Server) getHtmlTemplate(funcMap template.FuncMap) (*template.Template, error) {
	t := template.New("").Funcs(funcMap)
	return t.ParseFS(htmlFS, "html/*.html")
}

// initRouter initializes Gin, registers middleware, templates, static
// assets, and controllers, and returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	if webDomain := config.GetDomain(); webDomain != "" {
		engine.Use(middleware.DomainValidatorMiddleware(webDomain))
	}

	secret := config.GetSecretKey()
	if secret == "" {
		secret = random.Seq(32)
	}
	store := cookie.NewStore([]byte(secret))
	engine.Use(sessions.Sessions(sessionName, store))

	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	// Legacy path shim (/old-url -> /new-url)
	engine.Use(middleware.RedirectMiddleware())

	tpl, err := s.getHtmlTemplate(template.FuncMap{})
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tpl)

	engine.StaticFS("/uploads", http.FS(os.DirFS(config.GetUploadFolder())))

	g := engine.Group("/")
	s.blog = controller.NewBlogController(g)
	s.auth = controller.NewAuthController(g)
	s.post = controller.NewPostController(g)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("Web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		defer common.Recover("web server serve")
		_ = s.httpServer.Serve(listener)
	}()

	return nil
}

// Stop gracefully shuts down the web server.
func (s *Server) Stop() error {
	s.cancel()
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context { return s.ctx }
