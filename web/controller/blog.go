// Package controller provides the HTTP request handlers for the blog:
// listings, post authoring, registration, sessions, and password reset.
package controller

import (
	"net/http"

	"github.com/jvlcode/goblog/database"
	"github.com/jvlcode/goblog/database/model"
	"github.com/jvlcode/goblog/logger"
	"github.com/jvlcode/goblog/web/entity"
	"github.com/jvlcode/goblog/web/service"
	"github.com/jvlcode/goblog/web/session"

	"github.com/gin-gonic/gin"
)

// BlogController handles the public pages: listings, post detail, about,
// and the contact form.
type BlogController struct {
	postService  service.PostService
	aboutService service.AboutService
}

// NewBlogController creates a BlogController and registers its routes.
func NewBlogController(g *gin.RouterGroup) *BlogController {
	a := &BlogController{}
	a.initRouter(g)
	return a
}

func (a *BlogController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/post/:slug", a.detail)
	g.GET("/about", a.about)
	g.GET("/contact", a.contact)
	g.POST("/contact", a.contact)
	g.GET("/new-url", a.newURL)
}

// index lists published posts, five per page. Out-of-range page numbers
// are clamped, never rejected.
func (a *BlogController) index(c *gin.Context) {
	pageNumber := service.ParsePageNumber(c.Query("page"))
	page, err := a.postService.GetPublishedPage(pageNumber)
	if err != nil {
		logger.Warning("list published posts err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	html(c, "index.html", "Latest Posts", gin.H{
		"blog_title": "Latest Posts",
		"page_obj":   page,
	})
}

// detail shows one post by slug plus the other posts of its category.
// Viewers without the view_post capability are turned away to the index
// with an error notification; this gate runs before the slug lookup.
func (a *BlogController) detail(c *gin.Context) {
	user := session.GetLoginUser(c)
	if !user.HasPerm(model.PermViewPost) {
		session.Error(c, "You have no permission to view any posts")
		c.Redirect(http.StatusFound, "/")
		return
	}

	post, err := a.postService.GetBySlug(c.Param("slug"))
	if err != nil {
		if database.IsNotFound(err) {
			notFound(c)
			return
		}
		logger.Warning("get post err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	relatedPosts, err := a.postService.GetRelated(post)
	if err != nil {
		logger.Warning("get related posts err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	html(c, "detail.html", post.Title, gin.H{
		"post":          post,
		"related_posts": relatedPosts,
	})
}

// about renders the first AboutUs row, or the default content when the row
// is missing or empty. This page never fails.
func (a *BlogController) about(c *gin.Context) {
	html(c, "about.html", "About Us", gin.H{
		"about_content": a.aboutService.GetContent(),
	})
}

// contact validates the submission and logs the cleaned values at debug
// level. No mail is sent from this path.
func (a *BlogController) contact(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		html(c, "contact.html", "Contact Us", nil)
		return
	}

	var form entity.ContactForm
	if err := c.ShouldBind(&form); err != nil {
		session.Error(c, "Please correct the errors below.")
		html(c, "contact.html", "Contact Us", gin.H{
			"form":         form,
			"field_errors": entity.FieldErrors(err),
		})
		return
	}

	logger.Debugf("POST Data: name=%q email=%q message=%q", form.Name, form.Email, form.Message)
	html(c, "contact.html", "Contact Us", gin.H{
		"form":            form,
		"success_message": "Your Email has been sent!",
	})
}

// newURL is the target of the legacy-path permanent redirect.
func (a *BlogController) newURL(c *gin.Context) {
	c.String(http.StatusOK, "This is the new URL")
}
