package controller

import (
	"errors"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jvlcode/goblog/config"
	"github.com/jvlcode/goblog/database"
	"github.com/jvlcode/goblog/database/model"
	"github.com/jvlcode/goblog/logger"
	"github.com/jvlcode/goblog/util/common"
	"github.com/jvlcode/goblog/web/entity"
	"github.com/jvlcode/goblog/web/middleware"
	"github.com/jvlcode/goblog/web/service"
	"github.com/jvlcode/goblog/web/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PostController handles the dashboard and the permission-gated post
// authoring routes.
type PostController struct {
	postService service.PostService
}

// NewPostController creates a PostController and registers its routes.
// The authoring routes are capability-gated before the handler body runs.
func NewPostController(g *gin.RouterGroup) *PostController {
	a := &PostController{}
	a.initRouter(g)
	return a
}

func (a *PostController) initRouter(g *gin.RouterGroup) {
	g.GET("/dashboard", middleware.SessionRequired(), a.dashboard)
	g.GET("/dashboard/logs", middleware.SessionRequired(), a.logs)

	g.GET("/posts/new", middleware.PermissionRequired(model.PermAddPost), a.newPost)
	g.POST("/posts/new", middleware.PermissionRequired(model.PermAddPost), a.newPost)
	g.GET("/posts/:id/edit", middleware.PermissionRequired(model.PermChangePost), a.editPost)
	g.POST("/posts/:id/edit", middleware.PermissionRequired(model.PermChangePost), a.editPost)
	g.POST("/posts/:id/delete", middleware.PermissionRequired(model.PermDeletePost), a.deletePost)
	g.POST("/posts/:id/publish", middleware.PermissionRequired(model.PermCanPublish), a.publishPost)
}

// dashboard lists the current principal's own posts, published or not,
// with the same pagination contract as the index.
func (a *PostController) dashboard(c *gin.Context) {
	user := session.GetLoginUser(c)
	pageNumber := service.ParsePageNumber(c.Query("page"))
	page, err := a.postService.GetUserPage(user.Id, pageNumber)
	if err != nil {
		logger.Warning("list own posts err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	html(c, "dashboard.html", "My Posts", gin.H{
		"blog_title": "My Posts",
		"page_obj":   page,
	})
}

// logs shows recent log lines. Administrators only; the buffer can carry
// request details that do not belong in front of regular users.
func (a *PostController) logs(c *gin.Context) {
	user := session.GetLoginUser(c)
	if user == nil || !user.IsAdmin {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	count, err := strconv.Atoi(c.DefaultQuery("count", "50"))
	if err != nil || count <= 0 {
		count = 50
	}
	lines := logger.GetLogs(count, c.DefaultQuery("level", "DEBUG"))
	c.String(http.StatusOK, "%s", strings.Join(lines, "\n"))
}

// newPost creates a post owned by the current principal.
func (a *PostController) newPost(c *gin.Context) {
	categories, err := a.postService.GetCategories()
	if err != nil {
		logger.Warning("list categories err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	if c.Request.Method != http.MethodPost {
		html(c, "new_post.html", "New Post", gin.H{"categories": categories})
		return
	}

	var form entity.PostForm
	if err := c.ShouldBind(&form); err != nil {
		html(c, "new_post.html", "New Post", gin.H{
			"categories":   categories,
			"form":         form,
			"field_errors": entity.FieldErrors(err),
		})
		return
	}

	attachment, err := a.saveAttachment(c)
	if err != nil {
		logger.Warning("save attachment err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	user := session.GetLoginUser(c)
	post := &model.Post{
		Title:      form.Title,
		Slug:       form.Slug,
		Content:    form.Content,
		CategoryId: form.CategoryId,
		UserId:     user.Id,
		Attachment: attachment,
	}
	if err := a.postService.CreatePost(post); err != nil {
		if errors.Is(err, service.ErrSlugTaken) {
			html(c, "new_post.html", "New Post", gin.H{
				"categories":   categories,
				"form":         form,
				"field_errors": map[string]string{"Slug": err.Error()},
			})
			return
		}
		logger.Warning("create post err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	session.Success(c, "Post created successfully!")
	c.Redirect(http.StatusFound, "/dashboard")
}

// editPost persists changes to an existing post in place. Unknown ids 404.
func (a *PostController) editPost(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		notFound(c)
		return
	}
	post, err := a.postService.GetPost(id)
	if err != nil {
		if database.IsNotFound(err) {
			notFound(c)
			return
		}
		logger.Warning("get post err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	categories, err := a.postService.GetCategories()
	if err != nil {
		logger.Warning("list categories err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	if c.Request.Method != http.MethodPost {
		html(c, "edit_post.html", "Edit Post", gin.H{
			"categories": categories,
			"post":       post,
		})
		return
	}

	var form entity.PostForm
	if err := c.ShouldBind(&form); err != nil {
		html(c, "edit_post.html", "Edit Post", gin.H{
			"categories":   categories,
			"post":         post,
			"form":         form,
			"field_errors": entity.FieldErrors(err),
		})
		return
	}

	attachment, err := a.saveAttachment(c)
	if err != nil {
		logger.Warning("save attachment err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if attachment == "" {
		attachment = post.Attachment
	}

	post.Title = form.Title
	post.Slug = form.Slug
	post.Content = form.Content
	post.CategoryId = form.CategoryId
	post.Attachment = attachment
	if err := a.postService.UpdatePost(post); err != nil {
		if errors.Is(err, service.ErrSlugTaken) {
			html(c, "edit_post.html", "Edit Post", gin.H{
				"categories":   categories,
				"post":         post,
				"form":         form,
				"field_errors": map[string]string{"Slug": err.Error()},
			})
			return
		}
		logger.Warning("update post err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	session.Success(c, "Post updated successfully!")
	c.Redirect(http.StatusFound, "/dashboard")
}

// deletePost removes any post, with no ownership check beyond the
// capability gate.
func (a *PostController) deletePost(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		notFound(c)
		return
	}
	if _, err := a.postService.GetPost(id); err != nil {
		if database.IsNotFound(err) {
			notFound(c)
			return
		}
		logger.Warning("get post err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	if err := a.postService.DeletePost(id); err != nil {
		logger.Warning("delete post err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	session.Success(c, "Post deleted successfully!")
	c.Redirect(http.StatusFound, "/dashboard")
}

// publishPost flips the published flag. Re-publishing is a no-op.
func (a *PostController) publishPost(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		notFound(c)
		return
	}
	if _, err := a.postService.GetPost(id); err != nil {
		if database.IsNotFound(err) {
			notFound(c)
			return
		}
		logger.Warning("get post err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	if err := a.postService.PublishPost(id); err != nil {
		logger.Warning("publish post err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	session.Success(c, "Post published successfully!")
	c.Redirect(http.StatusFound, "/dashboard")
}

// saveAttachment stores an uploaded attachment under a fresh UUID name and
// returns the stored file name. No upload means an empty name, no error.
func (a *PostController) saveAttachment(c *gin.Context) (string, error) {
	file, err := c.FormFile("attachment")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", err
	}
	return storeUpload(c, file)
}

func storeUpload(c *gin.Context, file *multipart.FileHeader) (string, error) {
	folder := config.GetUploadFolder()
	if err := os.MkdirAll(folder, 0o750); err != nil {
		return "", err
	}
	name := uuid.NewString() + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(folder, name)); err != nil {
		return "", common.NewErrorf("store attachment %s: %v", file.Filename, err)
	}
	return name, nil
}
