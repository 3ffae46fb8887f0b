package service

import (
	"fmt"
	"testing"

	"github.com/jvlcode/goblog/database"
	"github.com/jvlcode/goblog/database/model"

	"github.com/stretchr/testify/assert"
)

func seedPosts(t *testing.T, n int, published bool) []model.Post {
	t.Helper()
	db := database.GetDB()
	posts := make([]model.Post, 0, n)
	for i := 1; i <= n; i++ {
		post := model.Post{
			Title:       fmt.Sprintf("Post %d", i),
			Slug:        fmt.Sprintf("post-%d", i),
			Content:     "content",
			CategoryId:  1,
			UserId:      1,
			IsPublished: published,
		}
		if err := db.Create(&post).Error; err != nil {
			t.Fatal(err)
		}
		posts = append(posts, post)
	}
	return posts
}

func TestPublishedPagePagination(t *testing.T) {
	setup()
	defer teardown()

	seedPosts(t, 12, true)

	service := PostService{}

	page, err := service.GetPublishedPage(1)
	assert.NoError(t, err)
	assert.Equal(t, 3, page.NumPages)
	assert.Equal(t, int64(12), page.Count)
	assert.Len(t, page.Posts, 5)

	// Page 2 carries posts 6-10 in store order.
	page, err = service.GetPublishedPage(2)
	assert.NoError(t, err)
	assert.Len(t, page.Posts, 5)
	assert.Equal(t, "Post 6", page.Posts[0].Title)
	assert.Equal(t, "Post 10", page.Posts[4].Title)

	page, err = service.GetPublishedPage(3)
	assert.NoError(t, err)
	assert.Len(t, page.Posts, 2)
	assert.False(t, page.HasNext())
	assert.True(t, page.HasPrevious())
}

func TestPageNumberClamping(t *testing.T) {
	setup()
	defer teardown()

	seedPosts(t, 12, true)

	service := PostService{}

	// Beyond the last page clamps to the last page.
	page, err := service.GetPublishedPage(99)
	assert.NoError(t, err)
	assert.Equal(t, 3, page.Number)
	assert.Len(t, page.Posts, 2)

	// Below the first page clamps to page 1.
	page, err = service.GetPublishedPage(-4)
	assert.NoError(t, err)
	assert.Equal(t, 1, page.Number)
}

func TestParsePageNumber(t *testing.T) {
	assert.Equal(t, 1, ParsePageNumber(""))
	assert.Equal(t, 1, ParsePageNumber("abc"))
	assert.Equal(t, 1, ParsePageNumber("0"))
	assert.Equal(t, 1, ParsePageNumber("-3"))
	assert.Equal(t, 7, ParsePageNumber("7"))
}

func TestEmptyListingStillHasOnePage(t *testing.T) {
	setup()
	defer teardown()

	service := PostService{}

	page, err := service.GetPublishedPage(1)
	assert.NoError(t, err)
	assert.Equal(t, 1, page.NumPages)
	assert.Empty(t, page.Posts)
}

func TestUnpublishedPostsHiddenFromIndex(t *testing.T) {
	setup()
	defer teardown()

	seedPosts(t, 3, true)
	seedPosts1 := model.Post{Title: "Draft", Slug: "draft", CategoryId: 1, UserId: 1}
	assert.NoError(t, database.GetDB().Create(&seedPosts1).Error)

	service := PostService{}
	page, err := service.GetPublishedPage(1)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), page.Count)
}

func TestGetBySlugAndRelated(t *testing.T) {
	setup()
	defer teardown()

	posts := seedPosts(t, 4, true)
	db := database.GetDB()
	other := model.Post{Title: "Other", Slug: "other", CategoryId: 2, UserId: 1, IsPublished: true}
	assert.NoError(t, db.Create(&other).Error)

	service := PostService{}

	post, err := service.GetBySlug("post-2")
	assert.NoError(t, err)
	assert.Equal(t, "Post 2", post.Title)

	related, err := service.GetRelated(post)
	assert.NoError(t, err)
	assert.Len(t, related, 3)
	for _, r := range related {
		assert.NotEqual(t, post.Id, r.Id)
		assert.Equal(t, post.CategoryId, r.CategoryId)
	}

	_, err = service.GetBySlug("missing")
	assert.True(t, database.IsNotFound(err))

	_ = posts
}

func TestCreatePostSlugHandling(t *testing.T) {
	setup()
	defer teardown()

	service := PostService{}

	post := &model.Post{Title: "Hello World!", CategoryId: 1, UserId: 1}
	assert.NoError(t, service.CreatePost(post))
	assert.Equal(t, "hello-world", post.Slug)

	// Same slug again fails as a form-level error.
	dup := &model.Post{Title: "Hello World!", CategoryId: 1, UserId: 1}
	err := service.CreatePost(dup)
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestPublishPostIsIdempotent(t *testing.T) {
	setup()
	defer teardown()

	posts := seedPosts(t, 1, false)
	service := PostService{}

	assert.NoError(t, service.PublishPost(posts[0].Id))
	post, err := service.GetPost(posts[0].Id)
	assert.NoError(t, err)
	assert.True(t, post.IsPublished)

	// Publishing again is a no-op, not an error.
	assert.NoError(t, service.PublishPost(posts[0].Id))
	post, err = service.GetPost(posts[0].Id)
	assert.NoError(t, err)
	assert.True(t, post.IsPublished)
}

func TestDeletePost(t *testing.T) {
	setup()
	defer teardown()

	posts := seedPosts(t, 2, true)
	service := PostService{}

	assert.NoError(t, service.DeletePost(posts[0].Id))
	_, err := service.GetPost(posts[0].Id)
	assert.True(t, database.IsNotFound(err))

	_, err = service.GetPost(posts[1].Id)
	assert.NoError(t, err)
}

func TestUpdatePost(t *testing.T) {
	setup()
	defer teardown()

	posts := seedPosts(t, 1, true)
	service := PostService{}

	post := posts[0]
	post.Title = "Renamed"
	post.Slug = "renamed"
	post.Content = "updated content"
	assert.NoError(t, service.UpdatePost(&post))

	got, err := service.GetPost(post.Id)
	assert.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, "renamed", got.Slug)
	assert.Equal(t, "updated content", got.Content)
}
