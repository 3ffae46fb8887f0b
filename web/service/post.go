package service

import (
	"strings"

	"github.com/jvlcode/goblog/database"
	"github.com/jvlcode/goblog/database/model"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// PostPage is one page of a post listing, with the navigation state the
// templates need.
type PostPage struct {
	Posts    []model.Post
	Number   int
	NumPages int
	Count    int64
}

func (p *PostPage) HasPrevious() bool { return p.Number > 1 }

func (p *PostPage) HasNext() bool { return p.Number < p.NumPages }

func (p *PostPage) PreviousPageNumber() int { return p.Number - 1 }

func (p *PostPage) NextPageNumber() int { return p.Number + 1 }

type PostService struct{}

// page runs the shared pagination flow over a filtered posts query. The
// filter is applied to a fresh statement per query, and the page number is
// soft-clamped, never rejected.
func (s *PostService) page(filter func(*gorm.DB) *gorm.DB, pageNumber int) (*PostPage, error) {
	db := database.GetDB()

	var count int64
	if err := filter(db.Model(&model.Post{})).Count(&count).Error; err != nil {
		return nil, err
	}

	pages := numPages(count, PostsPerPage)
	number := clampPage(pageNumber, pages)

	var posts []model.Post
	err := filter(db.Model(&model.Post{})).
		Preload("Category").
		Offset((number - 1) * PostsPerPage).
		Limit(PostsPerPage).
		Find(&posts).
		Error
	if err != nil {
		return nil, err
	}

	return &PostPage{
		Posts:    posts,
		Number:   number,
		NumPages: pages,
		Count:    count,
	}, nil
}

// GetPublishedPage returns one page of published posts in store order.
func (s *PostService) GetPublishedPage(pageNumber int) (*PostPage, error) {
	return s.page(func(q *gorm.DB) *gorm.DB {
		return q.Where("is_published = ?", true)
	}, pageNumber)
}

// GetUserPage returns one page of the posts owned by a user.
func (s *PostService) GetUserPage(userId int, pageNumber int) (*PostPage, error) {
	return s.page(func(q *gorm.DB) *gorm.DB {
		return q.Where("user_id = ?", userId)
	}, pageNumber)
}

// GetBySlug looks up exactly one post by its slug.
func (s *PostService) GetBySlug(postSlug string) (*model.Post, error) {
	db := database.GetDB()
	post := &model.Post{}
	err := db.Preload("Category").Where("slug = ?", postSlug).First(post).Error
	if err != nil {
		return nil, err
	}
	return post, nil
}

// GetRelated returns every post sharing the category, excluding the post
// itself. No limit, store order.
func (s *PostService) GetRelated(post *model.Post) ([]model.Post, error) {
	db := database.GetDB()
	var related []model.Post
	err := db.
		Where("category_id = ? AND id != ?", post.CategoryId, post.Id).
		Find(&related).
		Error
	if err != nil {
		return nil, err
	}
	return related, nil
}

// GetPost loads a post by id.
func (s *PostService) GetPost(id int) (*model.Post, error) {
	db := database.GetDB()
	post := &model.Post{}
	err := db.Preload("Category").Where("id = ?", id).First(post).Error
	if err != nil {
		return nil, err
	}
	return post, nil
}

// CreatePost stores a new post. A blank slug is derived from the title;
// slug collisions surface as ErrSlugTaken for the form to report.
func (s *PostService) CreatePost(post *model.Post) error {
	db := database.GetDB()
	post.Slug = normalizeSlug(post.Slug, post.Title)
	if taken, err := s.isSlugTaken(post.Slug, 0); err != nil {
		return err
	} else if taken {
		return ErrSlugTaken
	}
	return db.Create(post).Error
}

// UpdatePost persists changes to an existing post in place.
func (s *PostService) UpdatePost(post *model.Post) error {
	db := database.GetDB()
	post.Slug = normalizeSlug(post.Slug, post.Title)
	if taken, err := s.isSlugTaken(post.Slug, post.Id); err != nil {
		return err
	} else if taken {
		return ErrSlugTaken
	}
	return db.Model(&model.Post{}).
		Where("id = ?", post.Id).
		Updates(map[string]any{
			"title":       post.Title,
			"slug":        post.Slug,
			"content":     post.Content,
			"category_id": post.CategoryId,
			"attachment":  post.Attachment,
		}).
		Error
}

// DeletePost removes the post unconditionally.
func (s *PostService) DeletePost(id int) error {
	db := database.GetDB()
	return db.Delete(&model.Post{}, id).Error
}

// PublishPost marks the post published. Publishing an already-published
// post is a no-op state-wise.
func (s *PostService) PublishPost(id int) error {
	db := database.GetDB()
	return db.Model(&model.Post{}).
		Where("id = ?", id).
		Update("is_published", true).
		Error
}

// GetCategories lists the selectable categories.
func (s *PostService) GetCategories() ([]model.Category, error) {
	db := database.GetDB()
	var categories []model.Category
	err := db.Find(&categories).Error
	return categories, err
}

func (s *PostService) isSlugTaken(postSlug string, excludeId int) (bool, error) {
	db := database.GetDB()
	var count int64
	err := db.Model(&model.Post{}).
		Where("slug = ? AND id != ?", postSlug, excludeId).
		Count(&count).
		Error
	return count > 0, err
}

func normalizeSlug(raw string, title string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return slug.Make(title)
	}
	return slug.Make(raw)
}
