package service

import (
	"github.com/jvlcode/goblog/database"
	"github.com/jvlcode/goblog/database/model"
)

// DefaultAboutContent is shown when no AboutUs row exists or its content
// is empty.
const DefaultAboutContent = "Default content goes here."

type AboutService struct{}

// GetContent returns the first AboutUs row's content, or the default
// string. This never fails: storage errors also fall back to the default.
func (s *AboutService) GetContent() string {
	db := database.GetDB()

	about := &model.AboutUs{}
	err := db.First(about).Error
	if err != nil || about.Content == "" {
		return DefaultAboutContent
	}
	return about.Content
}
