// Package model defines the persisted entities of the blog.
package model

import "time"

// Permission codenames checked before gated actions.
const (
	PermViewPost   = "view_post"
	PermAddPost    = "add_post"
	PermChangePost = "change_post"
	PermDeletePost = "delete_post"
	PermCanPublish = "can_publish"
)

// ReadersGroup is the group every registered user is added to.
const ReadersGroup = "Readers"

type User struct {
	Id       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username string `json:"username" gorm:"uniqueIndex;size:150"`
	Email    string `json:"email" gorm:"uniqueIndex;size:254"`
	// Password holds the bcrypt hash, never the plaintext.
	Password  string       `json:"-"`
	IsAdmin   bool         `json:"isAdmin" gorm:"default:false"`
	Groups    []Group      `json:"groups" gorm:"many2many:user_groups;"`
	Perms     []Permission `json:"perms" gorm:"many2many:user_permissions;"`
	CreatedAt time.Time    `json:"createdAt"`
}

type Group struct {
	Id    int          `json:"id" gorm:"primaryKey;autoIncrement"`
	Name  string       `json:"name" gorm:"uniqueIndex;size:150"`
	Perms []Permission `json:"perms" gorm:"many2many:group_permissions;"`
}

type Permission struct {
	Id       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Codename string `json:"codename" gorm:"uniqueIndex;size:100"`
}

type Category struct {
	Id   int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"uniqueIndex;size:100"`
}

type Post struct {
	Id          int      `json:"id" form:"id" gorm:"primaryKey;autoIncrement"`
	Title       string   `json:"title" form:"title" gorm:"size:200"`
	Slug        string   `json:"slug" form:"slug" gorm:"uniqueIndex;size:200"`
	Content     string   `json:"content" form:"content" gorm:"type:text"`
	CategoryId  int      `json:"categoryId" form:"categoryId"`
	Category    Category `json:"category" gorm:"foreignKey:CategoryId"`
	UserId      int      `json:"-"`
	User        User     `json:"-" gorm:"foreignKey:UserId"`
	IsPublished bool     `json:"isPublished" form:"isPublished"`
	// Attachment is the stored file name of the optional upload.
	Attachment string    `json:"attachment"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type AboutUs struct {
	Id      int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Content string `json:"content" gorm:"type:text"`
}

// HasPerm reports whether the user holds the capability, either directly or
// through one of its groups. Admins hold everything.
func (u *User) HasPerm(codename string) bool {
	if u == nil {
		return false
	}
	if u.IsAdmin {
		return true
	}
	for _, p := range u.Perms {
		if p.Codename == codename {
			return true
		}
	}
	for _, g := range u.Groups {
		for _, p := range g.Perms {
			if p.Codename == codename {
				return true
			}
		}
	}
	return false
}
