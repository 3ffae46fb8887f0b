package service

import (
	"github.com/jvlcode/goblog/database"
	"github.com/jvlcode/goblog/database/model"
	"github.com/jvlcode/goblog/logger"
	"github.com/jvlcode/goblog/util/common"
	"github.com/jvlcode/goblog/util/crypto"

	"gorm.io/gorm"
)

var (
	ErrUsernameTaken = common.NewError("a user with that username already exists")
	ErrEmailTaken    = common.NewError("a user with that email already exists")
	ErrSlugTaken     = common.NewError("a post with that slug already exists")
)

type UserService struct{}

// Register creates the user with a hashed password and adds it to the
// Readers group, creating the group on first registration.
func (s *UserService) Register(username string, email string, password string) (*model.User, error) {
	db := database.GetDB()

	if taken, err := s.isTaken("username", username); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrUsernameTaken
	}
	if taken, err := s.isTaken("email", email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, err
	}

	readers, err := s.getOrCreateReadersGroup()
	if err != nil {
		return nil, err
	}
	if err := db.Model(user).Association("Groups").Append(readers); err != nil {
		return nil, err
	}

	return s.GetUser(user.Id)
}

// getOrCreateReadersGroup returns the Readers group, creating it with the
// view_post permission the first time. The unique index on the group name
// plus the retry read keeps concurrent registrations from producing
// duplicate groups.
func (s *UserService) getOrCreateReadersGroup() (*model.Group, error) {
	db := database.GetDB()

	group := &model.Group{}
	err := db.Preload("Perms").Where("name = ?", model.ReadersGroup).First(group).Error
	if err == nil {
		return group, nil
	}
	if !database.IsNotFound(err) {
		return nil, err
	}

	var viewPost model.Permission
	if err := db.Where("codename = ?", model.PermViewPost).First(&viewPost).Error; err != nil {
		return nil, err
	}

	group = &model.Group{Name: model.ReadersGroup, Perms: []model.Permission{viewPost}}
	if err := db.Create(group).Error; err != nil {
		// Lost the race against a concurrent registration; the row exists now.
		retry := &model.Group{}
		if retryErr := db.Preload("Perms").Where("name = ?", model.ReadersGroup).First(retry).Error; retryErr == nil {
			return retry, nil
		}
		return nil, err
	}
	return group, nil
}

// CheckUser authenticates by username and password, returning nil on any
// failure.
func (s *UserService) CheckUser(username string, password string) *model.User {
	db := database.GetDB()

	user := &model.User{}
	err := db.Preload("Groups.Perms").Preload("Perms").
		Where("username = ?", username).
		First(user).
		Error
	if err == gorm.ErrRecordNotFound {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil
	}
	return user
}

// GetUser loads a user with its groups and permissions.
func (s *UserService) GetUser(id int) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Preload("Groups.Perms").Preload("Perms").
		Where("id = ?", id).
		First(user).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByEmail looks up a user by registered email address.
func (s *UserService) GetUserByEmail(email string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Where("email = ?", email).First(user).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePassword sets and persists a new hashed password.
func (s *UserService) UpdatePassword(id int, password string) error {
	db := database.GetDB()

	hashedPassword, err := crypto.HashPassword(password)
	if err != nil {
		return err
	}
	return db.Model(&model.User{}).
		Where("id = ?", id).
		Update("password", hashedPassword).
		Error
}

// UpdateUsername renames a user, keeping the unique constraint intact.
func (s *UserService) UpdateUsername(id int, username string) error {
	if taken, err := s.isTaken("username", username); err != nil {
		return err
	} else if taken {
		return ErrUsernameTaken
	}
	db := database.GetDB()
	return db.Model(&model.User{}).
		Where("id = ?", id).
		Update("username", username).
		Error
}

func (s *UserService) isTaken(column string, value string) (bool, error) {
	db := database.GetDB()
	var count int64
	err := db.Model(&model.User{}).
		Where(column+" = ?", value).
		Count(&count).
		Error
	return count > 0, err
}
